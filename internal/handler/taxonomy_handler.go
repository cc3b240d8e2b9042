package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/qforge/qforge-backend/internal/model"
	"github.com/qforge/qforge-backend/internal/response"
	"github.com/qforge/qforge-backend/internal/service"
	"github.com/qforge/qforge-backend/internal/validator"
)

// TaxonomyHandler serves the board/grade/subject/chapter/topic hierarchy
// that question authoring forms are populated from.
type TaxonomyHandler struct {
	taxonomyService *service.TaxonomyService
}

func NewTaxonomyHandler(taxonomyService *service.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomyService: taxonomyService}
}

// Boards lists the supported examination boards.
func (h *TaxonomyHandler) Boards(c *gin.Context) {
	response.Success(c, http.StatusOK, h.taxonomyService.Boards())
}

// Grades lists the supported grade levels.
func (h *TaxonomyHandler) Grades(c *gin.Context) {
	response.Success(c, http.StatusOK, h.taxonomyService.Grades())
}

func (h *TaxonomyHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.taxonomyService.ListSubjects(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, subjects)
}

func (h *TaxonomyHandler) CreateSubject(c *gin.Context) {
	var req model.CreateSubjectRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	subject := &model.Subject{Name: req.Name}
	if err := h.taxonomyService.CreateSubject(c.Request.Context(), subject); err != nil {
		h.failWrite(c, err)
		return
	}
	response.Success(c, http.StatusCreated, subject)
}

func (h *TaxonomyHandler) DeleteSubject(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if err := h.taxonomyService.DeleteSubject(c.Request.Context(), id); err != nil {
		h.failWrite(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *TaxonomyHandler) ListChapters(c *gin.Context) {
	subjectID, ok := intParam(c, "subjectId")
	if !ok {
		return
	}
	chapters, err := h.taxonomyService.ListChapters(c.Request.Context(), subjectID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, chapters)
}

func (h *TaxonomyHandler) CreateChapter(c *gin.Context) {
	subjectID, ok := intParam(c, "subjectId")
	if !ok {
		return
	}

	var req model.CreateChapterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	chapter := &model.Chapter{SubjectID: subjectID, Name: req.Name}
	if err := h.taxonomyService.CreateChapter(c.Request.Context(), chapter); err != nil {
		h.failWrite(c, err)
		return
	}
	response.Success(c, http.StatusCreated, chapter)
}

func (h *TaxonomyHandler) DeleteChapter(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if err := h.taxonomyService.DeleteChapter(c.Request.Context(), id); err != nil {
		h.failWrite(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *TaxonomyHandler) ListTopics(c *gin.Context) {
	chapterID, ok := intParam(c, "chapterId")
	if !ok {
		return
	}
	topics, err := h.taxonomyService.ListTopics(c.Request.Context(), chapterID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, topics)
}

func (h *TaxonomyHandler) CreateTopic(c *gin.Context) {
	chapterID, ok := intParam(c, "chapterId")
	if !ok {
		return
	}

	var req model.CreateTopicRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	topic := &model.Topic{ChapterID: chapterID, Name: req.Name}
	if err := h.taxonomyService.CreateTopic(c.Request.Context(), topic); err != nil {
		h.failWrite(c, err)
		return
	}
	response.Success(c, http.StatusCreated, topic)
}

func (h *TaxonomyHandler) DeleteTopic(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if err := h.taxonomyService.DeleteTopic(c.Request.Context(), id); err != nil {
		h.failWrite(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// failWrite maps Postgres constraint failures onto taxonomy error codes:
// unique violations are conflicts, foreign key violations mean dependent
// rows still reference the row being deleted.
func (h *TaxonomyHandler) failWrite(c *gin.Context, err error) {
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr) && pgErr.Code == "23505":
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.As(err, &pgErr) && pgErr.Code == "23503":
		response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
	case errors.Is(err, pgx.ErrNoRows):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

func intParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}
