package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/qforge/qforge-backend/internal/middleware"
	"github.com/qforge/qforge-backend/internal/model"
	"github.com/qforge/qforge-backend/internal/response"
	"github.com/qforge/qforge-backend/internal/service"
	"github.com/qforge/qforge-backend/internal/validator"
)

type QuestionHandler struct {
	questionService   *service.QuestionService
	generationService *service.GenerationService
}

func NewQuestionHandler(questionService *service.QuestionService, generationService *service.GenerationService) *QuestionHandler {
	return &QuestionHandler{
		questionService:   questionService,
		generationService: generationService,
	}
}

// List returns the author's questions, paginated and optionally filtered.
func (h *QuestionHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	filter := model.QuestionFilter{
		Board:   c.Query("board"),
		Grade:   c.Query("grade"),
		Subject: c.Query("subject"),
		Chapter: c.Query("chapter"),
		Type:    model.QuestionType(c.Query("question_type")),
	}

	questions, pagination, err := h.questionService.List(c.Request.Context(), claims.TeacherID, filter, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, questions, pagination)
}

// Get returns a single question by ID.
func (h *QuestionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	question, err := h.questionService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, question)
}

// Create validates and persists a new question. Payloads that fail the
// draft validator come back as 422 with the failure reason.
func (h *QuestionHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.SaveQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question := req.ToQuestion(claims.TeacherID)
	if err := h.questionService.Create(c.Request.Context(), &question); err != nil {
		h.failSave(c, err)
		return
	}

	response.Success(c, http.StatusCreated, question)
}

// Update validates and replaces an existing question owned by the caller.
func (h *QuestionHandler) Update(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.SaveQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question := req.ToQuestion(claims.TeacherID)
	question.ID = id
	if err := h.questionService.Update(c.Request.Context(), claims.TeacherID, &question); err != nil {
		h.failSave(c, err)
		return
	}

	response.Success(c, http.StatusOK, question)
}

// Delete removes a question owned by the caller.
func (h *QuestionHandler) Delete(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), claims.TeacherID, id); err != nil {
		h.failSave(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// Generate produces a question draft for the requested subject and type.
// The draft is returned for editing, not persisted.
func (h *QuestionHandler) Generate(c *gin.Context) {
	var req model.GenerateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.generationService.Generate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrNoFixture) {
			response.Fail(c, http.StatusServiceUnavailable, response.ErrGenerationUnavailable)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, question)
}

// failSave maps question service errors onto HTTP responses.
func (h *QuestionHandler) failSave(c *gin.Context, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		response.FailWithMessage(c, http.StatusUnprocessableEntity, response.ErrQuestionInvalid, vErr.Reason)
	case errors.Is(err, service.ErrNotOwner):
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
	case errors.Is(err, pgx.ErrNoRows):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
