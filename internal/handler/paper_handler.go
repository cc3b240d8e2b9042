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

type PaperHandler struct {
	paperService *service.PaperService
}

func NewPaperHandler(paperService *service.PaperService) *PaperHandler {
	return &PaperHandler{paperService: paperService}
}

// List returns the author's papers, paginated.
func (h *PaperHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	papers, pagination, err := h.paperService.List(c.Request.Context(), claims.TeacherID, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, papers, pagination)
}

// Get returns a paper along with its recomputed marks summary.
func (h *PaperHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	detail, err := h.paperService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, detail)
}

// Create persists a new paper; total marks are computed from the referenced
// questions at save time.
func (h *PaperHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.SavePaperRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	paper, ok := paperFromRequest(c, &req, claims.TeacherID)
	if !ok {
		return
	}

	if err := h.paperService.Create(c.Request.Context(), paper); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, paper)
}

// Update replaces an existing paper owned by the caller.
func (h *PaperHandler) Update(c *gin.Context) {
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

	var req model.SavePaperRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	paper, ok := paperFromRequest(c, &req, claims.TeacherID)
	if !ok {
		return
	}
	paper.ID = id

	if err := h.paperService.Update(c.Request.Context(), claims.TeacherID, paper); err != nil {
		h.failMutate(c, err)
		return
	}

	response.Success(c, http.StatusOK, paper)
}

// Delete removes a paper owned by the caller.
func (h *PaperHandler) Delete(c *gin.Context) {
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

	if err := h.paperService.Delete(c.Request.Context(), claims.TeacherID, id); err != nil {
		h.failMutate(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *PaperHandler) failMutate(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotOwner):
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
	case errors.Is(err, pgx.ErrNoRows):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// paperFromRequest converts the DTO, parsing section question IDs. The
// binding layer already constrained them to UUID shape, so a parse failure
// here means a malformed payload slipped through a custom client.
func paperFromRequest(c *gin.Context, req *model.SavePaperRequest, authorID int) (*model.Paper, bool) {
	sections := make([]model.PaperSection, 0, len(req.Sections))
	for _, s := range req.Sections {
		ids := make([]uuid.UUID, 0, len(s.QuestionIDs))
		for _, raw := range s.QuestionIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
				return nil, false
			}
			ids = append(ids, id)
		}
		sections = append(sections, model.PaperSection{
			Title:        s.Title,
			Instructions: s.Instructions,
			QuestionIDs:  ids,
		})
	}

	return &model.Paper{
		AuthorID:        authorID,
		Title:           req.Title,
		Board:           req.Board,
		Grade:           req.Grade,
		Subject:         req.Subject,
		DurationMinutes: req.DurationMinutes,
		Instructions:    req.Instructions,
		Sections:        sections,
	}, true
}
