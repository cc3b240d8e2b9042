package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/qforge/qforge-backend/internal/middleware"
	"github.com/qforge/qforge-backend/internal/model"
	"github.com/qforge/qforge-backend/internal/response"
	"github.com/qforge/qforge-backend/internal/service"
)

// AnswerSheetHandler accepts scanned answer sheet uploads and reports their
// processing state.
type AnswerSheetHandler struct {
	sheetService *service.AnswerSheetService
	mediaService *service.MediaService
}

func NewAnswerSheetHandler(sheetService *service.AnswerSheetService, mediaService *service.MediaService) *AnswerSheetHandler {
	return &AnswerSheetHandler{
		sheetService: sheetService,
		mediaService: mediaService,
	}
}

// Upload stores the sheet file and enqueues it for background processing.
// The response carries the sheet in UPLOADED state; progress is streamed
// over the status WebSocket.
func (h *AnswerSheetHandler) Upload(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	paperID, err := uuid.Parse(c.PostForm("paper_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	url, err := h.mediaService.SaveSheet(file, header)
	if err != nil {
		failUpload(c, err)
		return
	}

	sheet := &model.AnswerSheet{
		PaperID:     paperID,
		UploaderID:  claims.TeacherID,
		StudentName: c.PostForm("student_name"),
		FileURL:     url,
	}

	if err := h.sheetService.Submit(c.Request.Context(), sheet); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusAccepted, sheet)
}

// Get returns a single answer sheet with its current status.
func (h *AnswerSheetHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	sheet, err := h.sheetService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, sheet)
}

// ListByPaper returns all sheets uploaded against a paper.
func (h *AnswerSheetHandler) ListByPaper(c *gin.Context) {
	paperID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	sheets, err := h.sheetService.ListByPaper(c.Request.Context(), paperID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, sheets)
}
