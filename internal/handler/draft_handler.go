package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qforge/qforge-backend/internal/middleware"
	"github.com/qforge/qforge-backend/internal/model"
	"github.com/qforge/qforge-backend/internal/response"
	"github.com/qforge/qforge-backend/internal/service"
)

// DraftHandler exposes in-progress question autosave. Drafts carry no
// validation gate: anything a teacher is still typing is acceptable.
type DraftHandler struct {
	draftService *service.DraftService
}

func NewDraftHandler(draftService *service.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

// Put stores the draft snapshot under the caller's namespace.
func (h *DraftHandler) Put(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	// Binding into the model directly skips the save-time validation tags;
	// only unparseable JSON is rejected.
	var question model.Question
	if err := c.ShouldBindJSON(&question); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}
	question.AuthorID = claims.TeacherID

	if err := h.draftService.Save(c.Request.Context(), claims.TeacherID, c.Param("id"), question); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"saved": true})
}

// Get loads a previously autosaved draft.
func (h *DraftHandler) Get(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	question, err := h.draftService.Load(c.Request.Context(), claims.TeacherID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, question)
}

// Delete discards a draft.
func (h *DraftHandler) Delete(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.draftService.Discard(c.Request.Context(), claims.TeacherID, c.Param("id")); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"discarded": true})
}
