package handlers

import (
	"errors"
	"net/http"

	"github.com/flowfam/family-api/internal/dto"
	apierrors "github.com/flowfam/family-api/internal/errors"
	"github.com/flowfam/family-api/internal/services"
	"github.com/gin-gonic/gin"
)

// NoteHandler coordinates shared-note HTTP handlers.
type NoteHandler struct {
	noteService *services.NoteService
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(noteService *services.NoteService) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
	}
}

// ListNotes returns the notes visible to the caller.
func (h *NoteHandler) ListNotes(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	notes, err := h.noteService.ListVisibleNotes(member)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notes": dto.ToNoteDTOs(notes),
	})
}

// GetNote returns one note when the caller may see it.
func (h *NoteHandler) GetNote(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	noteID, ok := idParam(c, "id")
	if !ok {
		return
	}

	note, err := h.noteService.GetNote(member, noteID)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNoteDTO(*note))
}

// CreateNote creates a note shared with the given members.
func (h *NoteHandler) CreateNote(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	type CreateNoteRequest struct {
		Title      string   `json:"title" binding:"required"`
		Body       string   `json:"body"`
		SharedWith []uint64 `json:"shared_with"`
	}

	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	note, err := h.noteService.CreateNote(services.CreateNoteInput{
		Actor:      member,
		Title:      req.Title,
		Body:       req.Body,
		SharedWith: req.SharedWith,
	})
	if err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToNoteDTO(*note))
}

// UpdateNote applies a partial update to a note. Creator only.
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	noteID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateNoteInput{
		Actor:  member,
		NoteID: noteID,
	}
	if title, ok := rawReq["title"].(string); ok {
		input.Title = &title
	}
	if body, ok := rawReq["body"].(string); ok {
		input.Body = &body
	}
	if rawShared, ok := rawReq["shared_with"].([]any); ok {
		sharedWith := make([]uint64, 0, len(rawShared))
		for _, raw := range rawShared {
			id, ok := raw.(float64)
			if !ok {
				apierrors.BadRequest(c, "Invalid shared_with")
				return
			}
			sharedWith = append(sharedWith, uint64(id))
		}
		input.SharedWith = sharedWith
	}

	note, err := h.noteService.UpdateNote(input)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNoteDTO(*note))
}

// DeleteNote removes a note. Creator only.
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	noteID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.noteService.DeleteNote(member, noteID); err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Note deleted successfully",
	})
}

func respondNoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoteTitleRequired),
		errors.Is(err, services.ErrInvalidAssignee):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNoteNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotNoteCreator):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
