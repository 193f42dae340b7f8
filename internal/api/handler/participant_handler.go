package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Tafhim-87/Quran-track/internal/service"
	"github.com/Tafhim-87/Quran-track/pkg/response"
)

// ParticipantHandler participant module HTTP handler.
type ParticipantHandler struct {
	participantSvc service.ParticipantService
}

// NewParticipantHandler creates a ParticipantHandler.
func NewParticipantHandler(participantSvc service.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{participantSvc: participantSvc}
}

// List returns the leaderboard.
// GET /api/v1/participants
func (h *ParticipantHandler) List(c *gin.Context) {
	participants, err := h.participantSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": participants})
}

// Progress returns the personal progress snapshot for one participant name.
// GET /api/v1/participants/:name/progress
func (h *ParticipantHandler) Progress(c *gin.Context) {
	name := c.Param("name")

	progress, err := h.participantSvc.Progress(c.Request.Context(), name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameRequired):
			response.BadRequest(c, 20002, "name is required")
		case errors.Is(err, service.ErrParticipantNotFound):
			response.NotFound(c, 20101, "participant not found")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, progress)
}
