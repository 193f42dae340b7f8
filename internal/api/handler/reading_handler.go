package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Tafhim-87/Quran-track/internal/dto"
	"github.com/Tafhim-87/Quran-track/internal/service"
	"github.com/Tafhim-87/Quran-track/pkg/response"
)

// ReadingHandler reading module HTTP handler.
type ReadingHandler struct {
	readingSvc service.ReadingService
}

// NewReadingHandler creates a ReadingHandler.
func NewReadingHandler(readingSvc service.ReadingService) *ReadingHandler {
	return &ReadingHandler{readingSvc: readingSvc}
}

// Submit records today's reading for a participant.
// POST /api/v1/readings
func (h *ReadingHandler) Submit(c *gin.Context) {
	var req dto.SubmitReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.readingSvc.Submit(c.Request.Context(), &req)
	if err != nil {
		h.handleReadingError(c, err)
		return
	}

	response.Created(c, result)
}

// List returns the reading log with summary statistics.
// GET /api/v1/readings?day=5&name=sam
func (h *ReadingHandler) List(c *gin.Context) {
	var req dto.ReadingListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	result, err := h.readingSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// handleReadingError maps reading module business errors to responses.
func (h *ReadingHandler) handleReadingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrParaOutOfRange):
		response.BadRequest(c, 20001, "para must be between 0.5 and 5")
	case errors.Is(err, service.ErrNameRequired):
		response.BadRequest(c, 20002, "name is required")
	case errors.Is(err, service.ErrAlreadySubmittedToday):
		response.Conflict(c, 20003, "you have already submitted for today")
	default:
		response.InternalError(c)
	}
}
