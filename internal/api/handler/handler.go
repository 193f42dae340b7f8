package handler

import "github.com/Tafhim-87/Quran-track/internal/service"

// Handler aggregates all handlers.
type Handler struct {
	Reading     *ReadingHandler
	Participant *ParticipantHandler
	Campaign    *CampaignHandler
	Export      *ExportHandler
}

// NewHandler creates the handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Reading:     NewReadingHandler(svc.Reading),
		Participant: NewParticipantHandler(svc.Participant),
		Campaign:    NewCampaignHandler(svc.Campaign),
		Export:      NewExportHandler(svc.Export),
	}
}
