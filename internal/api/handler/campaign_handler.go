package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Tafhim-87/Quran-track/internal/dto"
	"github.com/Tafhim-87/Quran-track/internal/service"
	"github.com/Tafhim-87/Quran-track/pkg/response"
)

// CampaignHandler campaign module HTTP handler.
type CampaignHandler struct {
	campaign *service.Campaign
}

// NewCampaignHandler creates a CampaignHandler.
func NewCampaignHandler(campaign *service.Campaign) *CampaignHandler {
	return &CampaignHandler{campaign: campaign}
}

// Info returns campaign metadata and today's day index.
// GET /api/v1/campaign
func (h *CampaignHandler) Info(c *gin.Context) {
	response.OK(c, dto.CampaignResponse{
		StartDate:  h.campaign.Start().Format("2006-01-02"),
		Days:       h.campaign.Days(),
		CurrentDay: h.campaign.DayIndexAt(time.Now()),
	})
}
