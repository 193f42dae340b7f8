package dto

// ── campaign module DTOs ──

// CampaignResponse campaign metadata plus today's derived day index.
type CampaignResponse struct {
	StartDate  string `json:"start_date"`
	Days       int    `json:"days"`
	CurrentDay int    `json:"current_day"`
}
