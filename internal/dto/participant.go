package dto

// ── participant module DTOs ──

// ParticipantResponse leaderboard row.
type ParticipantResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	TotalPara float64 `json:"total_para"`
	CreatedAt string  `json:"created_at"`
}

// ProgressResponse personal progress snapshot.
type ProgressResponse struct {
	Name        string  `json:"name"`
	TotalPara   float64 `json:"total_para"`
	LastPara    float64 `json:"last_para"`
	CampaignDay int     `json:"campaign_day"`
	SubmittedAt string  `json:"submitted_at"`
}
