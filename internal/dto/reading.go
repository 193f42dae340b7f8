package dto

// ── reading module DTOs ──

// SubmitReadingRequest submit-a-reading request body.
// Para range is validated in the service so the rejection carries a precise
// business code rather than a generic binding failure.
type SubmitReadingRequest struct {
	Name string  `json:"name" binding:"required"`
	Para float64 `json:"para" binding:"required"`
}

// SubmitReadingResponse accepted-submission response.
type SubmitReadingResponse struct {
	Name        string  `json:"name"`
	Para        float64 `json:"para"`
	TotalPara   float64 `json:"total_para"`
	CampaignDay int     `json:"campaign_day"`
}

// ReadingListRequest list/summary query parameters.
// A missing parameter means no constraint on that dimension.
type ReadingListRequest struct {
	Day  *int   `form:"day"  binding:"omitempty,min=1,max=30"`
	Name string `form:"name" binding:"omitempty,max=100"`
}

// ReadingResponse one reading-log row joined with its participant.
// TotalPara is the participant's running total at query time, not at
// submission time.
type ReadingResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Para        float64 `json:"para"`
	TotalPara   float64 `json:"total_para"`
	CampaignDay int     `json:"campaign_day"`
	SubmittedAt string  `json:"submitted_at"`
	CreatedAt   string  `json:"created_at"`
}

// SummaryResponse aggregate statistics over the listed readings.
type SummaryResponse struct {
	TotalSubmissions      int     `json:"total_submissions"`
	TotalParaRead         float64 `json:"total_para_read"`
	UniqueParticipants    int     `json:"unique_participants"`
	AverageParaPerReading float64 `json:"average_para_per_reading"`
}

// ReadingListResponse list endpoint payload.
type ReadingListResponse struct {
	List    []ReadingResponse `json:"list"`
	Summary SummaryResponse   `json:"summary"`
	Count   int               `json:"count"`
}
