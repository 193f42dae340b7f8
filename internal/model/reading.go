package model

import "time"

// Reading — readings table, the append-only submission log.
//
// CampaignDay is the day index derived at submission time and never
// recomputed; a day filter matches this stored value even if the same date
// would resolve differently today. SubmittedAt carries the calendar date used
// for same-day duplicate detection. Rows are immutable once written.
type Reading struct {
	ReadingID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"reading_id"`
	ParticipantID string    `gorm:"type:uuid;not null"                             json:"participant_id"`
	Para          float64   `gorm:"type:numeric(5,1);not null"                     json:"para"`
	CampaignDay   int       `gorm:"not null"                                       json:"campaign_day"`
	SubmittedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"submitted_at"`
	BaseModel

	Participant *Participant `gorm:"foreignKey:ParticipantID;references:ParticipantID" json:"participant,omitempty"`
}

// TableName sets the table name.
func (Reading) TableName() string { return "readings" }
