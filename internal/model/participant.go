package model

// Participant — participants table.
//
// The trimmed display name is the natural key: lookups match the exact trimmed
// string, case-sensitively, so "Sam" and "sam" are two participants. Records
// are created lazily on the first accepted submission and never deleted.
// TotalPara only ever grows, and only inside the accepted-submission
// transaction.
type Participant struct {
	ParticipantID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"participant_id"`
	Name          string  `gorm:"type:varchar(100);not null;uniqueIndex:uq_participants_name" json:"name"`
	TotalPara     float64 `gorm:"type:numeric(6,1);not null;default:0"           json:"total_para"`
	BaseModel
}

// TableName sets the table name.
func (Participant) TableName() string { return "participants" }
