package repository

import "gorm.io/gorm"

// Repository aggregates all repositories.
type Repository struct {
	Participant ParticipantRepository
	Reading     ReadingRepository
}

// NewRepository creates the repository aggregate.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Participant: NewParticipantRepo(db),
		Reading:     NewReadingRepo(db),
	}
}
