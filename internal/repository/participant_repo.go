package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Tafhim-87/Quran-track/internal/model"
)

// ParticipantRepository participant data access interface.
type ParticipantRepository interface {
	Create(ctx context.Context, participant *model.Participant) error
	GetByID(ctx context.Context, id string) (*model.Participant, error)
	// GetByName looks a participant up by exact (already trimmed) name.
	GetByName(ctx context.Context, name string) (*model.Participant, error)
	// List returns all participants, highest running total first.
	List(ctx context.Context) ([]model.Participant, error)
}

// participantRepo GORM implementation of ParticipantRepository.
type participantRepo struct {
	db *gorm.DB
}

// NewParticipantRepo creates a ParticipantRepository.
func NewParticipantRepo(db *gorm.DB) ParticipantRepository {
	return &participantRepo{db: db}
}

func (r *participantRepo) Create(ctx context.Context, participant *model.Participant) error {
	return r.db.WithContext(ctx).Create(participant).Error
}

func (r *participantRepo) GetByID(ctx context.Context, id string) (*model.Participant, error) {
	var participant model.Participant
	err := r.db.WithContext(ctx).
		Where("participant_id = ?", id).
		First(&participant).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *participantRepo) GetByName(ctx context.Context, name string) (*model.Participant, error) {
	var participant model.Participant
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&participant).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *participantRepo) List(ctx context.Context) ([]model.Participant, error) {
	var participants []model.Participant
	err := r.db.WithContext(ctx).
		Order("total_para DESC, name ASC").
		Find(&participants).Error
	if err != nil {
		return nil, err
	}
	return participants, nil
}
