package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Tafhim-87/Quran-track/internal/model"
)

// ReadingRepository reading-log data access interface.
//
// The log is append-only: there is no update or delete path.
type ReadingRepository interface {
	// ExistsOnDate reports whether the participant already has a reading whose
	// submitted_at falls on the calendar day of date.
	ExistsOnDate(ctx context.Context, participantID string, date time.Time) (bool, error)
	// CreateWithTotal appends the reading and adds its para to the owning
	// participant's running total in a single transaction. On success,
	// participant is reloaded with the updated total.
	CreateWithTotal(ctx context.Context, reading *model.Reading, participant *model.Participant) error
	// List returns readings newest-first with the owning participant joined,
	// optionally restricted to one campaign day.
	List(ctx context.Context, campaignDay *int) ([]model.Reading, error)
	// LatestByParticipant returns the participant's most recent reading.
	LatestByParticipant(ctx context.Context, participantID string) (*model.Reading, error)
}

// readingRepo GORM implementation of ReadingRepository.
type readingRepo struct {
	db *gorm.DB
}

// NewReadingRepo creates a ReadingRepository.
func NewReadingRepo(db *gorm.DB) ReadingRepository {
	return &readingRepo{db: db}
}

func (r *readingRepo) ExistsOnDate(ctx context.Context, participantID string, date time.Time) (bool, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Reading{}).
		Where("participant_id = ? AND submitted_at >= ? AND submitted_at < ?", participantID, dayStart, dayEnd).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *readingRepo) CreateWithTotal(ctx context.Context, reading *model.Reading, participant *model.Participant) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(reading).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Participant{}).
			Where("participant_id = ?", reading.ParticipantID).
			Update("total_para", gorm.Expr("total_para + ?", reading.Para)).Error; err != nil {
			return err
		}
		return tx.Where("participant_id = ?", reading.ParticipantID).
			First(participant).Error
	})
}

func (r *readingRepo) List(ctx context.Context, campaignDay *int) ([]model.Reading, error) {
	db := r.db.WithContext(ctx).
		Preload("Participant").
		Order("submitted_at DESC")

	if campaignDay != nil {
		db = db.Where("campaign_day = ?", *campaignDay)
	}

	var readings []model.Reading
	if err := db.Find(&readings).Error; err != nil {
		return nil, err
	}
	return readings, nil
}

func (r *readingRepo) LatestByParticipant(ctx context.Context, participantID string) (*model.Reading, error) {
	var reading model.Reading
	err := r.db.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Order("submitted_at DESC").
		First(&reading).Error
	if err != nil {
		return nil, err
	}
	return &reading, nil
}
