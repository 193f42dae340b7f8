package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Tafhim-87/Quran-track/internal/dto"
	"github.com/Tafhim-87/Quran-track/internal/model"
	"github.com/Tafhim-87/Quran-track/internal/repository"
	"github.com/Tafhim-87/Quran-track/pkg/redis"
)

// ── reading module business errors ──

var (
	ErrNameRequired          = errors.New("participant name is required")
	ErrParaOutOfRange        = errors.New("para must be between 0.5 and 5")
	ErrAlreadySubmittedToday = errors.New("already submitted for today")
)

// ProgressCache is the key-value store for personal-progress snapshots.
// Satisfied by *redis.Client; may be nil, in which case snapshots are skipped.
type ProgressCache interface {
	SetProgress(ctx context.Context, p *redis.Progress) error
	GetProgress(ctx context.Context, name string) (*redis.Progress, error)
}

// ReadingService reading-log business interface.
type ReadingService interface {
	// Submit records one reading for today. At most one submission per
	// participant per calendar day is accepted.
	Submit(ctx context.Context, req *dto.SubmitReadingRequest) (*dto.SubmitReadingResponse, error)
	// List returns readings newest-first, optionally filtered by campaign day
	// and/or name substring, together with summary statistics.
	List(ctx context.Context, req *dto.ReadingListRequest) (*dto.ReadingListResponse, error)
}

type readingService struct {
	repo     *repository.Repository
	campaign *Campaign
	cache    ProgressCache
	minPara  float64
	maxPara  float64
	logger   *zap.Logger
	now      func() time.Time
}

// NewReadingService creates a ReadingService.
func NewReadingService(repo *repository.Repository, campaign *Campaign, cache ProgressCache, minPara, maxPara float64, logger *zap.Logger) ReadingService {
	return &readingService{
		repo:     repo,
		campaign: campaign,
		cache:    cache,
		minPara:  minPara,
		maxPara:  maxPara,
		logger:   logger,
		now:      time.Now,
	}
}

// ────────────────────── Submit ──────────────────────
//
// Pipeline: validate input → resolve-or-create participant → same-day
// duplicate guard → append reading + ledger increment (one transaction).
// The guard is a pre-check for a friendly rejection; the unique index on
// (participant_id, date) backs it up, so a concurrent double submit loses
// with the same error instead of slipping through.

func (s *readingService) Submit(ctx context.Context, req *dto.SubmitReadingRequest) (*dto.SubmitReadingResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if req.Para < s.minPara || req.Para > s.maxPara {
		return nil, ErrParaOutOfRange
	}

	now := s.now()
	campaignDay := s.campaign.DayIndexAt(now)

	participant, err := s.repo.Participant.GetByName(ctx, name)
	switch {
	case err == nil:
		exists, err := s.repo.Reading.ExistsOnDate(ctx, participant.ParticipantID, now)
		if err != nil {
			s.logger.Error("duplicate check failed", zap.String("name", name), zap.Error(err))
			return nil, err
		}
		if exists {
			return nil, ErrAlreadySubmittedToday
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		participant = &model.Participant{Name: name}
		if err := s.repo.Participant.Create(ctx, participant); err != nil {
			s.logger.Error("create participant failed", zap.String("name", name), zap.Error(err))
			return nil, err
		}
	default:
		s.logger.Error("participant lookup failed", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	reading := &model.Reading{
		ParticipantID: participant.ParticipantID,
		Para:          req.Para,
		CampaignDay:   campaignDay,
		SubmittedAt:   now,
	}

	if err := s.repo.Reading.CreateWithTotal(ctx, reading, participant); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost the race against a concurrent same-day submission
			return nil, ErrAlreadySubmittedToday
		}
		s.logger.Error("append reading failed", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	s.cacheProgress(ctx, participant, reading)

	s.logger.Info("reading accepted",
		zap.String("name", participant.Name),
		zap.Float64("para", reading.Para),
		zap.Float64("total_para", participant.TotalPara),
		zap.Int("campaign_day", campaignDay),
	)

	return &dto.SubmitReadingResponse{
		Name:        participant.Name,
		Para:        reading.Para,
		TotalPara:   participant.TotalPara,
		CampaignDay: campaignDay,
	}, nil
}

// cacheProgress refreshes the participant's progress snapshot; best effort.
func (s *readingService) cacheProgress(ctx context.Context, participant *model.Participant, reading *model.Reading) {
	if s.cache == nil {
		return
	}
	err := s.cache.SetProgress(ctx, &redis.Progress{
		Name:        participant.Name,
		TotalPara:   participant.TotalPara,
		LastPara:    reading.Para,
		CampaignDay: reading.CampaignDay,
		SubmittedAt: reading.SubmittedAt.Format(time.RFC3339),
	})
	if err != nil {
		s.logger.Warn("progress cache update failed", zap.String("name", participant.Name), zap.Error(err))
	}
}

// ────────────────────── List ──────────────────────

func (s *readingService) List(ctx context.Context, req *dto.ReadingListRequest) (*dto.ReadingListResponse, error) {
	readings, err := s.repo.Reading.List(ctx, req.Day)
	if err != nil {
		s.logger.Error("list readings failed", zap.Error(err))
		return nil, err
	}

	nameFilter := strings.ToLower(strings.TrimSpace(req.Name))

	rows := make([]dto.ReadingResponse, 0, len(readings))
	for i := range readings {
		row := toReadingResponse(&readings[i])
		if nameFilter != "" && !strings.Contains(strings.ToLower(row.Name), nameFilter) {
			continue
		}
		rows = append(rows, row)
	}

	return &dto.ReadingListResponse{
		List:    rows,
		Summary: summarize(rows),
		Count:   len(rows),
	}, nil
}

// ── helpers shared with the export module ──

// toReadingResponse joins a reading with its participant's display name and
// current running total. Readings are never orphaned in practice; the
// fallbacks mirror what the log would show if one ever were.
func toReadingResponse(r *model.Reading) dto.ReadingResponse {
	name := "Unknown"
	var total float64
	if r.Participant != nil {
		name = r.Participant.Name
		total = r.Participant.TotalPara
	}
	return dto.ReadingResponse{
		ID:          r.ReadingID,
		Name:        name,
		Para:        r.Para,
		TotalPara:   total,
		CampaignDay: r.CampaignDay,
		SubmittedAt: r.SubmittedAt.Format(time.RFC3339),
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
}

// summarize computes the aggregate block over already-filtered rows.
// Empty input yields all zeroes.
func summarize(rows []dto.ReadingResponse) dto.SummaryResponse {
	var totalPara float64
	names := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		totalPara += row.Para
		names[row.Name] = struct{}{}
	}

	var average float64
	if len(rows) > 0 {
		average = round2(totalPara / float64(len(rows)))
	}

	return dto.SummaryResponse{
		TotalSubmissions:      len(rows),
		TotalParaRead:         totalPara,
		UniqueParticipants:    len(names),
		AverageParaPerReading: average,
	}
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
