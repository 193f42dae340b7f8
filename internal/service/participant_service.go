package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Tafhim-87/Quran-track/internal/dto"
	"github.com/Tafhim-87/Quran-track/internal/repository"
	"github.com/Tafhim-87/Quran-track/pkg/redis"
)

// ── participant module business errors ──

var (
	ErrParticipantNotFound = errors.New("participant not found")
)

// ParticipantService participant business interface.
type ParticipantService interface {
	// List returns the leaderboard: all participants, highest total first.
	List(ctx context.Context) ([]dto.ParticipantResponse, error)
	// Progress returns the personal progress snapshot for a name, served from
	// the cache when possible and rebuilt from the reading log on a miss.
	Progress(ctx context.Context, name string) (*dto.ProgressResponse, error)
}

type participantService struct {
	repo   *repository.Repository
	cache  ProgressCache
	logger *zap.Logger
}

// NewParticipantService creates a ParticipantService.
func NewParticipantService(repo *repository.Repository, cache ProgressCache, logger *zap.Logger) ParticipantService {
	return &participantService{repo: repo, cache: cache, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *participantService) List(ctx context.Context) ([]dto.ParticipantResponse, error) {
	participants, err := s.repo.Participant.List(ctx)
	if err != nil {
		s.logger.Error("list participants failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ParticipantResponse, 0, len(participants))
	for i := range participants {
		p := &participants[i]
		result = append(result, dto.ParticipantResponse{
			ID:        p.ParticipantID,
			Name:      p.Name,
			TotalPara: p.TotalPara,
			CreatedAt: p.CreatedAt.Format(time.RFC3339),
		})
	}

	return result, nil
}

// ────────────────────── Progress ──────────────────────

func (s *participantService) Progress(ctx context.Context, name string) (*dto.ProgressResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	if s.cache != nil {
		cached, err := s.cache.GetProgress(ctx, name)
		if err != nil {
			s.logger.Warn("progress cache read failed", zap.String("name", name), zap.Error(err))
		} else if cached != nil {
			return &dto.ProgressResponse{
				Name:        cached.Name,
				TotalPara:   cached.TotalPara,
				LastPara:    cached.LastPara,
				CampaignDay: cached.CampaignDay,
				SubmittedAt: cached.SubmittedAt,
			}, nil
		}
	}

	// cache miss: rebuild from the ledger and reading log
	participant, err := s.repo.Participant.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		s.logger.Error("participant lookup failed", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	progress := &dto.ProgressResponse{
		Name:      participant.Name,
		TotalPara: participant.TotalPara,
	}

	latest, err := s.repo.Reading.LatestByParticipant(ctx, participant.ParticipantID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("latest reading lookup failed", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	if latest != nil {
		progress.LastPara = latest.Para
		progress.CampaignDay = latest.CampaignDay
		progress.SubmittedAt = latest.SubmittedAt.Format(time.RFC3339)
	}

	if s.cache != nil {
		err := s.cache.SetProgress(ctx, &redis.Progress{
			Name:        progress.Name,
			TotalPara:   progress.TotalPara,
			LastPara:    progress.LastPara,
			CampaignDay: progress.CampaignDay,
			SubmittedAt: progress.SubmittedAt,
		})
		if err != nil {
			s.logger.Warn("progress cache backfill failed", zap.String("name", name), zap.Error(err))
		}
	}

	return progress, nil
}
