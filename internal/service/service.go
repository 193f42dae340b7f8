package service

import (
	"go.uber.org/zap"

	"github.com/Tafhim-87/Quran-track/config"
	"github.com/Tafhim-87/Quran-track/internal/repository"
	"github.com/Tafhim-87/Quran-track/pkg/redis"
)

// Service aggregates all services.
type Service struct {
	Campaign    *Campaign
	Reading     ReadingService
	Participant ParticipantService
	Export      ExportService
}

// NewService creates the service aggregate.
// rdb may be nil; progress caching is then skipped.
func NewService(cfg *config.Config, repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) *Service {
	campaign := NewCampaign(&cfg.Campaign)

	var cache ProgressCache
	if rdb != nil {
		cache = rdb
	}

	return &Service{
		Campaign:    campaign,
		Reading:     NewReadingService(repo, campaign, cache, cfg.Campaign.MinPara, cfg.Campaign.MaxPara, logger),
		Participant: NewParticipantService(repo, cache, logger),
		Export:      NewExportService(repo, campaign, logger),
	}
}
