package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Tafhim-87/Quran-track/config"
)

// Client wraps the Redis connection.
// Used for personal-progress snapshots and submission rate limiting.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient connects to Redis and runs a ping health check.
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── personal progress snapshots ──
//
// The web client used to keep "my total so far" in browser storage. The
// server-side equivalent is a small key-value snapshot per participant name,
// refreshed on every accepted submission and read by the progress endpoint.
// The reading log stays the source of truth; a cache miss falls back to it.

const progressPrefix = "progress:"

// progressTTL outlives the 30-day campaign with room to spare.
const progressTTL = 40 * 24 * time.Hour

// Progress is the cached per-participant snapshot.
type Progress struct {
	Name        string  `json:"name"`
	TotalPara   float64 `json:"total_para"`
	LastPara    float64 `json:"last_para"`
	CampaignDay int     `json:"campaign_day"`
	SubmittedAt string  `json:"submitted_at"`
}

// SetProgress stores the progress snapshot for a participant name.
func (c *Client) SetProgress(ctx context.Context, p *Progress) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, progressPrefix+p.Name, raw, progressTTL).Err()
}

// GetProgress loads the progress snapshot for a participant name.
// Returns (nil, nil) on cache miss.
func (c *Client) GetProgress(ctx context.Context, name string) (*Progress, error) {
	raw, err := c.rdb.Get(ctx, progressPrefix+name).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var p Progress
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ── rate limiting ──

// CheckRateLimit counts requests for key within a fixed window.
// Returns false when the request budget is exhausted.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(limit), nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
