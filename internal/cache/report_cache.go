// backend-go/internal/cache/report_cache.go
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/pharmatrack/backend-go/internal/config"
	"github.com/pharmatrack/backend-go/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	reportKeyPrefix  = "forecast:report"
	scanBatchSize    = 100
	defaultReportTTL = 5 * time.Minute
)

// ReportCache holds rendered report rows for the API between runs. Only
// the report output is cached; the sales history itself is reloaded from
// the store on every generation run.
type ReportCache interface {
	GetReport(ctx context.Context, params domain.ReportParams) ([]domain.ReportRow, bool, error)
	SetReport(ctx context.Context, params domain.ReportParams, rows []domain.ReportRow) error
	InvalidateAll(ctx context.Context) error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReportCache struct{}

func NewReportCache(cfg config.CacheConfig) (ReportCache, error) {
	if !cfg.Enabled {
		return &noopReportCache{}, nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.ReportTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultReportTTL
	}

	return &redisReportCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopReportCache() ReportCache {
	return &noopReportCache{}
}

func (c *redisReportCache) GetReport(ctx context.Context, params domain.ReportParams) ([]domain.ReportRow, bool, error) {
	key := buildReportKey(params)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var rows []domain.ReportRow
	if err := json.Unmarshal(payload, &rows); err != nil {
		return nil, false, fmt.Errorf("decode report cache: %w", err)
	}

	return rows, true, nil
}

func (c *redisReportCache) SetReport(ctx context.Context, params domain.ReportParams, rows []domain.ReportRow) error {
	key := buildReportKey(params)
	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode report cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisReportCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, reportKeyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete failed: %w", err)
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return nil
}

func (n *noopReportCache) GetReport(ctx context.Context, params domain.ReportParams) ([]domain.ReportRow, bool, error) {
	return nil, false, nil
}

func (n *noopReportCache) SetReport(ctx context.Context, params domain.ReportParams, rows []domain.ReportRow) error {
	return nil
}

func (n *noopReportCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host := cfg.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}

	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

func buildReportKey(params domain.ReportParams) string {
	parts := []string{
		fmt.Sprintf("top_n=%d", params.TopN),
		fmt.Sprintf("months=%d", params.MonthsAhead),
	}
	if params.View.Cumulative {
		parts = append(parts, "view=cumulative")
	} else {
		parts = append(parts, "view="+params.View.Month.Format("2006-01"))
	}

	raw := strings.Join(parts, "|")
	hash := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s", reportKeyPrefix, hex.EncodeToString(hash[:]))
}
