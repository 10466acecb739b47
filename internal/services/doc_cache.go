package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Bruce-k901/My-App-sub018/internal/pkg/logger"
	"github.com/Bruce-k901/My-App-sub018/internal/utils"
)

// DocumentCacheService fronts the print payload reads of downstream
// print/export consumers. Without REDIS_ADDR the no-op implementation is
// used and every read falls through to the store.
type DocumentCacheService interface {
	Get(ctx context.Context, documentID uuid.UUID) (*PrintPayload, bool)
	Put(ctx context.Context, documentID uuid.UUID, payload *PrintPayload)
	Invalidate(ctx context.Context, documentID uuid.UUID)
}

func NewDocumentCacheService(log *logger.Logger) DocumentCacheService {
	cacheLog := log.With("service", "DocumentCacheService")

	addr := strings.TrimSpace(utils.GetEnv("REDIS_ADDR", "", log))
	if addr == "" {
		cacheLog.Info("REDIS_ADDR not set, document cache disabled")
		return noopDocumentCache{}
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		cacheLog.Warn("redis ping failed, document cache disabled", "error", err)
		_ = rdb.Close()
		return noopDocumentCache{}
	}

	ttl := time.Duration(utils.GetEnvAsInt("DOC_CACHE_TTL_SECONDS", 300, log)) * time.Second
	return &redisDocumentCache{log: cacheLog, rdb: rdb, ttl: ttl}
}

type noopDocumentCache struct{}

func (noopDocumentCache) Get(context.Context, uuid.UUID) (*PrintPayload, bool) { return nil, false }
func (noopDocumentCache) Put(context.Context, uuid.UUID, *PrintPayload)        {}
func (noopDocumentCache) Invalidate(context.Context, uuid.UUID)                {}

type redisDocumentCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func cacheKey(documentID uuid.UUID) string {
	return fmt.Sprintf("procdoc:print:%s", documentID)
}

func (c *redisDocumentCache) Get(ctx context.Context, documentID uuid.UUID) (*PrintPayload, bool) {
	raw, err := c.rdb.Get(ctx, cacheKey(documentID)).Bytes()
	if err != nil {
		return nil, false
	}
	var out PrintPayload
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	return &out, true
}

func (c *redisDocumentCache) Put(ctx context.Context, documentID uuid.UUID, payload *PrintPayload) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(documentID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("cache put failed", "error", err, "document_id", documentID)
	}
}

func (c *redisDocumentCache) Invalidate(ctx context.Context, documentID uuid.UUID) {
	if err := c.rdb.Del(ctx, cacheKey(documentID)).Err(); err != nil {
		c.log.Warn("cache invalidate failed", "error", err, "document_id", documentID)
	}
}
