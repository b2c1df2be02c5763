package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/domain"
)

const (
	listingKeyPrefix = "tickets:user:"
	listingTTL       = 60 * time.Second
)

// TicketListingCache caches a user's ticket listing. All methods are
// best-effort: a cache fault degrades to a miss, never to a failure.
type TicketListingCache interface {
	Get(ctx context.Context, userID string) ([]domain.Ticket, bool)
	Set(ctx context.Context, userID string, tickets []domain.Ticket)
	Invalidate(ctx context.Context, userID string)
}

type redisListingCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewTicketListingCache returns a Redis-backed listing cache. A nil
// client yields a cache that always misses.
func NewTicketListingCache(client *redis.Client, logger *zap.Logger) TicketListingCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &redisListingCache{client: client, logger: logger}
}

func (c *redisListingCache) Get(ctx context.Context, userID string) ([]domain.Ticket, bool) {
	if c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, listingKeyPrefix+userID).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("listing cache get failed", zap.Error(err))
		}
		return nil, false
	}
	var tickets []domain.Ticket
	if err := json.Unmarshal(raw, &tickets); err != nil {
		c.logger.Debug("listing cache payload corrupt", zap.Error(err))
		return nil, false
	}
	return tickets, true
}

func (c *redisListingCache) Set(ctx context.Context, userID string, tickets []domain.Ticket) {
	if c.client == nil {
		return
	}
	raw, err := json.Marshal(tickets)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, listingKeyPrefix+userID, raw, listingTTL).Err(); err != nil {
		c.logger.Debug("listing cache set failed", zap.Error(err))
	}
}

func (c *redisListingCache) Invalidate(ctx context.Context, userID string) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, listingKeyPrefix+userID).Err(); err != nil {
		c.logger.Debug("listing cache invalidate failed", zap.Error(err))
	}
}
