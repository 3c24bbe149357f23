package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"iv-tracker/cache"
	"iv-tracker/database/types"
)

// RunSummary is announced on the updates channel after each publish
type RunSummary struct {
	Key       string `json:"key"`
	Symbols   int    `json:"symbols"`
	NearTerm  int    `json:"near_term"`
	Chains    int64  `json:"chains"`
	Timestamp string `json:"ts"`
}

// PayloadPublisher stores the latest payload in redis for other consumers
type PayloadPublisher struct {
	redis   *cache.RedisClient
	key     string
	channel string
	ttl     time.Duration
	logger  *zap.Logger
}

// NewPayloadPublisher creates a publisher on an established redis client
func NewPayloadPublisher(redis *cache.RedisClient, key, channel string, ttl time.Duration, logger *zap.Logger) *PayloadPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PayloadPublisher{
		redis:   redis,
		key:     key,
		channel: channel,
		ttl:     ttl,
		logger:  logger,
	}
}

// Publish stores the encoded payload under the key and announces it
func (p *PayloadPublisher) Publish(ctx context.Context, dash *types.Dashboard, payload []byte) error {
	if err := p.redis.Set(ctx, p.key, json.RawMessage(payload), p.ttl); err != nil {
		return fmt.Errorf("failed to store payload in redis: %w", err)
	}

	summary := NewRunSummary(p.key, dash)
	if err := p.redis.Publish(ctx, p.channel, summary); err != nil {
		return fmt.Errorf("failed to publish run summary: %w", err)
	}

	p.logger.Info("Payload published",
		zap.String("key", p.key),
		zap.String("channel", p.channel),
		zap.Duration("ttl", p.ttl))
	return nil
}

// NewRunSummary describes a payload for the updates channel
func NewRunSummary(key string, dash *types.Dashboard) RunSummary {
	return RunSummary{
		Key:       key,
		Symbols:   len(dash.Symbols),
		NearTerm:  len(dash.NearTerm),
		Chains:    dash.Stats.OptionChainSnapshot,
		Timestamp: dash.Timestamp,
	}
}
