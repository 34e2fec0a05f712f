package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	dashboardSnapshotKey = "dashboard:summary"
	lastUpdatedKey       = "store:last-updated"
)

type RedisBus struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisBus(addr string, logger *zap.Logger) *RedisBus {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	return &RedisBus{
		client: client,
		logger: logger,
	}
}

type message struct {
	Topic   string                 `json:"topic"`
	At      string                 `json:"at"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// Publish broadcasts the topic and refreshes the change marker. Failures are
// logged and swallowed: the signal must never block a mutation response.
func (b *RedisBus) Publish(topic string, payload map[string]interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	body, err := json.Marshal(message{
		Topic:   topic,
		At:      time.Now().Format(time.RFC3339),
		Payload: payload,
	})
	if err != nil {
		b.logger.Warn("failed to marshal event", zap.String("topic", topic), zap.Error(err))
		return
	}

	if err := b.client.Publish(ctx, topic, body).Err(); err != nil {
		b.logger.Warn("failed to publish event", zap.String("topic", topic), zap.Error(err))
	}

	marker := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if err := b.client.Set(ctx, lastUpdatedKey, marker, 0).Err(); err != nil {
		b.logger.Warn("failed to set change marker", zap.Error(err))
	}
}

// StartInvalidator subscribes to both change topics and drops the cached
// dashboard snapshot whenever either fires. Runs until ctx is cancelled.
func (b *RedisBus) StartInvalidator(ctx context.Context) {
	sub := b.client.Subscribe(ctx, TopicInventoryUpdated, TopicDashboardDataUpdated)

	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				if err := b.client.Del(ctx, dashboardSnapshotKey).Err(); err != nil {
					b.logger.Warn("failed to invalidate dashboard snapshot", zap.Error(err))
					continue
				}
				b.logger.Debug("dashboard snapshot invalidated", zap.String("topic", msg.Channel))
			}
		}
	}()
}

// GetDashboardSnapshot returns the cached summary JSON, or nil on miss.
func (b *RedisBus) GetDashboardSnapshot(ctx context.Context) []byte {
	body, err := b.client.Get(ctx, dashboardSnapshotKey).Bytes()
	if err != nil {
		return nil
	}
	return body
}

func (b *RedisBus) StoreDashboardSnapshot(ctx context.Context, body []byte, ttl time.Duration) {
	if err := b.client.Set(ctx, dashboardSnapshotKey, body, ttl).Err(); err != nil {
		b.logger.Warn("failed to cache dashboard snapshot", zap.Error(err))
	}
}
