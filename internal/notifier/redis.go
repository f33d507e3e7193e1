// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sama64/nerdeala25/internal/config"
	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/models"
)

// DefaultQueue is the list the messaging gateway consumes pending jobs from.
const DefaultQueue = "whatsapp:pending"

const redisPingTimeout = 5 * time.Second

// queuePusher is the part of the redis client the queue notifier uses.
type queuePusher interface {
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

type redisQueueNotifier struct {
	queue  queuePusher
	key    string
	now    func() time.Time
	logger *logger.Logger
}

// NewRedisClient connects to the redis server at cfg.RedisAddr and verifies
// the connection with a ping.
func NewRedisClient(ctx context.Context, cfg config.Notifier) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

// NewRedisQueueNotifier returns a Notifier that enqueues jobs for the
// messaging gateway instead of calling it directly.
func NewRedisQueueNotifier(client queuePusher, queue string, log *logger.Logger) Notifier {
	if queue == "" {
		queue = DefaultQueue
	}

	return &redisQueueNotifier{
		queue:  client,
		key:    queue,
		now:    time.Now,
		logger: log,
	}
}

func (n *redisQueueNotifier) Send(ctx context.Context, to models.Recipient, text string) error {
	if to.Phone == "" {
		return ErrNoPhone
	}

	now := n.now().UTC()
	job := newJob(to, text, now)
	job.Metadata.CreatedAt = now.Format(time.RFC3339Nano)

	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("%w: encode job: %w", ErrDelivery, err)
	}

	if err := n.queue.LPush(ctx, n.key, payload).Err(); err != nil {
		n.logger.Error().Err(err).
			Str("func", "*redisQueueNotifier.Send").
			Str("queue", n.key).
			Msg("failed to enqueue message")
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}

	return nil
}
