// Package notify moves domain events over a Redis pub/sub channel.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"renthive-backend/internal/domain/event"
)

// Logger is the subset of echo.Logger used here.
type Logger interface {
	Warnf(format string, args ...any)
}

type RedisPublisher struct {
	rdb     *redis.Client
	channel string
}

var _ event.Publisher = (*RedisPublisher)(nil)

func NewRedisPublisher(rdb *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, e event.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err := p.rdb.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", e.Type, err)
	}
	return nil
}

type Subscriber struct {
	ps  *redis.PubSub
	log Logger
}

// Subscribe returns once Redis has confirmed the subscription, so nothing published
// after it returns is missed.
func Subscribe(ctx context.Context, rdb *redis.Client, channel string, log Logger) (*Subscriber, error) {
	ps := rdb.Subscribe(ctx, channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe %s: %w", channel, err)
	}
	return &Subscriber{ps: ps, log: log}, nil
}

// Run calls handle for every event until ctx is done or the subscription closes.
// Payloads that do not decode are logged and skipped.
func (s *Subscriber) Run(ctx context.Context, handle func(event.Event)) {
	ch := s.ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var e event.Event
			if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
				s.log.Warnf("notify: drop malformed event on %s: %v", msg.Channel, err)
				continue
			}
			handle(e)
		}
	}
}

func (s *Subscriber) Close() error { return s.ps.Close() }
