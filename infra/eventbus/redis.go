package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/amirasaad/networth/pkg/domain/events"
	"github.com/amirasaad/networth/pkg/eventbus"
	"github.com/redis/go-redis/v9"
)

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// RedisEventBus publishes events to one Redis stream per event type and
// consumes them through a consumer group, so each event is handled once per
// group across every process sharing the group name.
type RedisEventBus struct {
	client        *redis.Client
	stream        string
	group         string
	typeFactories map[string]func() events.Event
	logger        *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWithRedis creates a Redis-backed event bus.
// url: Redis connection URL (e.g., "redis://localhost:6379")
// stream: prefix of the per-type stream names
// group: consumer group name prefix
func NewWithRedis(
	url, stream, group string,
	types map[string]func() events.Event,
	logger *slog.Logger,
) (*RedisEventBus, error) {
	if url == "" || stream == "" || group == "" {
		return nil, fmt.Errorf("redis event bus: url, stream, and group are required")
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis event bus: invalid URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis event bus: connection failed: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &RedisEventBus{
		client:        client,
		stream:        stream,
		group:         group,
		typeFactories: types,
		logger:        logger.With("component", "redis-event-bus"),
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

// Emit publishes an event to the stream of its type.
func (b *RedisEventBus) Emit(ctx context.Context, event events.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("failed to marshal event", "error", err, "type", event.Type())
		return fmt.Errorf("redis event bus: marshal failed: %w", err)
	}

	env := envelope{Type: event.Type(), Payload: data}
	envBytes, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("redis event bus: envelope marshal failed: %w", err)
	}

	if _, err = b.client.XAdd(ctx, &redis.XAddArgs{
		Stream: streamNameFor(b.stream, event.Type()),
		Values: map[string]any{"event": string(envBytes)},
	}).Result(); err != nil {
		b.logger.Error("failed to emit event", "error", err, "type", event.Type())
		return fmt.Errorf("redis event bus: emit failed: %w", err)
	}

	b.logger.Debug("event emitted", "type", event.Type())
	return nil
}

// Register starts a consumer of the event type's stream that calls handler
// for each event until Close is called.
func (b *RedisEventBus) Register(eventType string, handler eventbus.HandlerFunc) {
	stream := streamNameFor(b.stream, eventType)
	group := groupNameFor(b.group, eventType)
	consumer := fmt.Sprintf("consumer-%d", time.Now().UnixNano())

	err := b.client.XGroupCreateMkStream(b.ctx, stream, group, "$").Err()
	if err != nil && !isBusyGroup(err) {
		b.logger.Error("failed to create consumer group", "error", err, "stream", stream)
	}
	b.logger.Info("registering handler", "event_type", eventType, "consumer", consumer)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.consume(stream, group, consumer, eventType, handler)
	}()
}

func (b *RedisEventBus) consume(stream, group, consumer, eventType string, handler eventbus.HandlerFunc) {
	for {
		if b.ctx.Err() != nil {
			return
		}
		res, err := b.client.XReadGroup(b.ctx, &redis.XReadGroupArgs{
			Group:    group,
			Consumer: consumer,
			Streams:  []string{stream, ">"},
			Count:    10,
			Block:    2 * time.Second,
		}).Result()
		if err != nil {
			if b.ctx.Err() != nil {
				return
			}
			if !errors.Is(err, redis.Nil) {
				b.logger.Error("error reading from stream", "error", err, "consumer", consumer)
				time.Sleep(time.Second)
			}
			continue
		}

		for _, s := range res {
			for _, msg := range s.Messages {
				b.handle(eventType, msg, handler)
				if err := b.client.XAck(b.ctx, stream, group, msg.ID).Err(); err != nil {
					b.logger.Error("failed to acknowledge message", "error", err, "msg_id", msg.ID)
				}
			}
		}
	}
}

func (b *RedisEventBus) handle(eventType string, msg redis.XMessage, handler eventbus.HandlerFunc) {
	raw, ok := msg.Values["event"].(string)
	if !ok {
		return
	}
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		b.logger.Error("failed to unmarshal envelope", "error", err)
		return
	}

	constructor, ok := b.typeFactories[env.Type]
	if !ok {
		b.logger.Error("unknown event type", "event_type", env.Type)
		b.pushToDLQ(eventType, msg.Values)
		return
	}
	evt := constructor()
	if err := json.Unmarshal(env.Payload, evt); err != nil {
		b.logger.Error("failed to unmarshal payload", "error", err, "event_type", env.Type)
		b.pushToDLQ(eventType, msg.Values)
		return
	}

	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("handler panic recovered", "panic", r, "event_type", env.Type)
			b.pushToDLQ(eventType, msg.Values)
		}
	}()
	if err := handler(b.ctx, evt); err != nil {
		b.logger.Error("handler error", "error", err, "event_type", env.Type)
		b.pushToDLQ(eventType, msg.Values)
	}
}

// pushToDLQ keeps the raw event on a DLQ stream for inspection or reprocessing.
func (b *RedisEventBus) pushToDLQ(eventType string, values map[string]any) {
	dlqStream := dlqStreamName(b.stream, eventType)
	if _, err := b.client.XAdd(b.ctx, &redis.XAddArgs{
		Stream: dlqStream,
		Values: values,
	}).Result(); err != nil {
		b.logger.Error("failed to push to DLQ", "error", err, "stream", dlqStream)
		return
	}
	b.logger.Warn("event pushed to DLQ", "stream", dlqStream)
}

// Close stops every consumer and releases the client.
func (b *RedisEventBus) Close() error {
	b.cancel()
	b.wg.Wait()
	return b.client.Close()
}

func isBusyGroup(err error) bool {
	return err != nil && len(err.Error()) >= 9 && err.Error()[:9] == "BUSYGROUP"
}

var _ eventbus.Bus = (*RedisEventBus)(nil)
