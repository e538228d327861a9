package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"tickets-webapp/config"
	"tickets-webapp/model"

	"github.com/redis/go-redis/v9"
)

var ErrOrderNotRecorded = errors.New("order not recorded")

// OrderLedger remembers what amount was requested for every order this
// service created, so verification never trusts a client-supplied total.
type OrderLedger interface {
	Record(ctx context.Context, record model.OrderRecord) error
	Lookup(ctx context.Context, orderID string) (model.OrderRecord, error)
}

type RedisLedger struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewRedisLedger(client *redis.Client, ttl time.Duration) *RedisLedger {
	return &RedisLedger{client: client, ttl: ttl}
}

func orderKey(orderID string) string {
	return "order:" + orderID
}

func (l *RedisLedger) Record(ctx context.Context, record model.OrderRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal order record: %w", err)
	}

	if err := l.client.Set(ctx, orderKey(record.OrderId), data, l.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store order record in redis: %w", err)
	}
	return nil
}

func (l *RedisLedger) Lookup(ctx context.Context, orderID string) (model.OrderRecord, error) {
	val, err := l.client.Get(ctx, orderKey(orderID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.OrderRecord{}, ErrOrderNotRecorded
	}
	if err != nil {
		return model.OrderRecord{}, fmt.Errorf("failed to get order record from redis: %w", err)
	}

	var record model.OrderRecord
	if err := json.Unmarshal(val, &record); err != nil {
		return model.OrderRecord{}, fmt.Errorf("failed to unmarshal order record: %w", err)
	}
	return record, nil
}

// Ping checks the Redis connection.
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

type memoryEntry struct {
	record    model.OrderRecord
	expiresAt time.Time
}

// MemoryLedger keeps records in process memory. It serves a single node and
// tests; run Sweep or RunSweeper to drop expired records nobody looks up.
type MemoryLedger struct {
	entries sync.Map
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryLedger(ttl time.Duration) *MemoryLedger {
	return &MemoryLedger{ttl: ttl, now: time.Now}
}

func (l *MemoryLedger) Record(ctx context.Context, record model.OrderRecord) error {
	l.entries.Store(record.OrderId, memoryEntry{record: record, expiresAt: l.now().Add(l.ttl)})
	return nil
}

func (l *MemoryLedger) Lookup(ctx context.Context, orderID string) (model.OrderRecord, error) {
	val, ok := l.entries.Load(orderID)
	if !ok {
		return model.OrderRecord{}, ErrOrderNotRecorded
	}
	entry := val.(memoryEntry)
	if l.ttl > 0 && l.now().After(entry.expiresAt) {
		l.entries.Delete(orderID)
		return model.OrderRecord{}, ErrOrderNotRecorded
	}
	return entry.record, nil
}

// Sweep removes expired records and reports how many were dropped.
func (l *MemoryLedger) Sweep() int {
	if l.ttl <= 0 {
		return 0
	}
	now := l.now()
	removed := 0
	l.entries.Range(func(key, val any) bool {
		if now.After(val.(memoryEntry).expiresAt) {
			l.entries.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (l *MemoryLedger) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep()
		}
	}
}
