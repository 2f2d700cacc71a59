package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	goredis "github.com/go-redis/redis/v8"

	"github.com/thanesh002/Crypto-Note/internal/model"
)

const (
	redisStateKey   = "cryptonote:signals"
	redisHistoryKey = "cryptonote:alerts"
	redisHistoryCap = 1000
)

// RedisStore keeps alert state in a Redis hash, one field per asset, with
// the emitted-alert history in a capped list.
type RedisStore struct {
	client *goredis.Client
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	log.Printf("[INFO] redis alert store connected: %s", addr)
	return &RedisStore{client: client}, nil
}

func (r *RedisStore) Get(ctx context.Context, symbol string) (*model.AlertState, bool, error) {
	raw, err := r.client.HGet(ctx, redisStateKey, symbol).Result()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get state %s: %w", symbol, err)
	}
	var state model.AlertState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, false, fmt.Errorf("decode state %s: %w", symbol, err)
	}
	return &state, true, nil
}

func (r *RedisStore) Put(ctx context.Context, state *model.AlertState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state %s: %w", state.Symbol, err)
	}
	if err := r.client.HSet(ctx, redisStateKey, state.Symbol, raw).Err(); err != nil {
		return fmt.Errorf("put state %s: %w", state.Symbol, err)
	}
	return nil
}

func (r *RedisStore) All(ctx context.Context) ([]model.AlertState, error) {
	fields, err := r.client.HGetAll(ctx, redisStateKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list states: %w", err)
	}
	out := make([]model.AlertState, 0, len(fields))
	for symbol, raw := range fields {
		var state model.AlertState
		if err := json.Unmarshal([]byte(raw), &state); err != nil {
			return nil, fmt.Errorf("decode state %s: %w", symbol, err)
		}
		out = append(out, state)
	}
	return out, nil
}

func (r *RedisStore) RecordAlert(ctx context.Context, state *model.AlertState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode alert %s: %w", state.Symbol, err)
	}
	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, redisHistoryKey, raw)
	pipe.LTrim(ctx, redisHistoryKey, 0, redisHistoryCap-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record alert %s: %w", state.Symbol, err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	log.Println("[INFO] closing redis alert store")
	return r.client.Close()
}
