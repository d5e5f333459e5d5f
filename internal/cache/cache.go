// Package cache stores parse results keyed by input text so repeated HTTP
// lookups skip the grammar.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/streetsweeper/internal/address"
)

const keyPrefix = "streetsweeper:parse:v1:"

// Key identifies one parse request.
type Key struct {
	Shape                    string
	AvoidRedundantStreetType bool
	Text                     string
}

func (k Key) String() string {
	flag := "0"
	if k.AvoidRedundantStreetType {
		flag = "1"
	}
	return keyPrefix + k.Shape + ":" + flag + ":" + strings.TrimSpace(k.Text)
}

// Entry is a cached outcome. Misses are cached too.
type Entry struct {
	Matched bool            `json:"matched"`
	Address address.Address `json:"address"`
}

// Cache looks up and stores parse outcomes.
type Cache interface {
	Get(ctx context.Context, key Key) (Entry, bool, error)
	Set(ctx context.Context, key Key, e Entry) error
}

// Redis implements Cache on a go-redis client.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a Redis-backed cache. A zero ttl keeps entries forever.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Connect creates a client and verifies the connection.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Get returns the cached entry, if any.
func (r *Redis) Get(ctx context.Context, key Key) (Entry, bool, error) {
	data, err := r.client.Get(ctx, key.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("redis get parse: %w", err)
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, false, fmt.Errorf("unmarshal parse: %w", err)
	}
	return e, true, nil
}

// Set stores an entry with the configured TTL.
func (r *Redis) Set(ctx context.Context, key Key, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal parse: %w", err)
	}
	if err := r.client.Set(ctx, key.String(), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set parse: %w", err)
	}
	return nil
}

// Noop never stores anything. It is used when no Redis is configured.
type Noop struct{}

func (Noop) Get(context.Context, Key) (Entry, bool, error) { return Entry{}, false, nil }

func (Noop) Set(context.Context, Key, Entry) error { return nil }
