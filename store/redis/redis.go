package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/recordgate/recordgate/admission"
	"github.com/recordgate/recordgate/record"
)

const defaultKey = "recordgate:records"

// Config holds Redis connection configuration parameters.
type Config struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

var _ admission.Store = (*store)(nil)

type store struct {
	client *goredis.Client
	key    string
}

// New connects to Redis and verifies the connection. Records are kept
// as a JSON-encoded list under a single key, which preserves store
// order.
func New(cfg *Config) (admission.Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	key := cfg.Key
	if key == "" {
		key = defaultKey
	}

	return &store{client: client, key: key}, nil
}

func (s *store) Append(ctx context.Context, rec *record.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.client.RPush(ctx, s.key, data).Err()
}

func (s *store) All(ctx context.Context) ([]*record.Record, error) {
	vals, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*record.Record, 0, len(vals))

	for _, val := range vals {
		rec := record.New()
		if err := json.Unmarshal([]byte(val), rec); err != nil {
			return nil, err
		}

		out = append(out, rec)
	}

	return out, nil
}

func (s *store) Len(ctx context.Context) (int, error) {
	n, err := s.client.LLen(ctx, s.key).Result()

	return int(n), err
}

func (s *store) Close() error {
	return s.client.Close()
}
