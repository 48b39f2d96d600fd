package ephemeris

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/valkey-io/valkey-go"
)

// ValkeyStore shares cached longitudes between instances through a
// Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "ephemeris"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// Get implements Store.
func (s *ValkeyStore) Get(ctx context.Context, key string) (float64, bool, error) {
	cmd := s.client.B().Get().Key(s.entryKey(key)).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return 0, false, nil
		}
		return 0, false, err
	}
	long, err := strconv.ParseFloat(payload, 64)
	if err != nil {
		return 0, false, fmt.Errorf("decode cached longitude %q: %w", payload, err)
	}
	return long, true, nil
}

// Set implements Store.
func (s *ValkeyStore) Set(ctx context.Context, key string, long float64, ttl time.Duration) error {
	builder := s.client.B().Set().Key(s.entryKey(key)).Value(strconv.FormatFloat(long, 'g', -1, 64))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) entryKey(key string) string {
	return fmt.Sprintf("%s:%s", s.prefix, key)
}

var _ Store = (*ValkeyStore)(nil)
