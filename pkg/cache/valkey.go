package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

// Valkey is a Store backed by a Valkey (Redis-compatible) server, so several
// geokit processes can share one Nominatim budget.
type Valkey struct {
	client valkey.Client
	prefix string
	ttl    time.Duration
}

// NewValkey connects to the Valkey server at addr. Keys are namespaced with
// prefix; ttl of zero stores keys without expiry.
func NewValkey(addr, prefix string, ttl time.Duration) (*Valkey, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("valkey connect: %w", err)
	}
	return &Valkey{client: client, prefix: prefix, ttl: ttl}, nil
}

// Get retrieves a value by key. A missing key is not an error.
func (c *Valkey) Get(ctx context.Context, key string) ([]byte, bool, error) {
	cmd := c.client.Do(ctx, c.client.B().Get().Key(c.prefix+key).Build())
	b, err := cmd.AsBytes()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

// Set stores a value with the configured TTL.
func (c *Valkey) Set(ctx context.Context, key string, value []byte) error {
	if c.ttl <= 0 {
		cmd := c.client.Do(ctx, c.client.B().Set().Key(c.prefix+key).Value(string(value)).Build())
		return cmd.Error()
	}
	cmd := c.client.Do(ctx,
		c.client.B().Set().Key(c.prefix+key).Value(string(value)).Ex(c.ttl).Build(),
	)
	return cmd.Error()
}

// Close releases the client.
func (c *Valkey) Close() error {
	c.client.Close()
	return nil
}
