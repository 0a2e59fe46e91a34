package remote

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"comicconv/internal/convert"
	"comicconv/internal/logging"
)

// defaultAttempts covers one reconnect after a transient failure.
const defaultAttempts = 2

// dialTimeout bounds connection establishment.
const dialTimeout = 10 * time.Second

// Client owns a connection to a conversion server and reuses it across
// files. A retryable session failure tears the connection down and replays
// the whole payload on a fresh one, up to Attempts tries per file.
type Client struct {
	address  string
	attempts int
	logger   *slog.Logger
	conn     net.Conn
}

// Dial connects to the server. attempts <= 0 selects the default.
func Dial(ctx context.Context, address string, attempts int, logger *slog.Logger) (*Client, error) {
	if attempts <= 0 {
		attempts = defaultAttempts
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	client := &Client{address: address, attempts: attempts, logger: logger}
	if err := client.reconnect(ctx); err != nil {
		return nil, err
	}
	return client, nil
}

// Convert runs one offload session, reconnecting and retrying on transient
// failures. The payload is replayed in full on every attempt; the protocol
// has no mid-stream resume.
func (c *Client) Convert(ctx context.Context, cfg SessionConfig, payload []byte) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		if c.conn == nil {
			if err := c.reconnect(ctx); err != nil {
				lastErr = err
				continue
			}
		}
		session := NewSession(c.conn, cfg)
		data, err := session.Convert(ctx, payload)
		if err == nil {
			return data, nil
		}
		lastErr = err

		// The stream position is unknown after a failure; the
		// connection cannot be reused.
		c.closeConn()
		if !convert.Retryable(err) || ctx.Err() != nil {
			break
		}
		c.logger.Warn("offload attempt failed, reconnecting",
			logging.Int("attempt", attempt),
			logging.String("server", c.address),
			logging.Error(err),
		)
	}
	return nil, lastErr
}

// Close shuts the connection down.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

func (c *Client) reconnect(ctx context.Context) error {
	c.closeConn()
	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", c.address)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", c.address, err)
	}
	c.conn = conn
	return nil
}

func (c *Client) closeConn() {
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
}
