package stream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// reconnectWait is the fixed delay before a reconnection attempt.
	reconnectWait = 3 * time.Second
)

// ClientConfig represents the stream client configuration.
type ClientConfig struct {
	// URL is the websocket endpoint of the upstream event stream.
	URL string
	// Relay forwards a raw message payload for dispatch.
	Relay func(message []byte)
	// NotifyStatus reports connection status transitions.
	NotifyStatus func(connected bool)
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Validate asserts the config has sane inputs.
func (cfg *ClientConfig) Validate() error {
	var errs error

	if cfg.URL == "" {
		errs = errors.Join(errs, fmt.Errorf("stream url cannot be an empty string"))
	}
	if cfg.Relay == nil {
		errs = errors.Join(errs, fmt.Errorf("relay function cannot be nil"))
	}
	if cfg.NotifyStatus == nil {
		errs = errors.Join(errs, fmt.Errorf("notify status function cannot be nil"))
	}

	return errs
}

// Client maintains the connection to the upstream event stream,
// reconnecting after a fixed delay whenever the connection drops.
type Client struct {
	cfg *ClientConfig
}

// NewClient initializes a new stream client.
func NewClient(cfg *ClientConfig) (*Client, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating stream client config: %w", err)
	}

	return &Client{
		cfg: cfg,
	}, nil
}

// readMessages relays inbound payloads until the connection fails or the
// provided context is cancelled.
func (c *Client) readMessages(ctx context.Context, conn *websocket.Conn) {
	done := make(chan struct{})
	defer close(done)

	// Unblock the pending read when the context is cancelled.
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				c.cfg.Logger.Error().Msgf("reading stream message: %v", err)
			}
			return
		}

		c.cfg.Relay(message)
	}
}

// Run manages the connection lifecycle of the stream client. The client
// reconnects with a fixed delay until the provided context is cancelled.
func (c *Client) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.cfg.URL, nil)
		if err != nil {
			if ctx.Err() != nil {
				return
			}

			c.cfg.Logger.Error().Msgf("connecting to %s: %v", c.cfg.URL, err)
			c.cfg.NotifyStatus(false)
		} else {
			c.cfg.Logger.Info().Msgf("connected to %s", c.cfg.URL)
			c.cfg.NotifyStatus(true)

			c.readMessages(ctx, conn)
			conn.Close()

			c.cfg.NotifyStatus(false)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectWait):
			c.cfg.Logger.Info().Msg("attempting to reconnect")
		}
	}
}
