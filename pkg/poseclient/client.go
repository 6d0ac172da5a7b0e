// Package poseclient provides a Go client for the pose stream, for
// render hosts that are not browsers (native previews, bridges) and
// for integration tests.
package poseclient

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/portalbox/go-portal/pkg/web"
)

// dialTimeout bounds the websocket handshake.
const dialTimeout = 10 * time.Second

// Client consumes PoseFrames from a running portal server.
type Client struct {
	conn *websocket.Conn

	mu     sync.Mutex
	closed bool
}

// Dial connects to a pose stream endpoint, e.g.
// ws://localhost:8090/ws/pose.
func Dial(url string) (*Client, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: dialTimeout,
	}

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial pose stream: %w", err)
	}

	return &Client{conn: conn}, nil
}

// Listen decodes frames and hands each to fn until the context is
// canceled or the connection drops. Undecodable messages are skipped;
// the stream is re-sampled every tick so nothing is lost by skipping.
func (c *Client) Listen(ctx context.Context, fn func(web.PoseFrame)) error {
	go func() {
		<-ctx.Done()
		c.Close()
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.mu.Lock()
			closed := c.closed
			c.mu.Unlock()
			if closed {
				return nil
			}
			return fmt.Errorf("read pose stream: %w", err)
		}

		var frame web.PoseFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			continue
		}

		fn(frame)
	}
}

// Close shuts the connection down.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return c.conn.Close()
}
