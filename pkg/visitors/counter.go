// Package visitors implements the one-shot visitor counter. It performs
// a single fetch against an external hit endpoint per process session
// and caches the returned count. Entirely outside the core's concern;
// failures are logged and ignored.
package visitors

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/portalbox/go-portal/internal/httpc"
	"github.com/portalbox/go-portal/internal/log"
)

// Counter tracks the visitor count from an external endpoint.
type Counter struct {
	url string

	mu      sync.Mutex
	visited bool // session flag: the hit fires at most once
	count   int64
}

// New creates a counter for the given endpoint. An empty URL disables
// the counter entirely.
func New(url string) *Counter {
	return &Counter{url: url}
}

// Hit registers this session with the counter endpoint. Only the first
// call per process does anything; later calls return the cached count.
func (c *Counter) Hit() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.visited || c.url == "" {
		return c.count
	}
	c.visited = true

	count, err := fetchCount(c.url)
	if err != nil {
		log.Warn("visitor counter fetch failed", "error", err)
		return c.count
	}

	c.count = count
	log.Info("visitor registered", "count", count)
	return c.count
}

// Count returns the last known count without hitting the endpoint.
func (c *Counter) Count() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// fetchCount calls the endpoint and parses the running total. Accepts
// either a JSON object with a "count" or "value" field, or a bare
// integer body.
func fetchCount(url string) (int64, error) {
	resp, err := httpc.Get(url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return 0, err
	}

	if resp.StatusCode != 200 {
		return 0, fmt.Errorf("counter endpoint returned %d", resp.StatusCode)
	}

	var payload struct {
		Count *int64 `json:"count"`
		Value *int64 `json:"value"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Count != nil {
			return *payload.Count, nil
		}
		if payload.Value != nil {
			return *payload.Value, nil
		}
	}

	n, err := strconv.ParseInt(strings.TrimSpace(string(body)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unrecognized counter response: %q", string(body))
	}
	return n, nil
}
