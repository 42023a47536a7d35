package providers

import (
	"context"
	"net/url"
	"sync"
	"time"
)

type fakeCache struct {
	mu       sync.Mutex
	data     map[string]Payload
	ttls     map[string]time.Duration
	reads    []string
	readErr  error
	writeErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]Payload{}, ttls: map[string]time.Duration{}}
}

func (c *fakeCache) Read(_ context.Context, key string) (Payload, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reads = append(c.reads, key)
	if c.readErr != nil {
		return nil, false, c.readErr
	}
	p, ok := c.data[key]
	return p, ok, nil
}

func (c *fakeCache) Write(_ context.Context, key string, payload Payload, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeErr != nil {
		return c.writeErr
	}
	c.data[key] = payload
	c.ttls[key] = ttl
	return nil
}

type transportCall struct {
	endpoint string
	params   url.Values
}

type fakeTransport struct {
	status int
	body   string
	err    error
	calls  []transportCall
}

func (t *fakeTransport) Get(_ context.Context, endpoint string, params url.Values) (int, []byte, error) {
	t.calls = append(t.calls, transportCall{endpoint: endpoint, params: params})
	if t.err != nil {
		return 0, nil, t.err
	}
	return t.status, []byte(t.body), nil
}
