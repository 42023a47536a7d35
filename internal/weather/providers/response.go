package providers

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/i474232898/weather-by-address/internal/metrics"
)

// Source tells whether a payload came from a live provider call or the cache.
type Source string

const (
	SourceAPI   Source = "api_response"
	SourceCache Source = "cached_response"
)

// Payload is a provider's decoded JSON body.
type Payload = map[string]any

// Response wraps a raw provider payload with the place it was read from.
type Response struct {
	Data   Payload
	Source Source
}

// Cache is the key/value store the fetch adapters read through. It must be
// safe for concurrent use.
type Cache interface {
	Read(ctx context.Context, key string) (Payload, bool, error)
	Write(ctx context.Context, key string, payload Payload, ttl time.Duration) error
}

// readThrough serves key from c when a non-empty payload is cached there and
// otherwise calls fetch, caching its payload for ttl. Cache failures are
// logged and degrade to a miss or an uncached response.
func readThrough(
	ctx context.Context,
	c Cache,
	dataSource string,
	key string,
	ttl time.Duration,
	fetch func(ctx context.Context) (Payload, error),
) (Response, error) {
	if c != nil {
		cached, ok, err := c.Read(ctx, key)
		if err != nil {
			metrics.RecordCacheError("read")
			log.Printf("ERROR: cache read failed for %s: %v", key, err)
		} else if ok && len(cached) > 0 {
			metrics.RecordFetch(dataSource, string(SourceCache))
			return Response{Data: cached, Source: SourceCache}, nil
		}
	}

	start := time.Now()
	data, err := fetch(ctx)
	metrics.RecordUpstream(dataSource, time.Since(start), errorKind(err))
	if err != nil {
		return Response{}, err
	}

	if c != nil {
		if err := c.Write(ctx, key, data, ttl); err != nil {
			metrics.RecordCacheError("write")
			log.Printf("ERROR: cache write failed for %s: %v", key, err)
		}
	}

	metrics.RecordFetch(dataSource, string(SourceAPI))
	return Response{Data: data, Source: SourceAPI}, nil
}

func errorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "transport"
	}
}

// present reports whether v carries a value: nil, empty strings, empty
// slices and empty objects do not.
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
