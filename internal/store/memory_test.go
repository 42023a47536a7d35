package store

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/i474232898/weather-by-address/internal/weather/providers"
)

func TestMemoryStoreReadWrite(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	ctx := context.Background()

	if _, ok, err := s.Read(ctx, "geocode_Paris"); ok || err != nil {
		t.Fatalf("expected miss on empty store, got ok=%v err=%v", ok, err)
	}

	payload := providers.Payload{"status": "OK"}
	if err := s.Write(ctx, "geocode_Paris", payload, time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := s.Read(ctx, "geocode_Paris")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(got, payload) {
		t.Fatalf("expected %v, got %v", payload, got)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", s.Len())
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	if err := s.Write(ctx, "current_weather_75001", providers.Payload{"currentTime": "now"}, 20*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	if _, ok, _ := s.Read(ctx, "current_weather_75001"); ok {
		t.Fatal("expected expired entry to be a miss")
	}
}

func TestMemoryStoreOverwrite(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	ctx := context.Background()

	_ = s.Write(ctx, "k", providers.Payload{"v": 1.0}, time.Hour)
	_ = s.Write(ctx, "k", providers.Payload{"v": 2.0}, 0)

	got, ok, _ := s.Read(ctx, "k")
	if !ok || got["v"] != 2.0 {
		t.Fatalf("expected overwritten value, got %v", got)
	}
}

func TestMemoryStoreReadReturnsCopy(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	ctx := context.Background()

	_ = s.Write(ctx, "geocode_Paris", providers.Payload{"status": "OK"}, time.Hour)

	got, _, _ := s.Read(ctx, "geocode_Paris")
	got["status"] = "ZERO_RESULTS"
	delete(got, "status")

	again, ok, _ := s.Read(ctx, "geocode_Paris")
	if !ok || again["status"] != "OK" {
		t.Fatalf("cached entry changed through a read: %v", again)
	}
}
