package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-by-address/internal/weather"
)

const defaultInterval = 25 * time.Minute

// Resolver is the part of weather.Service the scheduler drives.
type Resolver interface {
	WeatherByAddress(ctx context.Context, address string) (weather.Result, error)
}

// Scheduler periodically resolves the configured addresses so their geocode
// and weather entries stay in the cache.
type Scheduler struct {
	scheduler *gocron.Scheduler
	resolver  Resolver
	addresses []string
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler.
func New(addresses []string, interval time.Duration, resolver Resolver) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		resolver:  resolver,
		addresses: addresses,
		interval:  interval,
		timeout:   30 * time.Second,
	}
}

// Start schedules the warm job and starts the underlying scheduler. The job
// also runs once immediately.
func (s *Scheduler) Start() error {
	if len(s.addresses) == 0 {
		log.Println("scheduler: no warm addresses configured; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.every()).Do(s.WarmAll)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// every returns the job interval, 25 minutes when none is configured.
func (s *Scheduler) every() time.Duration {
	if s.interval <= 0 {
		return defaultInterval
	}
	return s.interval
}

// WarmAll resolves every configured address concurrently and waits for all
// of them. Failures are logged and otherwise ignored.
func (s *Scheduler) WarmAll() {
	log.Println("scheduler: running cache warm job")

	var wg sync.WaitGroup
	for _, addr := range s.addresses {
		addr := addr
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			defer cancel()

			res, err := s.resolver.WeatherByAddress(ctx, addr)
			if err != nil {
				log.Printf("scheduler: warm failed for %q: %v", addr, err)
				return
			}
			log.Printf("DEBUG: scheduler: warmed %q (geocode cached=%t)", addr, res.FromCache(weather.DataSourceGeocode))
		}()
	}
	wg.Wait()
	log.Println("scheduler: completed cache warm job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
