package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/i474232898/weather-by-address/internal/api/http"
	"github.com/i474232898/weather-by-address/internal/config"
	"github.com/i474232898/weather-by-address/internal/scheduler"
	"github.com/i474232898/weather-by-address/internal/store"
	"github.com/i474232898/weather-by-address/internal/weather"
	"github.com/i474232898/weather-by-address/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.GoogleAPIKey == "" {
		log.Println("INFO: GOOGLE_API_KEY is not set; provider calls will be rejected")
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	cache, closeCache := newCache(cfg)
	defer closeCache()

	// One breaker per provider host.
	geocodeTransport := providers.NewHTTPTransport(httpClient, "google-geocode")
	weatherTransport := providers.NewHTTPTransport(httpClient, "google-weather")

	service := weather.NewService(
		providers.NewGeocodeFetcher(geocodeTransport, cache, cfg.GoogleAPIKey),
		providers.NewCurrentWeatherFetcher(weatherTransport, cache, cfg.GoogleAPIKey),
		providers.NewHourlyForecastFetcher(weatherTransport, cache, cfg.GoogleAPIKey),
		providers.NewDailyForecastFetcher(weatherTransport, cache, cfg.GoogleAPIKey),
	)

	// Scheduler that keeps configured addresses warm in the cache.
	sched := scheduler.New(cfg.WarmAddresses, cfg.WarmInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-by-address",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-by-address",
			"cache":   cfg.CacheBackend,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()
	log.Printf("INFO: listening on :%s (cache backend %s)", cfg.Port, cfg.CacheBackend)

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

// newCache builds the configured cache backend. A Redis backend that cannot
// be reached at startup falls back to the in-memory store.
func newCache(cfg *config.AppConfig) (providers.Cache, func()) {
	mem := func() (providers.Cache, func()) {
		return store.NewMemoryStore(10 * time.Minute), func() {}
	}

	if cfg.CacheBackend != config.CacheBackendRedis {
		return mem()
	}

	rs := store.NewRedisStore(redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}), cfg.Redis.Prefix)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rs.Ping(ctx); err != nil {
		log.Printf("ERROR: redis at %s unreachable, using in-memory cache: %v", cfg.Redis.Addr, err)
		_ = rs.Close()
		return mem()
	}

	log.Printf("INFO: connected to redis at %s", cfg.Redis.Addr)
	return rs, func() {
		if err := rs.Close(); err != nil {
			log.Printf("error closing redis: %v", err)
		}
	}
}
