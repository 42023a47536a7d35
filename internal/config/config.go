package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

type AppConfig struct {
	// GoogleAPIKey authenticates both the Geocoding and the Weather API.
	GoogleAPIKey string

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	CacheBackend string
	Redis        RedisConfig

	// Addresses the scheduler keeps warm in the cache.
	WarmAddresses []string
	WarmInterval  time.Duration

	Port string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// fileConfig mirrors the optional YAML file. Zero values leave the defaults alone.
type fileConfig struct {
	GoogleAPIKey  string   `yaml:"google_api_key"`
	HTTPTimeout   string   `yaml:"http_timeout"`
	CacheBackend  string   `yaml:"cache_backend"`
	WarmAddresses []string `yaml:"warm_addresses"`
	WarmInterval  string   `yaml:"warm_interval"`
	Port          string   `yaml:"port"`
	Redis         struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix"`
	} `yaml:"redis"`
}

// Load reads configuration from an optional YAML file (WEATHER_CONFIG_FILE)
// and the environment, environment winning, with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	var file fileConfig
	if path := os.Getenv("WEATHER_CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	cfg.GoogleAPIKey = getenvDefault("GOOGLE_API_KEY", file.GoogleAPIKey)

	timeout, err := getenvDuration("HTTP_TIMEOUT", orDefault(file.HTTPTimeout, "10s"))
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	cfg.CacheBackend = strings.ToLower(getenvDefault("CACHE_BACKEND", orDefault(file.CacheBackend, CacheBackendMemory)))
	if cfg.CacheBackend != CacheBackendMemory && cfg.CacheBackend != CacheBackendRedis {
		return nil, fmt.Errorf("invalid CACHE_BACKEND %q: want %q or %q", cfg.CacheBackend, CacheBackendMemory, CacheBackendRedis)
	}

	cfg.Redis = RedisConfig{
		Addr:     getenvDefault("REDIS_ADDR", orDefault(file.Redis.Addr, "localhost:6379")),
		Password: getenvDefault("REDIS_PASSWORD", file.Redis.Password),
		DB:       getenvInt("REDIS_DB", file.Redis.DB),
		Prefix:   getenvDefault("REDIS_PREFIX", orDefault(file.Redis.Prefix, "weather:")),
	}

	cfg.WarmAddresses = file.WarmAddresses
	if v := os.Getenv("WARM_ADDRESSES"); v != "" {
		cfg.WarmAddresses = splitAddresses(v)
	}

	// Just under the 30 minute weather TTL so warmed entries never lapse.
	interval, err := getenvDuration("WARM_INTERVAL", orDefault(file.WarmInterval, "25m"))
	if err != nil {
		return nil, err
	}
	cfg.WarmInterval = interval

	cfg.Port = getenvDefault("PORT", orDefault(file.Port, "8080"))

	return cfg, nil
}

// splitAddresses splits on ';' since addresses themselves contain commas.
func splitAddresses(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	s := getenvDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
