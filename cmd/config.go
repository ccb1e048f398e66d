package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/jobs"
)

// Config holds the runtime settings of the dispatch engine.
// Every field is read from the environment variable named in its comment.
type Config struct {
	HTTPPort string     // HTTP_PORT
	LogLevel slog.Level // LOG_LEVEL

	MovementInterval time.Duration // MOVEMENT_INTERVAL
	MovementJitter   float64       // MOVEMENT_JITTER

	OriginLat   float64 // ORIGIN_LAT
	OriginLng   float64 // ORIGIN_LNG
	SpawnSpread float64 // SPAWN_SPREAD

	AverageSpeedKmh float64 // AVERAGE_SPEED_KMH

	// ReasoningURL is empty when no reasoning service is configured; every
	// recommendation then comes from the nearest courier fallback.
	ReasoningURL     string        // REASONING_URL
	ReasoningAPIKey  string        // REASONING_API_KEY
	ReasoningTimeout time.Duration // REASONING_TIMEOUT

	// RedisAddr is empty when positions are not published.
	RedisAddr     string // REDIS_ADDR
	RedisPassword string // REDIS_PASSWORD
	RedisDB       int    // REDIS_DB

	SeedDemoData bool // SEED_DEMO_DATA
}

// DefaultConfig returns the settings used for unset variables.
func DefaultConfig() Config {
	return Config{
		HTTPPort:         "8080",
		LogLevel:         slog.LevelInfo,
		MovementInterval: jobs.DefaultMovementInterval,
		MovementJitter:   commands.DefaultMovementJitter,
		OriginLat:        commands.DefaultOriginLat,
		OriginLng:        commands.DefaultOriginLng,
		SpawnSpread:      commands.DefaultSpawnSpread,
		AverageSpeedKmh:  services.DefaultAverageSpeedKmh,
		ReasoningTimeout: services.DefaultPrimaryTimeout,
		SeedDemoData:     true,
	}
}

// LoadConfig reads envFile when it exists, then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := DefaultConfig()
	p := envParser{}

	cfg.HTTPPort = p.getString("HTTP_PORT", cfg.HTTPPort)
	cfg.LogLevel = p.getLevel("LOG_LEVEL", cfg.LogLevel)
	cfg.MovementInterval = p.getDuration("MOVEMENT_INTERVAL", cfg.MovementInterval)
	cfg.MovementJitter = p.getFloat("MOVEMENT_JITTER", cfg.MovementJitter)
	cfg.OriginLat = p.getFloat("ORIGIN_LAT", cfg.OriginLat)
	cfg.OriginLng = p.getFloat("ORIGIN_LNG", cfg.OriginLng)
	cfg.SpawnSpread = p.getFloat("SPAWN_SPREAD", cfg.SpawnSpread)
	cfg.AverageSpeedKmh = p.getFloat("AVERAGE_SPEED_KMH", cfg.AverageSpeedKmh)
	cfg.ReasoningURL = p.getString("REASONING_URL", "")
	cfg.ReasoningAPIKey = p.getString("REASONING_API_KEY", "")
	cfg.ReasoningTimeout = p.getDuration("REASONING_TIMEOUT", cfg.ReasoningTimeout)
	cfg.RedisAddr = p.getString("REDIS_ADDR", "")
	cfg.RedisPassword = p.getString("REDIS_PASSWORD", "")
	cfg.RedisDB = p.getInt("REDIS_DB", 0)
	cfg.SeedDemoData = p.getBool("SEED_DEMO_DATA", cfg.SeedDemoData)

	if err := errors.Join(p.errs...); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate checks the values that the components cannot repair themselves.
func (c Config) Validate() error {
	var errs []error

	if c.HTTPPort == "" {
		errs = append(errs, errors.New("HTTP_PORT must not be empty"))
	}
	if c.MovementInterval < time.Second {
		errs = append(errs, fmt.Errorf("MOVEMENT_INTERVAL must be at least 1s, got %s", c.MovementInterval))
	}
	if c.MovementJitter < 0 {
		errs = append(errs, fmt.Errorf("MOVEMENT_JITTER must not be negative, got %g", c.MovementJitter))
	}
	if c.SpawnSpread < 0 {
		errs = append(errs, fmt.Errorf("SPAWN_SPREAD must not be negative, got %g", c.SpawnSpread))
	}
	if c.AverageSpeedKmh <= 0 {
		errs = append(errs, fmt.Errorf("AVERAGE_SPEED_KMH must be positive, got %g", c.AverageSpeedKmh))
	}
	if c.ReasoningTimeout <= 0 {
		errs = append(errs, fmt.Errorf("REASONING_TIMEOUT must be positive, got %s", c.ReasoningTimeout))
	}

	return errors.Join(errs...)
}

// envParser reads typed variables and collects every parse error.
type envParser struct {
	errs []error
}

func (p *envParser) lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (p *envParser) getString(key, def string) string {
	if v, ok := p.lookup(key); ok {
		return v
	}
	return def
}

func (p *envParser) getFloat(key string, def float64) float64 {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return f
}

func (p *envParser) getInt(key string, def int) int {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return i
}

func (p *envParser) getBool(key string, def bool) bool {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return b
}

func (p *envParser) getDuration(key string, def time.Duration) time.Duration {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

func (p *envParser) getLevel(key string, def slog.Level) slog.Level {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return level
}
