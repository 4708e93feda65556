package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"stormfall/internal/game"
)

type Config struct {
	ServerPort string
	LogLevel   string
	StaticDir  string
	TickRate   int
	// Seed drives bot decisions and loot placement; zero seeds from the clock.
	Seed   uint64
	Tuning game.Tuning
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}
	return FromEnv(logger)
}

// FromEnv builds a Config from the process environment alone.
func FromEnv(logger zerolog.Logger) (*Config, error) {
	p := &parser{}
	t := game.DefaultTuning()

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		StaticDir:  getEnv("STATIC_DIR", "./static"),
		TickRate:   p.int("TICK_RATE", game.TickRate),
		Seed:       p.uint64("MATCH_SEED", 0),
	}

	t.StrictInvariants = p.bool("STRICT_INVARIANTS", t.StrictInvariants)
	t.ArenaSize = p.float("ARENA_SIZE", t.ArenaSize)
	t.StormCenter = game.Vec3{X: t.ArenaSize / 2, Z: t.ArenaSize / 2}
	t.StormInitialRadius = p.float("STORM_INITIAL_RADIUS", t.StormInitialRadius)
	t.StormMinRadius = p.float("STORM_MIN_RADIUS", t.StormMinRadius)
	t.StormShrinkPerTick = p.float("STORM_SHRINK", t.StormShrinkPerTick)
	t.StormTickPeriod = p.duration("STORM_PERIOD", t.StormTickPeriod)
	t.StormDamagePerTick = p.int("STORM_DAMAGE", t.StormDamagePerTick)
	t.BotCount = p.int("BOT_COUNT", t.BotCount)
	t.BotSpeed = p.float("BOT_SPEED", t.BotSpeed)
	t.BotDecisionPeriod = p.duration("BOT_DECISION_PERIOD", t.BotDecisionPeriod)
	t.BuildCost = p.int("BUILD_COST", t.BuildCost)
	t.LootPickupRadius = p.float("LOOT_PICKUP_RADIUS", t.LootPickupRadius)
	t.HitRadius = p.float("HIT_RADIUS", t.HitRadius)
	t.LootCount = p.int("LOOT_COUNT", t.LootCount)
	t.EndOnHumanElimination = p.bool("END_ON_HUMAN_ELIMINATION", t.EndOnHumanElimination)

	if p.err != nil {
		return nil, p.err
	}
	if cfg.TickRate <= 0 {
		return nil, fmt.Errorf("TICK_RATE must be positive, got %d", cfg.TickRate)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	cfg.Tuning = t

	logger.Info().
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Int("tick_rate", cfg.TickRate).
		Uint64("seed", cfg.Seed).
		Int("bots", t.BotCount).
		Float64("arena_size", t.ArenaSize).
		Bool("strict_invariants", t.StrictInvariants).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parser remembers the first malformed variable so Load can report it.
type parser struct {
	err error
}

func (p *parser) fail(key, value string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid %s=%q: %w", key, value, err)
	}
}

func (p *parser) int(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
		return fallback
	}
	return n
}

func (p *parser) uint64(key string, fallback uint64) uint64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		p.fail(key, v, err)
		return fallback
	}
	return n
}

func (p *parser) float(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, v, err)
		return fallback
	}
	return f
}

func (p *parser) bool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, v, err)
		return fallback
	}
	return b
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, v, err)
		return fallback
	}
	return d
}

var Module = fx.Provide(Load)
