// Package config reads server settings from flags, falling back to
// CHESS_* environment variables.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/ai"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Addr         string
	AllowOrigins string
	LogLevel     string
	// MinThinkTime paces AI replies so they do not land instantly.
	MinThinkTime time.Duration
	SearchDepth  int
}

func Default() Config {
	return Config{
		Addr:         ":3000",
		AllowOrigins: "http://localhost:5173",
		LogLevel:     "info",
		MinThinkTime: 500 * time.Millisecond,
		SearchDepth:  3,
	}
}

// Load parses args (without the program name). getenv supplies the
// environment fallbacks; pass os.Getenv in production.
func Load(args []string, getenv func(string) string) (Config, error) {
	def := Default()
	env := envReader{getenv: getenv}

	fs := flag.NewFlagSet("chess-server", flag.ContinueOnError)
	cfg := Config{}
	fs.StringVar(&cfg.Addr, "addr", env.str("CHESS_ADDR", def.Addr), "listen address")
	fs.StringVar(&cfg.AllowOrigins, "allow-origins", env.str("CHESS_ALLOW_ORIGINS", def.AllowOrigins), "comma-separated CORS origins")
	fs.StringVar(&cfg.LogLevel, "log-level", env.str("CHESS_LOG_LEVEL", def.LogLevel), "debug|info|warn|error")
	fs.DurationVar(&cfg.MinThinkTime, "think-time", env.duration("CHESS_THINK_TIME", def.MinThinkTime), "minimum AI reply delay")
	fs.IntVar(&cfg.SearchDepth, "search-depth", env.integer("CHESS_SEARCH_DEPTH", def.SearchDepth), "dragontooth search depth in plies")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if env.err != nil {
		return Config{}, env.err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: empty listen address", ErrInvalidConfig)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.MinThinkTime < 0 {
		return fmt.Errorf("%w: negative think time %s", ErrInvalidConfig, c.MinThinkTime)
	}
	if c.SearchDepth < 1 || c.SearchDepth > ai.MaxDepth {
		return fmt.Errorf("%w: search depth %d not in [1, %d]", ErrInvalidConfig, c.SearchDepth, ai.MaxDepth)
	}
	return nil
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: log level %q", ErrInvalidConfig, s)
}

// envReader remembers the first malformed variable it saw.
type envReader struct {
	getenv func(string) string
	err    error
}

func (e *envReader) str(key, def string) string {
	if v := e.getenv(key); v != "" {
		return v
	}
	return def
}

func (e *envReader) duration(key string, def time.Duration) time.Duration {
	v := e.getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, v)
		return def
	}
	return d
}

func (e *envReader) integer(key string, def int) int {
	v := e.getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, v)
		return def
	}
	return n
}

func (e *envReader) fail(key, value string) {
	if e.err == nil {
		e.err = fmt.Errorf("%w: %s=%q", ErrInvalidConfig, key, value)
	}
}
