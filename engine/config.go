package engine

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Config holds the settings used to create a Context.
type Config struct {
	// Logger receives context diagnostics. Defaults to Logger().
	Logger *zap.Logger `yaml:"-"`

	// TimeSource backs Date.now() and new Date(). Defaults to time.Now.
	TimeSource func() time.Time `yaml:"-"`

	// RealmID overrides the generated realm identifier.
	RealmID uuid.UUID `yaml:"realm_id"`

	// MaxCallStackSize bounds script recursion. Zero keeps the engine default.
	MaxCallStackSize int `yaml:"max_call_stack_size"`
}

// Option configures a Context.
type Option func(*Config)

// WithLogger sets the context logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithTimeSource sets the clock used by Date.
func WithTimeSource(now func() time.Time) Option {
	return func(c *Config) {
		c.TimeSource = now
	}
}

// WithRealmID fixes the realm identifier, mainly for reproducible logs.
func WithRealmID(id uuid.UUID) Option {
	return func(c *Config) {
		c.RealmID = id
	}
}

// WithMaxCallStackSize bounds script recursion depth.
func WithMaxCallStackSize(n int) Option {
	return func(c *Config) {
		c.MaxCallStackSize = n
	}
}

// WithConfig replaces every field with cfg.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
	}
}

func buildConfig(opts []Option) Config {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = Logger()
	}
	if cfg.RealmID == uuid.Nil {
		cfg.RealmID = uuid.New()
	}
	return cfg
}
