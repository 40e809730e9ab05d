package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	//===============
	//  Authentication
	//===============
	// Session token: the value of the "session" cookie of a logged-in
	// account. Inputs differ per account, so this must be the same
	// account used to submit solutions.
	session string

	//===============
	// Politeness
	//===============
	// Minimum enforced waiting time between two HTTP requests to the
	// site, persisted across runs.
	throttleInterval time.Duration

	//===============
	// Fetch
	//===============
	// Base URL of the puzzle site. Overridable for testing.
	baseURL string
	// Maximum time of a single fetch request.
	timeout time.Duration
	// User agent that will be used in the request header. In raw string.
	userAgent string

	//===============
	// Cache
	//===============
	// Root directory for the durable cache. The store places its files
	// under a "libaoc" subdirectory of this root.
	cacheDir string
}

// Environment variables consulted by FromEnv. A .env file in the
// working directory is loaded first when present.
const (
	EnvSession          = "AOC_SESSION"
	EnvCacheDirectory   = "LIBAOC_CACHE_DIRECTORY"
	EnvThrottleInterval = "LIBAOC_THROTTLE_INTERVAL"
)

// WithDefault creates a new Config with the provided session token and
// default values for all other fields. The session token is mandatory;
// Build returns an error when it is empty.
func WithDefault(session string) *Config {
	defaultConfig := Config{
		session:          session,
		throttleInterval: 180 * time.Second,
		baseURL:          "https://adventofcode.com",
		timeout:          30 * time.Second,
		userAgent:        "libaoc/1.0 (+https://github.com/arthomnix/libaoc)",
		cacheDir:         "",
	}
	return &defaultConfig
}

// BuilderFromEnv returns a builder seeded from the environment, for
// callers that apply overrides before Build. A .env file is honored
// when present (its absence is not an error).
func BuilderFromEnv() (*Config, error) {
	_ = godotenv.Load()

	builder := WithDefault(os.Getenv(EnvSession))

	if dir := os.Getenv(EnvCacheDirectory); dir != "" {
		builder = builder.WithCacheDir(dir)
	}
	if raw := os.Getenv(EnvThrottleInterval); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q: %s", ErrInvalidInterval, EnvThrottleInterval, raw, err.Error())
		}
		builder = builder.WithThrottleInterval(interval)
	}

	return builder, nil
}

// FromEnv builds a Config from the environment alone.
func FromEnv() (Config, error) {
	builder, err := BuilderFromEnv()
	if err != nil {
		return Config{}, err
	}
	return builder.Build()
}

func (c *Config) WithSession(session string) *Config {
	c.session = session
	return c
}

func (c *Config) WithThrottleInterval(interval time.Duration) *Config {
	c.throttleInterval = interval
	return c
}

func (c *Config) WithBaseURL(baseURL string) *Config {
	c.baseURL = baseURL
	return c
}

func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.timeout = timeout
	return c
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

func (c *Config) WithCacheDir(dir string) *Config {
	c.cacheDir = dir
	return c
}

func (c *Config) Build() (Config, error) {
	if c.session == "" {
		return Config{}, fmt.Errorf("%w: session token cannot be empty", ErrMissingSession)
	}
	if c.throttleInterval <= 0 {
		return Config{}, fmt.Errorf("%w: throttle interval must be positive", ErrInvalidInterval)
	}

	// If no cache directory is set, default to the user cache directory
	if c.cacheDir == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s", ErrNoCacheDir, err.Error())
		}
		c.cacheDir = dir
	}

	return *c, nil
}

func (c Config) Session() string {
	return c.session
}

func (c Config) ThrottleInterval() time.Duration {
	return c.throttleInterval
}

func (c Config) BaseURL() string {
	return c.baseURL
}

func (c Config) Timeout() time.Duration {
	return c.timeout
}

func (c Config) UserAgent() string {
	return c.userAgent
}

func (c Config) CacheDir() string {
	return c.cacheDir
}
