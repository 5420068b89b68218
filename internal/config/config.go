package config

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort        = "3000"
	defaultAPIBaseURL  = "http://localhost:8080"
	defaultMaxSessions = 1000
)

var ErrInvalidBaseURL = errors.New("invalid API base URL")

var validate = validator.New()

// Config holds everything the panel and libctl need to start.
type Config struct {
	Port       string        `yaml:"port" validate:"required,numeric"`
	APIBaseURL string        `yaml:"api_base_url" validate:"required,url"`
	APITimeout time.Duration `yaml:"api_timeout" validate:"gte=0"`
	Debug      bool          `yaml:"debug"`

	// MaxSessions caps the browser sessions the panel keeps in memory.
	MaxSessions int `yaml:"max_sessions" validate:"gte=1"`
}

// Addr is the listen address for the panel.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// Load reads .env (if present), an optional YAML file named by CONFIG_FILE
// and finally the environment. Environment values win.
func Load() (*Config, error) {
	// A missing .env is fine, system variables are used instead.
	_ = godotenv.Load()

	cfg := &Config{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.validate()
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Port = cmp.Or(os.Getenv("PORT"), c.Port, defaultPort)
	c.APIBaseURL = cmp.Or(os.Getenv("API_BASE_URL"), c.APIBaseURL, defaultAPIBaseURL)

	if raw := os.Getenv("API_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("API_TIMEOUT: %w", err)
		}
		c.APITimeout = d
	}
	if raw := os.Getenv("MAX_SESSIONS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("MAX_SESSIONS: %w", err)
		}
		c.MaxSessions = n
	}
	c.MaxSessions = cmp.Or(c.MaxSessions, defaultMaxSessions)

	if raw := os.Getenv("DEBUG"); raw != "" {
		debug, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("DEBUG: %w", err)
		}
		c.Debug = debug
	}
	if strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug") {
		c.Debug = true
	}
	return nil
}

func (c *Config) validate() error {
	if err := validate.Struct(c); err != nil {
		var fields validator.ValidationErrors
		if errors.As(err, &fields) {
			for _, f := range fields {
				if f.StructField() == "APIBaseURL" {
					return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.APIBaseURL)
				}
			}
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")
	return nil
}
