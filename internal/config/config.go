package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port           string  `yaml:"port"`
	DBDSN          string  `yaml:"db_dsn"`
	LogFile        string  `yaml:"log_file"`
	LogLevel       string  `yaml:"log_level"`
	AuthBackend    string  `yaml:"auth_backend"`    // sqlite | demo
	MirrorBackend  string  `yaml:"mirror_backend"`  // sqlite | redis | memory
	ContentBackend string  `yaml:"content_backend"` // memory | sqlite
	RedisURL       string  `yaml:"redis_url"`
	LatencyScale   float64 `yaml:"latency_scale"`
	TraceStdout    bool    `yaml:"trace_stdout"`
	CSRF           bool    `yaml:"csrf"`
}

func Default() Config {
	return Config{
		Port:           "8080",
		DBDSN:          "itsolutions.db", // sqlite file in project root
		LogFile:        "./itsolutions.log",
		LogLevel:       "info",
		AuthBackend:    "sqlite",
		MirrorBackend:  "sqlite",
		ContentBackend: "memory",
		RedisURL:       "redis://localhost:6379/2",
		LatencyScale:   1,
		CSRF:           true,
	}
}

// Load starts from Default, overlays the YAML file at path (if any) and
// then the environment, which always wins.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	str := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	str("PORT", &cfg.Port)
	str("DB_DSN", &cfg.DBDSN)
	str("LOG_FILE", &cfg.LogFile)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("AUTH_BACKEND", &cfg.AuthBackend)
	str("MIRROR_BACKEND", &cfg.MirrorBackend)
	str("CONTENT_BACKEND", &cfg.ContentBackend)
	str("REDIS_URL", &cfg.RedisURL)
	if v := os.Getenv("LATENCY_SCALE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.LatencyScale = f
		}
	}
	if v := os.Getenv("TRACE_STDOUT"); v != "" {
		cfg.TraceStdout, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("CSRF"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.CSRF = b
		}
	}
}

func (c Config) Validate() error {
	oneOf := func(name, v string, allowed ...string) error {
		for _, a := range allowed {
			if strings.EqualFold(v, a) {
				return nil
			}
		}
		return fmt.Errorf("config: %s must be one of %s, got %q", name, strings.Join(allowed, "|"), v)
	}
	if err := oneOf("auth_backend", c.AuthBackend, "sqlite", "demo"); err != nil {
		return err
	}
	if err := oneOf("mirror_backend", c.MirrorBackend, "sqlite", "redis", "memory"); err != nil {
		return err
	}
	if err := oneOf("content_backend", c.ContentBackend, "memory", "sqlite"); err != nil {
		return err
	}
	if c.LatencyScale < 0 {
		return fmt.Errorf("config: latency_scale must be >= 0")
	}
	return nil
}
