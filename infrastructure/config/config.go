package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

type Config struct {
	Env        string `yaml:"env" env:"APP_ENV" env-default:"prod"`
	SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH" env-default:"monterhyra.db"`
	HTTPServer `yaml:"http_server"`

	// BlobThresholdBytes is the archive size above which order archives are
	// moved out of the order document into the blob store.
	BlobThresholdBytes int64         `yaml:"blob_threshold_bytes" env:"BLOB_THRESHOLD_BYTES" env-default:"3670016"`
	SessionTTL         time.Duration `yaml:"session_ttl" env:"SESSION_TTL" env-default:"12h"`
	AllowedOrigins     []string      `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
	PrintWorkers       int           `yaml:"print_workers" env:"PRINT_WORKERS" env-default:"0"`
	// PublicBaseURL prefixes exhibitor invite links.
	PublicBaseURL      string        `yaml:"public_base_url" env:"PUBLIC_BASE_URL" env-default:"http://localhost:8080/"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"APP_ADDR" env-default:":8080"`
	Timeout     time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"30s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// Load reads the YAML file named by CONFIG_PATH when set, then applies
// environment overrides.
func Load() (*Config, error) {
	var cfg Config
	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	cfg.normalize()
	return &cfg, nil
}

// MustLoad is Load that panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) normalize() {
	if c.PrintWorkers <= 0 {
		c.PrintWorkers = runtime.NumCPU()
	}
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		c.Env = EnvProd
	}
}
