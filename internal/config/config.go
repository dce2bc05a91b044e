package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Sync      SyncConfig      `yaml:"sync"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type StorageConfig struct {
	DataDir string `yaml:"data_dir"`
}

// SyncConfig describes the optional cloud-sync backend. When Enabled is
// false the app runs local-only.
type SyncConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	// Login namespaces this instance's document in the sync backend.
	// Defaults to "local" when unset.
	Login string `yaml:"login"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// DSN returns a PostgreSQL connection string for the sync backend.
func (s SyncConfig) DSN() string {
	sslmode := s.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		s.User, s.Password, s.Host, s.Port, s.Name, sslmode)
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix LIFTLOG_ and underscore-separated
// paths:
//
//	LIFTLOG_SERVER_HOST, LIFTLOG_SERVER_PORT, LIFTLOG_DATA_DIR,
//	LIFTLOG_SYNC_HOST, LIFTLOG_SYNC_PORT, LIFTLOG_SYNC_NAME,
//	LIFTLOG_SYNC_USER, LIFTLOG_SYNC_PASSWORD, LIFTLOG_SYNC_SSLMODE,
//	LIFTLOG_SYNC_LOGIN, LIFTLOG_AUTH_API_KEY
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LIFTLOG_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("LIFTLOG_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("LIFTLOG_DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("LIFTLOG_SYNC_HOST"); v != "" {
		cfg.Sync.Host = v
	}
	if v := os.Getenv("LIFTLOG_SYNC_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Sync.Port = port
		}
	}
	if v := os.Getenv("LIFTLOG_SYNC_NAME"); v != "" {
		cfg.Sync.Name = v
	}
	if v := os.Getenv("LIFTLOG_SYNC_USER"); v != "" {
		cfg.Sync.User = v
	}
	if v := os.Getenv("LIFTLOG_SYNC_PASSWORD"); v != "" {
		cfg.Sync.Password = v
	}
	if v := os.Getenv("LIFTLOG_SYNC_SSLMODE"); v != "" {
		cfg.Sync.SSLMode = v
	}
	if v := os.Getenv("LIFTLOG_SYNC_LOGIN"); v != "" {
		cfg.Sync.Login = v
	}
	if v := os.Getenv("LIFTLOG_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Storage.DataDir == "" {
		return fmt.Errorf("storage.data_dir is required")
	}
	if c.Sync.Enabled {
		if c.Sync.Host == "" {
			return fmt.Errorf("sync.host is required when sync is enabled")
		}
		if c.Sync.Port == 0 {
			return fmt.Errorf("sync.port is required when sync is enabled")
		}
		if c.Sync.Name == "" {
			return fmt.Errorf("sync.name is required when sync is enabled")
		}
		if c.Sync.User == "" {
			return fmt.Errorf("sync.user is required when sync is enabled")
		}
		if c.Sync.Login == "" {
			c.Sync.Login = "local"
		}
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	return nil
}
