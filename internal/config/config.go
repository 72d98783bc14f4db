package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Admin  AdminConfig  `yaml:"admin"`
	Manage ManageConfig `yaml:"manage"`
}

type ServerConfig struct {
	Name    string `yaml:"name"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	BaseURL string `yaml:"base_url"`
}

type StoreConfig struct {
	Backend string       `yaml:"backend"` // redis, sqlite, or memory
	Redis   RedisConfig  `yaml:"redis"`
	SQLite  SQLiteConfig `yaml:"sqlite"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// AdminConfig supplies the credentials seeded into the store on first run.
// Once the credentials document exists these values are ignored; the
// password is changed through the API afterwards.
type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type ManageConfig struct {
	PageURL      string        `yaml:"page_url"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("HOMEPAGE_ADMIN_PASSWORD"); v != "" {
		c.Admin.Password = v
	}
	if v := os.Getenv("HOMEPAGE_REDIS_ADDR"); v != "" {
		c.Store.Redis.Addr = v
	}
	if v := os.Getenv("HOMEPAGE_REDIS_PASSWORD"); v != "" {
		c.Store.Redis.Password = v
	}
	if v := os.Getenv("HOMEPAGE_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.Store.Redis.DB = db
		}
	}
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case "", "redis", "sqlite", "memory":
	default:
		return fmt.Errorf("store.backend must be redis, sqlite, or memory, got %q", c.Store.Backend)
	}
	if c.Admin.Password == "" {
		return fmt.Errorf("admin.password is required")
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Name == "" {
		c.Server.Name = "Homepage"
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = fmt.Sprintf("http://%s:%d", c.Server.Host, c.Server.Port)
	}
	if c.Store.Backend == "" {
		c.Store.Backend = "sqlite"
	}
	if c.Store.Redis.Addr == "" {
		c.Store.Redis.Addr = "localhost:6379"
	}
	if c.Store.SQLite.Path == "" {
		c.Store.SQLite.Path = "./data/homepage.db"
	}
	if c.Admin.Username == "" {
		c.Admin.Username = "admin"
	}
	if c.Manage.FetchTimeout == 0 {
		c.Manage.FetchTimeout = 10 * time.Second
	}
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
