package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/rpggio/coursegrid/internal/domain/catalog"
	"github.com/rpggio/coursegrid/internal/domain/search"
	"github.com/rpggio/coursegrid/internal/domain/timetable"
	"gopkg.in/yaml.v3"
)

const envPrefix = "COURSEGRID_"

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Transport TransportConfig `yaml:"transport"`
	Auth      AuthConfig      `yaml:"auth"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Timetable TimetableConfig `yaml:"timetable"`
	Search    SearchConfig    `yaml:"search"`
	Export    ExportConfig    `yaml:"export"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// TransportConfig selects how MCP clients connect: "http" or "stdio".
type TransportConfig struct {
	Mode string `yaml:"mode"`
}

type AuthConfig struct {
	Enabled bool `yaml:"enabled"`
}

// CatalogConfig selects where lectures are read from. Source is "http",
// "file" or "sqlite".
type CatalogConfig struct {
	Source     string              `yaml:"source"`
	BaseURL    string              `yaml:"base_url"`
	Dir        string              `yaml:"dir"`
	Timeout    time.Duration       `yaml:"timeout"`
	Refresh    string              `yaml:"refresh"`
	Partitions []catalog.Partition `yaml:"partitions"`
}

type TimetableConfig struct {
	InitialTableID string `yaml:"initial_table_id"`
}

type SearchConfig struct {
	PageSize int `yaml:"page_size"`
}

// ExportConfig bounds calendar exports. Dates are YYYY-MM-DD.
type ExportConfig struct {
	TermStart string `yaml:"term_start"`
	TermEnd   string `yaml:"term_end"`
	Timezone  string `yaml:"timezone"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "coursegrid.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		Catalog: CatalogConfig{
			Source:     "http",
			BaseURL:    "http://localhost:5173",
			Dir:        "data",
			Timeout:    15 * time.Second,
			Partitions: catalog.DefaultPartitions(),
		},
		Timetable: TimetableConfig{
			InitialTableID: timetable.DefaultTableID,
		},
		Search: SearchConfig{
			PageSize: search.DefaultPageSize,
		},
		Export: ExportConfig{
			Timezone: "Asia/Seoul",
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv(envPrefix + "CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString := func(name string, dst *string) {
		if v := os.Getenv(envPrefix + name); v != "" {
			*dst = v
		}
	}

	setString("SERVER_HOST", &cfg.Server.Host)
	if portStr := os.Getenv(envPrefix + "SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid %sSERVER_PORT: %w", envPrefix, err)
		}
		cfg.Server.Port = port
	}
	setString("DB_PATH", &cfg.DB.Path)
	setString("LOG_LEVEL", &cfg.Log.Level)
	setString("TRANSPORT", &cfg.Transport.Mode)
	if v := os.Getenv(envPrefix + "AUTH_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sAUTH_ENABLED: %w", envPrefix, err)
		}
		cfg.Auth.Enabled = enabled
	}
	setString("CATALOG_SOURCE", &cfg.Catalog.Source)
	setString("CATALOG_BASE_URL", &cfg.Catalog.BaseURL)
	setString("CATALOG_DIR", &cfg.Catalog.Dir)
	setString("CATALOG_REFRESH", &cfg.Catalog.Refresh)
	setString("EXPORT_TERM_START", &cfg.Export.TermStart)
	setString("EXPORT_TERM_END", &cfg.Export.TermEnd)
	setString("EXPORT_TIMEZONE", &cfg.Export.Timezone)
	return nil
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	switch c.Transport.Mode {
	case "http", "stdio":
	default:
		return fmt.Errorf("invalid transport mode %q", c.Transport.Mode)
	}
	switch c.Catalog.Source {
	case "http", "file", "sqlite":
	default:
		return fmt.Errorf("invalid catalog source %q", c.Catalog.Source)
	}
	if len(c.Catalog.Partitions) == 0 {
		return fmt.Errorf("catalog needs at least one partition")
	}
	if c.Search.PageSize <= 0 {
		return fmt.Errorf("invalid search page size %d", c.Search.PageSize)
	}
	if _, _, _, err := c.Export.Window(); err != nil {
		return err
	}
	return nil
}

// Window parses the export term. Unset dates come back as zero times.
func (e ExportConfig) Window() (start, end time.Time, loc *time.Location, err error) {
	loc = time.Local
	if e.Timezone != "" {
		if loc, err = time.LoadLocation(e.Timezone); err != nil {
			return time.Time{}, time.Time{}, nil, fmt.Errorf("invalid export timezone: %w", err)
		}
	}
	if e.TermStart != "" {
		if start, err = time.ParseInLocation(time.DateOnly, e.TermStart, loc); err != nil {
			return time.Time{}, time.Time{}, nil, fmt.Errorf("invalid export term_start: %w", err)
		}
	}
	if e.TermEnd != "" {
		if end, err = time.ParseInLocation(time.DateOnly, e.TermEnd, loc); err != nil {
			return time.Time{}, time.Time{}, nil, fmt.Errorf("invalid export term_end: %w", err)
		}
	}
	return start, end, loc, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
