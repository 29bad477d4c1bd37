package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/titanous/json5"
)

// fileConfig mirrors Config for JSON5 config files. Pointers tell "unset"
// apart from zero values so a file only overrides what it names.
type fileConfig struct {
	BaseURL           string   `json:"baseUrl"`
	Location          string   `json:"location"`
	Professions       []string `json:"professions"`
	OutputDir         string   `json:"outputDir"`
	Debug             *bool    `json:"debug"`
	Headless          *bool    `json:"headless"`
	UserAgent         string   `json:"userAgent"`
	SettleDelay       string   `json:"settleDelay"`
	ClickSettleDelay  string   `json:"clickSettleDelay"`
	LoadMoreTimeout   string   `json:"loadMoreTimeout"`
	NavigationTimeout string   `json:"navigationTimeout"`
	MaxPages          *int     `json:"maxPages"`
	MaxRetries        *int     `json:"maxRetries"`
	Postgres          *struct {
		Enabled  *bool  `json:"enabled"`
		Host     string `json:"host"`
		Port     int    `json:"port"`
		User     string `json:"user"`
		Password string `json:"password"`
		Name     string `json:"name"`
		SSLMode  string `json:"sslMode"`
	} `json:"postgres"`
}

// Load reads the JSON5 config file at path and, if present, the
// <name>.local.<ext> file next to it, and applies both on top of the
// defaults. Neither file has to exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	ext := filepath.Ext(path)
	local := strings.TrimSuffix(path, ext) + ".local" + ext

	for _, p := range []string{path, local} {
		fc, err := readFile(p)
		if err != nil {
			return nil, err
		}
		if fc == nil {
			continue
		}
		if err := fc.apply(cfg); err != nil {
			return nil, fmt.Errorf("config %s: %w", p, err)
		}
	}

	return cfg, nil
}

func readFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	var fc fileConfig
	if err := json5.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("could not parse config %s: %w", path, err)
	}
	return &fc, nil
}

func (fc *fileConfig) apply(cfg *Config) error {
	setString(&cfg.BaseURL, fc.BaseURL)
	setString(&cfg.Location, fc.Location)
	setString(&cfg.OutputDir, fc.OutputDir)
	setString(&cfg.UserAgent, fc.UserAgent)

	if len(fc.Professions) > 0 {
		cfg.Professions = NormalizeProfessions(fc.Professions)
	}
	if fc.Debug != nil {
		cfg.Debug = *fc.Debug
	}
	if fc.Headless != nil {
		cfg.Headless = *fc.Headless
	}
	if fc.MaxPages != nil {
		cfg.MaxPages = *fc.MaxPages
	}
	if fc.MaxRetries != nil {
		cfg.MaxRetries = *fc.MaxRetries
	}

	durations := []struct {
		raw string
		dst *time.Duration
	}{
		{fc.SettleDelay, &cfg.SettleDelay},
		{fc.ClickSettleDelay, &cfg.ClickSettleDelay},
		{fc.LoadMoreTimeout, &cfg.LoadMoreTimeout},
		{fc.NavigationTimeout, &cfg.NavigationTimeout},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", d.raw, err)
		}
		*d.dst = v
	}

	if pg := fc.Postgres; pg != nil {
		if pg.Enabled != nil {
			cfg.PostgresEnabled = *pg.Enabled
		}
		setString(&cfg.DBHost, pg.Host)
		setString(&cfg.DBUser, pg.User)
		setString(&cfg.DBPassword, pg.Password)
		setString(&cfg.DBName, pg.Name)
		setString(&cfg.DBSSLMode, pg.SSLMode)
		if pg.Port != 0 {
			cfg.DBPort = pg.Port
		}
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
