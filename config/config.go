package config

import (
	"fmt"
	"net/url"
	"time"
)

type Config struct {
	BaseURL     string
	Location    string
	Professions []string
	OutputDir   string
	Debug       bool
	Headless    bool
	UserAgent   string

	// SettleDelay is slept after navigating to a results page and
	// ClickSettleDelay after each click on "load more".
	SettleDelay       time.Duration
	ClickSettleDelay  time.Duration
	LoadMoreTimeout   time.Duration
	NavigationTimeout time.Duration

	// MaxPages caps the snapshots taken per profession. 0 means unlimited.
	MaxPages int

	MaxRetries      int
	PostgresEnabled bool
	DBHost          string
	DBPort          int
	DBUser          string
	DBPassword      string
	DBName          string
	DBSSLMode       string
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:           "https://www.gelbeseiten.de/branchen/",
		Professions:       append([]string(nil), DefaultProfessions...),
		OutputDir:         "results",
		Headless:          true,
		SettleDelay:       3 * time.Second,
		ClickSettleDelay:  2 * time.Second,
		LoadMoreTimeout:   10 * time.Second,
		NavigationTimeout: 60 * time.Second,
		MaxRetries:        3,
		DBHost:            "localhost",
		DBPort:            5432,
		DBUser:            "postgres",
		DBPassword:        "postgres",
		DBName:            "gelbeseiten",
		DBSSLMode:         "disable",
	}
}

// Validate reports the first setting that would make a run impossible.
func (c *Config) Validate() error {
	if c.Location == "" {
		return fmt.Errorf("location is required")
	}
	if len(c.Professions) == 0 {
		return fmt.Errorf("at least one profession is required")
	}
	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		return fmt.Errorf("invalid base url %q: %w", c.BaseURL, err)
	}
	if c.MaxPages < 0 {
		return fmt.Errorf("max pages must not be negative, got %d", c.MaxPages)
	}
	if c.LoadMoreTimeout <= 0 {
		return fmt.Errorf("load more timeout must be positive")
	}
	return nil
}

// PostgresDSN builds the connection string for the Postgres sink.
func (c *Config) PostgresDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:     c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}
