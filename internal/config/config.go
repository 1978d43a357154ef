package config

import (
	"os"
	"time"

	"github.com/GregMSThompson/covid-tracker/internal/client/covidtracking"
)

const (
	defaultPort            = "8080"
	defaultFetchTimeout    = 30 * time.Second
	defaultRefreshInterval = 6 * time.Hour
)

type Config struct {
	ProjectID       string
	Region          string
	LogLevel        string
	Port            string
	CovidAPIBaseURL string
	FetchTimeout    time.Duration
	RefreshInterval time.Duration // 0 disables background refresh
}

func New() *Config {
	return &Config{
		ProjectID:       os.Getenv("PROJECTID"),
		Region:          os.Getenv("REGION"),
		LogLevel:        os.Getenv("LOGLEVEL"),
		Port:            getOr("PORT", defaultPort),
		CovidAPIBaseURL: getOr("COVIDAPIBASEURL", covidtracking.DefaultBaseURL),
		FetchTimeout:    getDuration("FETCHTIMEOUT", defaultFetchTimeout),
		RefreshInterval: getDuration("REFRESHINTERVAL", defaultRefreshInterval),
	}
}

func getOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration falls back when the variable is unset, unparsable or negative.
func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if v == "0" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}
