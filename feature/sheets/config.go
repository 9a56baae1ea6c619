package sheets

import (
	"time"
	_ "time/tzdata"
)

// Config holds configuration for the Google Sheets transport and sync runs.
type Config struct {
	// BaseURL is the host serving published and exported CSV.
	BaseURL string `mapstructure:"base_url" default:"https://docs.google.com"`
	// TimeoutSeconds bounds every upstream call (CSV fetch, Sheets API).
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// DefaultSheetName is used when a connect request names no tab.
	DefaultSheetName string `mapstructure:"default_sheet_name" default:"Sheet1"`
	// DefaultIntervalMinutes is the auto-sync interval when none is given.
	DefaultIntervalMinutes int `mapstructure:"default_interval_minutes" default:"60"`
	// AutoPushQueue is the capacity of the single-record push queue.
	AutoPushQueue int `mapstructure:"auto_push_queue" default:"100"`
	// LogLimit caps the number of sync logs returned.
	LogLimit int `mapstructure:"log_limit" default:"20"`
	// TimeZone is the IANA zone of "Updated At" cells typed without an offset.
	TimeZone string `mapstructure:"time_zone" default:"Asia/Jakarta"`
}

// Timeout returns the upstream call deadline.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Location resolves TimeZone. An empty or unknown zone falls back to UTC.
func (c Config) Location() *time.Location {
	if c.TimeZone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
