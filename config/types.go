package config

import "time"

// ServerConfig contains the status API server configuration.
type ServerConfig struct {
	Port int `yaml:"port" validate:"gte=0"`
}

// SourceConfig describes one upstream GTFS-Realtime feed endpoint.
type SourceConfig struct {
	Name string `yaml:"name" validate:"required"`
	URL  string `yaml:"url" validate:"required,url"`
}

// FeedsConfig contains fetch and cache tuning for the upstream feeds.
type FeedsConfig struct {
	Sources            []SourceConfig `yaml:"sources" validate:"required,min=1,dive"`
	PollIntervalMS     int            `yaml:"pollIntervalMS" validate:"gte=0"`
	MinFetchIntervalMS int            `yaml:"minFetchIntervalMS" validate:"gte=0"`
	ConnectTimeoutMS   int            `yaml:"connectTimeoutMS" validate:"gte=0"`
	ReadTimeoutMS      int            `yaml:"readTimeoutMS" validate:"gte=0"`
}

// PollInterval returns the poll period as a duration.
func (f FeedsConfig) PollInterval() time.Duration {
	return time.Duration(f.PollIntervalMS) * time.Millisecond
}

// MinFetchInterval returns the per-source freshness window as a duration.
func (f FeedsConfig) MinFetchInterval() time.Duration {
	return time.Duration(f.MinFetchIntervalMS) * time.Millisecond
}

// ConnectTimeout returns the per-source connect bound as a duration.
func (f FeedsConfig) ConnectTimeout() time.Duration {
	return time.Duration(f.ConnectTimeoutMS) * time.Millisecond
}

// ReadTimeout returns the per-source transfer bound as a duration.
func (f FeedsConfig) ReadTimeout() time.Duration {
	return time.Duration(f.ReadTimeoutMS) * time.Millisecond
}

// SerialConfig contains the downstream board transport configuration. An
// empty port selects console preview mode.
type SerialConfig struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud" validate:"gte=0"`
}

// BoardConfig contains frame emission policy.
type BoardConfig struct {
	// SendEmptyFrames controls whether a cycle with no occupied stations
	// still transmits an all-off frame so the board clears stale pixels.
	SendEmptyFrames *bool `yaml:"sendEmptyFrames"`
}

// SendEmpty resolves the empty-frame policy, defaulting to true.
func (b BoardConfig) SendEmpty() bool {
	return b.SendEmptyFrames == nil || *b.SendEmptyFrames
}

// DataConfig contains paths to the static lookup inputs.
type DataConfig struct {
	StopsPath     string `yaml:"stops" validate:"required"`
	ComplexesPath string `yaml:"complexes" validate:"required"`
	LayoutPath    string `yaml:"layout" validate:"required"`
	CachePath     string `yaml:"cache"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Server ServerConfig `yaml:"server"`
	Feeds  FeedsConfig  `yaml:"feeds" validate:"required"`
	Serial SerialConfig `yaml:"serial"`
	Board  BoardConfig  `yaml:"board"`
	Data   DataConfig   `yaml:"data" validate:"required"`

	// APIKey is resolved from the MTA_API_KEY environment variable.
	APIKey string `yaml:"-"`
}
