package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads and validates the application configuration. When no
// explicit path is given the usual locations are probed.
func LoadAppConfig(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{"config.yml", "./deploy/config.yml"}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return err
	}

	applyDefaults(&cfg)
	cfg.APIKey = os.Getenv("MTA_API_KEY")
	Config = cfg
	return nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Feeds.PollIntervalMS == 0 {
		cfg.Feeds.PollIntervalMS = 1000
	}
	if cfg.Feeds.MinFetchIntervalMS == 0 {
		cfg.Feeds.MinFetchIntervalMS = 5000
	}
	if cfg.Feeds.ConnectTimeoutMS == 0 {
		cfg.Feeds.ConnectTimeoutMS = 1500
	}
	if cfg.Feeds.ReadTimeoutMS == 0 {
		cfg.Feeds.ReadTimeoutMS = 4000
	}
	if cfg.Serial.Baud == 0 {
		cfg.Serial.Baud = 2_000_000
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 16181
	}
}
