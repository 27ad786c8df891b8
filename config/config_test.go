package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleConfig = `server:
  port: 16181
feeds:
  sources:
    - name: ace
      url: https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/nyct%2Fgtfs-ace
    - name: bdfm
      url: https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/nyct%2Fgtfs-bdfm
  pollIntervalMS: 1000
serial:
  port: /dev/ttyUSB0
  baud: 2000000
data:
  stops: data/stops.txt
  complexes: data/stations.csv
  layout: data/default_layout.csv
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadAppConfig(t *testing.T) {
	t.Setenv("MTA_API_KEY", "secret-key")
	if err := LoadAppConfig(writeConfig(t, sampleConfig)); err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if len(Config.Feeds.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(Config.Feeds.Sources))
	}
	if Config.Feeds.Sources[0].Name != "ace" {
		t.Errorf("unexpected first source: %+v", Config.Feeds.Sources[0])
	}
	if Config.APIKey != "secret-key" {
		t.Errorf("API key not taken from environment: %q", Config.APIKey)
	}
	if Config.Serial.Port != "/dev/ttyUSB0" || Config.Serial.Baud != 2_000_000 {
		t.Errorf("serial config mismatch: %+v", Config.Serial)
	}
}

func TestLoadAppConfigDefaults(t *testing.T) {
	minimal := `feeds:
  sources:
    - name: all
      url: https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/nyct%2Fgtfs
data:
  stops: data/stops.txt
  complexes: data/stations.csv
  layout: data/default_layout.csv
`
	if err := LoadAppConfig(writeConfig(t, minimal)); err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if Config.Feeds.PollIntervalMS != 1000 {
		t.Errorf("expected default poll interval, got %d", Config.Feeds.PollIntervalMS)
	}
	if Config.Feeds.MinFetchIntervalMS != 5000 {
		t.Errorf("expected default min fetch interval, got %d", Config.Feeds.MinFetchIntervalMS)
	}
	if Config.Serial.Baud != 2_000_000 {
		t.Errorf("expected default baud, got %d", Config.Serial.Baud)
	}
	if Config.Server.Port != 16181 {
		t.Errorf("expected default port, got %d", Config.Server.Port)
	}
	if !Config.Board.SendEmpty() {
		t.Errorf("empty-frame policy must default to true")
	}
}

func TestLoadAppConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing sources", content: "feeds:\n  pollIntervalMS: 5\ndata:\n  stops: a\n  complexes: b\n  layout: c\n"},
		{name: "bad url", content: "feeds:\n  sources:\n    - name: x\n      url: not-a-url\ndata:\n  stops: a\n  complexes: b\n  layout: c\n"},
		{name: "missing data paths", content: "feeds:\n  sources:\n    - name: x\n      url: https://example.test/f\n"},
		{name: "not yaml", content: "{{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := LoadAppConfig(writeConfig(t, tt.content)); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestBoardConfigSendEmptyExplicit(t *testing.T) {
	off := sampleConfig + "board:\n  sendEmptyFrames: false\n"
	if err := LoadAppConfig(writeConfig(t, off)); err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if Config.Board.SendEmpty() {
		t.Errorf("explicit false must disable empty frames")
	}
}
