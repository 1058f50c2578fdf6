// Package config loads the YAML configuration file, validating it
// against an embedded CUE schema before decoding.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults applied before decoding; absent keys keep these values.
const (
	DefaultCredentialsFile = "credentials.json"
	DefaultTokenFile       = "token.json"
	DefaultStateDB         = "~/.local/share/calsync/sync_state.db"
	DefaultDaysBack        = 7
	DefaultDaysAhead       = 90
)

// Config is the decoded configuration file.
type Config struct {
	CredentialsFile  string           `yaml:"credentials_file"`
	TokenFile        string           `yaml:"token_file"`
	TargetCalendarID string           `yaml:"target_calendar_id"`
	StateDB          string           `yaml:"state_db"`
	SourceCalendars  []SourceCalendar `yaml:"source_calendars"`
	Sync             SyncOptions      `yaml:"sync"`
}

// SourceCalendar names one read-only calendar to propagate.
type SourceCalendar struct {
	Name       string `yaml:"name"`
	CalendarID string `yaml:"calendar_id"`
}

// SyncOptions tune the sync passes.
type SyncOptions struct {
	EventPrefix          string `yaml:"event_prefix"`
	SyncDescription      bool   `yaml:"sync_description"`
	DeleteOnSourceDelete bool   `yaml:"delete_on_source_delete"`
	DaysBack             int    `yaml:"days_back"`
	DaysAhead            int    `yaml:"days_ahead"`
}

// Load reads, validates, and decodes the configuration at path.
// Missing file is a setup error with copy-the-example guidance.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s (copy config.yaml.example to config.yaml and customize it)", path)
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := validate(path, data); err != nil {
		return nil, err
	}

	cfg := Config{
		CredentialsFile: DefaultCredentialsFile,
		TokenFile:       DefaultTokenFile,
		StateDB:         DefaultStateDB,
		Sync: SyncOptions{
			SyncDescription: true,
			DaysBack:        DefaultDaysBack,
			DaysAhead:       DefaultDaysAhead,
		},
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg.StateDB = ExpandHome(cfg.StateDB)
	cfg.CredentialsFile = ExpandHome(cfg.CredentialsFile)
	cfg.TokenFile = ExpandHome(cfg.TokenFile)

	return &cfg, nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
// Paths without the prefix pass through unchanged, as do paths when
// the home directory cannot be determined.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
