package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes a config file into a temp dir and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
credentials_file: creds.json
token_file: tok.json
target_calendar_id: me@example.com
state_db: ./state.db
source_calendars:
  - name: Work
    calendar_id: work@example.com
  - name: Team
    calendar_id: team@group.calendar.google.com
sync:
  event_prefix: "[sync] "
  sync_description: false
  delete_on_source_delete: true
  days_back: 14
  days_ahead: 30
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "creds.json", cfg.CredentialsFile)
	assert.Equal(t, "tok.json", cfg.TokenFile)
	assert.Equal(t, "me@example.com", cfg.TargetCalendarID)
	assert.Equal(t, "./state.db", cfg.StateDB)
	require.Len(t, cfg.SourceCalendars, 2)
	assert.Equal(t, "Work", cfg.SourceCalendars[0].Name)
	assert.Equal(t, "work@example.com", cfg.SourceCalendars[0].CalendarID)
	assert.Equal(t, "[sync] ", cfg.Sync.EventPrefix)
	assert.False(t, cfg.Sync.SyncDescription)
	assert.True(t, cfg.Sync.DeleteOnSourceDelete)
	assert.Equal(t, 14, cfg.Sync.DaysBack)
	assert.Equal(t, 30, cfg.Sync.DaysAhead)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
target_calendar_id: me@example.com
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultCredentialsFile, cfg.CredentialsFile)
	assert.Equal(t, DefaultTokenFile, cfg.TokenFile)
	assert.True(t, cfg.Sync.SyncDescription, "description copying defaults on")
	assert.False(t, cfg.Sync.DeleteOnSourceDelete, "deletion propagation defaults off")
	assert.Equal(t, DefaultDaysBack, cfg.Sync.DaysBack)
	assert.Equal(t, DefaultDaysAhead, cfg.Sync.DaysAhead)
	assert.Empty(t, cfg.Sync.EventPrefix)
	assert.Empty(t, cfg.SourceCalendars)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_MissingTargetCalendar(t *testing.T) {
	path := writeConfig(t, `
source_calendars:
  - name: Work
    calendar_id: work@example.com
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target_calendar_id")
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	path := writeConfig(t, `
target_calendar_id: me@example.com
target_calender_id: typo@example.com
`)

	_, err := Load(path)
	require.Error(t, err, "unknown keys must fail validation, not be dropped")
	assert.Contains(t, err.Error(), "target_calender_id")
}

func TestLoad_NegativeWindowRejected(t *testing.T) {
	path := writeConfig(t, `
target_calendar_id: me@example.com
sync:
  days_back: -1
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "days_back")
}

func TestLoad_SourceCalendarMissingID(t *testing.T) {
	path := writeConfig(t, `
target_calendar_id: me@example.com
source_calendars:
  - name: Work
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_NotYAML(t *testing.T) {
	path := writeConfig(t, "{{{::not yaml")

	_, err := Load(path)
	require.Error(t, err)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "x", "y.db"), ExpandHome("~/x/y.db"))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, "/abs/path.db", ExpandHome("/abs/path.db"))
	assert.Equal(t, "rel/path.db", ExpandHome("rel/path.db"))
	assert.Equal(t, "~weird", ExpandHome("~weird"))
}
