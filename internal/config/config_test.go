package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.False(t, cfg.Database.Enabled)
	assert.False(t, cfg.Redis.Enabled)

	slots, err := cfg.Slots.Domain()
	require.NoError(t, err)
	assert.Len(t, slots.Catalogue(), 12)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9000

[database]
enabled = true
host = "db"
dbname = "tutors"
password = "from-file"

[slots]
day_start = "8:00 AM"
day_end = "12:00"
duration_minutes = 30
min_booking_notice_minutes = 120
timezone = "UTC"
`)

	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("AUTH_JWT_SECRET", "secret")
	t.Setenv("HTTP_PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.HTTPPort)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "secret", cfg.Auth.JWTSecret)
	assert.Contains(t, cfg.Database.DSN(), "host=db")
	assert.Contains(t, cfg.Database.DSN(), "dbname=tutors")

	slots, err := cfg.Slots.Domain()
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("08:00"), slots.DayStart)
	assert.Len(t, slots.Catalogue(), 8)
	assert.Equal(t, 120, slots.MinBookingNoticeMinutes)

	loc, err := cfg.Slots.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"broken toml":     "[server\nhttp_port = 1",
		"bad port":        "[server]\nhttp_port = 70000",
		"bad catalogue":   "[slots]\nday_start = \"22:00\"\nday_end = \"21:00\"\nduration_minutes = 60",
		"bad timezone":    "[slots]\ntimezone = \"Mars/Olympus\"",
		"redis no ttl":    "[redis]\nenabled = true\nlock_ttl = 0",
		"db without host": "[database]\nenabled = true\nhost = \"\"",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	t.Setenv("HTTP_PORT", "eighty")
	_, err := Load("")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
