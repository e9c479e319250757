package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2099-01-05 понедельник, дата заведомо в будущем
const futureMonday = "2099-01-05"

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSlotsCommand_EmptyAvailability(t *testing.T) {
	cfg := writeConfig(t, "[logs]\nlevel = \"error\"\n")

	out, err := run(t, "slots", "-c", cfg, "--tutor", "1", "--date", futureMonday)
	require.NoError(t, err)

	assert.Contains(t, out, "2099-01-05 (Monday)")
	assert.Contains(t, out, "9:00 AM")
	assert.Contains(t, out, "8:00 PM")
	assert.Equal(t, 12, strings.Count(out, "outside_availability"))
}

func TestBookCommand_SlotNotOffered(t *testing.T) {
	cfg := writeConfig(t, "[logs]\nlevel = \"error\"\n")

	_, err := run(t, "book", "-c", cfg, "--tutor", "1", "--student", "2", "--date", futureMonday, "--slot", "9:00 AM")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not offered")
}

func TestSeedCommand(t *testing.T) {
	cfg := writeConfig(t, "[logs]\nlevel = \"error\"\n")

	out, err := run(t, "seed", "-c", cfg, "--tutors", "3", "--bookings", "20", "--seed", "42")
	require.NoError(t, err)

	assert.Contains(t, out, "TUTOR")
	assert.Contains(t, out, "bookings:")
}

func TestMigrateCommand_RequiresDatabase(t *testing.T) {
	cfg := writeConfig(t, "[database]\nenabled = false\n")

	_, err := run(t, "migrate", "version", "-c", cfg)
	assert.ErrorIs(t, err, errDatabaseDisabled)
}

func TestRequiredFlags(t *testing.T) {
	_, err := run(t, "slots", "--tutor", "1")
	assert.Error(t, err)
}
