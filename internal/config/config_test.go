package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stepgraph/internal/verify"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.False(t, c.Parse.Strict)
	assert.Equal(t, verify.ModeFirst, c.VerifyMode())
	assert.Equal(t, slog.LevelInfo, c.SlogLevel())
	assert.Equal(t, "stepgraph.db", c.Archive.Path)
}

func TestParseOverrides(t *testing.T) {
	src := `
parse: strict: true
verify: mode: "all"
log: level: "debug"
archive: path: "/tmp/models.db"
`
	c, err := Parse("stepgraph.cue", []byte(src))
	require.NoError(t, err)
	assert.True(t, c.ParseOptions().Strict)
	assert.Equal(t, verify.ModeAll, c.VerifyMode())
	assert.Equal(t, slog.LevelDebug, c.SlogLevel())
	assert.Equal(t, "/tmp/models.db", c.Archive.Path)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"bad mode", `verify: mode: "some"`},
		{"bad type", `parse: strict: "yes"`},
		{"unknown field", `cache: size: 10`},
		{"empty path", `archive: path: ""`},
		{"syntax", `parse: {`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.cue", []byte(tt.src))
			require.Error(t, err)
			var ce *ConfigError
			assert.ErrorAs(t, err, &ce)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stepgraph.cue")
	require.NoError(t, os.WriteFile(path, []byte(`log: level: "warn"`), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, c.SlogLevel())
	assert.Equal(t, "first", c.Verify.Mode)

	c, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	_, err = Load(filepath.Join(t.TempDir(), "missing.cue"))
	assert.Error(t, err)
}
