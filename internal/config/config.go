// Package config loads stepgraph settings from a CUE file validated
// against an embedded schema. Missing settings take the schema defaults.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/stepgraph/internal/stepfile"
	"github.com/roach88/stepgraph/internal/verify"
)

//go:embed schema.cue
var schemaSource string

// Config is the validated configuration.
type Config struct {
	Parse   ParseConfig   `json:"parse"`
	Verify  VerifyConfig  `json:"verify"`
	Log     LogConfig     `json:"log"`
	Archive ArchiveConfig `json:"archive"`
}

type ParseConfig struct {
	Strict bool `json:"strict"`
}

type VerifyConfig struct {
	Mode string `json:"mode"`
}

type LogConfig struct {
	Level string `json:"level"`
}

type ArchiveConfig struct {
	Path string `json:"path"`
}

// ConfigError reports an invalid configuration, with its CUE position
// when one is known.
type ConfigError struct {
	Message string
	Pos     token.Pos
}

func (e *ConfigError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: config: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return "config: " + e.Message
}

// Default returns the schema defaults.
func Default() Config {
	c, err := Parse("default.cue", nil)
	if err != nil {
		panic(fmt.Sprintf("config: embedded schema: %v", err))
	}
	return c
}

// Load reads and validates the file at path. An empty path yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return Parse(path, src)
}

// Parse validates src, named name in error positions, against the schema.
func Parse(name string, src []byte) (Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, formatCUEError(err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	user := ctx.CompileBytes(src, cue.Filename(name))
	if err := user.Err(); err != nil {
		return Config{}, formatCUEError(err)
	}

	v := def.Unify(user)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return Config{}, formatCUEError(err)
	}

	var c Config
	if err := v.Decode(&c); err != nil {
		return Config{}, formatCUEError(err)
	}
	return c, nil
}

// formatCUEError keeps the first CUE error and its position.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &ConfigError{Message: err.Error()}
	}
	first := errs[0]
	ce := &ConfigError{Message: first.Error()}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		ce.Pos = positions[0]
	}
	return ce
}

// ParseOptions returns the stepfile options the config selects.
func (c Config) ParseOptions() stepfile.Options {
	return stepfile.Options{Strict: c.Parse.Strict}
}

// VerifyMode returns the configured verification mode.
func (c Config) VerifyMode() verify.Mode {
	return verify.Mode(c.Verify.Mode)
}

// SlogLevel returns the configured log level.
func (c Config) SlogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
