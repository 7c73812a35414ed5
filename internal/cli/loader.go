package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/stepgraph/internal/stepfile"
)

// loadedFile is one file named on the command line.
type loadedFile struct {
	Path string
	Text string
	File *stepfile.File
}

// LoadError reports a file that could not be read or parsed.
type LoadError struct {
	Code    string
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// loadFiles reads and parses paths concurrently. Results keep argument
// order. The first failure cancels files not yet started.
func loadFiles(ctx context.Context, paths []string, opts stepfile.Options) ([]loadedFile, error) {
	out := make([]loadedFile, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			lf, err := loadFile(path, opts)
			if err != nil {
				return err
			}
			out[i] = lf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func loadFile(path string, opts stepfile.Options) (loadedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := ErrCodeGeneric
		if errors.Is(err, fs.ErrNotExist) {
			code = ErrCodeNotFound
		}
		return loadedFile{}, &LoadError{Code: code, Path: path, Message: "cannot read file", Err: err}
	}

	f, err := stepfile.ParseWith(string(data), opts)
	if err != nil {
		return loadedFile{}, &LoadError{Code: ErrCodeParseFailed, Path: path, Message: err.Error(), Err: err}
	}
	slog.Debug("loaded file", "path", path, "records", f.Data.Len())
	return loadedFile{Path: path, Text: string(data), File: f}, nil
}

// reportLoadError writes err through the formatter and converts it to a
// command error.
func reportLoadError(f *OutputFormatter, err error) error {
	var le *LoadError
	if errors.As(err, &le) {
		return f.fail(ExitCommandError, le.Code, le.Error())
	}
	return f.fail(ExitCommandError, ErrCodeGeneric, err.Error())
}
