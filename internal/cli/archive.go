package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/stepgraph/internal/archive"
)

// ArchiveOptions holds flags for the archive command.
type ArchiveOptions struct {
	*RootOptions
	DBPath string
}

// ArchivedFile reports where a file was stored.
type ArchivedFile struct {
	Path     string `json:"path"`
	FileID   int64  `json:"file_id"`
	Inserted bool   `json:"inserted"`
}

// NewArchiveCommand creates the archive command.
func NewArchiveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ArchiveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "archive <file>...",
		Short: "Store files in a SQLite archive",
		Long: `Parse files and store their records and references in a SQLite
database. A file whose text is already archived is not stored twice.

The database path defaults to archive.path from the config file.

Examples:
  stepgraph archive model.ifc
  stepgraph archive a.ifc b.ifc --db models.db`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArchive(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "archive database path")

	return cmd
}

func runArchive(cmd *cobra.Command, opts *ArchiveOptions, paths []string) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	files, err := loadFiles(cmd.Context(), paths, opts.Config.ParseOptions())
	if err != nil {
		return reportLoadError(formatter, err)
	}

	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = opts.Config.Archive.Path
	}
	a, err := archive.Open(dbPath)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeArchive, err.Error())
	}
	defer a.Close()
	formatter.VerboseLog("archive: %s", dbPath)

	var results []ArchivedFile
	for _, lf := range files {
		id, inserted, err := a.WriteFile(cmd.Context(), filepath.Base(lf.Path), lf.File)
		if err != nil {
			return formatter.fail(ExitCommandError, ErrCodeArchive, fmt.Sprintf("%s: %v", lf.Path, err))
		}
		results = append(results, ArchivedFile{Path: lf.Path, FileID: id, Inserted: inserted})
	}

	if formatter.JSON() {
		return formatter.Success(results)
	}
	for _, r := range results {
		status := "stored"
		if !r.Inserted {
			status = "already archived"
		}
		fmt.Fprintf(formatter.Writer, "✓ %s (file %d, %s)\n", r.Path, r.FileID, status)
	}
	return nil
}
