package cli

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// TypeCount is the number of records of one type.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// FileStats summarizes one file.
type FileStats struct {
	Path    string      `json:"path"`
	Schema  []string    `json:"schema"`
	Records int         `json:"records"`
	Types   []TypeCount `json:"types"`
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file>...",
		Short: "Count records per type",
		Long: `Parse files and print the number of records of each type.

Opaque records are counted under their keyword.

Examples:
  stepgraph stats model.ifc
  stepgraph stats *.ifc --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, rootOpts, args)
		},
	}
}

func runStats(cmd *cobra.Command, opts *RootOptions, paths []string) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	files, err := loadFiles(cmd.Context(), paths, opts.Config.ParseOptions())
	if err != nil {
		return reportLoadError(formatter, err)
	}

	stats := make([]FileStats, len(files))
	for i, lf := range files {
		fs := FileStats{Path: lf.Path, Records: lf.File.Data.Len()}
		for _, s := range lf.File.Header.Schema.Schemas {
			fs.Schema = append(fs.Schema, string(s))
		}
		for name, n := range lf.File.TypeCounts() {
			fs.Types = append(fs.Types, TypeCount{Type: name, Count: n})
		}
		sort.Slice(fs.Types, func(a, b int) bool { return fs.Types[a].Type < fs.Types[b].Type })
		stats[i] = fs
	}

	if formatter.JSON() {
		return formatter.Success(stats)
	}

	w := tabwriter.NewWriter(formatter.Writer, 0, 0, 2, ' ', 0)
	for i, fs := range stats {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s\t%v\t%d records\n", fs.Path, fs.Schema, fs.Records)
		for _, tc := range fs.Types {
			fmt.Fprintf(w, "  %s\t%d\n", tc.Type, tc.Count)
		}
	}
	return w.Flush()
}
