package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/stepgraph/internal/verify"
)

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	*RootOptions
	All bool // report every failure rather than the first
}

// VerifyFailure is one bad reference in JSON output.
type VerifyFailure struct {
	Code     string   `json:"code"`
	Record   uint64   `json:"record"`
	Type     string   `json:"type"`
	Field    string   `json:"field"`
	Target   uint64   `json:"target"`
	Expected []string `json:"expected"`
	Actual   string   `json:"actual,omitempty"`
	Message  string   `json:"message"`
}

// FileVerification is the verification outcome of one file.
type FileVerification struct {
	Path     string          `json:"path"`
	Valid    bool            `json:"valid"`
	Failures []VerifyFailure `json:"failures,omitempty"`
}

// VerifyResult holds the outcome for every file.
type VerifyResult struct {
	Files []FileVerification `json:"files"`
	Valid bool               `json:"valid"`
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify <file>...",
		Short: "Check that every reference resolves to an acceptable type",
		Long: `Parse files and check every reference field.

A reference must name an existing record whose type is one the field
accepts. By default the first failure per file is reported; --all (or
verify.mode: "all" in the config file) reports every failure.

Exit codes:
  0 - All files verified
  1 - One or more files have bad references
  2 - Command error (unreadable file, parse error)

Examples:
  stepgraph verify model.ifc
  stepgraph verify a.ifc b.ifc --all --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.All, "all", false, "report every failure")

	return cmd
}

func runVerify(cmd *cobra.Command, opts *VerifyOptions, paths []string) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	files, err := loadFiles(cmd.Context(), paths, opts.Config.ParseOptions())
	if err != nil {
		return reportLoadError(formatter, err)
	}

	mode := opts.Config.VerifyMode()
	if opts.All {
		mode = verify.ModeAll
	}
	formatter.VerboseLog("verifying %d file(s), mode %s", len(files), mode)

	result := VerifyResult{Valid: true}
	for _, lf := range files {
		fv := FileVerification{Path: lf.Path, Valid: true}
		for _, v := range verify.Errors(verify.Run(lf.File.Data, mode)) {
			fv.Valid = false
			fv.Failures = append(fv.Failures, toVerifyFailure(v))
		}
		result.Valid = result.Valid && fv.Valid
		result.Files = append(result.Files, fv)
	}

	if formatter.JSON() {
		if result.Valid {
			return formatter.Success(result)
		}
		_ = formatter.Failure(ErrCodeVerifyFailed, "verification failed", result)
		return NewExitError(ExitFailure, "verification failed")
	}

	for _, fv := range result.Files {
		if fv.Valid {
			fmt.Fprintf(formatter.Writer, "✓ %s\n", fv.Path)
			continue
		}
		fmt.Fprintf(formatter.Writer, "✗ %s\n", fv.Path)
		for _, f := range fv.Failures {
			fmt.Fprintf(formatter.Writer, "  %s\n", f.Message)
		}
	}
	if !result.Valid {
		return NewExitError(ExitFailure, "verification failed")
	}
	return nil
}

func toVerifyFailure(v *verify.VerificationError) VerifyFailure {
	return VerifyFailure{
		Code:     string(v.Code),
		Record:   uint64(v.Record),
		Type:     v.RecordType,
		Field:    v.Field,
		Target:   uint64(v.Target),
		Expected: v.Expected,
		Actual:   v.Actual,
		Message:  v.Error(),
	}
}
