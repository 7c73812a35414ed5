package harness

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/roach88/stepgraph/internal/stepfile"
	"github.com/roach88/stepgraph/internal/verify"
)

// Result is the outcome of one scenario.
type Result struct {
	// Pass is true when every expectation holds.
	Pass bool `json:"pass"`

	// Errors holds one message per failed expectation.
	Errors []string `json:"errors,omitempty"`

	// Output is the serialized file, empty when parsing failed.
	Output string `json:"output,omitempty"`

	// Counts is the number of records per type name.
	Counts map[string]int `json:"counts,omitempty"`

	// Failures holds every verification failure in identifier order.
	Failures []string `json:"failures,omitempty"`
}

// NewResult creates a passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
		Counts: map[string]int{},
	}
}

// AddError records a failed expectation.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Run parses the scenario input and checks its expectations. The returned
// error reports problems running the scenario, not failed expectations.
func Run(scenario *Scenario) (*Result, error) {
	text, err := scenario.text()
	if err != nil {
		return nil, err
	}

	result := NewResult()
	f, parseErr := stepfile.ParseWith(text, stepfile.Options{Strict: scenario.Strict})

	if want := scenario.Expect.ParseError; want != "" {
		if err := assertParseError(parseErr, want); err != nil {
			result.AddError(err.Error())
		}
		logResult(scenario, result)
		return result, nil
	}
	if parseErr != nil {
		result.AddError((&AssertionError{
			Type:     "parse",
			Expected: "file parses",
			Actual:   parseErr.Error(),
		}).Error())
		logResult(scenario, result)
		return result, nil
	}

	result.Output = f.String()
	result.Counts = f.TypeCounts()
	for v := range verify.Failures(f.Data) {
		result.Failures = append(result.Failures, v.Error())
	}

	for _, err := range []error{
		assertRoundTrip(scenario.Expect.Roundtrip, text, result.Output),
		assertVerify(scenario.Expect.Verify, verify.Verify(f.Data)),
		assertCounts(scenario.Expect.Counts, result.Counts),
	} {
		if err != nil {
			result.AddError(err.Error())
		}
	}

	logResult(scenario, result)
	return result, nil
}

func logResult(s *Scenario, r *Result) {
	slog.Debug("scenario finished", "name", s.Name, "pass", r.Pass, "errors", len(r.Errors))
}

// AssertionError describes one failed expectation.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Type, e.Expected, e.Actual)
}

func assertParseError(err error, want string) error {
	if err == nil {
		return &AssertionError{
			Type:     "parse_error",
			Expected: fmt.Sprintf("error containing %q", want),
			Actual:   "no error",
		}
	}
	if !strings.Contains(err.Error(), want) {
		return &AssertionError{
			Type:     "parse_error",
			Expected: fmt.Sprintf("error containing %q", want),
			Actual:   err.Error(),
		}
	}
	return nil
}

func assertRoundTrip(enabled bool, input, output string) error {
	if !enabled || input == output {
		return nil
	}
	line := firstDifference(input, output)
	return &AssertionError{
		Type:     "roundtrip",
		Expected: fmt.Sprintf("identical output, line %d %q", line.n, line.want),
		Actual:   fmt.Sprintf("%q", line.got),
	}
}

type lineDiff struct {
	n         int
	want, got string
}

func firstDifference(a, b string) lineDiff {
	al := strings.Split(a, "\n")
	bl := strings.Split(b, "\n")
	for i := 0; i < max(len(al), len(bl)); i++ {
		x, y := lineAt(al, i), lineAt(bl, i)
		if x != y {
			return lineDiff{n: i + 1, want: x, got: y}
		}
	}
	return lineDiff{}
}

func lineAt(lines []string, i int) string {
	if i >= len(lines) {
		return "<end of text>"
	}
	return lines[i]
}

func assertVerify(exp *VerifyExpect, err error) error {
	if exp == nil {
		return nil
	}
	if exp.OK {
		if err != nil {
			return &AssertionError{Type: "verify", Expected: "ok", Actual: err.Error()}
		}
		return nil
	}
	if err == nil {
		return &AssertionError{Type: "verify", Expected: "failure", Actual: "ok"}
	}

	var v *verify.VerificationError
	if !errors.As(err, &v) {
		return &AssertionError{Type: "verify", Expected: "verification error", Actual: err.Error()}
	}
	if (exp.Code != "" && string(v.Code) != exp.Code) ||
		(exp.Record != 0 && uint64(v.Record) != exp.Record) ||
		(exp.Field != "" && v.Field != exp.Field) {
		return &AssertionError{
			Type:     "verify",
			Expected: fmt.Sprintf("code=%q record=%d field=%q", exp.Code, exp.Record, exp.Field),
			Actual:   v.Error(),
		}
	}
	return nil
}

func assertCounts(want, got map[string]int) error {
	var bad []string
	for name, n := range want {
		if got[name] != n {
			bad = append(bad, fmt.Sprintf("%s=%d (want %d)", name, got[name], n))
		}
	}
	if len(bad) == 0 {
		return nil
	}
	sort.Strings(bad)
	return &AssertionError{
		Type:     "counts",
		Expected: "matching counts",
		Actual:   strings.Join(bad, ", "),
	}
}
