package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/stepgraph/internal/verify"
)

// Scenario is one conformance case.
type Scenario struct {
	// Name identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	Description string `yaml:"description"`

	Input Input `yaml:"input"`

	// Strict disables opaque fallback for records that fail their grammar.
	Strict bool `yaml:"strict,omitempty"`

	Expect Expect `yaml:"expect"`
}

// Input is the file under test. Exactly one of Path and Text is set.
type Input struct {
	// Path is resolved relative to the scenario file.
	Path string `yaml:"path,omitempty"`
	Text string `yaml:"text,omitempty"`
}

// Expect lists the checks run against the parsed file.
type Expect struct {
	ParseError string         `yaml:"parse_error,omitempty"`
	Roundtrip  bool           `yaml:"roundtrip,omitempty"`
	Verify     *VerifyExpect  `yaml:"verify,omitempty"`
	Counts     map[string]int `yaml:"counts,omitempty"`
}

// VerifyExpect is the expected verification outcome. When OK is false the
// first failure must match the non-empty fields.
type VerifyExpect struct {
	OK     bool   `yaml:"ok"`
	Code   string `yaml:"code,omitempty"`
	Record uint64 `yaml:"record,omitempty"`
	Field  string `yaml:"field,omitempty"`
}

// LoadScenario reads a scenario file. Unknown fields are rejected and an
// input path is resolved against the scenario's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if p := scenario.Input.Path; p != "" && !filepath.IsAbs(p) {
		scenario.Input.Path = filepath.Join(filepath.Dir(path), p)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &scenario, nil
}

// LoadScenarios loads every .yaml file in dir whose scenario name contains
// filter, sorted by name.
func LoadScenarios(dir, filter string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	var out []*Scenario
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, err
		}
		if filter != "" && !strings.Contains(s.Name, filter) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch {
	case s.Input.Path == "" && s.Input.Text == "":
		return fmt.Errorf("input: path or text is required")
	case s.Input.Path != "" && s.Input.Text != "":
		return fmt.Errorf("input: path and text are mutually exclusive")
	}
	if s.Input.Path != "" {
		if _, err := os.Stat(s.Input.Path); os.IsNotExist(err) {
			return fmt.Errorf("input file not found: %s", s.Input.Path)
		}
	}

	e := s.Expect
	if e.ParseError != "" {
		if e.Roundtrip || e.Verify != nil || len(e.Counts) > 0 {
			return fmt.Errorf("expect: parse_error excludes other expectations")
		}
		return nil
	}
	if !e.Roundtrip && e.Verify == nil && len(e.Counts) == 0 {
		return fmt.Errorf("expect: at least one expectation is required")
	}
	if v := e.Verify; v != nil {
		if v.OK && (v.Code != "" || v.Record != 0 || v.Field != "") {
			return fmt.Errorf("expect.verify: ok excludes code, record and field")
		}
		switch verify.ErrorCode(v.Code) {
		case "", verify.ErrCodeUnknownIdentifier, verify.ErrCodeUnexpectedType:
		default:
			return fmt.Errorf("expect.verify: unknown code %q", v.Code)
		}
	}
	for name, n := range e.Counts {
		if n < 0 {
			return fmt.Errorf("expect.counts[%s]: must be non-negative", name)
		}
	}
	return nil
}

// text returns the input file text.
func (s *Scenario) text() (string, error) {
	if s.Input.Text != "" {
		return s.Input.Text, nil
	}
	data, err := os.ReadFile(s.Input.Path)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}
