package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/wall_roundtrip.yaml")
	require.NoError(t, err)

	assert.Equal(t, "wall_roundtrip", s.Name)
	assert.NotEmpty(t, s.Description)
	assert.Equal(t, filepath.Join("testdata", "fixtures", "wall.ifc"), s.Input.Path)
	assert.True(t, s.Expect.Roundtrip)
	require.NotNil(t, s.Expect.Verify)
	assert.True(t, s.Expect.Verify.OK)
	assert.Equal(t, 4, s.Expect.Counts["LocalPlacement"])
}

func TestLoadScenario_InlineText(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/location_wrong_type.yaml")
	require.NoError(t, err)

	assert.Empty(t, s.Input.Path)
	assert.Contains(t, s.Input.Text, "#9= IFCAXIS2PLACEMENT3D(#7,#7,$);\n")
	assert.Equal(t, uint64(9), s.Expect.Verify.Record)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "typo.yaml", `
name: typo
description: "misspelled expectation"
input:
  text: "x"
expect:
  round_trip: true
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing name",
			content: `
description: "d"
input: {text: "x"}
expect: {roundtrip: true}
`,
			wantErr: "name is required",
		},
		{
			name: "missing description",
			content: `
name: n
input: {text: "x"}
expect: {roundtrip: true}
`,
			wantErr: "description is required",
		},
		{
			name: "missing input",
			content: `
name: n
description: "d"
expect: {roundtrip: true}
`,
			wantErr: "path or text is required",
		},
		{
			name: "both inputs",
			content: `
name: n
description: "d"
input: {text: "x", path: "../fixtures/wall.ifc"}
expect: {roundtrip: true}
`,
			wantErr: "mutually exclusive",
		},
		{
			name: "input file missing",
			content: `
name: n
description: "d"
input: {path: "nowhere.ifc"}
expect: {roundtrip: true}
`,
			wantErr: "input file not found",
		},
		{
			name: "no expectations",
			content: `
name: n
description: "d"
input: {text: "x"}
expect: {}
`,
			wantErr: "at least one expectation",
		},
		{
			name: "parse error with other expectations",
			content: `
name: n
description: "d"
input: {text: "x"}
expect: {parse_error: "file:", roundtrip: true}
`,
			wantErr: "parse_error excludes",
		},
		{
			name: "ok with code",
			content: `
name: n
description: "d"
input: {text: "x"}
expect:
  verify: {ok: true, code: UNEXPECTED_TYPE}
`,
			wantErr: "ok excludes",
		},
		{
			name: "unknown code",
			content: `
name: n
description: "d"
input: {text: "x"}
expect:
  verify: {code: BROKEN}
`,
			wantErr: `unknown code "BROKEN"`,
		},
		{
			name: "negative count",
			content: `
name: n
description: "d"
input: {text: "x"}
expect:
  counts: {Wall: -1}
`,
			wantErr: "must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, t.TempDir(), "s.yaml", tt.content)
			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenarios_SortedAndFiltered(t *testing.T) {
	all, err := LoadScenarios("testdata/scenarios", "")
	require.NoError(t, err)

	var names []string
	for _, s := range all {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		"dangling_reference",
		"location_wrong_type",
		"opaque_fallback",
		"strict_bad_dimension",
		"wall_roundtrip",
	}, names)

	some, err := LoadScenarios("testdata/scenarios", "dimension")
	require.NoError(t, err)
	require.Len(t, some, 1)
	assert.Equal(t, "strict_bad_dimension", some[0].Name)
}
