package stepfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stepgraph/internal/ir"
	"github.com/roach88/stepgraph/internal/model"
	"github.com/roach88/stepgraph/internal/step"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRoundTripIsExact(t *testing.T) {
	text := readFixture(t, "wall.ifc")

	f, err := Parse(text)
	require.NoError(t, err)
	assert.Equal(t, 25, f.Data.Len())
	if diff := cmp.Diff(text, f.String()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseHeader(t *testing.T) {
	f, err := Parse(readFixture(t, "wall.ifc"))
	require.NoError(t, err)

	want := Header{
		Description: FileDescription{
			Description:         []ir.Label{"ViewDefinition [CoordinationView]"},
			ImplementationLevel: "2;1",
		},
		Name: FileName{
			Name:                "wall.ifc",
			TimeStamp:           "2024-05-01T10:00:00",
			Author:              []ir.Label{"Jane"},
			Organization:        []ir.Label{"ACME"},
			PreprocessorVersion: "stepgraph 0.1.0",
			OriginatingSystem:   "stepgraph 0.1.0",
			Authorization:       "",
		},
		Schema: FileSchema{Schemas: []ir.Label{"IFC4"}},
	}
	if diff := cmp.Diff(want, f.Header); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
}

func TestParseKeepsModeledAndOpaqueRecords(t *testing.T) {
	f, err := Parse(readFixture(t, "wall.ifc"))
	require.NoError(t, err)

	counts := f.TypeCounts()
	assert.Equal(t, 4, counts["LocalPlacement"])
	assert.Equal(t, 3, counts["RelAggregates"])
	assert.Equal(t, 1, counts["IFCOWNERHISTORY"])
	assert.Equal(t, 1, counts["IFCSIUNIT"])

	wall, err := model.Get(f.Data, ir.NewRef[*model.Wall](21))
	require.NoError(t, err)
	assert.Equal(t, ir.Some(ir.Label("W-1")), wall.Tag)
	assert.Equal(t, ir.Some(model.WallStandard), wall.PredefinedType)

	rec, err := f.Data.Untyped(11)
	require.NoError(t, err)
	assert.Equal(t, "IFCSIUNIT", model.TypeName(rec))
}

func TestLayoutIsNormalized(t *testing.T) {
	f, err := Parse(readFixture(t, "messy.ifc"))
	require.NoError(t, err)
	newGoldie(t).Assert(t, "messy", []byte(f.String()))
}

func TestConstructedFile(t *testing.T) {
	f := New(NewHeader("built.ifc", "2024-05-01T10:00:00"))
	org := model.Insert(f.Data, &model.Organization{Name: "ACME"})
	model.Insert(f.Data, &model.Application{
		ApplicationDeveloper:  org,
		Version:               "1.0",
		ApplicationFullName:   "Builder",
		ApplicationIdentifier: "builder",
	})
	f.Data.InsertAt(9, &model.Opaque{Keyword: "IFCACTORROLE", Body: " IFCACTORROLE(.ARCHITECT.,$,$)"})

	var buf bytes.Buffer
	n, err := f.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	newGoldie(t).Assert(t, "constructed", buf.Bytes())

	again, err := Parse(buf.String())
	require.NoError(t, err)
	assert.Equal(t, buf.String(), again.String())
}

func TestLenientFallbackToOpaque(t *testing.T) {
	text := strings.Replace(readFixture(t, "wall.ifc"),
		"#10= IFCGEOMETRICREPRESENTATIONCONTEXT($,'Model',3,",
		"#10= IFCGEOMETRICREPRESENTATIONCONTEXT($,'Model',4,", 1)

	f, err := Parse(text)
	require.NoError(t, err)
	rec, err := f.Data.Untyped(10)
	require.NoError(t, err)
	o, ok := rec.(*model.Opaque)
	require.True(t, ok)
	assert.Equal(t, "IFCGEOMETRICREPRESENTATIONCONTEXT", o.Keyword)
	assert.Equal(t, text, f.String())

	_, err = ParseWith(text, Options{Strict: true})
	require.Error(t, err)
	assert.True(t, step.IsParseFailure(err))
	assert.Contains(t, err.Error(), "record #10")
}

func TestDuplicateIdentifier(t *testing.T) {
	text := strings.Replace(readFixture(t, "wall.ifc"),
		"#8= IFCDIRECTION((1.,0.,0.));",
		"#7= IFCDIRECTION((1.,0.,0.));", 1)

	f, err := Parse(text)
	require.NoError(t, err)
	assert.Equal(t, 24, f.Data.Len())
	d, err := model.Get(f.Data, ir.NewRef[*model.Direction3D](7))
	require.NoError(t, err)
	assert.Equal(t, ir.Real(1), d.Ratios[0])

	_, err = ParseWith(text, Options{Strict: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "defined twice")
}

func TestParseFailures(t *testing.T) {
	valid := readFixture(t, "wall.ifc")
	tests := []struct {
		name string
		text string
		want string
	}{
		{"missing magic", strings.TrimPrefix(valid, "ISO-10303-21;\n"), "file:"},
		{"missing schema", strings.Replace(valid, "FILE_SCHEMA(('IFC4'));\n", "", 1), "header:"},
		{"bad identifier", strings.Replace(valid, "#6= ", "#x= ", 1), "data:"},
		{"unterminated last record", strings.Replace(valid, "(#21),#19);", "(#21),#19)", 1), "data:"},
		{"missing footer", strings.Replace(valid, "END-ISO-10303-21;\n", "", 1), "footer:"},
		{"trailing input", valid + "#99= IFCWALL();\n", "footer:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			require.Error(t, err)
			assert.True(t, step.IsParseFailure(err), err.Error())
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestInstanceText(t *testing.T) {
	assert.Equal(t, "#3= IFCDIRECTION((0.,1.))",
		InstanceText(3, &model.Direction2D{Ratios: [2]ir.Real{0, 1}}))
	assert.Equal(t, "#4=IFCSIUNIT(*)",
		InstanceText(4, &model.Opaque{Keyword: "IFCSIUNIT", Body: "IFCSIUNIT(*)"}))
}
