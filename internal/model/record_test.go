package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stepgraph/internal/ir"
	"github.com/roach88/stepgraph/internal/step"
)

func TestRecordRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
		kind Kind
	}{
		{"organization", "IFCORGANIZATION($,'Geometry Gym Pty Ltd',$,$,$)", KindOrganization},
		{"organization quotes", "IFCORGANIZATION('ACME','O''Brien & Co',$,(#3),(#4,#5))", KindOrganization},
		{"application", "IFCAPPLICATION(#1,'0.0.1','stepgraph','stepgraph')", KindApplication},
		{"point 3d", "IFCCARTESIANPOINT((0.,0.,0.))", KindPoint3D},
		{"point 2d", "IFCCARTESIANPOINT((1.5,-2.))", KindPoint2D},
		{"direction 3d", "IFCDIRECTION((7.071067811865476E-01,7.071067811865476E-01,0.))", KindDirection3D},
		{"direction 2d", "IFCDIRECTION((0.,1.))", KindDirection2D},
		{"axis 2d derived", "IFCAXIS2PLACEMENT2D(#3,*)", KindAxis2D},
		{"axis 3d omitted", "IFCAXIS2PLACEMENT3D(#6,$,$)", KindAxis3D},
		{"axis 3d full", "IFCAXIS2PLACEMENT3D(#6,#7,#8)", KindAxis3D},
		{"local placement", "IFCLOCALPLACEMENT($,#9)", KindLocalPlacement},
		{"context", "IFCGEOMETRICREPRESENTATIONCONTEXT($,'Model',3,1.E-07,#9,#10)", KindGeometricRepresentationContext},
		{"project", "IFCPROJECT('0YvctVUKr0kugbFTf53O9L',#2,'Default Project',$,$,$,$,(#20),#7)", KindProject},
		{"site", "IFCSITE('2Nd4L0$DH8TuWzKZ$lM1hv',$,'Site',$,$,#12,$,$,.ELEMENT.,(24,28,0),(54,25,0),10.,$,$)", KindSite},
		{"building", "IFCBUILDING('0h$5uBlKnEhQU7fCRs9W3a',$,'Building',$,$,#25,$,$,.ELEMENT.,*,$,$)", KindBuilding},
		{"storey", "IFCBUILDINGSTOREY('1Q4YPqPRz4Ixu6dDAGvn$8',$,'Level 1',$,$,#30,$,$,.ELEMENT.,3000.)", KindBuildingStorey},
		{"wall", "IFCWALL('3vB2YO$MX4xv5uCqZZG05x',$,'Wall',$,$,#40,#41,'W-1',.STANDARD.)", KindWall},
		{"aggregates", "IFCRELAGGREGATES('0Kp5Y7Q6rCUBd8MTY5OY3P',$,$,$,#20,(#30))", KindRelAggregates},
		{"contained", "IFCRELCONTAINEDINSPATIALSTRUCTURE('2bT0GQ5m5FcgfT0Tq4qF9V',$,'Storey',$,(#50,#51),#40)", KindRelContainedInSpatialStructure},
		{"opaque", "IFCSIUNIT(*,.LENGTHUNIT.,.MILLI.,.METRE.)", KindOpaque},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseRecordText(tt.text + ";")
			require.NoError(t, err)
			assert.Equal(t, tt.kind, rec.Kind())
			assert.Equal(t, tt.text+";", RecordText(rec))
		})
	}
}

func TestOrganizationFields(t *testing.T) {
	rec, err := ParseRecordText("IFCORGANIZATION($,'Geometry Gym Pty Ltd',$,$,$);")
	require.NoError(t, err)

	org, ok := rec.(*Organization)
	require.True(t, ok)
	assert.True(t, org.Identification.IsOmitted())
	assert.Equal(t, ir.Label("Geometry Gym Pty Ltd"), org.Name)
	assert.True(t, org.Description.IsOmitted())
	assert.True(t, org.Roles.IsOmitted())
	assert.True(t, org.Addresses.IsOmitted())
}

func TestContextDimensionDomain(t *testing.T) {
	_, err := ParseRecordText("IFCGEOMETRICREPRESENTATIONCONTEXT($,'Model',4,1.E-07,#9,$);")
	require.Error(t, err)
	assert.True(t, step.IsParseFailure(err))
	assert.Contains(t, err.Error(), "CoordinateSpaceDimension")

	text := "IFCGEOMETRICREPRESENTATIONCONTEXT($,'Model',3,1.E-07,#9,$);"
	rec, err := ParseRecordText(text)
	require.NoError(t, err)
	ctx := rec.(*GeometricRepresentationContext)
	assert.Equal(t, Dimension(3), ctx.CoordinateSpaceDimension)
	assert.Equal(t, text, RecordText(rec))
}

func TestOmittedAndDerivedStayDistinct(t *testing.T) {
	rec, err := ParseRecordText("IFCAXIS2PLACEMENT3D(#6,$,*)")
	require.NoError(t, err)
	axis := rec.(*Axis3D)
	assert.Equal(t, ir.Omitted, axis.Axis.Presence())
	assert.Equal(t, ir.Derived, axis.RefDirection.Presence())
	assert.Equal(t, "IFCAXIS2PLACEMENT3D(#6,$,*)", Format(axis))
}

func TestLayoutBetweenTokens(t *testing.T) {
	rec, err := ParseRecordText("IFCDIRECTION ( /* x */ ( 1. , 0. ) ) ;")
	require.NoError(t, err)
	assert.Equal(t, "IFCDIRECTION((1.,0.))", Format(rec))
}

func TestParseRecordRejects(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"point arity", "IFCCARTESIANPOINT((1.,2.,3.,4.))"},
		{"integer for real", "IFCCARTESIANPOINT((1,2,3))"},
		{"missing parameter", "IFCAXIS2PLACEMENT3D(#6,$)"},
		{"extra parameter", "IFCLOCALPLACEMENT($,#9,$)"},
		{"bad enum", "IFCWALL('3vB2YO$MX4xv5uCqZZG05x',$,$,$,$,$,$,$,.BRICK.)"},
		{"bad global id", "IFCRELAGGREGATES('short',$,$,$,#20,(#30))"},
		{"trailing input", "IFCDIRECTION((1.,0.)) x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecordText(tt.text)
			require.Error(t, err)
			assert.True(t, step.IsParseFailure(err))
		})
	}
}

func TestMalformedReference(t *testing.T) {
	_, err := ParseRecordText("IFCAXIS2PLACEMENT3D(6,$,$)")
	require.Error(t, err)
	assert.True(t, step.IsMalformedIdentifier(err))
}

func TestParseRecordUnknownKeyword(t *testing.T) {
	p := step.NewParser("IFCSLAB('x')")
	_, err := ParseRecord(p)
	require.Error(t, err)
	assert.Equal(t, 0, p.Pos())
	assert.Contains(t, err.Error(), "unknown record keyword IFCSLAB")
}

func TestOpaqueKeepsSourceText(t *testing.T) {
	text := "IFCPROPERTYSINGLEVALUE('Note;1',$,IFCTEXT('a /* b */ c'),$);"
	rec, err := ParseRecordText(text)
	require.NoError(t, err)

	o, ok := rec.(*Opaque)
	require.True(t, ok)
	assert.Equal(t, "IFCPROPERTYSINGLEVALUE", o.Keyword)
	assert.Equal(t, "IFCPROPERTYSINGLEVALUE", TypeName(o))
	assert.Equal(t, text, RecordText(o))
}

func TestOpaqueReferencedIDs(t *testing.T) {
	o := &Opaque{Keyword: "IFCSHAPEREPRESENTATION", Body: " IFCSHAPEREPRESENTATION(#12,'#99 in text',/* #98 */ (#13 , #14))"}
	assert.Equal(t, []ir.ID{12, 13, 14}, o.ReferencedIDs())
}

func TestGrammarKeywordsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, g := range grammars {
		assert.False(t, seen[g.keyword], g.keyword)
		seen[g.keyword] = true
	}
	for _, k := range Kinds() {
		assert.True(t, Known(k.Keyword()), k.String())
	}
}

func TestTypeNames(t *testing.T) {
	assert.Equal(t, "Axis3D", TypeName(&Axis3D{}))
	assert.Equal(t, "IFCAXIS2PLACEMENT3D", Keyword(&Axis3D{}))
	assert.Equal(t, "Opaque", TypeName(&Opaque{}))
	assert.Equal(t, "Kind(?)", Kind(200).String())
}
