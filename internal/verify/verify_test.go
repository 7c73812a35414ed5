package verify

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stepgraph/internal/ir"
	"github.com/roach88/stepgraph/internal/model"
	"github.com/roach88/stepgraph/internal/stepfile"
)

// axisStore holds a Point3D at #6, a Direction3D at #7 and an Axis3D at
// #8 whose location is #6.
func axisStore(t *testing.T) (*model.Store, ir.Ref[*model.Axis3D]) {
	t.Helper()
	s := model.NewStore()
	s.InsertAt(6, &model.Point3D{})
	s.InsertAt(7, &model.Direction3D{Ratios: [3]ir.Real{0, 0, 1}})
	axis := &model.Axis3D{Location: ir.NewRef[*model.Point3D](6)}
	s.InsertAt(8, axis)
	return s, ir.NewRef[*model.Axis3D](8)
}

func TestVerifyAcceptsValidReference(t *testing.T) {
	s, _ := axisStore(t)
	assert.NoError(t, Verify(s))
	assert.NoError(t, VerifyAll(s))
}

func TestVerifyRejectsWrongTargetType(t *testing.T) {
	s, ref := axisStore(t)
	require.NoError(t, model.Update(s, ref, func(a *model.Axis3D) error {
		a.Location = ir.NewRef[*model.Point3D](7)
		return nil
	}))

	err := Verify(s)
	require.Error(t, err)
	assert.True(t, IsUnexpectedType(err))

	var ve *VerificationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, ir.ID(8), ve.Record)
	assert.Equal(t, "Axis3D", ve.RecordType)
	assert.Equal(t, "location", ve.Field)
	assert.Equal(t, ir.ID(7), ve.Target)
	assert.Equal(t, []string{"Point3D"}, ve.Expected)
	assert.Equal(t, "Direction3D", ve.Actual)
	assert.Equal(t,
		"UNEXPECTED_TYPE: #8 Axis3D.location references #7 of type Direction3D, want Point3D",
		err.Error())
}

func TestVerifyRejectsDanglingReference(t *testing.T) {
	s, ref := axisStore(t)
	require.NoError(t, model.Update(s, ref, func(a *model.Axis3D) error {
		a.Axis = ir.Some(ir.NewRef[*model.Direction3D](40))
		return nil
	}))

	err := Verify(s)
	require.Error(t, err)
	assert.True(t, IsUnknownIdentifier(err))
	assert.False(t, IsUnexpectedType(err))
	assert.Contains(t, err.Error(), "#8 Axis3D.axis references #40, which does not exist")
}

func TestVerifySkipsAbsentOptionals(t *testing.T) {
	s, ref := axisStore(t)
	require.NoError(t, model.Update(s, ref, func(a *model.Axis3D) error {
		a.Axis = ir.DerivedValue[ir.Ref[*model.Direction3D]]()
		a.RefDirection = ir.None[ir.Ref[*model.Direction3D]]()
		return nil
	}))
	assert.NoError(t, Verify(s))
}

func TestVerifyAllAccumulates(t *testing.T) {
	s := model.NewStore()
	pt := model.Insert(s, &model.Point2D{})
	dir := model.Insert(s, &model.Direction2D{})
	s.InsertNew(&model.Axis2D{
		Location:     pt,
		RefDirection: ir.Some(ir.Retag[*model.Direction2D](pt)),
	})
	s.InsertNew(&model.RelAggregates{
		RelatingObject: ir.Retag[model.Spatial](dir),
		RelatedObjects: []ir.Ref[model.Spatial]{ir.NewRef[model.Spatial](50), ir.NewRef[model.Spatial](51)},
	})

	first := Verify(s)
	require.Error(t, first)
	assert.Contains(t, first.Error(), "Axis2D.ref_direction")

	err := VerifyAll(s)
	require.Error(t, err)
	var rep *Report
	require.ErrorAs(t, err, &rep)
	require.Len(t, rep.Errors, 4)

	got := make([]string, len(rep.Errors))
	for i, e := range rep.Errors {
		got[i] = string(e.Code) + " " + e.Field
	}
	assert.Equal(t, []string{
		"UNEXPECTED_TYPE ref_direction",
		"UNEXPECTED_TYPE relating_object",
		"UNKNOWN_IDENTIFIER related_objects",
		"UNKNOWN_IDENTIFIER related_objects",
	}, got)
	assert.Equal(t, []string{"Project", "Site", "Building", "BuildingStorey", "IFCSPACE"}, rep.Errors[1].Expected[:5])

	assert.True(t, IsUnknownIdentifier(err))
	assert.True(t, IsUnexpectedType(err))
	assert.Contains(t, err.Error(), "4 verification errors:")

	var ve *VerificationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "ref_direction", ve.Field)
}

func TestUnmodeledTargets(t *testing.T) {
	s := model.NewStore()
	history := s.InsertNew(&model.Opaque{Keyword: "IFCOWNERHISTORY", Body: " IFCOWNERHISTORY($,$,$,.ADDED.,$,$,$,0)"})
	role := s.InsertNew(&model.Opaque{Keyword: "IFCACTORROLE", Body: " IFCACTORROLE(.ARCHITECT.,$,$)"})
	s.InsertNew(&model.Wall{Root: model.Root{
		GlobalID:     "3vB2YO$MX4xv5uCqZZG05x",
		OwnerHistory: ir.Some(ir.NewRef[model.Record](history)),
	}})
	assert.NoError(t, Verify(s))

	s.InsertNew(&model.Wall{Root: model.Root{
		GlobalID:     "3vB2YO$MX4xv5uCqZZG05y",
		OwnerHistory: ir.Some(ir.NewRef[model.Record](role)),
	}})
	err := Verify(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "#4 Wall.owner_history references #2 of type IFCACTORROLE, want IFCOWNERHISTORY")
}

func TestRecord(t *testing.T) {
	s, ref := axisStore(t)
	errs, err := Record(s, ref.ID())
	require.NoError(t, err)
	assert.Empty(t, errs)

	_, err = Record(s, 99)
	assert.True(t, model.IsUnknownIdentifier(err))
}

func TestParsedFileVerifies(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "wall.ifc"))
	require.NoError(t, err)
	f, err := stepfile.Parse(string(data))
	require.NoError(t, err)
	assert.NoError(t, VerifyAll(f.Data))

	_, ok := f.Data.Remove(19)
	require.True(t, ok)
	err = VerifyAll(f.Data)
	require.Error(t, err)
	var rep *Report
	require.ErrorAs(t, err, &rep)
	require.Len(t, rep.Errors, 2)
	assert.Equal(t, "related_objects", rep.Errors[0].Field)
	assert.Equal(t, "relating_structure", rep.Errors[1].Field)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("all")
	require.NoError(t, err)
	assert.Equal(t, ModeAll, m)

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeFirst, m)

	_, err = ParseMode("some")
	assert.Error(t, err)
}

func TestSpaceAndProxyContainment(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "wall.ifc"))
	require.NoError(t, err)
	text := strings.Replace(string(data), "ENDSEC;\nEND-ISO-10303-21;",
		"#26= IFCSPACE('0Sp4cE0000000000000001',#5,'Room 1',$,$,$,$,$,.ELEMENT.,.INTERNAL.,$);\n"+
			"#27= IFCRELAGGREGATES('0Sp4cE0000000000000002',#5,$,$,#19,(#26));\n"+
			"#28= IFCBUILDINGELEMENTPROXY('0Sp4cE0000000000000003',#5,'Desk',$,$,$,$,$,$);\n"+
			"#29= IFCRELCONTAINEDINSPATIALSTRUCTURE('0Sp4cE0000000000000004',#5,$,$,(#28),#26);\n"+
			"ENDSEC;\nEND-ISO-10303-21;", 1)
	require.Contains(t, text, "#29=")

	f, err := stepfile.Parse(text)
	require.NoError(t, err)
	assert.Equal(t, text, f.String())
	assert.NoError(t, VerifyAll(f.Data))
}

func TestLongTargetListIsAbbreviated(t *testing.T) {
	s := model.NewStore()
	pt := s.InsertNew(&model.Point3D{})
	s.InsertNew(&model.RelContainedInSpatialStructure{
		RelatedElements:   []ir.Ref[model.Record]{ir.NewRef[model.Record](pt)},
		RelatingStructure: ir.NewRef[model.Spatial](pt),
	})

	err := VerifyAll(s)
	var rep *Report
	require.ErrorAs(t, err, &rep)
	require.Len(t, rep.Errors, 2)
	assert.Contains(t, rep.Errors[0].Expected, "IFCBUILDINGELEMENTPROXY")
	assert.Contains(t, rep.Errors[0].Error(),
		"#2 RelContainedInSpatialStructure.related_elements references #1 of type Point3D, want Wall | IFCBUILDINGELEMENTPROXY | ")
	assert.Contains(t, rep.Errors[0].Error(), "more)")
}

func TestOpaqueDanglingReference(t *testing.T) {
	s := model.NewStore()
	s.InsertNew(&model.Opaque{
		Keyword: "IFCPROPERTYSET",
		Body:    " IFCPROPERTYSET('2Ps3t0000000000000001',$,'Pset_Common',$,(#999))",
	})

	err := Verify(s)
	require.Error(t, err)
	assert.True(t, IsUnknownIdentifier(err))

	var ve *VerificationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, ir.ID(1), ve.Record)
	assert.Equal(t, "IFCPROPERTYSET", ve.RecordType)
	assert.Empty(t, ve.Field)
	assert.Equal(t, ir.ID(999), ve.Target)
	assert.Equal(t, "UNKNOWN_IDENTIFIER: #1 IFCPROPERTYSET references #999, which does not exist", err.Error())

	s.InsertAt(999, &model.Opaque{Keyword: "IFCPROPERTYSINGLEVALUE", Body: " IFCPROPERTYSINGLEVALUE('Reference',$,$,$)"})
	assert.NoError(t, Verify(s))
}

func TestRunAndErrors(t *testing.T) {
	s, ref := axisStore(t)
	assert.NoError(t, Run(s, ModeAll))
	assert.Empty(t, Errors(nil))

	require.NoError(t, model.Update(s, ref, func(a *model.Axis3D) error {
		a.Location = ir.NewRef[*model.Point3D](7)
		a.Axis = ir.Some(ir.NewRef[*model.Direction3D](40))
		return nil
	}))

	first := Errors(Run(s, ModeFirst))
	require.Len(t, first, 1)
	assert.Equal(t, "location", first[0].Field)

	all := Errors(Run(s, ModeAll))
	require.Len(t, all, 2)
	assert.Equal(t, "axis", all[1].Field)
}
