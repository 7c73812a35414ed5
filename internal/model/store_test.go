package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stepgraph/internal/ir"
)

func point(x, y, z float64) *Point3D {
	return &Point3D{Coordinates: [3]ir.Real{ir.Real(x), ir.Real(y), ir.Real(z)}}
}

func TestInsertNewAllocatesSequentially(t *testing.T) {
	s := NewStore()
	var got []ir.ID
	for i := 0; i < 5; i++ {
		got = append(got, s.InsertNew(point(float64(i), 0, 0)))
	}
	assert.Equal(t, []ir.ID{1, 2, 3, 4, 5}, got)

	_, ok := s.Remove(3)
	require.True(t, ok)
	assert.Equal(t, ir.ID(6), s.InsertNew(point(9, 9, 9)))
	assert.Equal(t, []ir.ID{1, 2, 4, 5, 6}, s.IDs())
}

func TestRemovingHighestDoesNotReuse(t *testing.T) {
	s := NewStore()
	s.InsertNew(point(0, 0, 0))
	s.InsertNew(point(1, 0, 0))
	_, ok := s.Remove(2)
	require.True(t, ok)
	assert.Equal(t, ir.ID(3), s.InsertNew(point(2, 0, 0)))

	_, ok = s.Remove(42)
	assert.False(t, ok)
}

func TestInsertAtReplacesAndBumpsAllocation(t *testing.T) {
	s := NewStore()
	assert.Nil(t, s.InsertAt(10, point(1, 2, 3)))

	prev := s.InsertAt(10, &Direction3D{Ratios: [3]ir.Real{0, 0, 1}})
	require.NotNil(t, prev)
	assert.Equal(t, KindPoint3D, prev.Kind())
	assert.Equal(t, 1, s.Len())

	assert.Equal(t, ir.ID(11), s.NextID())
	assert.Equal(t, ir.ID(11), s.InsertNew(point(0, 0, 0)))

	s.InsertAt(4, point(4, 4, 4))
	assert.Equal(t, ir.ID(12), s.NextID())
	assert.Equal(t, []ir.ID{4, 10, 11}, s.IDs())
}

func TestGetTyped(t *testing.T) {
	s := NewStore()
	ref := Insert(s, point(1, 2, 3))

	p, err := Get(s, ref)
	require.NoError(t, err)
	assert.Equal(t, ir.Real(2), p.Coordinates[1])
}

func TestGetUnknownIdentifier(t *testing.T) {
	s := NewStore()
	_, err := Get(s, ir.NewRef[*Point3D](7))
	require.Error(t, err)
	assert.True(t, IsUnknownIdentifier(err))
	assert.False(t, IsTypeMismatch(err))

	var le *LookupError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ir.ID(7), le.ID)
	assert.Equal(t, "Point3D", le.Want)
}

func TestGetTypeMismatch(t *testing.T) {
	s := NewStore()
	id := s.InsertNew(&Direction3D{Ratios: [3]ir.Real{1, 0, 0}})

	_, err := Get(s, ir.NewRef[*Point3D](id))
	require.Error(t, err)
	assert.True(t, IsTypeMismatch(err))
	assert.Equal(t, "TYPE_MISMATCH: #1 is Direction3D, not Point3D", err.Error())
}

func TestGetThroughInterface(t *testing.T) {
	s := NewStore()
	pt := Insert(s, &Point2D{})
	axis := Insert(s, &Axis2D{Location: pt})

	placement, err := Get(s, ir.Retag[Placement](axis))
	require.NoError(t, err)
	assert.Equal(t, KindAxis2D, placement.Kind())

	_, err = Get(s, ir.Retag[Placement](pt))
	require.Error(t, err)
	assert.True(t, IsTypeMismatch(err))
	assert.Contains(t, err.Error(), "not Placement")
}

func TestUpdateMutatesInPlace(t *testing.T) {
	s := NewStore()
	ref := Insert(s, point(0, 0, 0))

	err := Update(s, ref, func(p *Point3D) error {
		p.Coordinates[2] = 5
		return nil
	})
	require.NoError(t, err)

	p, err := Get(s, ref)
	require.NoError(t, err)
	assert.Equal(t, ir.Real(5), p.Coordinates[2])

	err = Update(s, ir.NewRef[*Point3D](99), func(*Point3D) error { return nil })
	assert.True(t, IsUnknownIdentifier(err))
}

func TestFindAllAndIdentifiersOf(t *testing.T) {
	s := NewStore()
	s.InsertNew(point(0, 0, 0))
	s.InsertNew(&Direction3D{})
	s.InsertNew(point(1, 1, 1))
	s.InsertAt(20, &Opaque{Keyword: "IFCSIUNIT", Body: "IFCSIUNIT(*,.LENGTHUNIT.,$,.METRE.)"})

	var ids []ir.ID
	for ref, p := range FindAll[*Point3D](s) {
		require.NotNil(t, p)
		ids = append(ids, ref.ID())
	}
	assert.Equal(t, []ir.ID{1, 3}, ids)

	var dirs []ir.Ref[Direction]
	for ref := range IdentifiersOf[Direction](s) {
		dirs = append(dirs, ref)
	}
	assert.Equal(t, []ir.Ref[Direction]{ir.NewRef[Direction](2)}, dirs)

	var opaque int
	for range FindAll[*Opaque](s) {
		opaque++
	}
	assert.Equal(t, 1, opaque)
}

func TestAllAndEachInIdentifierOrder(t *testing.T) {
	s := NewStore()
	s.InsertAt(5, point(5, 0, 0))
	s.InsertAt(2, point(2, 0, 0))
	s.InsertAt(9, point(9, 0, 0))

	var all []ir.ID
	for id := range s.All() {
		all = append(all, id)
	}
	assert.Equal(t, []ir.ID{2, 5, 9}, all)

	var first []ir.ID
	s.Each(func(id ir.ID, _ Record) bool {
		first = append(first, id)
		return len(first) < 2
	})
	assert.Equal(t, []ir.ID{2, 5}, first)
}

func TestStoreReferences(t *testing.T) {
	s := NewStore()
	loc := Insert(s, point(0, 0, 0))
	z := Insert(s, &Direction3D{Ratios: [3]ir.Real{0, 0, 1}})
	axis := Insert(s, &Axis3D{Location: loc, Axis: ir.Some(z)})

	refs, err := s.References(axis.ID())
	require.NoError(t, err)
	assert.Equal(t, []Reference{{Field: "location", ID: 1}, {Field: "axis", ID: 2}}, refs)

	_, err = s.References(77)
	assert.True(t, IsUnknownIdentifier(err))
}
