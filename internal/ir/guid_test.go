package ir

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressUUIDBounds(t *testing.T) {
	var zero uuid.UUID
	assert.Equal(t, GlobalID("0000000000000000000000"), CompressUUID(zero))

	var max uuid.UUID
	for i := range max {
		max[i] = 0xff
	}
	assert.Equal(t, GlobalID("3$$$$$$$$$$$$$$$$$$$$$"), CompressUUID(max))
}

func TestCompressUUIDLowBit(t *testing.T) {
	var u uuid.UUID
	u[15] = 1
	assert.Equal(t, GlobalID("0000000000000000000001"), CompressUUID(u))

	u[15] = 64
	assert.Equal(t, GlobalID("0000000000000000000010"), CompressUUID(u))
}

func TestGlobalIDRoundTrip(t *testing.T) {
	for i := 0; i < 50; i++ {
		u := uuid.New()
		g := CompressUUID(u)
		require.Len(t, string(g), GlobalIDLength)
		assert.True(t, g.Valid())

		back, err := g.UUID()
		require.NoError(t, err)
		assert.Equal(t, u, back)
	}
}

func TestGlobalIDInvalid(t *testing.T) {
	tests := []GlobalID{
		"",
		"short",
		"4$$$$$$$$$$$$$$$$$$$$$",
		"000000000000000000000!",
	}
	for _, g := range tests {
		t.Run(string(g), func(t *testing.T) {
			assert.False(t, g.Valid())
		})
	}
}

func TestNewGlobalID(t *testing.T) {
	a := NewGlobalID()
	b := NewGlobalID()
	assert.True(t, a.Valid())
	assert.NotEqual(t, a, b)
}
