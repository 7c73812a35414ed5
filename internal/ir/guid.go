package ir

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GlobalIDLength is the length of a compressed GlobalId.
const GlobalIDLength = 22

// globalIDAlphabet is the 64 character alphabet of the IFC GUID compression.
const globalIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz_$"

// GlobalID is a 128-bit GUID compressed into 22 characters. The first
// character carries the top 2 bits, the remaining 21 carry 6 bits each.
type GlobalID string

// NewGlobalID generates a random GlobalID.
func NewGlobalID() GlobalID {
	return CompressUUID(uuid.New())
}

// CompressUUID encodes u in the 22 character form.
func CompressUUID(u uuid.UUID) GlobalID {
	hi := binary.BigEndian.Uint64(u[:8])
	lo := binary.BigEndian.Uint64(u[8:])

	var sb strings.Builder
	sb.Grow(GlobalIDLength)
	sb.WriteByte(globalIDAlphabet[hi>>62])
	for i := 0; i < GlobalIDLength-1; i++ {
		sb.WriteByte(globalIDAlphabet[bits6(hi, lo, 2+6*i)])
	}
	return GlobalID(sb.String())
}

// bits6 extracts the 6 bits starting at bit offset start, counted from the
// most significant bit of the 128-bit value hi:lo.
func bits6(hi, lo uint64, start int) uint64 {
	shift := 128 - (start + 6)
	if shift >= 64 {
		return (hi >> (shift - 64)) & 63
	}
	return ((lo >> shift) | (hi << (64 - shift))) & 63
}

// UUID expands g back into a UUID.
func (g GlobalID) UUID() (uuid.UUID, error) {
	var u uuid.UUID
	if len(g) != GlobalIDLength {
		return u, fmt.Errorf("global id %q: want %d characters, got %d", string(g), GlobalIDLength, len(g))
	}

	var hi, lo uint64
	for i := 0; i < GlobalIDLength; i++ {
		v := strings.IndexByte(globalIDAlphabet, g[i])
		if v < 0 {
			return u, fmt.Errorf("global id %q: invalid character %q", string(g), g[i])
		}
		if i == 0 && v > 3 {
			return u, fmt.Errorf("global id %q: leading character out of range", string(g))
		}
		width := uint(6)
		if i == 0 {
			width = 2
		}
		hi = hi<<width | lo>>(64-width)
		lo = lo<<width | uint64(v)
	}

	binary.BigEndian.PutUint64(u[:8], hi)
	binary.BigEndian.PutUint64(u[8:], lo)
	return u, nil
}

// Valid reports whether g is a well-formed compressed GlobalId.
func (g GlobalID) Valid() bool {
	_, err := g.UUID()
	return err == nil
}
