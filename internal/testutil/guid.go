package testutil

import (
	"encoding/binary"
	"sync"

	"github.com/google/uuid"

	"github.com/roach88/stepgraph/internal/ir"
)

// SequentialGlobalIDs generates GlobalIds from a counter, so builds in
// tests produce byte-identical files.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SequentialGlobalIDs struct {
	mu  sync.Mutex
	seq uint64
}

// NewSequentialGlobalIDs creates a generator whose first id encodes 1.
func NewSequentialGlobalIDs() *SequentialGlobalIDs {
	return &SequentialGlobalIDs{}
}

// Generate returns the GlobalId of the next counter value.
func (g *SequentialGlobalIDs) Generate() ir.GlobalID {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return GlobalIDOf(g.seq)
}

// Current returns how many ids have been generated.
func (g *SequentialGlobalIDs) Current() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seq
}

// Reset restarts the sequence. The next Generate encodes 1 again.
func (g *SequentialGlobalIDs) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
}

// GlobalIDOf returns the GlobalId whose UUID holds n in its low bytes.
func GlobalIDOf(n uint64) ir.GlobalID {
	var u uuid.UUID
	binary.BigEndian.PutUint64(u[8:], n)
	return ir.CompressUUID(u)
}
