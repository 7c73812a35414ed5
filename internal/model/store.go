package model

import (
	"iter"
	"reflect"

	"github.com/google/btree"

	"github.com/roach88/stepgraph/internal/ir"
)

// btreeDegree is the branching factor of the identifier index.
const btreeDegree = 32

type entry struct {
	id  ir.ID
	rec Record
}

func lessEntry(a, b entry) bool {
	return a.id < b.id
}

// Store holds every record of a model, ordered by identifier.
type Store struct {
	tree *btree.BTreeG[entry]
	next ir.ID // next identifier to allocate; never decreases
}

// NewStore creates an empty store. The first allocated identifier is #1.
func NewStore() *Store {
	return &Store{
		tree: btree.NewG(btreeDegree, lessEntry),
		next: 1,
	}
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	return s.tree.Len()
}

// NextID returns the identifier the next InsertNew will allocate.
func (s *Store) NextID() ir.ID {
	return s.next
}

// InsertNew stores rec under a freshly allocated identifier and returns it.
// Identifiers are allocated above every identifier this store has ever
// held, so removed identifiers are never handed out again.
func (s *Store) InsertNew(rec Record) ir.ID {
	id := s.next
	s.tree.ReplaceOrInsert(entry{id: id, rec: rec})
	s.next++
	return id
}

// Insert stores rec under a fresh identifier and returns a typed reference.
func Insert[R Record](s *Store, rec R) ir.Ref[R] {
	return ir.NewRef[R](s.InsertNew(rec))
}

// InsertAt stores rec at an explicit identifier, replacing and returning
// any record already stored there. The parser uses it to keep the
// identifiers of the source text.
func (s *Store) InsertAt(id ir.ID, rec Record) (replaced Record) {
	prev, ok := s.tree.ReplaceOrInsert(entry{id: id, rec: rec})
	if id >= s.next {
		s.next = id + 1
	}
	if !ok {
		return nil
	}
	return prev.rec
}

// Remove deletes the record at id and returns it.
func (s *Store) Remove(id ir.ID) (Record, bool) {
	prev, ok := s.tree.Delete(entry{id: id})
	if !ok {
		return nil, false
	}
	return prev.rec, true
}

// Contains reports whether a record is stored at id.
func (s *Store) Contains(id ir.ID) bool {
	return s.tree.Has(entry{id: id})
}

// Untyped returns the record at id without a static type requirement.
func (s *Store) Untyped(id ir.ID) (Record, error) {
	e, ok := s.tree.Get(entry{id: id})
	if !ok {
		return nil, unknownIdentifier(id, "")
	}
	return e.rec, nil
}

// All iterates over every record in identifier order.
// The store must not be modified during iteration.
func (s *Store) All() iter.Seq2[ir.ID, Record] {
	return func(yield func(ir.ID, Record) bool) {
		s.tree.Ascend(func(e entry) bool {
			return yield(e.id, e.rec)
		})
	}
}

// IDs returns every stored identifier in ascending order.
func (s *Store) IDs() []ir.ID {
	ids := make([]ir.ID, 0, s.tree.Len())
	s.tree.Ascend(func(e entry) bool {
		ids = append(ids, e.id)
		return true
	})
	return ids
}

// Get returns the record ref points at. It fails with a *LookupError when
// nothing is stored there or the stored record is not an R.
// Records are pointers, so the result may be modified in place.
func Get[R Record](s *Store, ref ir.Ref[R]) (R, error) {
	var zero R
	rec, err := s.Untyped(ref.ID())
	if err != nil {
		return zero, unknownIdentifier(ref.ID(), typeName[R]())
	}
	r, ok := rec.(R)
	if !ok {
		return zero, &LookupError{
			Code: ErrCodeTypeMismatch,
			ID:   ref.ID(),
			Want: typeName[R](),
			Got:  TypeName(rec),
		}
	}
	return r, nil
}

// Update retrieves the record ref points at and passes it to fn for
// in-place modification.
func Update[R Record](s *Store, ref ir.Ref[R], fn func(R) error) error {
	r, err := Get(s, ref)
	if err != nil {
		return err
	}
	return fn(r)
}

// FindAll iterates over every record of type R in identifier order.
// The store must not be modified during iteration.
func FindAll[R Record](s *Store) iter.Seq2[ir.Ref[R], R] {
	return func(yield func(ir.Ref[R], R) bool) {
		s.tree.Ascend(func(e entry) bool {
			r, ok := e.rec.(R)
			if !ok {
				return true
			}
			return yield(ir.NewRef[R](e.id), r)
		})
	}
}

// IdentifiersOf iterates over the references of every record of type R.
func IdentifiersOf[R Record](s *Store) iter.Seq[ir.Ref[R]] {
	return func(yield func(ir.Ref[R]) bool) {
		for ref := range FindAll[R](s) {
			if !yield(ref) {
				return
			}
		}
	}
}

// typeName returns the bare name of R, e.g. "Point3D" or "Placement".
func typeName[R any]() string {
	t := reflect.TypeFor[R]()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// Each calls fn for every record in identifier order until fn returns false.
func (s *Store) Each(fn func(ir.ID, Record) bool) {
	s.tree.Ascend(func(e entry) bool {
		return fn(e.id, e.rec)
	})
}

// References returns the outgoing references of the record at id.
func (s *Store) References(id ir.ID) ([]Reference, error) {
	rec, err := s.Untyped(id)
	if err != nil {
		return nil, err
	}
	return References(rec), nil
}
