package platform

import "github.com/mj1618/desktop-agent/internal/model"

// HandleTable interns native element references as Handles. Platforms hand
// out a fresh reference every time a node is reached, so two references the
// platform considers equal must map to the same Handle for a revisited node to
// be recognised. Handle numbers are never reused, so a Handle from a released
// generation stops resolving instead of aliasing a new node.
//
// HandleTable is not safe for concurrent use.
type HandleTable[R any] struct {
	hash    func(R) uint64
	equal   func(a, b R) bool
	release func(R)

	refs   map[model.Handle]R
	byHash map[uint64][]model.Handle
	next   model.Handle
}

// NewHandleTable returns an empty table. equal must agree with hash. release
// may be nil when references need no cleanup.
func NewHandleTable[R any](hash func(R) uint64, equal func(a, b R) bool, release func(R)) *HandleTable[R] {
	return &HandleTable[R]{
		hash:    hash,
		equal:   equal,
		release: release,
		refs:    make(map[model.Handle]R),
		byHash:  make(map[uint64][]model.Handle),
	}
}

// Intern takes ownership of ref and returns its handle. When an equal
// reference is already registered, ref is released and the existing handle is
// returned.
func (t *HandleTable[R]) Intern(ref R) model.Handle {
	key := t.hash(ref)
	for _, h := range t.byHash[key] {
		if t.equal(t.refs[h], ref) {
			t.drop(ref)
			return h
		}
	}
	t.next++
	t.refs[t.next] = ref
	t.byHash[key] = append(t.byHash[key], t.next)
	return t.next
}

// Lookup resolves a handle of the current generation.
func (t *HandleTable[R]) Lookup(h model.Handle) (R, bool) {
	ref, ok := t.refs[h]
	return ref, ok
}

// Replace releases every registered reference and starts a new generation
// rooted at ref. Callers resolve ref first so a failed lookup leaves the
// current generation intact.
func (t *HandleTable[R]) Replace(ref R) model.Handle {
	for h, old := range t.refs {
		t.drop(old)
		delete(t.refs, h)
	}
	clear(t.byHash)
	return t.Intern(ref)
}

// Len returns the number of live handles.
func (t *HandleTable[R]) Len() int {
	return len(t.refs)
}

func (t *HandleTable[R]) drop(ref R) {
	if t.release != nil {
		t.release(ref)
	}
}
