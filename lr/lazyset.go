package lr

import (
	"github.com/emirpasic/gods/sets/treeset"
)

// LazySet is a set of terminals which is defined as the union of some
// concrete elements and other lazy sets. FIRST and FOLLOW sets of the
// extended grammar are lazy sets. A set is resolved once all the sets it is
// composed of are resolved; sets depending on each other are resolved as a
// group.
type LazySet struct {
	Subject     string       // what the set is about, e.g. "FOLLOW(3_E_7)"
	elements    *treeset.Set // of Symbol
	composition []*LazySet
	resolution  *treeset.Set
}

func newLazySet(subject string) *LazySet {
	return &LazySet{
		Subject:  subject,
		elements: treeset.NewWith(symbolComparator),
	}
}

// Add adds a concrete element.
func (s *LazySet) Add(sym Symbol) {
	s.elements.Add(sym)
}

// Compose adds all elements of another lazy set, once it is resolved.
func (s *LazySet) Compose(other *LazySet) {
	for _, c := range s.composition {
		if c == other {
			return
		}
	}
	s.composition = append(s.composition, other)
}

// IsResolved is true if the set has been resolved.
func (s *LazySet) IsResolved() bool {
	return s.resolution != nil
}

// Values returns the elements of a resolved set, sorted; nil otherwise.
func (s *LazySet) Values() []Symbol {
	if s.resolution == nil {
		return nil
	}
	syms := make([]Symbol, 0, s.resolution.Size())
	for _, x := range s.resolution.Values() {
		syms = append(syms, x.(Symbol))
	}
	return syms
}

// Contains checks if a resolved set contains sym.
func (s *LazySet) Contains(sym Symbol) bool {
	return s.resolution != nil && s.resolution.Contains(sym)
}

func (s *LazySet) String() string {
	if s.resolution == nil {
		return s.Subject + " = ?"
	}
	return s.Subject + " = " + s.resolution.String()
}

func (s *LazySet) ready() bool {
	for _, c := range s.composition {
		if c.resolution == nil {
			return false
		}
	}
	return true
}

func (s *LazySet) resolve() {
	s.resolution = treeset.NewWith(symbolComparator)
	s.resolution.Add(s.elements.Values()...)
	for _, c := range s.composition {
		s.resolution.Add(c.resolution.Values()...)
	}
}

// resolveAll resolves a system of lazy sets by fixed point iteration.
// Sets which are ready are resolved directly. If none is, groups of sets
// depending on each other are collapsed, provided the group does not depend
// on other unresolved sets and is anchored, i.e. contains concrete
// elements or depends on resolved sets. A group without an anchor describes
// non-terminals which never derive a terminal string.
func resolveAll(sets []*LazySet) error {
	for {
		progress := false
		for _, s := range sets {
			if s.resolution == nil && s.ready() {
				s.resolve()
				progress = true
			}
		}
		if progress {
			continue
		}
		unresolved := 0
		for _, s := range sets {
			if s.resolution == nil {
				unresolved++
			}
		}
		if unresolved == 0 {
			return nil
		}
		for _, group := range dependencyGroups(sets) {
			if collapse(group) {
				progress = true
			}
		}
		if !progress {
			err := &ResolutionError{Total: len(sets), Resolved: len(sets) - unresolved}
			for _, s := range sets {
				if s.resolution == nil {
					err.Unresolved = append(err.Unresolved, s.Subject)
				}
			}
			return err
		}
	}
}

// collapse resolves a group of sets to the union of their elements and of
// the resolved sets they depend on. It returns false if the group is not
// closed or not anchored.
func collapse(group []*LazySet) bool {
	inGroup := make(map[*LazySet]bool, len(group))
	for _, s := range group {
		inGroup[s] = true
	}
	union := treeset.NewWith(symbolComparator)
	anchored := false
	for _, s := range group {
		if !s.elements.Empty() {
			anchored = true
			union.Add(s.elements.Values()...)
		}
		for _, c := range s.composition {
			if inGroup[c] {
				continue
			}
			if c.resolution == nil {
				return false
			}
			anchored = true
			union.Add(c.resolution.Values()...)
		}
	}
	if !anchored {
		return false
	}
	for _, s := range group {
		s.resolution = treeset.NewWith(symbolComparator)
		s.resolution.Add(union.Values()...)
	}
	tracer().Debugf("collapsed %d mutually dependent sets", len(group))
	return true
}

// dependencyGroups returns the strongly connected components of the
// dependency graph of unresolved sets (Tarjan's algorithm).
func dependencyGroups(sets []*LazySet) [][]*LazySet {
	t := &tarjan{
		index: make(map[*LazySet]int),
		low:   make(map[*LazySet]int),
		on:    make(map[*LazySet]bool),
	}
	for _, s := range sets {
		if s.resolution == nil {
			if _, seen := t.index[s]; !seen {
				t.connect(s)
			}
		}
	}
	return t.groups
}

type tarjan struct {
	counter int
	index   map[*LazySet]int
	low     map[*LazySet]int
	on      map[*LazySet]bool
	stack   []*LazySet
	groups  [][]*LazySet
}

func (t *tarjan) connect(s *LazySet) {
	t.index[s] = t.counter
	t.low[s] = t.counter
	t.counter++
	t.stack = append(t.stack, s)
	t.on[s] = true
	for _, c := range s.composition {
		if c.resolution != nil {
			continue
		}
		if _, seen := t.index[c]; !seen {
			t.connect(c)
			if t.low[c] < t.low[s] {
				t.low[s] = t.low[c]
			}
		} else if t.on[c] && t.index[c] < t.low[s] {
			t.low[s] = t.index[c]
		}
	}
	if t.low[s] == t.index[s] {
		var group []*LazySet
		for {
			n := len(t.stack) - 1
			top := t.stack[n]
			t.stack = t.stack[:n]
			t.on[top] = false
			group = append(group, top)
			if top == s {
				break
			}
		}
		t.groups = append(t.groups, group)
	}
}
