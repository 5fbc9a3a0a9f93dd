// Package classes defines the fixed vocabulary of standard race classes and
// the mapping layer that normalizes arbitrary source class labels onto it.
package classes

// Name identifies a standard race class.
type Name string

// String returns the string representation of a class name.
func (n Name) String() string {
	return string(n)
}

// Standard class names in display order. The den tiers run from youngest to
// oldest, with the grand finals as the single cross-den championship tier.
const (
	Lion         Name = "Lion"
	Tiger        Name = "Tiger"
	Wolf         Name = "Wolf"
	Bear         Name = "Bear"
	Webelos      Name = "Webelos"
	ArrowOfLight Name = "Arrow of Light"
	GrandFinals  Name = "Grand Finals"
)

// Set is an ordered, fixed vocabulary of standard class names. The last
// entry is treated as the finals tier.
type Set struct {
	names  []Name
	finals Name
	index  map[Name]int
}

// NewSet creates a Set from an ordered list of class names and the name of
// the finals tier. The finals name must be a member of names.
func NewSet(names []Name, finals Name) Set {
	index := make(map[Name]int, len(names))
	for i, n := range names {
		index[n] = i
	}
	if _, ok := index[finals]; !ok {
		names = append(append([]Name{}, names...), finals)
		index[finals] = len(names) - 1
	}
	return Set{names: names, finals: finals, index: index}
}

// DefaultSet returns the standard seven-tier den ladder culminating in the
// grand finals.
func DefaultSet() Set {
	return NewSet([]Name{
		Lion,
		Tiger,
		Wolf,
		Bear,
		Webelos,
		ArrowOfLight,
		GrandFinals,
	}, GrandFinals)
}

// Names returns the class names in display order.
func (s Set) Names() []Name {
	out := make([]Name, len(s.names))
	copy(out, s.names)
	return out
}

// Dens returns the non-finals class names in display order.
func (s Set) Dens() []Name {
	dens := make([]Name, 0, len(s.names))
	for _, n := range s.names {
		if n != s.finals {
			dens = append(dens, n)
		}
	}
	return dens
}

// Finals returns the name of the finals tier.
func (s Set) Finals() Name {
	return s.finals
}

// IsFinals reports whether n is the finals tier.
func (s Set) IsFinals(n Name) bool {
	return n == s.finals
}

// Contains reports whether n is a member of the set.
func (s Set) Contains(n Name) bool {
	_, ok := s.index[n]
	return ok
}

// Index returns the display-order position of n, or -1 if n is not a member.
func (s Set) Index(n Name) int {
	if i, ok := s.index[n]; ok {
		return i
	}
	return -1
}

// Len returns the number of classes in the set.
func (s Set) Len() int {
	return len(s.names)
}
