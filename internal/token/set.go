package token

// Set is a bitset over token kinds, used for first sets and recovery
// sets. Membership tests are two word operations, so sets are cheap
// enough to build once as package-level values and pass by value.
type Set [2]uint64

// NewSet builds a set from the given kinds.
func NewSet(kinds ...Kind) Set {
	var s Set
	for _, k := range kinds {
		s[k>>6] |= 1 << (k & 63)
	}
	return s
}

// Contains reports whether the kind is in the set.
func (s Set) Contains(k Kind) bool {
	return s[k>>6]&(1<<(k&63)) != 0
}

// Union returns the set containing the members of both sets.
func (s Set) Union(other Set) Set {
	return Set{s[0] | other[0], s[1] | other[1]}
}

// Add returns the set with the given kinds added.
func (s Set) Add(kinds ...Kind) Set {
	return s.Union(NewSet(kinds...))
}

// Remove returns the set with the given kinds removed.
func (s Set) Remove(kinds ...Kind) Set {
	drop := NewSet(kinds...)
	return Set{s[0] &^ drop[0], s[1] &^ drop[1]}
}
