package anchor

import "strings"

// Set is an ordered, duplicate-free list of keys.
type Set []ID

// SetOf builds a set from ids, dropping duplicates.
func SetOf(ids ...ID) Set {
	var s Set
	for _, id := range ids {
		if !s.Contains(id) {
			s = append(s, id)
		}
	}
	return s
}

// Contains reports whether id is in the set.
func (s Set) Contains(id ID) bool {
	for _, have := range s {
		if have == id {
			return true
		}
	}
	return false
}

// Union returns s followed by the members of others not already present.
// s is not modified.
func (s Set) Union(others ...Set) Set {
	out := make(Set, len(s), len(s)+len(others))
	copy(out, s)
	for _, other := range others {
		for _, id := range other {
			if !out.Contains(id) {
				out = append(out, id)
			}
		}
	}
	return out
}

// Without returns s minus ids.
func (s Set) Without(ids ...ID) Set {
	exclude := SetOf(ids...)
	var out Set
	for _, id := range s {
		if !exclude.Contains(id) {
			out = append(out, id)
		}
	}
	return out
}

func (s Set) String() string {
	names := make([]string, len(s))
	for i, id := range s {
		names[i] = id.Name()
	}
	return "{" + strings.Join(names, ", ") + "}"
}
