package keys

import "sort"

// Set is a set of canonical keys.
type Set map[Key]struct{}

// NewSet returns a set holding ks.
func NewSet(ks ...Key) Set {
	s := make(Set, len(ks))
	for _, k := range ks {
		s[k] = struct{}{}
	}
	return s
}

func (s Set) Add(k Key)    { s[k] = struct{}{} }
func (s Set) Remove(k Key) { delete(s, k) }

func (s Set) Has(k Key) bool {
	_, ok := s[k]
	return ok
}

// Equal reports whether s and o hold exactly the same keys.
func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for k := range s {
		if !o.Has(k) {
			return false
		}
	}
	return true
}

// Sorted returns the keys of s in display order.
func (s Set) Sorted() []Key {
	out := make([]Key, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
