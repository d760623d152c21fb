package model

import (
	"encoding/json"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// SecondaryFileSet is a deduplicated set of repository-relative paths.
// Membership matters, insertion order does not.
type SecondaryFileSet struct {
	set mapset.Set[string]
}

// NewSecondaryFileSet returns a set seeded with paths.
func NewSecondaryFileSet(paths ...string) *SecondaryFileSet {
	s := &SecondaryFileSet{set: mapset.NewThreadUnsafeSet[string]()}
	s.Add(paths...)
	return s
}

// Add inserts paths, ignoring empty strings.
func (s *SecondaryFileSet) Add(paths ...string) {
	for _, p := range paths {
		if p != "" {
			s.set.Add(p)
		}
	}
}

// Contains reports whether path is a member.
func (s *SecondaryFileSet) Contains(path string) bool {
	return s.set.Contains(path)
}

// Len returns the number of distinct paths.
func (s *SecondaryFileSet) Len() int {
	return s.set.Cardinality()
}

// Equal reports whether both sets hold the same paths.
func (s *SecondaryFileSet) Equal(other *SecondaryFileSet) bool {
	return s.set.Equal(other.set)
}

// Sorted returns the members in lexical order.
func (s *SecondaryFileSet) Sorted() []string {
	out := s.set.ToSlice()
	sort.Strings(out)
	return out
}

// Map returns a new set with fn applied to every member.
func (s *SecondaryFileSet) Map(fn func(string) string) *SecondaryFileSet {
	out := NewSecondaryFileSet()
	s.set.Each(func(p string) bool {
		out.Add(fn(p))
		return false
	})
	return out
}

// MarshalJSON encodes the set as a sorted array.
func (s *SecondaryFileSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array of paths.
func (s *SecondaryFileSet) UnmarshalJSON(data []byte) error {
	var paths []string
	if err := json.Unmarshal(data, &paths); err != nil {
		return err
	}
	s.set = mapset.NewThreadUnsafeSet[string]()
	s.Add(paths...)
	return nil
}
