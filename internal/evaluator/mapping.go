package evaluator

import (
	"fmt"
	"sort"

	"github.com/magiconair/properties"
)

// Mapping is an ordered, case-sensitive map from dotted config keys
// (e.g. "manifest.author") to string values. A missing key is a normal
// condition, and a nil *Mapping behaves as an empty one.
type Mapping struct {
	keys   []string
	values map[string]string
}

// ParseProperties decodes evaluator output in Java properties format.
// Values are taken verbatim: ${...} references are not expanded.
func ParseProperties(data []byte) (*Mapping, error) {
	l := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := l.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse properties: %w", err)
	}
	m := &Mapping{values: make(map[string]string, p.Len())}
	for _, k := range p.Keys() {
		v, _ := p.Get(k)
		m.keys = append(m.keys, k)
		m.values[k] = v
	}
	return m, nil
}

// MappingFromMap builds a Mapping from a plain map; keys are ordered lexically.
func MappingFromMap(kv map[string]string) *Mapping {
	m := &Mapping{values: make(map[string]string, len(kv))}
	for k, v := range kv {
		m.keys = append(m.keys, k)
		m.values[k] = v
	}
	sort.Strings(m.keys)
	return m
}

// Lookup returns the value stored under key.
func (m *Mapping) Lookup(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.values[key]
	return v, ok
}

// String returns the value stored under key, or def when the key is absent.
func (m *Mapping) String(key, def string) string {
	if v, ok := m.Lookup(key); ok {
		return v
	}
	return def
}

// Keys returns keys in evaluator output order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of keys.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}
