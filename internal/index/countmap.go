package index

import (
	"encoding/json"
	"fmt"
)

// CountMap is a string-keyed counter map that preserves first-insertion
// order of keys. Order matters: the top-moves tie-break and the snapshot
// format both depend on it.
type CountMap struct {
	keys []string
	vals map[string]int
}

// NewCountMap returns an empty count map.
func NewCountMap() *CountMap {
	return &CountMap{vals: make(map[string]int)}
}

// Inc adds delta to the count for key, inserting the key at the end of
// the order on first sight.
func (m *CountMap) Inc(key string, delta int) {
	if m.vals == nil {
		m.vals = make(map[string]int)
	}
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] += delta
}

// Get returns the count for key, zero if absent.
func (m *CountMap) Get(key string) int {
	return m.vals[key]
}

// Len returns the number of distinct keys.
func (m *CountMap) Len() int {
	return len(m.keys)
}

// Sum returns the total of all counts.
func (m *CountMap) Sum() int {
	var sum int
	for _, v := range m.vals {
		sum += v
	}
	return sum
}

// Keys returns the keys in first-insertion order. The returned slice is
// shared; callers must not modify it.
func (m *CountMap) Keys() []string {
	return m.keys
}

// Pair is one (key, count) entry of a CountMap.
type Pair struct {
	Key   string
	Count int
}

// Pairs returns all entries in first-insertion order.
func (m *CountMap) Pairs() []Pair {
	pairs := make([]Pair, 0, len(m.keys))
	for _, k := range m.keys {
		pairs = append(pairs, Pair{Key: k, Count: m.vals[k]})
	}
	return pairs
}

// Clone returns an independent copy preserving insertion order.
func (m *CountMap) Clone() *CountMap {
	c := &CountMap{
		keys: make([]string, len(m.keys)),
		vals: make(map[string]int, len(m.vals)),
	}
	copy(c.keys, m.keys)
	for k, v := range m.vals {
		c.vals[k] = v
	}
	return c
}

// MarshalJSON encodes the map as a list of [key, count] pairs in
// first-insertion order.
func (m *CountMap) MarshalJSON() ([]byte, error) {
	out := make([][2]any, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, [2]any{k, m.vals[k]})
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a list of [key, count] pairs, preserving pair
// order as insertion order. null decodes to an empty map.
func (m *CountMap) UnmarshalJSON(data []byte) error {
	var raw [][2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("count map: %w", err)
	}
	m.keys = m.keys[:0]
	m.vals = make(map[string]int, len(raw))
	for _, pair := range raw {
		var key string
		var count int
		if err := json.Unmarshal(pair[0], &key); err != nil {
			return fmt.Errorf("count map key: %w", err)
		}
		if err := json.Unmarshal(pair[1], &count); err != nil {
			return fmt.Errorf("count map value: %w", err)
		}
		m.Inc(key, count)
	}
	return nil
}
