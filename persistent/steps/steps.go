package steps

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/npillmayer/widthpoints/maybe"
)

/*
Remarks:
--------

- 'cow' stands for copy-on-write and is used throughout the code for variables holding
  clones of the entry slice.

- A slice of entries is never modified after it has been handed out as part of a Steps
  value. All mutating operations work on a clone.

*/

// Entry is a breakpoint key together with the value holding from this key onwards.
type Entry[V any] struct {
	Key   float64
	Value V
}

// Steps is a persistent step map. An empty instance is usable as an empty step map, i.e.
// this is legal:
//
//     s := steps.Steps[string]{}.With(0, "narrow")
//
type Steps[V any] struct {
	entries []Entry[V] // ascending by key, keys are unique
}

// Of creates a step map from a list of entries in any order. For duplicate keys,
// the last entry wins.
func Of[V any](entries ...Entry[V]) Steps[V] {
	var s Steps[V]
	for _, e := range entries {
		s = s.With(e.Key, e.Value)
	}
	return s
}

// --- API -------------------------------------------------------------------

// Len returns the number of keys.
func (s Steps[V]) Len() int {
	return len(s.entries)
}

// IsEmpty is true for a step map without any key.
func (s Steps[V]) IsEmpty() bool {
	return len(s.entries) == 0
}

// At performs a step-function lookup: it returns the value of the greatest key ≤ b.
// If b is below the first key (or s is empty), ok=false is returned.
func (s Steps[V]) At(b float64) (V, bool) {
	found, at := s.findSlot(b)
	if !found {
		at-- // findSlot points past the greatest key < b
	}
	if at < 0 {
		var none V
		return none, false
	}
	return s.entries[at].Value, true
}

// Lookup is like At, but wraps the result into a Maybe.
func (s Steps[V]) Lookup(b float64) maybe.Maybe[V] {
	if v, ok := s.At(b); ok {
		return maybe.Just(v)
	}
	return maybe.Nothing[V]()
}

// With returns a copy of s with key associated with value. An existing entry for key
// will be replaced (in a new incarnation of the step map, nevertheless).
func (s Steps[V]) With(key float64, value V) Steps[V] {
	assertThat(!math.IsNaN(key), "breakpoint key must not be NaN")
	found, at := s.findSlot(key)
	if found {
		cow := s.clone(0)
		cow[at].Value = value
		return Steps[V]{entries: cow}
	}
	cow := make([]Entry[V], 0, len(s.entries)+1)
	cow = append(cow, s.entries[:at]...)
	cow = append(cow, Entry[V]{Key: key, Value: value})
	cow = append(cow, s.entries[at:]...)
	tracer().Debugf("steps: inserted key %v at position %d", key, at)
	return Steps[V]{entries: cow}
}

// WithDeletedRange returns a copy of s without the entries with from ≤ key ≤ to,
// together with the entries deleted. If to is Nothing, the range is open to the right.
func (s Steps[V]) WithDeletedRange(from float64, to maybe.Maybe[float64]) (Steps[V], []Entry[V]) {
	lo, hi := s.bounds(from, to)
	if lo == hi {
		return s, nil
	}
	deleted := make([]Entry[V], hi-lo)
	copy(deleted, s.entries[lo:hi])
	cow := make([]Entry[V], 0, len(s.entries)-(hi-lo))
	cow = append(cow, s.entries[:lo]...)
	cow = append(cow, s.entries[hi:]...)
	tracer().Debugf("steps: deleted %d keys in [%v, %v]", len(deleted), from, to)
	return Steps[V]{entries: cow}, deleted
}

// Keys returns the breakpoint keys in ascending order.
func (s Steps[V]) Keys() []float64 {
	keys := make([]float64, len(s.entries))
	for i, e := range s.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns all entries in ascending key order.
func (s Steps[V]) Entries() []Entry[V] {
	return s.clone(0)
}

// Each calls f for every entry in ascending key order.
func (s Steps[V]) Each(f func(key float64, value V)) {
	for _, e := range s.entries {
		f(e.Key, e.Value)
	}
}

// Coalesced returns a copy of s where an entry is dropped if its value equals the value
// of the preceding entry.
func (s Steps[V]) Coalesced(eq func(a, b V) bool) Steps[V] {
	if len(s.entries) < 2 {
		return s
	}
	cow := make([]Entry[V], 1, len(s.entries))
	cow[0] = s.entries[0]
	for _, e := range s.entries[1:] {
		if eq(cow[len(cow)-1].Value, e.Value) {
			continue
		}
		cow = append(cow, e)
	}
	if len(cow) == len(s.entries) {
		return s
	}
	return Steps[V]{entries: cow}
}

func (s Steps[V]) String() string {
	var sb strings.Builder
	sb.WriteRune('{')
	for i, e := range s.entries {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatFloat(e.Key, 'f', -1, 64))
		sb.WriteString(": ")
		sb.WriteString(fmt.Sprintf("%v", e.Value))
	}
	sb.WriteRune('}')
	return sb.String()
}

// --- Functions over step maps ----------------------------------------------

// Map applies f to every value of s, keeping the keys.
func Map[V, W any](s Steps[V], f func(key float64, v V) W) Steps[W] {
	cow := make([]Entry[W], len(s.entries))
	for i, e := range s.entries {
		cow[i] = Entry[W]{Key: e.Key, Value: f(e.Key, e.Value)}
	}
	return Steps[W]{entries: cow}
}

// UnionKeys returns the sorted union of the keys of two step maps.
func UnionKeys[V, W any](a Steps[V], b Steps[W]) []float64 {
	keys := make([]float64, 0, len(a.entries)+len(b.entries))
	i, j := 0, 0
	for i < len(a.entries) || j < len(b.entries) {
		switch {
		case j >= len(b.entries) || (i < len(a.entries) && a.entries[i].Key < b.entries[j].Key):
			keys = append(keys, a.entries[i].Key)
			i++
		case i >= len(a.entries) || b.entries[j].Key < a.entries[i].Key:
			keys = append(keys, b.entries[j].Key)
			j++
		default: // equal keys
			keys = append(keys, a.entries[i].Key)
			i++
			j++
		}
	}
	return keys
}

// FromKeys builds a step map by evaluating f at every key. keys must be
// strictly ascending.
func FromKeys[V any](keys []float64, f func(key float64) V) Steps[V] {
	cow := make([]Entry[V], len(keys))
	for i, k := range keys {
		assertThat(i == 0 || keys[i-1] < k, "keys must be strictly ascending: %v ≥ %v", keys[max(0, i-1)], k)
		cow[i] = Entry[V]{Key: k, Value: f(k)}
	}
	return Steps[V]{entries: cow}
}

// --- Internals -------------------------------------------------------------

// findSlot searches for key. It returns the position of key, if found, or the position
// where key would have to be inserted.
func (s Steps[V]) findSlot(key float64) (bool, int) {
	n := len(s.entries)
	at := sort.Search(n, func(i int) bool {
		return s.entries[i].Key >= key // sort.Search will find the smallest i for which this is true
	})
	return at < n && s.entries[at].Key == key, at
}

// bounds returns the slice bounds [lo, hi) of the entries with from ≤ key ≤ to.
func (s Steps[V]) bounds(from float64, to maybe.Maybe[float64]) (int, int) {
	_, lo := s.findSlot(from)
	hi := len(s.entries)
	if end, ok := to.Get(); ok {
		found, at := s.findSlot(end)
		if found {
			at++ // include end
		}
		hi = at
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

func (s Steps[V]) clone(extra int) []Entry[V] {
	cow := make([]Entry[V], len(s.entries), len(s.entries)+extra)
	copy(cow, s.entries)
	return cow
}
