package cascade

import (
	"math"

	"github.com/npillmayer/widthpoints/maybe"
	"github.com/npillmayer/widthpoints/persistent/steps"
)

// Table is an interval table: a step function from breakpoints to style records.
// The record at key k holds for all breakpoints in [k, next key).
//
// Once any declaration has been merged, key 0 is present and the table is total
// over [0, ∞). Keys are strictly ascending and adjacent keys never hold equal records.
//
// An empty instance is usable as an empty table. Tables are immutable: SetInterval
// and Merge return new incarnations.
type Table struct {
	steps steps.Steps[Record]
}

// Fold orders a node's declarations (see Order) and merges them into a new table.
// An empty list of declarations results in an empty table.
func Fold(decls []Declaration) (Table, error) {
	var t Table
	var err error
	for _, d := range Order(decls) {
		if t, err = t.Merge(d); err != nil {
			return Table{}, err
		}
	}
	return t, nil
}

// Merge folds one declaration into a table. A declaration with a validity interval
// overrides the interval only; a declaration without one applies to all breakpoints
// (until overridden).
func (t Table) Merge(d Declaration) (Table, error) {
	tracer().Debugf("cascade: merge %v", d)
	iv := d.Interval.WithDefault(Interval{})
	if err := iv.Validate(); err != nil {
		return t, err
	}
	return SetInterval(t, d.Record(), iv.Start, iv.End)
}

// SetInterval inserts record into table for the breakpoint interval [start, end).
// If end is Nothing, record applies from start onwards.
//
// Properties not set in record keep the values they had before, at every breakpoint of
// the interval. Beyond end, the value in effect at end before the operation is
// reinstated. Forced values of table are not overridden by non-forced values of record.
//
// SetInterval returns ErrInvalidInterval if end < start. An empty interval (end = start)
// leaves table unchanged. An end of +Inf is the same as no end.
func SetInterval(table Table, record Record, start float64, end maybe.Maybe[float64]) (Table, error) {
	if err := (Interval{Start: start, End: end}).Validate(); err != nil {
		return table, err
	}
	if start < 0 {
		start = 0
	}
	if e, ok := end.Get(); ok && math.IsInf(e, 1) {
		end = maybe.Nothing[float64]() // [start, +Inf) is open to the right
	}
	e, bounded := end.Get()
	if bounded && e <= start {
		return table, nil
	}
	s := table.steps
	if s.IsEmpty() {
		s = s.With(0, Record{})
	}
	var carry Record // value at end before this operation, to be reinstated at end
	if bounded {
		carry = lookup(s, e)
	}
	head := lookup(s, start) // record truncated at start
	s, deleted := s.WithDeletedRange(start, end)
	s = s.With(start, head.Overlay(record))
	for _, d := range deleted { // re-insert inner keys with record overlaid
		if d.Key == start || (bounded && d.Key == e) {
			continue
		}
		s = s.With(d.Key, d.Value.Overlay(record))
	}
	if bounded {
		s = s.With(e, carry)
	}
	s = s.Coalesced(func(a, b Record) bool { return a == b })
	tracer().Debugf("cascade: table after setting %v@[%v,%v) = %v", record, start, end, s)
	return Table{steps: s}, nil
}

// lookup is a step-function lookup which falls back to the first key.
func lookup(s steps.Steps[Record], b float64) Record {
	if r, ok := s.At(b); ok {
		return r
	}
	if entries := s.Entries(); len(entries) > 0 {
		return entries[0].Value
	}
	return Record{}
}

// At returns the record in effect at breakpoint b.
func (t Table) At(b float64) Record {
	return lookup(t.steps, b)
}

// Keys returns the breakpoints of the table in ascending order.
func (t Table) Keys() []float64 {
	return t.steps.Keys()
}

// Len returns the number of breakpoints.
func (t Table) Len() int {
	return t.steps.Len()
}

// IsEmpty is true for a table no declaration has been merged into.
func (t Table) IsEmpty() bool {
	return t.steps.IsEmpty()
}

// Steps returns the underlying step map.
func (t Table) Steps() steps.Steps[Record] {
	return t.steps
}

func (t Table) String() string {
	return t.steps.String()
}
