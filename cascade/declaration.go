package cascade

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/widthpoints/css"
	"github.com/npillmayer/widthpoints/maybe"
)

// Property is one of the style properties relevant for width computation.
type Property uint8

// Style properties handled by the cascade.
const (
	Width Property = iota
	MinWidth
	MaxWidth
	FontSize
	propertyCount
)

// Properties lists all style properties in a fixed order.
var Properties = [...]Property{Width, MinWidth, MaxWidth, FontSize}

func (p Property) String() string {
	switch p {
	case Width:
		return "width"
	case MinWidth:
		return "min-width"
	case MaxWidth:
		return "max-width"
	case FontSize:
		return "font-size"
	}
	return "property(" + strconv.Itoa(int(p)) + ")"
}

// PropertyByName returns the property for a CSS property key like "max-width".
func PropertyByName(key string) (Property, bool) {
	for _, p := range Properties {
		if p.String() == key {
			return p, true
		}
	}
	return 0, false
}

// Flags is a set of properties.
type Flags uint8

// Forced creates a flag set, used for properties declared as forced (!important).
func Forced(props ...Property) Flags {
	var f Flags
	for _, p := range props {
		f |= 1 << p
	}
	return f
}

// Has is true if p is a member of the set.
func (f Flags) Has(p Property) bool {
	return f&(1<<p) != 0
}

// --- Intervals -------------------------------------------------------------

// ErrInvalidInterval is returned for validity intervals ending before they start.
var ErrInvalidInterval = errors.New("invalid breakpoint interval")

// Interval is a validity interval [Start, End) on the breakpoint axis. An End of
// Nothing means the interval extends to infinity.
type Interval struct {
	Start float64
	End   maybe.Maybe[float64]
}

// Between creates the interval [start, end).
func Between(start, end float64) Interval {
	return Interval{Start: start, End: maybe.Just(end)}
}

// From creates the interval [start, ∞).
func From(start float64) Interval {
	return Interval{Start: start}
}

// UpTo creates the interval [0, end).
func UpTo(end float64) Interval {
	return Interval{End: maybe.Just(end)}
}

// Validate checks an interval for a usable start and an end not before its start.
func (iv Interval) Validate() error {
	if math.IsNaN(iv.Start) || math.IsInf(iv.Start, 0) {
		return fmt.Errorf("%w: start %v", ErrInvalidInterval, iv.Start)
	}
	if end, ok := iv.End.Get(); ok && (math.IsNaN(end) || end < iv.Start) {
		return fmt.Errorf("%w: [%v, %v)", ErrInvalidInterval, iv.Start, end)
	}
	return nil
}

func (iv Interval) String() string {
	end := "∞"
	if e, ok := iv.End.Get(); ok {
		end = strconv.FormatFloat(e, 'f', -1, 64)
	}
	return "[" + strconv.FormatFloat(iv.Start, 'f', -1, 64) + ", " + end + ")"
}

// --- Declarations ----------------------------------------------------------

// Declaration is one style rule's contribution for one node.
// Declarations are produced by a declaration provider and treated as immutable.
type Declaration struct {
	Width    maybe.Maybe[css.DimenT]
	Min      maybe.Maybe[css.DimenT]
	Max      maybe.Maybe[css.DimenT]
	FontSize maybe.Maybe[css.DimenT]
	Forced   Flags                 // properties declared with highest override priority
	Interval maybe.Maybe[Interval] // Nothing: valid from 0 to infinity
	Priority int                   // higher wins
	Source   string                // where this declaration comes from, for tracing only
}

// Get returns the value declared for property p.
func (d Declaration) Get(p Property) maybe.Maybe[css.DimenT] {
	switch p {
	case Width:
		return d.Width
	case MinWidth:
		return d.Min
	case MaxWidth:
		return d.Max
	case FontSize:
		return d.FontSize
	}
	return maybe.Nothing[css.DimenT]()
}

func (d *Declaration) set(p Property, v maybe.Maybe[css.DimenT]) {
	switch p {
	case Width:
		d.Width = v
	case MinWidth:
		d.Min = v
	case MaxWidth:
		d.Max = v
	case FontSize:
		d.FontSize = v
	}
}

// With returns a copy of d declaring value v for property p. If forced is set,
// p is flagged as forced, otherwise any forced flag for p is cleared.
func (d Declaration) With(p Property, v css.DimenT, forced bool) Declaration {
	d.set(p, maybe.Just(v))
	if forced {
		d.Forced |= Forced(p)
	} else {
		d.Forced &^= Forced(p)
	}
	return d
}

// IsEmpty is true if d declares none of the properties.
func (d Declaration) IsEmpty() bool {
	for _, p := range Properties {
		if !d.Get(p).IsNothing() {
			return false
		}
	}
	return true
}

// Record returns the style record this declaration contributes.
func (d Declaration) Record() Record {
	var r Record
	for _, p := range Properties {
		if v, ok := d.Get(p).Get(); ok && !v.IsNone() {
			r = r.With(p, v, d.Forced.Has(p))
		}
	}
	return r
}

// Split separates d into a declaration holding the normal properties and one holding
// the forced properties. Either of them may be empty.
func (d Declaration) Split() (normal, forced Declaration) {
	normal, forced = d, d
	for _, p := range Properties {
		if d.Forced.Has(p) {
			normal.set(p, maybe.Nothing[css.DimenT]())
		} else {
			forced.set(p, maybe.Nothing[css.DimenT]())
		}
	}
	normal.Forced = 0
	return
}

func (d Declaration) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	if d.Source != "" {
		sb.WriteString(d.Source + " ")
	}
	sb.WriteString(d.Record().String())
	if iv, ok := d.Interval.Get(); ok {
		sb.WriteString(" @" + iv.String())
	}
	sb.WriteString(" prio=" + strconv.Itoa(d.Priority) + "}")
	return sb.String()
}

// --- Style records ---------------------------------------------------------

// Record holds the winning value of each property at a breakpoint, together with
// a flag per property telling if the value has been forced.
// Records are values; the zero value is a record without any property set.
type Record struct {
	values [propertyCount]maybe.Maybe[css.DimenT]
	forced [propertyCount]bool
}

// Get returns the value of property p.
func (r Record) Get(p Property) maybe.Maybe[css.DimenT] {
	return r.values[p]
}

// IsForced is true if the value of p has been forced.
func (r Record) IsForced(p Property) bool {
	return r.forced[p]
}

// With returns a copy of r with p set to d.
func (r Record) With(p Property, d css.DimenT, forced bool) Record {
	r.values[p] = maybe.Just(d)
	r.forced[p] = forced
	return r
}

// Without returns a copy of r with p unset.
func (r Record) Without(p Property) Record {
	r.values[p] = maybe.Nothing[css.DimenT]()
	r.forced[p] = false
	return r
}

// IsEmpty is true if no property is set.
func (r Record) IsEmpty() bool {
	return r == Record{}
}

// Width returns the value of property width.
func (r Record) Width() maybe.Maybe[css.DimenT] { return r.values[Width] }

// Min returns the value of property min-width.
func (r Record) Min() maybe.Maybe[css.DimenT] { return r.values[MinWidth] }

// Max returns the value of property max-width.
func (r Record) Max() maybe.Maybe[css.DimenT] { return r.values[MaxWidth] }

// FontSize returns the value of property font-size.
func (r Record) FontSize() maybe.Maybe[css.DimenT] { return r.values[FontSize] }

// Overlay returns a copy of r with every property set in incoming replacing r's value.
// A forced value in r survives an incoming value which is not forced.
func (r Record) Overlay(incoming Record) Record {
	for _, p := range Properties {
		if r.forced[p] && !incoming.forced[p] {
			continue
		}
		if !incoming.values[p].IsNothing() {
			r.forced[p] = incoming.forced[p]
		}
		r.values[p] = incoming.values[p].Or(r.values[p]) // unset properties backfill from r
	}
	return r
}

func (r Record) String() string {
	var parts []string
	for _, p := range Properties {
		if v, ok := r.values[p].Get(); ok {
			s := p.String() + ":" + v.String()
			if r.forced[p] {
				s += "!"
			}
			parts = append(parts, s)
		}
	}
	return "(" + strings.Join(parts, " ") + ")"
}
