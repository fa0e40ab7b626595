package width

import (
	"strconv"
	"strings"

	"github.com/npillmayer/widthpoints/persistent/steps"
)

type kind uint8

const (
	unconstrained kind = iota
	absolute
	percent
)

// Value is a resolved width: a number of pixels, a symbolic percentage of the
// containing width, or unconstrained. The zero value is unconstrained.
type Value struct {
	x     float64
	kind  kind
	depth uint8 // number of percentage levels multiplied into x
}

// Unconstrained is the value of a width nobody restricts (auto).
func Unconstrained() Value {
	return Value{}
}

// Px creates an absolute width.
func Px(x float64) Value {
	return Value{x: x, kind: absolute}
}

// Percent creates a width of p percent of the containing width.
func Percent(p float64) Value {
	return Value{x: p, kind: percent}
}

// IsConstrained is false for Unconstrained().
func (v Value) IsConstrained() bool {
	return v.kind != unconstrained
}

// Px returns the number of pixels of an absolute width.
func (v Value) Px() (float64, bool) {
	return v.x, v.kind == absolute
}

// Percent returns the percentage of a symbolic width.
func (v Value) Percent() (float64, bool) {
	return v.x, v.kind == percent
}

func (v Value) sameKind(w Value) bool {
	return v.kind == w.kind
}

func (v Value) String() string {
	switch v.kind {
	case absolute:
		return strconv.FormatFloat(v.x, 'f', -1, 64) + "px"
	case percent:
		return strconv.FormatFloat(v.x, 'f', -1, 64) + "%"
	}
	return "auto"
}

// --- Step functions --------------------------------------------------------

// Point is a breakpoint together with the width in effect from there on.
type Point struct {
	Breakpoint float64
	Width      Value
}

// Function is a step function from breakpoints to widths. The width at breakpoint
// key k holds for all breakpoints in [k, next key). Below the first key, and for an
// empty function, widths are unconstrained.
type Function struct {
	steps steps.Steps[Value]
}

// FunctionOf creates a step function from a list of points.
func FunctionOf(points ...Point) Function {
	entries := make([]steps.Entry[Value], len(points))
	for i, p := range points {
		entries[i] = steps.Entry[Value]{Key: p.Breakpoint, Value: p.Width}
	}
	return Function{steps: steps.Of(entries...)}
}

// At returns the width in effect at breakpoint b.
func (f Function) At(b float64) Value {
	return f.steps.Lookup(b).WithDefault(Unconstrained())
}

// Coalesced returns a copy of f without breakpoints which do not change the width.
func (f Function) Coalesced() Function {
	return Function{steps: f.steps.Coalesced(func(v, w Value) bool { return v == w })}
}

// Points returns the breakpoints of f with their widths, in ascending order.
func (f Function) Points() []Point {
	points := make([]Point, 0, f.steps.Len())
	f.steps.Each(func(key float64, v Value) {
		points = append(points, Point{Breakpoint: key, Width: v})
	})
	return points
}

// Keys returns the breakpoints of f in ascending order.
func (f Function) Keys() []float64 {
	return f.steps.Keys()
}

// Len returns the number of breakpoints.
func (f Function) Len() int {
	return f.steps.Len()
}

// IsEmpty is true for a function without breakpoints, i.e. unconstrained everywhere.
func (f Function) IsEmpty() bool {
	return f.steps.IsEmpty()
}

// Equal is true if f and g have identical breakpoints and widths.
func (f Function) Equal(g Function) bool {
	p, q := f.Points(), g.Points()
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Steps returns the underlying step map.
func (f Function) Steps() steps.Steps[Value] {
	return f.steps
}

func (f Function) String() string {
	var sb strings.Builder
	sb.WriteRune('{')
	for i, p := range f.Points() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatFloat(p.Breakpoint, 'f', -1, 64))
		sb.WriteString(": ")
		sb.WriteString(p.Width.String())
	}
	sb.WriteRune('}')
	return sb.String()
}
