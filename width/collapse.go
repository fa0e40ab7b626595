package width

import (
	"math"

	"github.com/npillmayer/widthpoints/persistent/steps"
)

// Collapse reduces width, min-width and max-width of a node to its effective width,
// for every breakpoint key.
//
// max-width is applied before min-width: an explicit min-width wins over a
// conflicting max-width. If none of the three constrains the width at a breakpoint,
// the effective width is unconstrained there.
func Collapse(resolved steps.Steps[Resolved]) Function {
	s := steps.Map(resolved, func(_ float64, r Resolved) Value {
		return effective(r)
	})
	tracer().Debugf("width: collapsed = %v", s)
	return Function{steps: s}
}

func effective(r Resolved) Value {
	eff := r.Width
	if r.Max.IsConstrained() {
		if eff.IsConstrained() {
			eff = lower(eff, r.Max)
		} else {
			eff = r.Max
		}
	}
	if r.Min.IsConstrained() {
		if eff.IsConstrained() {
			eff = upper(eff, r.Min)
		} else {
			eff = r.Min
		}
	}
	return eff
}

// lower returns the smaller of v and bound. Values of different kinds cannot be
// compared; then the bound wins.
func lower(v, bound Value) Value {
	if !v.sameKind(bound) {
		return bound
	}
	v.x = math.Min(v.x, bound.x)
	return v
}

// upper returns the greater of v and bound. Values of different kinds cannot be
// compared; then the bound wins.
func upper(v, bound Value) Value {
	if !v.sameKind(bound) {
		return bound
	}
	v.x = math.Max(v.x, bound.x)
	return v
}
