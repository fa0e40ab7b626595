package width

import (
	"github.com/npillmayer/widthpoints/cascade"
	"github.com/npillmayer/widthpoints/css"
	"github.com/npillmayer/widthpoints/maybe"
	"github.com/npillmayer/widthpoints/persistent/steps"
)

// FontSizes is a step function from breakpoints to font sizes in px.
type FontSizes = steps.Steps[float64]

// Resolved holds the width constraints of a node at a breakpoint, with font-relative
// units converted to px.
type Resolved struct {
	Width    Value
	Min      Value
	Max      Value
	FontSize float64
}

// ResolveFontSizes computes the font size of a node for every breakpoint.
//
// parent is the resolved font size function of the node's container, or Nothing for the
// root of a chain. base is the root base font size in px. Font-relative font sizes (em, %)
// are relative to the parent's font size at the same breakpoint, rem is relative to base.
// A node without a font-size declaration inherits.
func ResolveFontSizes(table cascade.Table, parent maybe.Maybe[FontSizes], base float64) FontSizes {
	pfs, hasParent := parent.Get()
	parentAt := func(b float64) float64 {
		if hasParent {
			if x, ok := pfs.At(b); ok {
				return x
			}
		}
		return base
	}
	if !declaresFontSize(table) {
		if hasParent && !pfs.IsEmpty() {
			return pfs // inherit
		}
		return steps.Steps[float64]{}.With(0, base)
	}
	keys := steps.UnionKeys(table.Steps(), pfs)
	fs := steps.FromKeys(keys, func(b float64) float64 {
		p := parentAt(b)
		d, ok := table.At(b).FontSize().Get()
		if !ok {
			return p
		}
		return css.DimenPattern[float64](d).OneOf(css.DimenPatterns[float64]{
			Just:    func(px float64) float64 { return px },
			Em:      func(x float64) float64 { return x * p },
			Rem:     func(x float64) float64 { return x * base },
			Percent: func(x float64) float64 { return x / 100 * p },
			Default: p,
		})
	})
	fs = fs.Coalesced(func(a, b float64) bool { return a == b })
	tracer().Debugf("width: font sizes = %v", fs)
	return fs
}

// ResolveUnits converts font-relative width, min-width and max-width values of a node
// to px, using the node's own font size fs at each breakpoint. Percentages are kept
// symbolic, explicit 'auto' and undeclared values are unconstrained.
func ResolveUnits(table cascade.Table, fs FontSizes, base float64) steps.Steps[Resolved] {
	keys := table.Keys()
	if len(keys) == 0 {
		return steps.Steps[Resolved]{}
	}
	if usesFontRelativeWidths(table) {
		keys = steps.UnionKeys(table.Steps(), fs)
	}
	r := steps.FromKeys(keys, func(b float64) Resolved {
		rec := table.At(b)
		size, ok := fs.At(b)
		if !ok {
			size = base
		}
		return Resolved{
			Width:    toValue(rec.Width(), size, base),
			Min:      toValue(rec.Min(), size, base),
			Max:      toValue(rec.Max(), size, base),
			FontSize: size,
		}
	})
	tracer().Debugf("width: resolved units = %v", r)
	return r
}

func toValue(d maybe.Maybe[css.DimenT], fontSize, base float64) Value {
	dimen, ok := d.Get()
	if !ok {
		return Unconstrained()
	}
	return css.DimenPattern[Value](dimen).OneOf(css.DimenPatterns[Value]{
		Auto:    Unconstrained,
		Just:    Px,
		Em:      func(x float64) Value { return Px(x * fontSize) },
		Rem:     func(x float64) Value { return Px(x * base) },
		Percent: Percent,
		Default: Unconstrained(),
	})
}

func declaresFontSize(table cascade.Table) bool {
	for _, e := range table.Steps().Entries() {
		if !e.Value.FontSize().IsNothing() {
			return true
		}
	}
	return false
}

func usesFontRelativeWidths(table cascade.Table) bool {
	for _, e := range table.Steps().Entries() {
		for _, p := range []cascade.Property{cascade.Width, cascade.MinWidth, cascade.MaxWidth} {
			if d, ok := e.Value.Get(p).Get(); ok && d.IsFontRelative() {
				return true
			}
		}
	}
	return false
}
