package css

import (
	"fmt"
	"strconv"
)

const (
	dimenNone uint32 = 0

	dimenAbsolute uint32 = 0x0001
	dimenAuto     uint32 = 0x0002
	kindMask      uint32 = 0x000f

	dimenEM      uint32 = 0x0100
	dimenREM     uint32 = 0x0400
	dimenPercent uint32 = 0x0900
	relativeMask uint32 = 0xff00
)

// DimenT is an option type for CSS dimensions.
//
// Absolute dimensions are always held in CSS pixels; parsing converts other absolute
// units (pt, in, cm, …) to px.
type DimenT struct {
	d     float64 // px for absolute values, a factor for em/rem, a percentage for %
	flags uint32
}

/*
type DimenT
	= Auto
	| JustDimen px
	| FontRel em
	| RootFontRel rem
	| Percentage Percent
*/

// Auto is an explicitly unconstrained dimension, as in `width: auto` or `max-width: none`.
func Auto() DimenT {
	return DimenT{flags: dimenAuto}
}

// Px creates a CSS dimension with a fixed value of x pixels.
func Px(x float64) DimenT {
	return DimenT{d: x, flags: dimenAbsolute}
}

// Em creates a dimension relative to the font size in effect.
func Em(x float64) DimenT {
	return DimenT{d: x, flags: dimenEM}
}

// Rem creates a dimension relative to the root font size.
func Rem(x float64) DimenT {
	return DimenT{d: x, flags: dimenREM}
}

// Percentage creates a CSS dimension with a %-relative value, i.e. Percentage(50) is 50%.
func Percentage(p float64) DimenT {
	return DimenT{d: p, flags: dimenPercent}
}

// IsNone is true for the zero value of DimenT, which is not a valid dimension.
func (d DimenT) IsNone() bool {
	return d.flags == dimenNone
}

// IsAuto is true for Auto().
func (d DimenT) IsAuto() bool {
	return d.flags&kindMask == dimenAuto
}

// IsAbsolute is true for pixel values.
func (d DimenT) IsAbsolute() bool {
	return d.flags&kindMask == dimenAbsolute
}

// IsFontRelative is true for em and rem values.
func (d DimenT) IsFontRelative() bool {
	f := d.flags & relativeMask
	return f == dimenEM || f == dimenREM
}

// IsPercent is true for %-relative values.
func (d DimenT) IsPercent() bool {
	return d.flags&relativeMask == dimenPercent
}

// Magnitude returns the raw number of a dimension, without its unit.
func (d DimenT) Magnitude() float64 {
	return d.d
}

func (d DimenT) String() string {
	num := strconv.FormatFloat(d.d, 'f', -1, 64)
	switch {
	case d.IsAuto():
		return "auto"
	case d.IsAbsolute():
		return num + "px"
	case d.flags&relativeMask == dimenEM:
		return num + "em"
	case d.flags&relativeMask == dimenREM:
		return num + "rem"
	case d.IsPercent():
		return num + "%"
	}
	return fmt.Sprintf("DimenT(%#x)", d.flags)
}

// ---------------------------------------------------------------------------

// Match starts a pattern match on a dimension:
//
//     var px float64
//     switch m := d.Match(); m {
//     case m.Just(&px):
//         …
//     case m.IsKind(css.Auto()):
//         …
//     }
//
func (d DimenT) Match() *Matcher {
	return &Matcher{dimen: d}
}

// Matcher is returned by DimenT.Match. Its methods return nil if they do not match.
type Matcher struct {
	dimen DimenT
}

// IsKind matches if d is of the same kind as the matched dimension. Relative dimensions
// match each other with the exception of percentages.
func (m *Matcher) IsKind(d DimenT) *Matcher {
	switch {
	case m.dimen.flags&kindMask != 0 && (m.dimen.flags&kindMask) == (d.flags&kindMask):
		return m
	case (m.dimen.flags&relativeMask > 0) && (d.flags&relativeMask > 0):
		if m.dimen.IsPercent() != d.IsPercent() {
			return nil
		}
		return m
	}
	return nil
}

// Just matches absolute dimensions and extracts the pixel value.
func (m *Matcher) Just(px *float64) *Matcher {
	if m.dimen.IsAbsolute() {
		if px != nil {
			*px = m.dimen.d
		}
		return m
	}
	return nil
}

// Em matches em dimensions and extracts the factor.
func (m *Matcher) Em(x *float64) *Matcher {
	if m.dimen.flags&relativeMask == dimenEM {
		if x != nil {
			*x = m.dimen.d
		}
		return m
	}
	return nil
}

// Rem matches rem dimensions and extracts the factor.
func (m *Matcher) Rem(x *float64) *Matcher {
	if m.dimen.flags&relativeMask == dimenREM {
		if x != nil {
			*x = m.dimen.d
		}
		return m
	}
	return nil
}

// Percentage matches %-relative dimensions and extracts the percentage.
func (m *Matcher) Percentage(p *float64) *Matcher {
	if m.dimen.IsPercent() {
		if p != nil {
			*p = m.dimen.d
		}
		return m
	}
	return nil
}

// --- Expression matching ---------------------------------------------------

// DimenPatterns holds one case per kind of dimension. Nil cases fall through
// to Default.
type DimenPatterns[T any] struct {
	Auto    func() T
	Just    func(px float64) T
	Em      func(x float64) T
	Rem     func(x float64) T
	Percent func(p float64) T
	Default T
}

// DimenPattern starts an expression match on d, producing a value of type T.
func DimenPattern[T any](d DimenT) *MatchExpr[T] {
	return &MatchExpr[T]{dimen: d}
}

// MatchExpr is an expression match on a dimension.
type MatchExpr[T any] struct {
	dimen DimenT
}

// OneOf selects the case matching the dimension's kind.
func (m *MatchExpr[T]) OneOf(patterns DimenPatterns[T]) T {
	var x float64
	switch mm := m.dimen.Match(); mm {
	case mm.IsKind(Auto()):
		if patterns.Auto != nil {
			return patterns.Auto()
		}
	case mm.Just(&x):
		if patterns.Just != nil {
			return patterns.Just(x)
		}
	case mm.Em(&x):
		if patterns.Em != nil {
			return patterns.Em(x)
		}
	case mm.Rem(&x):
		if patterns.Rem != nil {
			return patterns.Rem(x)
		}
	case mm.Percentage(&x):
		if patterns.Percent != nil {
			return patterns.Percent(x)
		}
	}
	return patterns.Default
}
