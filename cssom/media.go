package cssom

import (
	"math"
	"strings"

	"github.com/npillmayer/widthpoints/cascade"
	"github.com/npillmayer/widthpoints/css"
	"github.com/npillmayer/widthpoints/maybe"
	"github.com/tdewolff/parse/v2"
	tcss "github.com/tdewolff/parse/v2/css"
)

// token is a lexed CSS token without whitespace and comments.
type token struct {
	tt   tcss.TokenType
	data string
}

// MediaIntervals evaluates a media query list with respect to the viewport width.
// It returns the breakpoint intervals for which the list matches a screen. An empty list
// matches everywhere. Media features other than width are ignored, i.e. a query
// 'screen and (orientation: landscape)' is considered to always match. Font-relative
// lengths in media features are resolved against fontSize.
//
// Media types 'print' and 'speech' (and any type but 'screen' and 'all') never
// match; the result will then be empty.
func MediaIntervals(mediaList string, fontSize float64) []cascade.Interval {
	queries := splitQueries(lex(mediaList))
	if len(queries) == 0 {
		return []cascade.Interval{{}}
	}
	var ivs []cascade.Interval
	for _, q := range queries {
		ivs = append(ivs, evalQuery(q, fontSize)...)
	}
	tracer().Debugf("cssom: media %q matches %v", mediaList, ivs)
	return ivs
}

// Intersect intersects two lists of intervals, each representing a union of
// intervals. It is used for nested @media rules.
func Intersect(a, b []cascade.Interval) []cascade.Interval {
	var r []cascade.Interval
	for _, x := range a {
		for _, y := range b {
			if iv, ok := intersect(x, y); ok {
				r = append(r, iv)
			}
		}
	}
	return r
}

func intersect(a, b cascade.Interval) (cascade.Interval, bool) {
	iv := cascade.Interval{Start: math.Max(a.Start, b.Start)}
	ae, aok := a.End.Get()
	be, bok := b.End.Get()
	switch {
	case aok && bok:
		iv.End = maybe.Just(math.Min(ae, be))
	case aok:
		iv.End = a.End
	case bok:
		iv.End = b.End
	}
	if e, ok := iv.End.Get(); ok && e <= iv.Start {
		return iv, false
	}
	return iv, true
}

func lex(s string) []token {
	lexer := tcss.NewLexer(parse.NewInputString(s))
	var tokens []token
	for {
		tt, data := lexer.Next()
		switch tt {
		case tcss.ErrorToken:
			return tokens
		case tcss.WhitespaceToken, tcss.CommentToken:
			continue
		}
		tokens = append(tokens, token{tt: tt, data: string(data)})
	}
}

// splitQueries splits a media query list at top-level commas.
func splitQueries(tokens []token) [][]token {
	var queries [][]token
	var q []token
	depth := 0
	for _, t := range tokens {
		switch t.tt {
		case tcss.LeftParenthesisToken, tcss.FunctionToken:
			depth++
		case tcss.RightParenthesisToken:
			depth--
		case tcss.CommaToken:
			if depth == 0 {
				queries = append(queries, q)
				q = nil
				continue
			}
		}
		q = append(q, t)
	}
	if len(q) > 0 || len(queries) > 0 {
		queries = append(queries, q)
	}
	return queries
}

// evalQuery evaluates a single media query, e.g. 'not screen and (max-width: 40em)'.
func evalQuery(q []token, fontSize float64) []cascade.Interval {
	iv := cascade.Interval{}
	negated, matches := false, true
	for i := 0; i < len(q); i++ {
		t := q[i]
		switch t.tt {
		case tcss.IdentToken:
			switch strings.ToLower(t.data) {
			case "not":
				negated = true
			case "only", "and", "all", "screen":
			case "or": // Media Queries 4, only inside conditions; be lenient
			default: // print, speech, or a media type we will never render for
				matches = false
			}
		case tcss.LeftParenthesisToken:
			j := closing(q, i)
			var ok bool
			if iv, ok = evalFeature(q[i+1:j], iv, fontSize); !ok {
				matches = false
			}
			i = j
		}
	}
	if matches {
		if e, ok := iv.End.Get(); ok && e <= iv.Start {
			matches = false
		}
	}
	if negated {
		return complement(iv, matches)
	}
	if !matches {
		return nil
	}
	return []cascade.Interval{iv}
}

func closing(q []token, open int) int {
	depth := 0
	for j := open; j < len(q); j++ {
		switch q[j].tt {
		case tcss.LeftParenthesisToken, tcss.FunctionToken:
			depth++
		case tcss.RightParenthesisToken:
			if depth--; depth == 0 {
				return j
			}
		}
	}
	return len(q)
}

func complement(iv cascade.Interval, matches bool) []cascade.Interval {
	if !matches {
		return []cascade.Interval{{}}
	}
	var ivs []cascade.Interval
	if iv.Start > 0 {
		ivs = append(ivs, cascade.UpTo(iv.Start))
	}
	if e, ok := iv.End.Get(); ok {
		ivs = append(ivs, cascade.From(e))
	}
	return ivs
}

// evalFeature narrows iv by a media feature, i.e. the tokens between parentheses.
// It supports 'min-width' and 'max-width' as well as the range syntax of Media
// Queries Level 4, e.g. '(width >= 600px)' or '(400px <= width < 800px)'.
// ok is false if the feature can never match.
func evalFeature(f []token, iv cascade.Interval, fontSize float64) (cascade.Interval, bool) {
	if len(f) >= 3 && f[0].tt == tcss.IdentToken && f[1].tt == tcss.ColonToken {
		name := strings.ToLower(f[0].data)
		x, ok := length(f[2:], fontSize)
		switch name {
		case "min-width":
			if ok {
				iv.Start = math.Max(iv.Start, x)
			}
		case "max-width":
			if ok {
				iv.End = minEnd(iv.End, x)
			}
		case "width": // a single point of the breakpoint axis
			return iv, false
		}
		return iv, true
	}
	return evalRange(f, iv, fontSize)
}

// evalRange handles 'width < 600px', '600px <= width' and chains of both.
func evalRange(f []token, iv cascade.Interval, fontSize float64) (cascade.Interval, bool) {
	at := -1
	for i, t := range f {
		if t.tt == tcss.IdentToken && strings.ToLower(t.data) == "width" {
			at = i
			break
		}
	}
	if at < 0 { // boolean feature or some other dimension
		return iv, true
	}
	// right-hand side: width op value
	if op, n := operator(f[at+1:]); n > 0 {
		if x, ok := length(f[at+1+n:], fontSize); ok {
			iv = narrow(iv, op, x)
		}
	}
	// left-hand side: value op width
	if at > 0 {
		lhs := f[:at]
		for n := 2; n >= 1; n-- {
			if n > len(lhs) {
				continue
			}
			if op, m := operator(lhs[len(lhs)-n:]); m == n {
				if x, ok := length(lhs[:len(lhs)-n], fontSize); ok {
					iv = narrow(iv, mirror(op), x)
				}
				break
			}
		}
	}
	return iv, true
}

// operator reads a comparison operator from the start of f and returns it
// together with the number of tokens it occupies.
func operator(f []token) (string, int) {
	if len(f) == 0 || f[0].tt != tcss.DelimToken {
		return "", 0
	}
	op := f[0].data
	if len(f) > 1 && f[1].tt == tcss.DelimToken && f[1].data == "=" {
		return op + "=", 2
	}
	return op, 1
}

func mirror(op string) string {
	switch op {
	case "<":
		return ">"
	case "<=":
		return ">="
	case ">":
		return "<"
	case ">=":
		return "<="
	}
	return op
}

// narrow applies 'width op x' to iv. Breakpoint intervals are half-open,
// therefore '<' and '<=' as well as '>' and '>=' narrow iv in the same way.
func narrow(iv cascade.Interval, op string, x float64) cascade.Interval {
	switch op {
	case ">", ">=":
		iv.Start = math.Max(iv.Start, x)
	case "<", "<=":
		iv.End = minEnd(iv.End, x)
	}
	return iv
}

func minEnd(end maybe.Maybe[float64], x float64) maybe.Maybe[float64] {
	if e, ok := end.Get(); ok && e < x {
		return end
	}
	return maybe.Just(x)
}

// length converts a token sequence to px. Media features do not know a parent
// element, font-relative units refer to the initial font size.
func length(f []token, fontSize float64) (float64, bool) {
	if len(f) != 1 {
		return 0, false
	}
	return maybe.AndThen(func(d css.DimenT) maybe.Maybe[float64] {
		return css.DimenPattern[maybe.Maybe[float64]](d).OneOf(css.DimenPatterns[maybe.Maybe[float64]]{
			Just: func(x float64) maybe.Maybe[float64] { return maybe.Just(x) },
			Em:   func(x float64) maybe.Maybe[float64] { return maybe.Just(x * fontSize) },
			Rem:  func(x float64) maybe.Maybe[float64] { return maybe.Just(x * fontSize) },
		})
	}, css.ParseLength(f[0].data)).Get()
}
