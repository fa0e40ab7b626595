package css

import (
	"strconv"
	"strings"

	"github.com/npillmayer/widthpoints/maybe"
	"github.com/tdewolff/parse/v2"
	tcss "github.com/tdewolff/parse/v2/css"
)

// Conversion factors of absolute CSS units to px.
var absoluteUnits = map[string]float64{
	"px": 1,
	"pt": 96.0 / 72.0,
	"pc": 16,
	"in": 96,
	"cm": 96 / 2.54,
	"mm": 96 / 25.4,
	"q":  96 / 101.6,
}

// Font-size keywords, following the CSS Fonts scale. Absolute keywords are relative
// to the root base font size, which is 'medium'.
var fontSizeKeywords = map[string]DimenT{
	"xx-small":  Rem(9.0 / 16),
	"x-small":   Rem(10.0 / 16),
	"small":     Rem(13.0 / 16),
	"medium":    Rem(1),
	"large":     Rem(18.0 / 16),
	"x-large":   Rem(24.0 / 16),
	"xx-large":  Rem(2),
	"xxx-large": Rem(3),
	"smaller":   Em(1.0 / 1.2),
	"larger":    Em(1.2),
}

// ParseDimen parses a CSS length value, e.g. "100px", "1.5em" or "50%".
// The keywords 'auto' and 'none' yield Auto(). Everything else, including
// malformed input, yields Nothing: a property with an unusable value is treated
// as not being set at all.
func ParseDimen(v string) maybe.Maybe[DimenT] {
	lexer := tcss.NewLexer(parse.NewInputString(v))
	var d maybe.Maybe[DimenT]
	for {
		tt, data := lexer.Next()
		switch tt {
		case tcss.ErrorToken: // end of input or lexing error
			return d
		case tcss.WhitespaceToken, tcss.CommentToken:
			continue
		}
		if !d.IsNothing() { // more than one value token
			tracer().Debugf("css: cannot use value %q as a length", v)
			return maybe.Nothing[DimenT]()
		}
		if d = lengthFromToken(tt, data); d.IsNothing() {
			tracer().Debugf("css: cannot use value %q as a length", v)
			return d
		}
	}
}

// ParseFontSize parses a value for property font-size. In addition to lengths,
// font-size keywords like 'small' or 'larger' are accepted.
func ParseFontSize(v string) maybe.Maybe[DimenT] {
	if d, ok := fontSizeKeywords[strings.ToLower(strings.TrimSpace(v))]; ok {
		return maybe.Just(d)
	}
	d := ParseDimen(v)
	if x, ok := d.Get(); ok && x.IsAuto() {
		return maybe.Nothing[DimenT]() // font-size has no 'auto'
	}
	return d
}

// ParseLength parses a length without any keywords, as used in media queries.
func ParseLength(v string) maybe.Maybe[DimenT] {
	d := ParseDimen(v)
	if x, ok := d.Get(); ok && x.IsAuto() {
		return maybe.Nothing[DimenT]()
	}
	return d
}

func lengthFromToken(tt tcss.TokenType, data []byte) maybe.Maybe[DimenT] {
	switch tt {
	case tcss.IdentToken:
		switch strings.ToLower(string(data)) {
		case "auto", "none":
			return maybe.Just(Auto())
		}
	case tcss.NumberToken:
		if x, err := strconv.ParseFloat(string(data), 64); err == nil && x == 0 {
			return maybe.Just(Px(0)) // only 0 may go without a unit
		}
	case tcss.PercentageToken:
		if x, err := strconv.ParseFloat(string(data[:len(data)-1]), 64); err == nil {
			return maybe.Just(Percentage(x))
		}
	case tcss.DimensionToken:
		n := parse.Number(data)
		x, err := strconv.ParseFloat(string(data[:n]), 64)
		if err != nil {
			break
		}
		unit := strings.ToLower(string(data[n:]))
		if f, ok := absoluteUnits[unit]; ok {
			return maybe.Just(Px(x * f))
		}
		switch unit {
		case "em":
			return maybe.Just(Em(x))
		case "rem":
			return maybe.Just(Rem(x))
		case "ex": // no font metrics available, use the fallback of 0.5em
			return maybe.Just(Em(x / 2))
		}
	}
	return maybe.Nothing[DimenT]()
}
