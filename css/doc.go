/*
Package css provides CSS dimensions and the parsing of CSS length values.

Lengths are the only CSS values the width computation needs: width, min-width,
max-width and font-size. Absolute units are normalized to CSS pixels (1in = 96px),
font-relative units (em, rem) and percentages are kept symbolic until a font size
or a containing width is known.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package css

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'widthpoints.css'.
func tracer() tracing.Trace {
	return tracing.Select("widthpoints.css")
}
