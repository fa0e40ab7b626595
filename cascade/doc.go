/*
Package cascade folds prioritized style declarations into interval tables.

An interval table is a step function over the breakpoint axis: for every breakpoint it
knows which value of width, min-width, max-width and font-size wins the cascade for a
single node. Declarations scoped to a breakpoint interval (think of media queries on the
viewport width) split the table; declarations without an interval apply everywhere.

Declarations are folded in cascade order, lowest precedence first, so that later
declarations legitimately override earlier ones. Forced (!important) properties are
folded after all normal ones and cannot be overridden by a normal property.

Tables are immutable. Every merge returns a new table.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cascade

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'widthpoints.cascade'.
func tracer() tracing.Trace {
	return tracing.Select("widthpoints.cascade")
}
