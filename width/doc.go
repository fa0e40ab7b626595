/*
Package width turns interval tables into width step functions.

The computation is a pipeline, processed for a chain of nodes from the root
down to a target element:

    ResolveFontSizes   pass 1: font size per breakpoint, each node depending on its parent
    ResolveUnits       pass 2: em/rem widths to px, using the node's own font size
    Collapse           width, min-width and max-width to one effective width
    Compose            a node's effective width with its container's

Percentages stay symbolic until composition. Composing two percentages yields their
product; chains of more than two percentage levels are not supported and produce
ErrNestedPercentage.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package width

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'widthpoints.width'.
func tracer() tracing.Trace {
	return tracing.Select("widthpoints.width")
}
