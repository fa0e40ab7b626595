/*
Package widthpoints computes the maximum width an element may take, as a step function
over the viewport width.

Style information for an element and each of its containers arrives as a cascade of
declarations (width, min-width, max-width, font-size), each with a priority, an optional
breakpoint interval and !important flags. Clients supply declarations and the container
chain through two small interfaces, DeclarationProvider and ChainProvider; package cssom
offers an implementation for HTML documents with CSS style sheets.

The pipeline for a target element is:

	for each node of the chain, root first:
	    cascade.Fold        declarations  →  interval table
	    width.ResolveFontSizes            →  font size per breakpoint
	    width.ResolveUnits  em, rem       →  px
	    width.Collapse      width/min/max →  effective width
	    width.Compose       with the container's composed width

Example:

	r := widthpoints.NewResolver[*html.Node](doc, doc, widthpoints.BaseFontSize(16))
	w, err := r.Resolve(target)
	fmt.Println(w) // {0: 320px, 768: 600px, 1200: 960px}

Resolving is synchronous and free of shared mutable state. A Resolver may be used from
multiple goroutines if its providers allow it.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package widthpoints

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'widthpoints'.
func tracer() tracing.Trace {
	return tracing.Select("widthpoints")
}
