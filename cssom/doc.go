/*
Package cssom provides style declarations for the elements of an HTML document.

A Document collects the rules of all <style> elements of an HTML document
(parsed with golang.org/x/net/html and github.com/aymerick/douceur), and matches
their selectors against elements using github.com/andybalholm/cascadia.
For every matching rule, the width-related properties width, min-width, max-width
and font-size are turned into a cascade.Declaration:

  - the priority is derived from the selector's specificity; rules of the document
    win over user agent rules, a style attribute wins over both
  - !important properties are flagged as forced and split into a declaration of their
    own, ranked with the origins reversed: user agent over style attribute over document
  - @media rules restrict declarations to breakpoint intervals: min-width starts an
    interval, max-width ends it

Media queries are evaluated for the viewport width only. Other media features are
considered to match, media types other than 'screen' and 'all' are not.

A Document implements both widthpoints.DeclarationProvider and
widthpoints.ChainProvider for *html.Node:

	doc, _ := cssom.ParseString(page)
	target, _ := doc.Find(".sidebar img")
	w, err := widthpoints.NewResolver[*html.Node](doc, doc).Resolve(target)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cssom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'widthpoints.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("widthpoints.cssom")
}
