package cssom

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/widthpoints/cascade"
	"github.com/npillmayer/widthpoints/css"
	"github.com/npillmayer/widthpoints/maybe"
	"golang.org/x/net/html"
)

// Priorities of declarations are packed from the origin of a style sheet and the
// specificity of the selector matching a node. Inline styles win over both.
const (
	userAgentOrigin = 0
	authorOrigin    = 1_000_000_000
	inlinePriority  = 2_000_000_000
)

// Forced (!important) declarations are ranked among themselves with the origins
// reversed: user agent over inline over author.
const (
	forcedAuthorOrigin    = 0
	forcedInlinePriority  = 1_000_000_000
	forcedUserAgentOrigin = 1_000_000_001
)

// DefaultUserAgentStyles holds the width-related defaults of HTML user agents, e.g. the
// font sizes of headings. Use it with WithUserAgentStyles.
//
//go:embed ua.css
var DefaultUserAgentStyles string

// Document is an HTML document together with its style sheets. It serves as a
// declaration provider and as a chain provider for widthpoints.Resolver.
//
// A Document is read-only after construction and may be shared between goroutines.
type Document struct {
	root  *html.Node
	rules []compiledRule
	opts  options
}

type compiledRule struct {
	rule      Rule
	selectors cascadia.SelectorGroup
	intervals []cascade.Interval
	origin    int // priority base of normal declarations
	forced    int // priority base of !important declarations
}

// Option configures a Document.
type Option func(*options)

type options struct {
	uaStyles     string
	baseFontSize float64
}

// WithUserAgentStyles adds a style sheet with lower precedence than any style sheet
// of the document.
func WithUserAgentStyles(sheet string) Option {
	return func(o *options) {
		o.uaStyles = sheet
	}
}

// WithBaseFontSize sets the font size in px which font-relative lengths in media
// queries refer to. Default is 16.
func WithBaseFontSize(px float64) Option {
	return func(o *options) {
		if px > 0 {
			o.baseFontSize = px
		}
	}
}

// Parse reads an HTML document, including its <style> elements.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("cssom: cannot parse HTML: %w", err)
	}
	return NewDocument(root, opts...)
}

// ParseString is like Parse, reading the document from a string.
func ParseString(doc string, opts ...Option) (*Document, error) {
	return Parse(strings.NewReader(doc), opts...)
}

// NewDocument creates a document from an HTML parse tree. Style rules are collected
// from a user agent style sheet (see WithUserAgentStyles) and from <style> elements.
// Rules with a selector cascadia cannot handle are skipped, as are rules for media
// other than screens.
func NewDocument(root *html.Node, opts ...Option) (*Document, error) {
	doc := &Document{root: root, opts: options{baseFontSize: 16}}
	for _, opt := range opts {
		opt(&doc.opts)
	}
	if doc.opts.uaStyles != "" {
		ua, err := ParseStyleSheet(doc.opts.uaStyles, "")
		if err != nil {
			return nil, fmt.Errorf("cssom: cannot parse user agent styles: %w", err)
		}
		doc.compile(ua, userAgentOrigin, forcedUserAgentOrigin)
	}
	for _, sheet := range ExtractStyleElements(root) {
		doc.compile(sheet, authorOrigin, forcedAuthorOrigin)
	}
	tracer().Debugf("cssom: document has %d applicable style rules", len(doc.rules))
	return doc, nil
}

func (doc *Document) compile(sheet *StyleSheet, origin, forced int) {
	for _, r := range sheet.Rules() {
		group, err := cascadia.ParseGroup(r.Selector())
		if err != nil {
			tracer().Debugf("cssom: skipping rule for selector %q: %v", r.Selector(), err)
			continue
		}
		intervals := []cascade.Interval{{}}
		for _, m := range r.Media() {
			intervals = Intersect(intervals, MediaIntervals(m, doc.opts.baseFontSize))
		}
		if len(intervals) == 0 {
			tracer().Debugf("cssom: skipping rule %q for media %v", r.Selector(), r.Media())
			continue
		}
		doc.rules = append(doc.rules, compiledRule{
			rule:      r,
			selectors: group,
			intervals: intervals,
			origin:    origin,
			forced:    forced,
		})
	}
}

// Root returns the root node of the HTML parse tree.
func (doc *Document) Root() *html.Node {
	return doc.root
}

// Find returns the first element matching a CSS selector.
func (doc *Document) Find(selector string) (*html.Node, error) {
	group, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, err
	}
	n := cascadia.Query(doc.root, group)
	if n == nil {
		return nil, fmt.Errorf("cssom: no element matches %q", selector)
	}
	return n, nil
}

// Parent returns the parent element of n. ok is false for the document's root element.
//
// Interface widthpoints.ChainProvider
func (doc *Document) Parent(n *html.Node) (*html.Node, bool) {
	if n == nil || n.Parent == nil || n.Parent.Type != html.ElementNode {
		return nil, false
	}
	return n.Parent, true
}

// Declarations returns the style declarations for element n, in document order:
// one declaration for every matching rule and breakpoint interval the rule is
// restricted to, followed by a declaration for n's style attribute. The !important
// properties of a rule are returned as a separate declaration, ranked by their origin.
//
// Interface widthpoints.DeclarationProvider
func (doc *Document) Declarations(n *html.Node) []cascade.Declaration {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	var decls []cascade.Declaration
	for _, cr := range doc.rules {
		spec, ok := specificity(cr.selectors, n)
		if !ok {
			continue
		}
		normal, forced := declaration(cr.rule).Split()
		normal.Priority, forced.Priority = cr.origin+spec, cr.forced+spec
		for _, iv := range cr.intervals {
			decls = appendParts(decls, cr.rule.Selector(), maybe.Just(iv), normal, forced)
		}
	}
	if style := attr(n, "style"); style != "" {
		if r, err := inlineRule(style); err != nil {
			tracer().Debugf("cssom: cannot parse style attribute %q: %v", style, err)
		} else {
			normal, forced := declaration(r).Split()
			normal.Priority, forced.Priority = inlinePriority, forcedInlinePriority
			decls = appendParts(decls, "style="+style, maybe.Nothing[cascade.Interval](), normal, forced)
		}
	}
	tracer().Debugf("cssom: %d declarations for %s", len(decls), Label(n))
	return decls
}

// appendParts appends the non-empty ones of parts to decls.
func appendParts(decls []cascade.Declaration, source string, iv maybe.Maybe[cascade.Interval],
	parts ...cascade.Declaration) []cascade.Declaration {
	for _, d := range parts {
		if d.IsEmpty() {
			continue
		}
		d.Source, d.Interval = source, iv
		decls = append(decls, d)
	}
	return decls
}

// declaration extracts the width-related properties of a rule.
func declaration(r Rule) cascade.Declaration {
	var d cascade.Declaration
	for _, key := range r.Properties() {
		p, ok := cascade.PropertyByName(key)
		if !ok {
			continue
		}
		var v maybe.Maybe[css.DimenT]
		if p == cascade.FontSize {
			v = css.ParseFontSize(r.Value(key))
		} else {
			v = css.ParseDimen(r.Value(key))
		}
		if dimen, ok := v.Get(); ok {
			d = d.With(p, dimen, r.IsImportant(key))
		} else {
			tracer().Debugf("cssom: ignoring %s: %s", key, r.Value(key))
		}
	}
	return d
}

// specificity returns the score of the most specific selector of group matching n.
// Specificity (a, b, c) is packed as a*10⁶ + b*10³ + c, each component capped at 999.
func specificity(group cascadia.SelectorGroup, n *html.Node) (int, bool) {
	score, matched := 0, false
	for _, sel := range group {
		if !sel.Match(n) {
			continue
		}
		s := sel.Specificity()
		x := capped(s[0])*1_000_000 + capped(s[1])*1_000 + capped(s[2])
		if !matched || x > score {
			score = x
		}
		matched = true
	}
	return score, matched
}

func capped(x int) int {
	if x > 999 {
		return 999
	}
	return x
}

// Label returns a short description of an element, e.g. 'div#main.wrap'.
func Label(n *html.Node) string {
	if n == nil {
		return "<nil>"
	}
	if n.Type != html.ElementNode {
		return fmt.Sprintf("<node type %d>", n.Type)
	}
	var sb strings.Builder
	sb.WriteString(n.Data)
	if id := attr(n, "id"); id != "" {
		sb.WriteString("#" + id)
	}
	for _, c := range strings.Fields(attr(n, "class")) {
		sb.WriteString("." + c)
	}
	return sb.String()
}
