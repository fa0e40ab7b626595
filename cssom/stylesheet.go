package cssom

import (
	"strings"

	dcss "github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// StyleSheet is a list of style rules in document order.
//
// Style sheets are parsed with douceur. Qualified rules nested in @media or @supports
// blocks are flattened into the list, remembering the media query lists of the
// @media blocks they are nested in. Other at-rules are dropped.
type StyleSheet struct {
	rules []Rule
}

// Rule is a qualified style rule, e.g. '.wrap { width: 100px }'.
type Rule struct {
	rule  *dcss.Rule
	media []string // media query lists of enclosing @media blocks, outermost first
}

// ParseStyleSheet parses CSS text. media is the media query list the whole sheet is
// subject to, e.g. from a <style media="..."> attribute, and may be empty.
func ParseStyleSheet(text string, media string) (*StyleSheet, error) {
	sheet, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}
	return Wrap(sheet, media), nil
}

// Wrap a douceur.css.Stylesheet into a StyleSheet.
func Wrap(sheet *dcss.Stylesheet, media string) *StyleSheet {
	s := &StyleSheet{}
	var outer []string
	if strings.TrimSpace(media) != "" {
		outer = []string{media}
	}
	s.flatten(sheet.Rules, outer)
	return s
}

func (s *StyleSheet) flatten(rules []*dcss.Rule, media []string) {
	for _, r := range rules {
		switch {
		case r.Kind == dcss.QualifiedRule:
			s.rules = append(s.rules, Rule{rule: r, media: media})
		case strings.EqualFold(r.Name, "@media"):
			nested := make([]string, len(media), len(media)+1)
			copy(nested, media)
			s.flatten(r.Rules, append(nested, r.Prelude))
		case strings.EqualFold(r.Name, "@supports"): // we do not know better than to assume support
			s.flatten(r.Rules, media)
		default:
			tracer().Debugf("cssom: ignoring at-rule %s", r.Name)
		}
	}
}

// Rules returns all the rules of a stylesheet.
func (s *StyleSheet) Rules() []Rule {
	if s == nil {
		return nil
	}
	return s.rules
}

// inlineRule wraps the declarations of a style attribute.
func inlineRule(style string) (Rule, error) {
	// douceur drops the value of a final declaration without a terminating ';'
	style = strings.TrimSpace(style)
	if style != "" && !strings.HasSuffix(style, ";") {
		style += ";"
	}
	decls, err := parser.ParseDeclarations(style)
	if err != nil {
		return Rule{}, err
	}
	r := dcss.NewRule(dcss.QualifiedRule)
	r.Declarations = decls
	return Rule{rule: r}, nil
}

// Selector returns the prelude / selectors of the rule.
func (r Rule) Selector() string {
	return r.rule.Prelude
}

// Media returns the media query lists the rule is subject to. A rule applies where all
// of them match.
func (r Rule) Media() []string {
	return r.media
}

// Properties returns the property keys of a rule, e.g. "max-width", in lower case and
// without duplicates.
func (r Rule) Properties() []string {
	props := make([]string, 0, len(r.rule.Declarations))
	seen := make(map[string]bool, len(r.rule.Declarations))
	for _, d := range r.rule.Declarations {
		key := strings.ToLower(d.Property)
		if !seen[key] {
			props = append(props, key)
			seen[key] = true
		}
	}
	return props
}

// Value returns the property value for given key with this rule, e.g. "15px".
// If a key is declared more than once, the declaration winning the cascade is used.
func (r Rule) Value(key string) string {
	if d := r.winning(key); d != nil {
		return d.Value
	}
	return ""
}

// IsImportant returns true if a style key is marked as important ("!").
func (r Rule) IsImportant(key string) bool {
	if d := r.winning(key); d != nil {
		return d.Important
	}
	return false
}

// winning returns the last important declaration for key or, if there is none,
// the last one.
func (r Rule) winning(key string) *dcss.Declaration {
	var w *dcss.Declaration
	for _, d := range r.rule.Declarations {
		if !strings.EqualFold(d.Property, key) {
			continue
		}
		if w == nil || !w.Important || d.Important {
			w = d
		}
	}
	return w
}

func (r Rule) String() string {
	return r.rule.String()
}

// ExtractStyleElements visits all elements of an HTML parse tree in document order and
// searches for embedded <style>s. It returns the content of style-elements as style
// sheets. Style elements which fail to parse are skipped.
func ExtractStyleElements(htmldoc *html.Node) []*StyleSheet {
	var sheets []*StyleSheet
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Style {
			if n.FirstChild != nil {
				sheet, err := ParseStyleSheet(text(n), attr(n, "media"))
				if err != nil {
					tracer().Errorf("cssom: skipping style element: %v", err)
				} else {
					sheets = append(sheets, sheet)
				}
			}
			return
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	if htmldoc != nil {
		walk(htmldoc)
	}
	return sheets
}

func text(n *html.Node) string {
	var sb strings.Builder
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.TextNode {
			sb.WriteString(ch.Data)
		}
	}
	return sb.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
