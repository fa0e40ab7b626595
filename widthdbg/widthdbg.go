/*
Package widthdbg implements helpers to debug width resolution.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package widthdbg

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/widthpoints"
	"github.com/npillmayer/widthpoints/cascade"
	tp "github.com/xlab/treeprint"
)

// Chain prints the intermediate results of a resolved container chain as a tree,
// every node nested in its container. label formats a node; if it is nil, nodes are
// formatted with '%v'.
//
// Output looks like this:
//
//     html
//     ├── font-size {0: 16}
//     ├── own       {}
//     ├── composed  {}
//     └── body
//         ├── declarations
//         │   └── {body (width:600px) prio=1}
//         ├── table
//         │   └── 0: (width:600px)
//         …
//
func Chain[N any](c *widthpoints.Chain[N], label func(N) string) string {
	if c.Len() == 0 {
		return "<empty chain>\n"
	}
	if label == nil {
		label = func(n N) string { return fmt.Sprintf("%v", n) }
	}
	p := tp.New()
	branch := p
	for i := range c.Links {
		l := &c.Links[i]
		branch = branch.AddBranch(label(l.Node))
		if len(l.Declarations) > 0 {
			decls := branch.AddBranch("declarations")
			for _, d := range l.Declarations {
				decls.AddNode(d.String())
			}
		}
		if !l.Table.IsEmpty() {
			table(branch.AddBranch("table"), l.Table)
		}
		branch.AddNode("font-size " + l.FontSizes.String())
		branch.AddNode("own       " + l.Own.String())
		branch.AddNode("composed  " + l.Composed.String())
	}
	return p.String()
}

// Table prints the breakpoints of an interval table.
func Table(t cascade.Table) string {
	p := tp.New()
	table(p, t)
	return p.String()
}

func table(p tp.Tree, t cascade.Table) {
	for _, e := range t.Steps().Entries() {
		p.AddNode(strconv.FormatFloat(e.Key, 'f', -1, 64) + ": " + e.Value.String())
	}
}
