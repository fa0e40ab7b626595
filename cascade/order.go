package cascade

import "sort"

// Order sorts a node's declarations from lowest to highest precedence, i.e. in the
// order in which they have to be folded into an interval table.
//
// Declarations are sorted ascending by priority. Ties are broken by the order of decls,
// which is expected to be document order: a later declaration of equal priority still
// overrides an earlier one.
//
// Forced properties win over any non-forced property, regardless of priority. Order
// therefore splits every declaration into its normal and its forced part, and places all
// forced parts after all normal parts.
func Order(decls []Declaration) []Declaration {
	normal := make([]Declaration, 0, len(decls))
	var forced []Declaration
	for _, d := range decls {
		n, f := d.Split()
		if !n.IsEmpty() {
			normal = append(normal, n)
		}
		if !f.IsEmpty() {
			forced = append(forced, f)
		}
	}
	byPriority(normal)
	byPriority(forced)
	tracer().Debugf("cascade: ordered %d declarations into %d normal and %d forced parts",
		len(decls), len(normal), len(forced))
	return append(normal, forced...)
}

func byPriority(decls []Declaration) {
	sort.SliceStable(decls, func(i, j int) bool {
		return decls[i].Priority < decls[j].Priority
	})
}
