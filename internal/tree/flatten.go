package tree

// Connector fragments used when building display prefixes. Every fragment
// occupies three cells so sibling levels stay column-aligned.
const (
	fragBlank     = "   "
	fragBar       = "│  "
	connectorMid  = "├─ "
	connectorLast = "└─ "
)

// FlatEntry is one display row of the flattened forest. Entries are
// ephemeral: they are recomputed whenever the tree or filter changes.
type FlatEntry struct {
	Session     SessionNode
	Depth       int
	Prefix      string
	IsLast      bool
	HasChildren bool
}

// Flatten serializes the forest depth-first in display order. Roots carry an
// empty prefix; deeper entries get one fragment per proper ancestor (a bar
// under non-last ancestors, blanks under last ones) followed by their own
// branch or last connector.
func Flatten(roots []*Node) []FlatEntry {
	var out []FlatEntry
	for i, root := range roots {
		out = flattenNode(root, "", i == len(roots)-1, true, out)
	}
	return out
}

func flattenNode(n *Node, ancestors string, isLast, isRoot bool, out []FlatEntry) []FlatEntry {
	prefix := ""
	if !isRoot {
		connector := connectorMid
		if isLast {
			connector = connectorLast
		}
		prefix = ancestors + connector
	}
	out = append(out, FlatEntry{
		Session:     n.Session,
		Depth:       n.Depth,
		Prefix:      prefix,
		IsLast:      isLast,
		HasChildren: len(n.Children) > 0,
	})

	childAncestors := ancestors
	if !isRoot {
		if isLast {
			childAncestors += fragBlank
		} else {
			childAncestors += fragBar
		}
	}
	for i, child := range n.Children {
		out = flattenNode(child, childAncestors, i == len(n.Children)-1, false, out)
	}
	return out
}
