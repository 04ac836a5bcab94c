// Package tree builds an ordered forest out of flat session records, then
// serializes it into a display-ordered list with connector prefixes.
package tree

import (
	"sort"

	"github.com/atomicstack/session-tree/internal/logging/events"
	"github.com/atomicstack/session-tree/internal/session"
)

// SessionNode pairs a session summary with its resolved parent reference.
// An empty ParentPath means the session has no parent.
type SessionNode struct {
	Summary    session.Summary
	ParentPath string
}

// Node is a materialized tree node. The forest is immutable once built.
type Node struct {
	Session  SessionNode
	Children []*Node
	Depth    int
}

// Build produces the ordered forest for the given sessions. A node becomes a
// root when its parent reference is absent or does not resolve to a path in
// the input set; dangling references degrade to roots rather than dropping
// the session. Roots are ordered by modification time descending, children
// by creation time ascending.
//
// Parent resolution is decided purely against the static input index, so a
// self-reference or reference cycle can never register a node beneath one of
// its own descendants; the visited guard in materialize is a second line of
// defense, not a requirement.
func Build(nodes []SessionNode) []*Node {
	index := make(map[string]SessionNode, len(nodes))
	order := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if _, seen := index[n.Summary.Path]; seen {
			// Duplicate paths are unspecified upstream: last write wins.
			events.Tree.Collision(n.Summary.Path)
		} else {
			order = append(order, n.Summary.Path)
		}
		index[n.Summary.Path] = n
	}

	children := make(map[string][]SessionNode)
	var roots []SessionNode
	for _, path := range order {
		n := index[path]
		parent := n.ParentPath
		if parent == "" || parent == path {
			roots = append(roots, n)
			continue
		}
		if _, ok := index[parent]; ok {
			children[parent] = append(children[parent], n)
		} else {
			roots = append(roots, n)
		}
	}

	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].Summary.ModifiedAt.After(roots[j].Summary.ModifiedAt)
	})

	visited := make(map[string]bool, len(index))
	out := make([]*Node, 0, len(roots))
	total := 0
	for _, root := range roots {
		out = append(out, materialize(root, 0, children, visited, &total))
	}

	// Members of a reference cycle resolve to an indexed parent and so are
	// never registered as roots; after the main pass they are still
	// unvisited. Promote them to roots so every input session appears
	// exactly once.
	var orphans []SessionNode
	for _, path := range order {
		if !visited[path] {
			orphans = append(orphans, index[path])
		}
	}
	sort.SliceStable(orphans, func(i, j int) bool {
		return orphans[i].Summary.ModifiedAt.After(orphans[j].Summary.ModifiedAt)
	})
	for _, orphan := range orphans {
		if visited[orphan.Summary.Path] {
			continue
		}
		out = append(out, materialize(orphan, 0, children, visited, &total))
	}

	events.Tree.Built(len(out), total)
	return out
}

func materialize(n SessionNode, depth int, children map[string][]SessionNode, visited map[string]bool, total *int) *Node {
	visited[n.Summary.Path] = true
	*total++
	node := &Node{Session: n, Depth: depth}
	bucket := append([]SessionNode(nil), children[n.Summary.Path]...)
	sort.SliceStable(bucket, func(i, j int) bool {
		return bucket[i].Summary.CreatedAt.Before(bucket[j].Summary.CreatedAt)
	})
	for _, child := range bucket {
		if visited[child.Summary.Path] {
			continue
		}
		node.Children = append(node.Children, materialize(child, depth+1, children, visited, total))
	}
	return node
}
