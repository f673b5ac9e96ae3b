package reportgrid

import (
	"sort"
	"strings"

	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
)

type treeNode struct {
	node     rg.MeasurableNode
	children []*treeNode
}

// RenderAncestry draws the measurables in leaves together with every
// ancestor reachable through nodes as an indented list: one "- name" line
// per node, two spaces per level, siblings ordered by name then id.
func RenderAncestry(nodes map[int64]rg.MeasurableNode, leaves []int64) string {
	include := map[int64]bool{}
	for _, id := range leaves {
		// walk up until a root, a missing node or a node already taken
		for cur, steps := id, 0; steps <= len(nodes); steps++ {
			n, ok := nodes[cur]
			if !ok || include[cur] {
				break
			}
			include[cur] = true
			if n.ParentID == nil {
				break
			}
			cur = *n.ParentID
		}
	}
	if len(include) == 0 {
		return ""
	}

	built := make(map[int64]*treeNode, len(include))
	for id := range include {
		built[id] = &treeNode{node: nodes[id]}
	}
	var roots []*treeNode
	for _, tn := range built {
		if p := tn.node.ParentID; p != nil {
			if parent, ok := built[*p]; ok && *p != tn.node.ID {
				parent.children = append(parent.children, tn)
				continue
			}
		}
		roots = append(roots, tn)
	}

	var b strings.Builder
	var walk func(level []*treeNode, depth int)
	walk = func(level []*treeNode, depth int) {
		sortTree(level)
		for _, tn := range level {
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(strings.Repeat("  ", depth))
			b.WriteString("- ")
			b.WriteString(tn.node.Name)
			walk(tn.children, depth+1)
		}
	}
	walk(roots, 0)
	return b.String()
}

func sortTree(level []*treeNode) {
	sort.Slice(level, func(i, j int) bool {
		if level[i].node.Name != level[j].node.Name {
			return level[i].node.Name < level[j].node.Name
		}
		return level[i].node.ID < level[j].node.ID
	})
}
