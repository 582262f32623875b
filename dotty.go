package zoomtree

import (
	"fmt"
	"io"
)

// Tree2Dot outputs the internal structure of a Tree in Graphviz DOT format
// (for debugging purposes). Nodes are labelled with their window and tier
// resolution, buckets with their kind.
func Tree2Dot[S any](t *Tree[S], w io.Writer) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	d := &dotter[S]{tree: t}
	d.node(t.root)
	io.WriteString(w, d.nodelist)
	io.WriteString(w, d.edgelist)
	io.WriteString(w, "}\n")
}

type dotter[S any] struct {
	tree     *Tree[S]
	nodelist string
	edgelist string
	max      int
}

func (d *dotter[S]) alloc() int {
	d.max++
	return d.max
}

func (d *dotter[S]) node(n *node[S]) int {
	id := d.alloc()
	label := fmt.Sprintf("[%d,%d) res=%d", n.start(), n.end(), d.tree.resolutionAt(n.revDepth))
	if n.hasSummary {
		label += "\\n∑"
	}
	d.nodelist += fmt.Sprintf("\"%d\" [label=\"%s\"%s];\n", id, label, nodeDotStyles(false))
	for i := range n.values {
		cid := d.bucket(n, i)
		d.edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", id, cid)
	}
	return id
}

func (d *dotter[S]) bucket(n *node[S], i int) int {
	switch b := n.values[i]; b.kind {
	case branchBucket:
		return d.node(b.child)
	case leafBucket:
		id := d.alloc()
		cnt := 0
		b.leaf.ForEachEntry(func(Interval) bool {
			cnt++
			return true
		})
		label := fmt.Sprintf("[%d,%d)\\n%d entries", n.keys[i], n.keys[i+1], cnt)
		d.nodelist += fmt.Sprintf("\"%d\" [label=\"%s\"%s];\n", id, label, nodeDotStyles(true))
		return id
	case emptyBucket:
		id := d.alloc()
		d.nodelist += fmt.Sprintf("\"%d\" %s;\n", id, sentinelNode("∅"))
		return id
	default:
		id := d.alloc()
		d.nodelist += fmt.Sprintf("\"%d\" %s;\n", id, sentinelNode("?"))
		return id
	}
}

func sentinelNode(mark string) string {
	return fmt.Sprintf("[label=\"%s\",color=gray,shape=circle,fixedsize=true,width=.4]", mark)
}

func nodeDotStyles(isleaf bool) string {
	s := ",style=filled"
	if isleaf {
		s += ",shape=box,fillcolor=\"#ddeecc\""
	} else {
		s += ",color=black,fillcolor=\"#a3d7e4\",shape=ellipse"
	}
	return s
}
