package btree

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// each level of the tree gets its own color, cycling when the tree is deeper than the palette
var levelColors = []color.Attribute{
	color.FgCyan,
	color.FgGreen,
	color.FgYellow,
	color.FgMagenta,
	color.FgBlue,
}

// String renders the tree in pre-order, placing each separating key between the output of
// its two children, e.g. [[-5 0 2 4] 5 [10 100 1000]].
func (t *Map[K, V]) String() string {
	var sb strings.Builder
	t.root.render(&sb)
	return sb.String()
}

func (n *node[K, V]) render(sb *strings.Builder) {
	sb.WriteByte('[')
	for i, it := range n.items {
		if !n.isLeaf() {
			n.children[i].render(sb)
			sb.WriteByte(' ')
		}
		if i > 0 && n.isLeaf() {
			sb.WriteByte(' ')
		}
		fmt.Fprint(sb, it.key)
		if !n.isLeaf() {
			sb.WriteByte(' ')
		}
	}
	if !n.isLeaf() {
		n.children[len(n.children)-1].render(sb)
	}
	sb.WriteByte(']')
}

// Visualizer prints the tree level by level, one line per depth.
type Visualizer[K, V any] struct {
	Tree *Map[K, V]
}

func (v *Visualizer[K, V]) Visualize() string {
	var sb strings.Builder
	level := []*node[K, V]{v.Tree.root}
	for depth := 0; len(level) > 0; depth++ {
		paint := color.New(levelColors[depth%len(levelColors)]).SprintFunc()
		fmt.Fprintf(&sb, "L%d:", depth)

		var next []*node[K, V]
		for _, n := range level {
			keys := make([]string, len(n.items))
			for i, it := range n.items {
				keys[i] = fmt.Sprint(it.key)
			}
			fmt.Fprintf(&sb, " [%s]", paint(strings.Join(keys, " ")))
			next = append(next, n.children...)
		}
		sb.WriteByte('\n')
		level = next
	}
	return sb.String()
}
