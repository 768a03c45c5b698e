package bst

import (
	"strconv"

	"github.com/xlab/treeprint"
)

const missingChild = "·"

// Render draws the shape of the tree, left child above right child. The
// missing side of a node with a single child is drawn as "·".
func (t *Tree) Render() string {
	if t.root == nil {
		return "(empty)\n"
	}
	tree := treeprint.NewWithRoot(strconv.Itoa(t.root.key))
	t.root.render(tree)
	return tree.String()
}

func (n *treeNode) render(tree treeprint.Tree) {
	if n.left == nil && n.right == nil {
		return
	}
	for _, child := range []*treeNode{n.left, n.right} {
		switch {
		case child == nil:
			tree.AddNode(missingChild)
		case child.left == nil && child.right == nil:
			tree.AddNode(strconv.Itoa(child.key))
		default:
			child.render(tree.AddBranch(strconv.Itoa(child.key)))
		}
	}
}
