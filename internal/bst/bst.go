// Package bst implements an ordered binary search tree of unique integer keys.
//
// The tree is balanced only when bulk loaded with BuildBalanced. Insert and
// Delete never rebalance, so inserting sorted input degrades the tree toward
// a list. A Tree is not safe for concurrent use.
package bst

type treeNode struct {
	key   int
	left  *treeNode
	right *treeNode
}

// Tree is an ordered binary search tree. The zero value is an empty tree.
type Tree struct {
	root *treeNode
}

func New() *Tree {
	return &Tree{}
}

// NewBalanced returns a tree built by BuildBalanced over sorted.
func NewBalanced(sorted []int) *Tree {
	t := &Tree{}
	t.BuildBalanced(sorted)
	return t
}

func (t *Tree) IsEmpty() bool {
	return t.root == nil
}

// BuildBalanced replaces the contents of the tree with a height balanced tree
// over exactly the given keys. sorted must be strictly increasing; it is
// neither sorted nor de-duplicated here.
func (t *Tree) BuildBalanced(sorted []int) {
	t.root = buildTree(sorted, 0, len(sorted)-1)
}

func buildTree(arr []int, low, high int) *treeNode {
	if high < low {
		return nil
	}
	mid := (low + high) / 2
	return &treeNode{
		key:   arr[mid],
		left:  buildTree(arr, low, mid-1),
		right: buildTree(arr, mid+1, high),
	}
}

// Insert adds key as a new leaf. It reports false, leaving the tree
// untouched, when key is already present.
func (t *Tree) Insert(key int) bool {
	if t.root == nil {
		t.root = &treeNode{key: key}
		return true
	}

	var parent *treeNode
	for n := t.root; n != nil; {
		parent = n
		switch {
		case key < n.key:
			n = n.left
		case key > n.key:
			n = n.right
		default:
			return false
		}
	}

	if key < parent.key {
		parent.left = &treeNode{key: key}
	} else {
		parent.right = &treeNode{key: key}
	}
	return true
}

// Delete removes key and reports whether it was present.
//
// A node with two children takes the key of its in-order successor, and the
// successor node, which never has a left child, is spliced out instead.
func (t *Tree) Delete(key int) bool {
	var parent *treeNode
	n := t.root
	for n != nil && n.key != key {
		parent = n
		if key < n.key {
			n = n.left
		} else {
			n = n.right
		}
	}
	if n == nil {
		return false
	}

	if n.left == nil || n.right == nil {
		t.splice(parent, n)
		return true
	}

	succParent, succ := n, n.right
	for succ.left != nil {
		succParent = succ
		succ = succ.left
	}
	n.key = succ.key
	t.splice(succParent, succ)
	return true
}

// splice relinks the only child of n (or nil) into the slot of parent that
// holds n. A nil parent means n is the root.
func (t *Tree) splice(parent, n *treeNode) {
	child := n.left
	if child == nil {
		child = n.right
	}

	switch {
	case parent == nil:
		t.root = child
	case parent.left == n:
		parent.left = child
	default:
		parent.right = child
	}
	n.left, n.right = nil, nil
}

func (t *Tree) Contains(key int) bool {
	n := t.root
	for n != nil {
		switch {
		case key < n.key:
			n = n.left
		case key > n.key:
			n = n.right
		default:
			return true
		}
	}
	return false
}

// Len counts the nodes of the tree.
func (t *Tree) Len() int {
	return t.root.size()
}

func (n *treeNode) size() int {
	if n == nil {
		return 0
	}
	return 1 + n.left.size() + n.right.size()
}

// Height is the number of nodes on the longest root to leaf path; an empty
// tree has height 0.
func (t *Tree) Height() int {
	return t.root.height()
}

func (n *treeNode) height() int {
	if n == nil {
		return 0
	}
	return 1 + max(n.left.height(), n.right.height())
}
