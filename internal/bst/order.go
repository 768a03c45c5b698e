package bst

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
)

var ErrUnknownOrder = errors.New("unknown traversal order")

// Order selects a depth-first traversal.
type Order int

const (
	InOrder Order = iota
	PreOrder
	PostOrder
)

func (o Order) String() string {
	switch o {
	case InOrder:
		return "InOrder"
	case PreOrder:
		return "PreOrder"
	case PostOrder:
		return "PostOrder"
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// ParseOrder maps names such as "inorder", "pre-order" or "post" to an Order.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inorder", "in-order", "in":
		return InOrder, nil
	case "preorder", "pre-order", "pre":
		return PreOrder, nil
	case "postorder", "post-order", "post":
		return PostOrder, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOrder, s)
}

// All yields the keys of the tree in the given order. The sequence can be
// ranged over any number of times; the tree must not be mutated while a
// range is in progress. InOrder yields keys in ascending order.
func (t *Tree) All(order Order) iter.Seq[int] {
	return func(yield func(int) bool) {
		switch order {
		case InOrder:
			t.root.inOrder(yield)
		case PreOrder:
			t.root.preOrder(yield)
		case PostOrder:
			t.root.postOrder(yield)
		}
	}
}

// Traverse collects All(order) into a slice.
func (t *Tree) Traverse(order Order) []int {
	return slices.Collect(t.All(order))
}

func (n *treeNode) inOrder(yield func(int) bool) bool {
	if n == nil {
		return true
	}
	return n.left.inOrder(yield) && yield(n.key) && n.right.inOrder(yield)
}

func (n *treeNode) preOrder(yield func(int) bool) bool {
	if n == nil {
		return true
	}
	return yield(n.key) && n.left.preOrder(yield) && n.right.preOrder(yield)
}

func (n *treeNode) postOrder(yield func(int) bool) bool {
	if n == nil {
		return true
	}
	return n.left.postOrder(yield) && n.right.postOrder(yield) && yield(n.key)
}
