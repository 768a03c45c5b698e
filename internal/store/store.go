package store

import (
	"errors"

	"github.com/oahshtsua/lab/bstlab/internal/bst"
)

var (
	ErrKeyNotFound  = errors.New("no such key")
	ErrDuplicateKey = errors.New("key already exists")
	ErrUnsortedKeys = errors.New("keys must be strictly ascending")
)

// TreeStore gives shared access to one ordered tree. Failed mutations leave
// the tree unchanged.
type TreeStore interface {
	Build(keys []int) error
	Insert(key int) error
	Delete(key int) error
	Contains(key int) bool
	Traverse(order bst.Order) []int
	IsEmpty() bool
	Len() int
	Render() string
}
