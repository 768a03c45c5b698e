package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/oahshtsua/lab/bstlab/internal/bst"
	"github.com/oahshtsua/lab/bstlab/internal/store"
)

const menuText = `===============================
Binary Search Tree - Menu
===============================
1) Create a binary search tree
2) Add a node
3) Delete a node
4) Print nodes by InOrder
5) Print nodes by PreOrder
6) Print nodes by PostOrder
7) Exit program

`

// DemoKeys are loaded by the "Create a binary search tree" option.
var DemoKeys = []int{1, 2, 3, 4, 5, 6, 7}

// Menu is the interactive seven option tree menu.
type Menu struct {
	prompter
	tree store.TreeStore
	log  *slog.Logger
}

type Option func(*Menu)

func WithTree(tree store.TreeStore) Option {
	return func(m *Menu) {
		m.tree = tree
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(m *Menu) {
		m.log = log
	}
}

func NewMenu(in io.Reader, out io.Writer, opts ...Option) *Menu {
	m := &Menu{
		prompter: newPrompter(in, out),
		tree:     store.NewMemoryStore(),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run serves menu choices until the user exits, the input ends or ctx is
// cancelled.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(m.out, menuText)
		choice, err := m.readInt("Select an option (1-7): ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(m.out)
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			err = m.create()
		case 2:
			err = m.add()
		case 3:
			err = m.remove()
		case 4:
			m.print("InOrder:   ", bst.InOrder)
		case 5:
			m.print("PreOrder:  ", bst.PreOrder)
		case 6:
			m.print("PostOrder: ", bst.PostOrder)
		case 7:
			fmt.Fprintln(m.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(m.out, "Please choose a valid option (1-7).")
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(m.out)
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(m.out)
	}
}

func (m *Menu) create() error {
	if err := m.tree.Build(DemoKeys); err != nil {
		return err
	}
	m.log.Debug("built balanced tree", "keys", DemoKeys)
	fmt.Fprintln(m.out, "Balanced Binary Search Tree created with values 1..7 (root = 4).")
	return nil
}

func (m *Menu) add() error {
	v, err := m.readInt("Enter a value to add: ")
	if err != nil {
		return err
	}

	err = m.tree.Insert(v)
	switch {
	case errors.Is(err, store.ErrDuplicateKey):
		m.log.Debug("duplicate insert ignored", "key", v)
		fmt.Fprintf(m.out, "Value %d already exists. Duplicate ignored.\n", v)
	case err != nil:
		return err
	default:
		m.log.Debug("inserted key", "key", v)
		fmt.Fprintf(m.out, "Inserted %d\n", v)
	}
	return nil
}

func (m *Menu) remove() error {
	v, err := m.readInt("Enter a value to delete: ")
	if err != nil {
		return err
	}

	err = m.tree.Delete(v)
	switch {
	case errors.Is(err, store.ErrKeyNotFound):
		m.log.Debug("delete target not found", "key", v)
		fmt.Fprintf(m.out, "Value %d was not found.\n", v)
	case err != nil:
		return err
	default:
		m.log.Debug("deleted key", "key", v)
		fmt.Fprintf(m.out, "Deleted %d\n", v)
	}
	return nil
}

func (m *Menu) print(label string, order bst.Order) {
	fmt.Fprint(m.out, label)
	if m.tree.IsEmpty() {
		fmt.Fprintln(m.out, "Tree is empty.")
		return
	}
	fmt.Fprintln(m.out, FormatKeys(m.tree.Traverse(order)))
}

// FormatKeys joins keys with single spaces.
func FormatKeys(keys []int) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = strconv.Itoa(k)
	}
	return strings.Join(parts, " ")
}
