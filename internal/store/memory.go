package store

import (
	"sync"

	"github.com/oahshtsua/lab/bstlab/internal/bst"
	"github.com/oahshtsua/lab/bstlab/internal/logger"
)

// MemoryStore serializes every operation on a single tree. Successful
// mutations are journaled under the same write lock, so the journal order is
// the mutation order.
type MemoryStore struct {
	sync.RWMutex
	inner   *bst.Tree
	journal logger.TransactionLogger
}

type Option func(*MemoryStore)

// WithJournal records every successful mutation to tlog.
func WithJournal(tlog logger.TransactionLogger) Option {
	return func(s *MemoryStore) {
		s.journal = tlog
	}
}

func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		inner:   bst.New(),
		journal: logger.Discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build replaces the tree with a balanced one over keys. keys are checked
// before the tree is touched.
func (s *MemoryStore) Build(keys []int) error {
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			return ErrUnsortedKeys
		}
	}
	s.Lock()
	defer s.Unlock()
	s.inner.BuildBalanced(keys)
	s.journal.WriteBuild(keys)
	return nil
}

func (s *MemoryStore) Insert(key int) error {
	s.Lock()
	defer s.Unlock()
	if !s.inner.Insert(key) {
		return ErrDuplicateKey
	}
	s.journal.WriteInsert(key)
	return nil
}

func (s *MemoryStore) Delete(key int) error {
	s.Lock()
	defer s.Unlock()
	if !s.inner.Delete(key) {
		return ErrKeyNotFound
	}
	s.journal.WriteDelete(key)
	return nil
}

func (s *MemoryStore) Contains(key int) bool {
	s.RLock()
	defer s.RUnlock()
	return s.inner.Contains(key)
}

func (s *MemoryStore) Traverse(order bst.Order) []int {
	s.RLock()
	defer s.RUnlock()
	return s.inner.Traverse(order)
}

func (s *MemoryStore) IsEmpty() bool {
	s.RLock()
	defer s.RUnlock()
	return s.inner.IsEmpty()
}

func (s *MemoryStore) Len() int {
	s.RLock()
	defer s.RUnlock()
	return s.inner.Len()
}

func (s *MemoryStore) Render() string {
	s.RLock()
	defer s.RUnlock()
	return s.inner.Render()
}
