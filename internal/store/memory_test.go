package store

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/oahshtsua/lab/bstlab/internal/bst"
	"github.com/oahshtsua/lab/bstlab/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	assert.True(t, s.IsEmpty())

	require.NoError(t, s.Build([]int{1, 2, 3, 4, 5, 6, 7}))
	assert.Equal(t, []int{4, 2, 1, 3, 6, 5, 7}, s.Traverse(bst.PreOrder))

	assert.ErrorIs(t, s.Insert(4), ErrDuplicateKey)
	require.NoError(t, s.Insert(8))
	assert.True(t, s.Contains(8))

	assert.ErrorIs(t, s.Delete(42), ErrKeyNotFound)
	require.NoError(t, s.Delete(4))
	assert.Equal(t, []int{1, 2, 3, 5, 6, 7, 8}, s.Traverse(bst.InOrder))
	assert.Equal(t, 7, s.Len())
	assert.Contains(t, s.Render(), "5")
}

func TestMemoryStoreBuildRejectsUnsorted(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Insert(10))

	testCases := [][]int{
		{2, 1},
		{1, 1},
		{1, 3, 2},
	}
	for _, keys := range testCases {
		assert.ErrorIs(t, s.Build(keys), ErrUnsortedKeys)
	}
	assert.Equal(t, []int{10}, s.Traverse(bst.InOrder))

	require.NoError(t, s.Build(nil))
	assert.True(t, s.IsEmpty())
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				key := w*1000 + i
				assert.NoError(t, s.Insert(key))
				s.Traverse(bst.InOrder)
				if i%2 == 0 {
					assert.NoError(t, s.Delete(key))
				}
			}
		}(w)
	}
	wg.Wait()

	keys := s.Traverse(bst.InOrder)
	assert.Len(t, keys, 8*50)
	for i := 1; i < len(keys); i++ {
		assert.Less(t, keys[i-1], keys[i])
	}
}

func TestMemoryStoreJournalMatchesMutationOrder(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "transactions.jsonl")
	tlog, err := logger.OpenFileTransactionLogger(filename)
	require.NoError(t, err)

	s := NewMemoryStore(WithJournal(tlog))
	require.NoError(t, s.Build([]int{0, 2, 4}))

	// few keys and many writers, so inserts and deletes of the same key race
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				key := (w + i) % 5
				if (w+i)%2 == 0 {
					s.Insert(key)
				} else {
					s.Delete(key)
				}
			}
		}(w)
	}
	wg.Wait()
	require.NoError(t, tlog.Close())

	events, err := logger.ReadFile(filename)
	require.NoError(t, err)

	replayed := bst.New()
	for _, ev := range events {
		switch ev.Type {
		case logger.EventBuild:
			replayed.BuildBalanced(ev.Keys)
		case logger.EventInsert:
			require.True(t, replayed.Insert(ev.Key), "seq %d inserts present key %d", ev.Sequence, ev.Key)
		case logger.EventDelete:
			require.True(t, replayed.Delete(ev.Key), "seq %d deletes absent key %d", ev.Sequence, ev.Key)
		}
	}
	assert.Equal(t, s.Traverse(bst.InOrder), replayed.Traverse(bst.InOrder))
}

func TestMemoryStoreSkipsJournalOnFailure(t *testing.T) {
	journal := &countingJournal{TransactionLogger: logger.Discard}
	s := NewMemoryStore(WithJournal(journal))

	require.NoError(t, s.Insert(1))
	assert.ErrorIs(t, s.Insert(1), ErrDuplicateKey)
	assert.ErrorIs(t, s.Delete(2), ErrKeyNotFound)
	assert.ErrorIs(t, s.Build([]int{2, 1}), ErrUnsortedKeys)
	require.NoError(t, s.Delete(1))

	assert.Equal(t, 2, journal.n)
}

type countingJournal struct {
	logger.TransactionLogger
	n int
}

func (c *countingJournal) WriteBuild([]int) { c.n++ }
func (c *countingJournal) WriteInsert(int) { c.n++ }
func (c *countingJournal) WriteDelete(int) { c.n++ }
