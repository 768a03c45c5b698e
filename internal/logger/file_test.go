package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTransactionLogger(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "transactions.jsonl")

	tlog, err := OpenFileTransactionLogger(filename)
	require.NoError(t, err)

	tlog.WriteBuild([]int{1, 2, 3})
	tlog.WriteInsert(9)
	tlog.WriteDelete(2)
	require.NoError(t, tlog.Close())

	events, err := ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, []Event{
		{Sequence: 1, Type: EventBuild, Keys: []int{1, 2, 3}},
		{Sequence: 2, Type: EventInsert, Key: 9},
		{Sequence: 3, Type: EventDelete, Key: 2},
	}, events)

	t.Run("reopening continues the sequence", func(t *testing.T) {
		tlog, err := OpenFileTransactionLogger(filename)
		require.NoError(t, err)
		tlog.WriteInsert(4)
		require.NoError(t, tlog.Close())

		events, err := ReadFile(filename)
		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, Event{Sequence: 4, Type: EventInsert, Key: 4}, events[3])
	})
}

func TestReadFileRejectsOutOfOrder(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "transactions.jsonl")
	data := `{"seq":1,"type":2,"key":5}
{"seq":1,"type":3,"key":5}
`
	require.NoError(t, os.WriteFile(filename, []byte(data), 0644))

	events, err := ReadFile(filename)
	assert.ErrorContains(t, err, "out of order")
	assert.Len(t, events, 1)

	_, err = OpenFileTransactionLogger(filename)
	assert.Error(t, err)
}

func TestReadFileRejectsGarbage(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "transactions.jsonl")
	require.NoError(t, os.WriteFile(filename, []byte("not json\n"), 0644))

	_, err := ReadFile(filename)
	assert.ErrorContains(t, err, "error parsing log event entry")
}

func TestDiscard(t *testing.T) {
	Discard.Run()
	Discard.WriteBuild([]int{1})
	Discard.WriteInsert(1)
	Discard.WriteDelete(1)

	events, errs := Discard.ReadEvents()
	_, ok := <-events
	assert.False(t, ok)
	_, ok = <-errs
	assert.False(t, ok)
	assert.NoError(t, Discard.Close())
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "build", EventBuild.String())
	assert.Equal(t, "insert", EventInsert.String())
	assert.Equal(t, "delete", EventDelete.String())
	assert.Equal(t, "unknown", EventType(0).String())
}

func TestFileTransactionLoggerLargeBuild(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "transactions.jsonl")

	keys := make([]int, 20000)
	for i := range keys {
		keys[i] = i
	}

	tlog, err := OpenFileTransactionLogger(filename)
	require.NoError(t, err)
	tlog.WriteBuild(keys)
	tlog.WriteInsert(20000)
	require.NoError(t, tlog.Close())

	events, err := ReadFile(filename)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, keys, events[0].Keys)

	tlog, err = OpenFileTransactionLogger(filename)
	require.NoError(t, err)
	tlog.WriteDelete(0)
	require.NoError(t, tlog.Close())

	events, err = ReadFile(filename)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, Event{Sequence: 3, Type: EventDelete, Key: 0}, events[2])
}
