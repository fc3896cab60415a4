package records

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memBackend struct {
	items   map[string][]byte
	saveErr error
}

func newMemBackend() *memBackend {
	return &memBackend{items: map[string][]byte{}}
}

func (b *memBackend) LoadItem(key string) ([]byte, error) {
	return b.items[key], nil
}

func (b *memBackend) SaveItem(key string, data []byte) error {
	if b.saveErr != nil {
		return b.saveErr
	}
	b.items[key] = data
	return nil
}

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func rec(name string, score int) Record {
	return Record{Name: name, Score: score, At: epoch}
}

func names(rs []Record) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name
	}
	return out
}

func TestAddKeepsBoardSorted(t *testing.T) {
	s := NewStore(newMemBackend())

	tests := []struct {
		r    Record
		rank int
	}{
		{rec("a", 300), 1},
		{rec("b", 500), 1},
		{rec("c", 300), 3},
		{rec("d", 100), 4},
		{rec("e", 400), 2},
	}
	for _, tt := range tests {
		rank, err := s.Add(tt.r)
		require.NoError(t, err)
		assert.Equal(t, tt.rank, rank, tt.r.Name)
	}

	assert.Equal(t, []string{"b", "e", "a", "c", "d"}, names(s.Top()))
	assert.Equal(t, 500, s.Best())

	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, "e", last.Name)
}

func TestBoardIsCapped(t *testing.T) {
	s := NewStore(newMemBackend())
	for i := 0; i < MaxRecords; i++ {
		_, err := s.Add(rec("x", 100+i))
		require.NoError(t, err)
	}

	rank, err := s.Add(rec("low", 50))
	require.NoError(t, err)
	assert.Zero(t, rank)
	assert.Len(t, s.Top(), MaxRecords)

	last, _ := s.Last()
	assert.Equal(t, "low", last.Name)

	rank, err = s.Add(rec("high", 1000))
	require.NoError(t, err)
	assert.Equal(t, 1, rank)
	top := s.Top()
	assert.Len(t, top, MaxRecords)
	assert.Equal(t, 101, top[MaxRecords-1].Score)
}

func TestStoreReloads(t *testing.T) {
	backend := newMemBackend()
	s := NewStore(backend)
	_, err := s.Add(rec("a", 10))
	require.NoError(t, err)
	_, err = s.Add(Record{Name: "b", Score: 20, Level: 2, Won: true, At: epoch})
	require.NoError(t, err)

	reopened := NewStore(backend)
	assert.Equal(t, []string{"b", "a"}, names(reopened.Top()))
	last, ok := reopened.Last()
	require.True(t, ok)
	assert.Equal(t, "b", last.Name)
	assert.True(t, last.Won)
	assert.Equal(t, 2, last.Level)
}

func TestCorruptDataStartsEmpty(t *testing.T) {
	backend := newMemBackend()
	backend.items[boardKey] = []byte("{not json")
	backend.items[lastKey] = []byte("[]")

	s := NewStore(backend)
	assert.Empty(t, s.Top())
	_, ok := s.Last()
	assert.False(t, ok)
}

func TestSaveErrorIsReturned(t *testing.T) {
	backend := newMemBackend()
	backend.saveErr = errors.New("disk full")
	s := NewStore(backend)

	rank, err := s.Add(rec("a", 10))
	assert.Error(t, err)
	assert.Equal(t, 1, rank)
	assert.Len(t, s.Top(), 1)
}

func TestClear(t *testing.T) {
	backend := newMemBackend()
	s := NewStore(backend)
	_, err := s.Add(rec("a", 10))
	require.NoError(t, err)

	require.NoError(t, s.Clear())
	assert.Empty(t, s.Top())
	assert.Zero(t, s.Best())

	reopened := NewStore(backend)
	assert.Empty(t, reopened.Top())
}

func TestNilBackend(t *testing.T) {
	s := NewStore(nil)
	rank, err := s.Add(Record{Name: "a", Score: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, rank)

	last, ok := s.Last()
	require.True(t, ok)
	assert.False(t, last.At.IsZero())
}
