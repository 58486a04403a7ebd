package mld

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBucketStore_ForNodeReturnsAllColumnsInOrder(t *testing.T) {
	s := NewBucketStore(8)
	s.Add(NodeBucket{Node: 5, Column: 2, Weight: 20})
	s.Add(NodeBucket{Node: 5, Column: 0, Weight: 10})
	s.Add(NodeBucket{Node: 3, Column: 0, Weight: 30})
	s.Sort()

	var columns []int
	s.ForNode(5, func(b NodeBucket) { columns = append(columns, b.Column) })
	require.Equal(t, []int{0, 2}, columns)
}

func TestBucketStore_LookupExactMatch(t *testing.T) {
	s := NewBucketStore(8)
	s.Add(NodeBucket{Node: 1, Column: 0, Parent: 1, Weight: 0})
	s.Add(NodeBucket{Node: 1, Column: 1, Parent: 9, Weight: 5})
	s.Sort()

	b, ok := s.Lookup(1, 1)
	require.True(t, ok)
	require.EqualValues(t, 9, b.Parent)

	_, ok = s.Lookup(1, 2)
	require.False(t, ok)

	_, ok = s.Lookup(2, 0)
	require.False(t, ok)
}

func TestBucketStore_ResetClears(t *testing.T) {
	s := NewBucketStore(8)
	s.Add(NodeBucket{Node: 1, Column: 0})
	s.Sort()
	s.Reset()

	_, ok := s.Lookup(1, 0)
	require.False(t, ok)
}
