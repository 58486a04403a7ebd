package mld

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ttpr0/mldmatrix/graph"
	"github.com/ttpr0/mldmatrix/partition"
	"github.com/ttpr0/mldmatrix/phantom"
	. "github.com/ttpr0/mldmatrix/util"
)

// threeLevelPartition gives HighestDifferentLevel(0,1)==0 (differ only
// at the base level) and HighestDifferentLevel(0,2)==1 (differ at the
// coarser supercell level too), so a settled node's active-level
// resolution can be checked against both a same-level and a
// different-level phantom at once.
func threeLevelPartition() *partition.MultiLevelPartition {
	return partition.NewMultiLevelPartition(Array[Array[int32]]{
		Array[int32]{0, 1, 2, 3},
		Array[int32]{0, 0, 1, 1},
		Array[int32]{0, 0, 0, 0},
	})
}

func enabledHalf(node graph.NodeID) phantom.SegmentHalf {
	return phantom.SegmentHalf{NodeID: node, Enabled: true}
}

func TestActiveLevel_SelfMatchingHalfIsNonConstraining(t *testing.T) {
	part := threeLevelPartition()
	resolver := NewLevelResolver(part)

	// Settling node 0: one active phantom anchored at 0 itself (a
	// self-match, HighestDifferentLevel == InvalidLevel) alongside
	// another anchored at node 2 (HighestDifferentLevel == 1). The
	// self-match must not drag the result down to 0 — only the
	// genuinely differing phantom should constrain the minimum.
	active := []phantom.PhantomNode{
		{Forward: enabledHalf(0), Reverse: phantom.SegmentHalf{}},
		{Forward: enabledHalf(2), Reverse: phantom.SegmentHalf{}},
	}

	require.EqualValues(t, 1, resolver.ActiveLevel(0, active))
}

func TestActiveLevel_OnlySelfMatchesYieldsInvalid(t *testing.T) {
	part := threeLevelPartition()
	resolver := NewLevelResolver(part)

	active := []phantom.PhantomNode{
		{Forward: enabledHalf(0), Reverse: phantom.SegmentHalf{}},
	}

	require.Equal(t, partition.InvalidLevel, resolver.ActiveLevel(0, active))
}

func TestActiveLevel_DisabledHalfIsIgnored(t *testing.T) {
	part := threeLevelPartition()
	resolver := NewLevelResolver(part)

	active := []phantom.PhantomNode{
		{Forward: phantom.SegmentHalf{NodeID: 1, Enabled: false}, Reverse: enabledHalf(2)},
	}

	require.EqualValues(t, 1, resolver.ActiveLevel(0, active))
}

func TestActiveLevel_TakesMinimumAcrossMultiplePhantoms(t *testing.T) {
	part := threeLevelPartition()
	resolver := NewLevelResolver(part)

	active := []phantom.PhantomNode{
		{Forward: enabledHalf(2), Reverse: phantom.SegmentHalf{}}, // level 1
		{Forward: enabledHalf(1), Reverse: phantom.SegmentHalf{}}, // level 0
	}

	require.EqualValues(t, 0, resolver.ActiveLevel(0, active))
}

func TestManyToManyBackward_CapsAtMaximalLevel(t *testing.T) {
	// A 2-level partition where the root level itself still
	// distinguishes nodes 0 and 1: HighestDifferentLevel(0,1) == 1,
	// which equals maximal_level (LevelCount-1), so the backward half
	// must report InvalidLevel rather than relaxing at the root cell.
	part := partition.NewMultiLevelPartition(Array[Array[int32]]{
		Array[int32]{0, 1},
		Array[int32]{0, 1},
	})
	resolver := NewLevelResolver(part)

	target := phantom.PhantomNode{Forward: enabledHalf(1), Reverse: phantom.SegmentHalf{}}
	require.Equal(t, partition.InvalidLevel, resolver.ManyToManyBackward(0, target))
}
