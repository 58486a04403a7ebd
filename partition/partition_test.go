package partition

import (
	"testing"

	"github.com/stretchr/testify/require"
	. "github.com/ttpr0/mldmatrix/util"
)

func TestHighestDifferentLevel_SameNode(t *testing.T) {
	p := NewMultiLevelPartition(Array[Array[int32]]{
		Array[int32]{0, 1, 2, 3},
	})
	require.Equal(t, InvalidLevel, p.HighestDifferentLevel(2, 2))
}

func TestHighestDifferentLevel_DiffersOnlyAtFinestLevel(t *testing.T) {
	// nodes 0 and 1 share a level-1 supercell but have distinct level-0
	// cells, so the largest differing level is 0.
	p := NewMultiLevelPartition(Array[Array[int32]]{
		Array[int32]{0, 1, 2, 3}, // level 0: all distinct
		Array[int32]{0, 0, 1, 1}, // level 1: {0,1} and {2,3}
		Array[int32]{0, 0, 0, 0}, // level 2 (root)
	})
	require.EqualValues(t, 0, p.HighestDifferentLevel(0, 1))
}

func TestHighestDifferentLevel_DiffersAtSupercellLevel(t *testing.T) {
	// nodes 0 and 2 are in different level-1 supercells, which by
	// nesting also makes them differ at level 0 — but the scan finds
	// the coarser difference first and returns it without inspecting
	// level 0 at all.
	p := NewMultiLevelPartition(Array[Array[int32]]{
		Array[int32]{0, 1, 2, 3},
		Array[int32]{0, 0, 1, 1},
		Array[int32]{0, 0, 0, 0},
	})
	require.EqualValues(t, 1, p.HighestDifferentLevel(0, 2))
}

func TestHighestDifferentLevel_RootNeverDiffers(t *testing.T) {
	p := NewMultiLevelPartition(Array[Array[int32]]{
		Array[int32]{0, 1, 2, 3},
		Array[int32]{0, 0, 1, 1},
		Array[int32]{0, 0, 0, 0},
	})
	for u := int32(0); u < 4; u++ {
		for v := int32(0); v < 4; v++ {
			if u == v {
				continue
			}
			require.NotEqual(t, int32(2), p.HighestDifferentLevel(u, v))
		}
	}
}

func TestCellCount(t *testing.T) {
	p := NewMultiLevelPartition(Array[Array[int32]]{
		Array[int32]{0, 0, 1, 2},
	})
	require.EqualValues(t, 3, p.CellCount(0))
}
