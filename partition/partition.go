// Package partition implements the multi-level cell hierarchy the
// engine climbs and descends: a recursive partition of the graph's
// nodes into L levels, level 0 the base graph and level L-1 a single
// root cell covering everything.
package partition

import (
	"github.com/ttpr0/mldmatrix/graph"
	. "github.com/ttpr0/mldmatrix/util"
)

// InvalidLevel is returned by HighestDifferentLevel for a node paired
// with itself: there is no level at which a node differs from itself.
const InvalidLevel int32 = -1

// IPartition is the read-only view of the cell hierarchy the
// LevelResolver and EdgeRelaxer consume.
type IPartition interface {
	// LevelCount returns L, the number of levels (level 0..L-1).
	LevelCount() int32

	// Cell returns the id of the cell containing node at level.
	Cell(level int32, node graph.NodeID) int32

	// HighestDifferentLevel returns the largest level at which u and v
	// fall into different cells, or InvalidLevel if u == v (or, for a
	// malformed partition, if no level ever distinguishes them).
	HighestDifferentLevel(u, v graph.NodeID) int32
}

// MultiLevelPartition stores one dense node-to-cell array per level,
// generalizing a single-level tiling to the full MLD hierarchy.
type MultiLevelPartition struct {
	// cellOfNode[level] is indexed by node id.
	cellOfNode Array[Array[int32]]
}

// NewMultiLevelPartition builds a partition from one cell-assignment
// array per level, ordered level 0 first. Every array must have the
// same length (the base node count).
func NewMultiLevelPartition(levels Array[Array[int32]]) *MultiLevelPartition {
	return &MultiLevelPartition{cellOfNode: levels}
}

func (p *MultiLevelPartition) LevelCount() int32 {
	return int32(len(p.cellOfNode))
}

func (p *MultiLevelPartition) Cell(level int32, node graph.NodeID) int32 {
	return p.cellOfNode[level][node]
}

func (p *MultiLevelPartition) HighestDifferentLevel(u, v graph.NodeID) int32 {
	if u == v {
		return InvalidLevel
	}
	for level := p.LevelCount() - 1; level >= 0; level-- {
		if p.cellOfNode[level][u] != p.cellOfNode[level][v] {
			return level
		}
	}
	return InvalidLevel
}

// CellCount returns one past the largest cell id used at level,
// i.e. the number of cells at that level assuming dense ids.
func (p *MultiLevelPartition) CellCount(level int32) int32 {
	max := int32(-1)
	for _, c := range p.cellOfNode[level] {
		if c > max {
			max = c
		}
	}
	return max + 1
}
