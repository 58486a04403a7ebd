// Package metric holds the precomputed shortcut weights/durations
// between the boundary nodes of every (level, cell) pair — the
// overlay the EdgeRelaxer walks instead of re-solving intra-cell
// shortest paths at query time.
package metric

import (
	"sort"

	"github.com/ttpr0/mldmatrix/graph"
	. "github.com/ttpr0/mldmatrix/util"
)

// InvalidEdgeWeight marks an unreachable boundary-to-boundary entry.
// Shared with graph.InvalidEdgeWeight so relaxers can compare either
// sentinel interchangeably.
const InvalidEdgeWeight = graph.InvalidEdgeWeight

// ICellMetric is the read-only shortcut table the EdgeRelaxer
// consults. A single dense weight/duration matrix per cell serves
// both directions: ForOutEdges fixes the row, ForInEdges fixes the
// column of the same matrix, matching the fact that a cell's overlay
// is one shortest-path table between its boundary nodes, read
// row-wise for forward relaxation and column-wise for backward.
type ICellMetric interface {
	// ForOutEdges iterates, for node (a boundary node of cell at
	// level), every other boundary node t of that cell reachable
	// directly by a precomputed shortcut, calling fn(t, weight,
	// duration). Entries carrying the invalid weight sentinel and the
	// t == node diagonal are skipped by the callee, not the caller.
	ForOutEdges(level, cell int32, node graph.NodeID, fn func(t graph.NodeID, weight, duration int32))

	// ForInEdges is the symmetric column-wise iteration used by the
	// backward half of EdgeRelaxer.
	ForInEdges(level, cell int32, node graph.NodeID, fn func(s graph.NodeID, weight, duration int32))
}

type cellKey struct {
	level int32
	cell  int32
}

// cellTable is one (level, cell)'s dense boundary-to-boundary table.
type cellTable struct {
	boundary Array[graph.NodeID]
	index    Dict[graph.NodeID, int]
	weight   Array[Array[int32]]
	duration Array[Array[int32]]
}

// CellMetric is a read-only, shared lookup table built once during
// preprocessing (or, in this core, loaded from a fixture) and never
// mutated afterwards.
type CellMetric struct {
	tables Dict[cellKey, *cellTable]
}

// NewCellMetric builds an empty metric; call AddCell per (level, cell)
// before handing it to a search.
func NewCellMetric() *CellMetric {
	return &CellMetric{tables: NewDict[cellKey, *cellTable](64)}
}

// AddCell registers the boundary-to-boundary weight/duration table for
// one (level, cell). weight[i][j]/duration[i][j] is the shortcut from
// boundary[i] to boundary[j]; use InvalidEdgeWeight for no shortcut.
func (m *CellMetric) AddCell(level, cell int32, boundary Array[graph.NodeID], weight, duration Array[Array[int32]]) {
	index := NewDict[graph.NodeID, int](boundary.Length())
	for i, n := range boundary {
		index[n] = i
	}
	m.tables[cellKey{level, cell}] = &cellTable{
		boundary: boundary,
		index:    index,
		weight:   weight,
		duration: duration,
	}
}

func (m *CellMetric) ForOutEdges(level, cell int32, node graph.NodeID, fn func(t graph.NodeID, weight, duration int32)) {
	t := m.tables[cellKey{level, cell}]
	if t == nil {
		return
	}
	row, ok := t.index[node]
	if !ok {
		return
	}
	for j, target := range t.boundary {
		if target == node {
			continue
		}
		w := t.weight[row][j]
		if w == InvalidEdgeWeight {
			continue
		}
		fn(target, w, t.duration[row][j])
	}
}

func (m *CellMetric) ForInEdges(level, cell int32, node graph.NodeID, fn func(s graph.NodeID, weight, duration int32)) {
	t := m.tables[cellKey{level, cell}]
	if t == nil {
		return
	}
	col, ok := t.index[node]
	if !ok {
		return
	}
	for i, source := range t.boundary {
		if source == node {
			continue
		}
		w := t.weight[i][col]
		if w == InvalidEdgeWeight {
			continue
		}
		fn(source, w, t.duration[i][col])
	}
}

// SortedBoundary returns a copy of a cell's boundary nodes in
// ascending order; the input is left unchanged.
func SortedBoundary(nodes Array[graph.NodeID]) Array[graph.NodeID] {
	out := nodes.Copy()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
