package mld

import (
	"github.com/ttpr0/mldmatrix/graph"
	"github.com/ttpr0/mldmatrix/metric"
	"github.com/ttpr0/mldmatrix/partition"
)

// EdgeRelaxer expands one settled node: overlay shortcuts inside its
// cell (unless it was itself just reached by a shortcut — no two
// shortcuts in a row, since the overlay already encodes transitive
// intra-cell reachability) followed by ordinary border edges.
type EdgeRelaxer struct {
	facade graph.IFacade
	part   partition.IPartition
	metric metric.ICellMetric
}

func NewEdgeRelaxer(facade graph.IFacade, part partition.IPartition, cm metric.ICellMetric) *EdgeRelaxer {
	return &EdgeRelaxer{facade: facade, part: part, metric: cm}
}

// Relax relaxes every candidate edge out of node, whose settled label
// is (weight, duration, fromShortcut), at the resolved level, in
// direction dir, against heap. A level of InvalidLevel is a no-op.
func (r *EdgeRelaxer) Relax(level int32, node graph.NodeID, weight, duration int32, fromShortcut bool, dir graph.Direction, heap *QueryHeap) {
	if level == partition.InvalidLevel {
		return
	}

	if level >= 1 && !fromShortcut {
		cell := r.part.Cell(level, node)
		relaxShortcut := func(t graph.NodeID, sw, sd int32) {
			r.update(heap, t, weight+sw, duration+sd, node, true)
		}
		if dir == graph.FORWARD {
			r.metric.ForOutEdges(level, cell, node, relaxShortcut)
		} else {
			r.metric.ForInEdges(level, cell, node, relaxShortcut)
		}
	}

	r.facade.ForBorderEdges(level, node, func(e graph.EdgeRef) {
		if !e.Enabled(dir) {
			return
		}
		if r.facade.ExcludeNode(e.Target) {
			return
		}
		r.update(heap, e.Target, weight+e.Weight, duration+e.Duration, node, false)
	})
}

// update applies the insert-or-decrease-key rule: insert an unseen
// node, or improve it only when (weight, duration) is lexicographically
// smaller than its current label.
func (r *EdgeRelaxer) update(heap *QueryHeap, target graph.NodeID, weight, duration int32, parent graph.NodeID, fromShortcut bool) {
	data := HeapData{Parent: parent, FromShortcut: fromShortcut, Duration: duration}
	if !heap.WasInserted(target) {
		heap.Insert(target, weight, data)
		return
	}
	curKey := heap.GetKey(target)
	if weight < curKey || (weight == curKey && duration < heap.GetData(target).Duration) {
		heap.DecreaseKey(target, weight, data)
	}
}
