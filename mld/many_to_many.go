package mld

import (
	"github.com/ttpr0/mldmatrix/graph"
	"github.com/ttpr0/mldmatrix/metric"
	"github.com/ttpr0/mldmatrix/partition"
	"github.com/ttpr0/mldmatrix/phantom"
)

// ManyToManyResult is the row-major S*T output of a ManyToManyDriver
// run, indexed by row*len(targets)+col for the sources/targets lists
// it was actually invoked with (the caller transposes back when it
// swapped arguments to pick this driver).
type ManyToManyResult struct {
	Weight   []int32
	Duration []int32
	Middle   []graph.NodeID
}

// ManyToManyDriver is the bidirectional bucket-based driver for the
// general M-to-N case: a backward pass per target builds a shared
// bucket store, then a forward pass per source reads it.
type ManyToManyDriver struct {
	facade   graph.IFacade
	part     partition.IPartition
	metric   metric.ICellMetric
	resolver *LevelResolver
}

func NewManyToManyDriver(facade graph.IFacade, part partition.IPartition, cm metric.ICellMetric) *ManyToManyDriver {
	return &ManyToManyDriver{facade: facade, part: part, metric: cm, resolver: NewLevelResolver(part)}
}

func insertOrImprove(heap *QueryHeap, node graph.NodeID, key int32, data HeapData) {
	if !heap.WasInserted(node) {
		heap.Insert(node, key, data)
		return
	}
	cur := heap.GetKey(node)
	if key < cur || (key == cur && data.Duration < heap.GetData(node).Duration) {
		heap.DecreaseKey(node, key, data)
	}
}

// Run fills a len(sources)*len(targets) result. heap and bucket must
// be reset before the call; both are reused and reset internally
// between columns/rows. onRowSettled, if non-nil, is called once per
// source row immediately after that row's forward pass finishes
// settling and before heap is reset for the next row — the only point
// at which heap still holds that row's forward parent chains, which a
// caller needs for path reconstruction since the heap is reused
// (and its labels cleared) for every subsequent row.
func (d *ManyToManyDriver) Run(heap *QueryHeap, bucket *BucketStore, sources, targets []phantom.PhantomNode, reverse bool, onRowSettled func(row int, heap *QueryHeap, middle []graph.NodeID)) ManyToManyResult {
	S, T := len(sources), len(targets)
	result := ManyToManyResult{
		Weight:   make([]int32, S*T),
		Duration: make([]int32, S*T),
		Middle:   make([]graph.NodeID, S*T),
	}
	for i := range result.Weight {
		result.Weight[i] = graph.InvalidEdgeWeight
		result.Duration[i] = graph.MaximalEdgeDuration
		result.Middle[i] = graph.SpecialNodeID
	}

	forwardDir := graph.FORWARD
	if reverse {
		forwardDir = graph.BACKWARD
	}
	backwardDir := forwardDir.Opposite()

	relaxer := NewEdgeRelaxer(d.facade, d.part, d.metric)

	bucket.Reset()
	for c, t := range targets {
		heap.Reset()
		seedTarget := func(enabled bool, node graph.NodeID, w, dur int32) {
			if !enabled {
				return
			}
			insertOrImprove(heap, node, -w, HeapData{Parent: graph.SpecialNodeID, FromShortcut: false, Duration: -dur})
		}
		seedTarget(t.IsValidForwardTarget(), t.Forward.NodeID, t.ForwardWeightPlusOffset(), t.Forward.DurationOffset)
		seedTarget(t.IsValidReverseTarget(), t.Reverse.NodeID, t.ReverseWeightPlusOffset(), t.Reverse.DurationOffset)

		for !heap.Empty() {
			node, tw, data := heap.DeleteMin()
			parent := data.Parent
			if parent == graph.SpecialNodeID {
				// Terminal marker for bucket-chain walks: a seed's
				// parent is itself, not the heap's sentinel.
				parent = node
			}
			bucket.Add(NodeBucket{
				Node:         node,
				Parent:       parent,
				FromShortcut: data.FromShortcut,
				Column:       c,
				Weight:       tw,
				Duration:     data.Duration,
			})
			level := d.resolver.ManyToManyBackward(node, t)
			relaxer.Relax(level, node, tw, data.Duration, data.FromShortcut, backwardDir, heap)
		}
	}
	bucket.Sort()

	for r, s := range sources {
		heap.Reset()
		seedSource := func(enabled bool, node graph.NodeID, w, dur int32) {
			if !enabled {
				return
			}
			insertOrImprove(heap, node, -w, HeapData{Parent: graph.SpecialNodeID, FromShortcut: false, Duration: -dur})
		}
		seedSource(s.IsValidForwardSource(), s.Forward.NodeID, s.ForwardWeightPlusOffset(), s.Forward.DurationOffset)
		seedSource(s.IsValidReverseSource(), s.Reverse.NodeID, s.ReverseWeightPlusOffset(), s.Reverse.DurationOffset)

		for !heap.Empty() {
			node, sw, data := heap.DeleteMin()

			bucket.ForNode(node, func(b NodeBucket) {
				newWeight := sw + b.Weight
				if newWeight < 0 {
					return
				}
				newDuration := data.Duration + b.Duration
				idx := r*T + b.Column
				if newWeight < result.Weight[idx] || (newWeight == result.Weight[idx] && newDuration < result.Duration[idx]) {
					result.Weight[idx] = newWeight
					result.Duration[idx] = newDuration
					result.Middle[idx] = node
				}
			})

			level := d.resolver.ManyToManyForward(node, s)
			relaxer.Relax(level, node, sw, data.Duration, data.FromShortcut, forwardDir, heap)
		}

		if onRowSettled != nil {
			onRowSettled(r, heap, result.Middle)
		}
	}

	return result
}
