package mld

import (
	"github.com/ttpr0/mldmatrix/graph"
	"github.com/ttpr0/mldmatrix/metric"
	"github.com/ttpr0/mldmatrix/partition"
	"github.com/ttpr0/mldmatrix/phantom"
)

// OneToManyResult carries the per-slot labels a OneToManyDriver run
// produced, indexed the same way as the caller's target list.
type OneToManyResult struct {
	Weight   []int32
	Duration []int32
	Middle   []graph.NodeID
}

type targetEntry struct {
	slot           int
	offsetWeight   int32
	offsetDuration int32
}

// OneToManyDriver is the unidirectional search used for the
// degenerate S=1 and T=1 cases. Its caller is responsible for the
// "symmetric re-labeling" the reverse case needs: seed is always the
// singleton phantom and others is always the many-sided list, with
// reverse indicating that the physical relaxation direction and
// target-offset sign must flip.
type OneToManyDriver struct {
	facade   graph.IFacade
	part     partition.IPartition
	metric   metric.ICellMetric
	resolver *LevelResolver
}

func NewOneToManyDriver(facade graph.IFacade, part partition.IPartition, cm metric.ICellMetric) *OneToManyDriver {
	return &OneToManyDriver{facade: facade, part: part, metric: cm, resolver: NewLevelResolver(part)}
}

// Run searches from seed, filling one result slot per entry in
// others. heap must be reset before use and is left holding the full
// settled search space on return, for the path reconstructor to walk.
func (d *OneToManyDriver) Run(heap *QueryHeap, seed phantom.PhantomNode, others []phantom.PhantomNode, reverse bool) OneToManyResult {
	result := OneToManyResult{
		Weight:   make([]int32, len(others)),
		Duration: make([]int32, len(others)),
		Middle:   make([]graph.NodeID, len(others)),
	}
	for i := range result.Weight {
		result.Weight[i] = graph.InvalidEdgeWeight
		result.Duration[i] = graph.MaximalEdgeDuration
		result.Middle[i] = graph.SpecialNodeID
	}

	dir := graph.FORWARD
	sign := int32(1)
	if reverse {
		dir = graph.BACKWARD
		sign = -1
	}

	targetIndex := make(map[graph.NodeID][]targetEntry, len(others)*2)
	addEntry := func(node graph.NodeID, slot int, w, dur int32) {
		targetIndex[node] = append(targetIndex[node], targetEntry{slot: slot, offsetWeight: sign * w, offsetDuration: sign * dur})
	}
	for i, t := range others {
		if t.IsValidForwardTarget() {
			addEntry(t.Forward.NodeID, i, t.ForwardWeightPlusOffset(), t.Forward.DurationOffset)
		}
		if t.IsValidReverseTarget() {
			addEntry(t.Reverse.NodeID, i, t.ReverseWeightPlusOffset(), t.Reverse.DurationOffset)
		}
	}

	relaxer := NewEdgeRelaxer(d.facade, d.part, d.metric)
	active := make([]phantom.PhantomNode, 0, len(others)+1)
	active = append(active, seed)
	active = append(active, others...)

	// Seed the heap with the source's negated weight-plus-offset; the
	// main loop below pops the seeds first (nothing else is inserted
	// yet), and LevelResolver.OneToMany resolves a seed's own node to
	// level 0, so that pop-then-relax is the "bootstrap" of the seed's
	// adjacent base-graph edges.
	seedHalf := func(enabled bool, node graph.NodeID, w, dur int32) {
		if !enabled {
			return
		}
		key, data := -w, HeapData{Parent: graph.SpecialNodeID, FromShortcut: false, Duration: -dur}
		if !heap.WasInserted(node) {
			heap.Insert(node, key, data)
		} else if key < heap.GetKey(node) {
			heap.DecreaseKey(node, key, data)
		}
	}
	seedHalf(seed.IsValidForwardSource(), seed.Forward.NodeID, seed.ForwardWeightPlusOffset(), seed.Forward.DurationOffset)
	seedHalf(seed.IsValidReverseSource(), seed.Reverse.NodeID, seed.ReverseWeightPlusOffset(), seed.Reverse.DurationOffset)

	for !heap.Empty() && len(targetIndex) > 0 {
		node, w, data := heap.DeleteMin()

		if entries, ok := targetIndex[node]; ok {
			for _, e := range entries {
				pathWeight := w + e.offsetWeight
				if pathWeight >= 0 {
					pathDuration := data.Duration + e.offsetDuration
					if pathWeight < result.Weight[e.slot] ||
						(pathWeight == result.Weight[e.slot] && pathDuration < result.Duration[e.slot]) {
						result.Weight[e.slot] = pathWeight
						result.Duration[e.slot] = pathDuration
						result.Middle[e.slot] = node
					}
				}
			}
			delete(targetIndex, node)
		}

		level := d.resolver.OneToMany(node, active)
		relaxer.Relax(level, node, w, data.Duration, data.FromShortcut, dir, heap)
	}

	return result
}
