// Package mld implements the many-to-many shortest-path engine: a
// partition-aware label-setting search over a Multi-Level Partition
// overlay, dispatched between a unidirectional driver for the
// degenerate 1-to-N/N-to-1 cases and a bucket-based bidirectional
// driver for the general case.
package mld

import (
	"github.com/ttpr0/mldmatrix/graph"
	"github.com/ttpr0/mldmatrix/metric"
	"github.com/ttpr0/mldmatrix/partition"
	"github.com/ttpr0/mldmatrix/phantom"
)

// Result is the S*T matrix Search returns, row-major indexed by
// sourceIdx*len(targetIndices)+targetIdx in the caller's requested
// orientation — Search always returns the matrix in that orientation
// even when it internally ran a transposed driver.
type Result struct {
	Durations []int32
	Distances []float64
}

// Search is the engine's single public entry point. working storage
// is reset at the start of every phase it uses; facade/part/cellMetric
// are the shared, read-only, concurrently-safe inputs; phantoms is
// indexed by sourceIndices/targetIndices. want_duration is accepted
// for interface parity with spec.md §6 but currently always honored.
func Search(ws *WorkingStorage, facade graph.IFacade, part partition.IPartition, cellMetric metric.ICellMetric, phantoms []phantom.PhantomNode, sourceIndices, targetIndices []int, wantDistance, wantDuration bool) Result {
	sources := gather(phantoms, sourceIndices)
	targets := gather(phantoms, targetIndices)
	S, T := len(sources), len(targets)

	result := Result{Durations: make([]int32, S*T)}
	if wantDistance {
		result.Distances = make([]float64, S*T)
	}

	recon := NewPathReconstructor()
	dist := NewDistanceAccumulator(facade)

	switch {
	case S == 1:
		runForwardOneToMany(ws, facade, part, cellMetric, recon, dist, sources[0], targets, result, wantDistance)
	case T == 1:
		runReverseOneToMany(ws, facade, part, cellMetric, recon, dist, sources, targets[0], result, wantDistance)
	case T < S:
		runReverseManyToMany(ws, facade, part, cellMetric, recon, dist, sources, targets, result, wantDistance)
	default:
		runForwardManyToMany(ws, facade, part, cellMetric, recon, dist, sources, targets, result, wantDistance)
	}

	applySelfPairs(result, sourceIndices, targetIndices, T, wantDistance)
	_ = wantDuration
	return result
}

func gather(phantoms []phantom.PhantomNode, indices []int) []phantom.PhantomNode {
	out := make([]phantom.PhantomNode, len(indices))
	for i, idx := range indices {
		out[i] = phantoms[idx]
	}
	return out
}

// applySelfPairs forces duration=0/distance=0 wherever the caller
// asked about a phantom against itself — the Open Question resolution
// of spec.md §9: the suspicious modulo condition in the original
// becomes this plain index equality check, applied uniformly instead
// of only inside the distance branches.
func applySelfPairs(result Result, sourceIndices, targetIndices []int, T int, wantDistance bool) {
	for r, si := range sourceIndices {
		for c, ti := range targetIndices {
			if si != ti {
				continue
			}
			idx := r*T + c
			result.Durations[idx] = 0
			if wantDistance {
				result.Distances[idx] = 0
			}
		}
	}
}

func runForwardOneToMany(ws *WorkingStorage, facade graph.IFacade, part partition.IPartition, cm metric.ICellMetric, recon *PathReconstructor, dist *DistanceAccumulator, source phantom.PhantomNode, targets []phantom.PhantomNode, result Result, wantDistance bool) {
	ws.Heap.Reset()
	driver := NewOneToManyDriver(facade, part, cm)
	res := driver.Run(ws.Heap, source, targets, false)
	T := len(targets)
	for c := 0; c < T; c++ {
		result.Durations[c] = res.Duration[c]
		if !wantDistance {
			continue
		}
		if res.Middle[c] == graph.SpecialNodeID {
			result.Distances[c] = graph.InvalidEdgeDistance
			continue
		}
		path := recon.ForwardChain(ws.Heap, res.Middle[c])
		result.Distances[c] = dist.Distance(path, source, targets[c])
	}
}

// runReverseOneToMany handles T==1: the driver seeds from the single
// target (using reverse=true so relaxation runs backward and the
// target-offset signs flip) and fills one slot per source. The
// reconstructed path flows target-to-source, so source/target are
// passed to the distance accumulator in that same literal order.
func runReverseOneToMany(ws *WorkingStorage, facade graph.IFacade, part partition.IPartition, cm metric.ICellMetric, recon *PathReconstructor, dist *DistanceAccumulator, sources []phantom.PhantomNode, target phantom.PhantomNode, result Result, wantDistance bool) {
	ws.Heap.Reset()
	driver := NewOneToManyDriver(facade, part, cm)
	res := driver.Run(ws.Heap, target, sources, true)
	S := len(sources)
	for r := 0; r < S; r++ {
		result.Durations[r] = res.Duration[r]
		if !wantDistance {
			continue
		}
		if res.Middle[r] == graph.SpecialNodeID {
			result.Distances[r] = graph.InvalidEdgeDistance
			continue
		}
		path := recon.ForwardChain(ws.Heap, res.Middle[r])
		result.Distances[r] = dist.Distance(path, target, sources[r])
	}
}

func runForwardManyToMany(ws *WorkingStorage, facade graph.IFacade, part partition.IPartition, cm metric.ICellMetric, recon *PathReconstructor, dist *DistanceAccumulator, sources, targets []phantom.PhantomNode, result Result, wantDistance bool) {
	ws.Heap.Reset()
	ws.Bucket.Reset()
	driver := NewManyToManyDriver(facade, part, cm)
	S, T := len(sources), len(targets)

	var onRowSettled func(row int, heap *QueryHeap, middle []graph.NodeID)
	if wantDistance {
		onRowSettled = func(row int, heap *QueryHeap, middle []graph.NodeID) {
			for c := 0; c < T; c++ {
				idx := row*T + c
				fillDistance(result, idx, middle[idx], ws.Bucket, recon, dist, sources[row], targets[c], heap, c)
			}
		}
	}
	res := driver.Run(ws.Heap, ws.Bucket, sources, targets, false, onRowSettled)

	for i := 0; i < S*T; i++ {
		result.Durations[i] = res.Duration[i]
	}
}

// runReverseManyToMany handles T<S: the driver runs with the source
// and target lists swapped (so its own forward pass iterates the
// original targets and its backward pass iterates the original
// sources) and reverse=true, then the T*S result it produces is
// transposed back into the caller's S*T orientation.
func runReverseManyToMany(ws *WorkingStorage, facade graph.IFacade, part partition.IPartition, cm metric.ICellMetric, recon *PathReconstructor, dist *DistanceAccumulator, sources, targets []phantom.PhantomNode, result Result, wantDistance bool) {
	ws.Heap.Reset()
	ws.Bucket.Reset()
	driver := NewManyToManyDriver(facade, part, cm)
	S, T := len(sources), len(targets)

	// The driver's rows are the swapped-in sources=targets, columns are
	// swapped-in targets=sources, so the backward pass's bucket columns
	// run 0..S-1 over the original sources — that's the column fillDistance
	// needs, not the driver's row index.
	var onRowSettled func(row int, heap *QueryHeap, middle []graph.NodeID)
	if wantDistance {
		onRowSettled = func(row int, heap *QueryHeap, middle []graph.NodeID) {
			for c := 0; c < S; c++ {
				idx := row*S + c
				transposed := c*T + row
				fillDistance(result, transposed, middle[idx], ws.Bucket, recon, dist, targets[row], sources[c], heap, c)
			}
		}
	}
	res := driver.Run(ws.Heap, ws.Bucket, targets, sources, true, onRowSettled)

	for r := 0; r < T; r++ {
		for c := 0; c < S; c++ {
			transposed := c*T + r
			idx := r*S + c
			result.Durations[transposed] = res.Duration[idx]
		}
	}
}

// fillDistance reconstructs and sums the distance for one cell of a
// ManyToManyDriver result. heap must still hold the forward pass's
// settled labels for the row being reconstructed, and column is the
// bucket column the driver's backward pass stored that row's meeting
// node under.
func fillDistance(result Result, resultIdx int, middle graph.NodeID, bucket *BucketStore, recon *PathReconstructor, dist *DistanceAccumulator, source, target phantom.PhantomNode, heap *QueryHeap, column int) {
	if middle == graph.SpecialNodeID {
		result.Distances[resultIdx] = graph.InvalidEdgeDistance
		return
	}
	path := append(recon.ForwardChain(heap, middle), recon.BackwardChain(bucket, middle, column)...)
	result.Distances[resultIdx] = dist.Distance(path, source, target)
}
