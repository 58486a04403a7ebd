package mld

import (
	"container/heap"

	"github.com/ttpr0/mldmatrix/graph"
	. "github.com/ttpr0/mldmatrix/util"
	"github.com/ttpr0/mldmatrix/phantom"
)

// PackedEdge is one hop of a reconstructed path: either a direct base
// edge or an overlay shortcut still awaiting expansion into base
// edges.
type PackedEdge struct {
	From, To     graph.NodeID
	FromShortcut bool
}

// PathReconstructor stitches the two halves of a meeting-node path:
// the forward heap's parent chain from source to meeting, and the
// bucket store's parent chain from meeting to target.
type PathReconstructor struct{}

func NewPathReconstructor() *PathReconstructor { return &PathReconstructor{} }

// ForwardChain walks heap's parent chain backward from meeting to the
// seed (Parent == SpecialNodeID), returning the edges in
// source-to-meeting order.
func (r *PathReconstructor) ForwardChain(heap *QueryHeap, meeting graph.NodeID) []PackedEdge {
	var edges []PackedEdge
	node := meeting
	for {
		data := heap.GetData(node)
		if data.Parent == graph.SpecialNodeID {
			break
		}
		edges = append(edges, PackedEdge{From: data.Parent, To: node, FromShortcut: data.FromShortcut})
		node = data.Parent
	}
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}
	return edges
}

// BackwardChain walks the bucket store's parent chain forward from
// meeting to a target's seed, re-looking-up the parent at the same
// column until it equals the current node (a seed's bucket parent is
// itself).
func (r *PathReconstructor) BackwardChain(bucket *BucketStore, meeting graph.NodeID, column int) []PackedEdge {
	var edges []PackedEdge
	node := meeting
	for {
		b, ok := bucket.Lookup(node, column)
		if !ok || b.Parent == node {
			break
		}
		edges = append(edges, PackedEdge{From: node, To: b.Parent, FromShortcut: b.FromShortcut})
		node = b.Parent
	}
	return edges
}

//*******************************************
// distance accumulator
//*******************************************

// DistanceAccumulator unpacks shortcuts into base edges and sums
// per-edge geometry lengths, correcting for the phantom offsets at
// both ends of the path.
type DistanceAccumulator struct {
	facade graph.IFacade
}

func NewDistanceAccumulator(facade graph.IFacade) *DistanceAccumulator {
	return &DistanceAccumulator{facade: facade}
}

// Distance returns the snap-to-snap distance for a path already
// concatenated from ForwardChain ++ BackwardChain. source and target
// must be the phantoms at the path's literal start and end in that
// order — callers that physically searched target-to-source (the
// reversed one-to-many/many-to-many drivers) pass the path's true
// start phantom as source regardless of its original request role;
// that one convention replaces spec.md's separate add/subtract sign
// split for the reverse driver, since the path is always walked in
// the same start-to-end direction it was discovered in.
//
// Callers handle the meeting==SpecialNodeID (unreachable) case before
// reaching here, and Search overwrites self pairs with distance 0
// after the drivers run; of the special cases, this only handles the
// empty path of two phantoms sharing a segment.
func (a *DistanceAccumulator) Distance(path []PackedEdge, source, target phantom.PhantomNode) float64 {
	if len(path) == 0 {
		if source.SameSegment(target) {
			return a.sameSegmentDistance(source, target)
		}
		return 0
	}
	total := 0.0
	for _, e := range path {
		if e.FromShortcut {
			total += a.unpackAndSum(e.From, e.To)
		} else {
			total += a.directEdgeDistance(e.From, e.To)
		}
	}
	total += a.startOffset(path[0], source)
	total += a.endOffset(path[len(path)-1], target)
	if total < 0 {
		total = 0
	}
	return total
}

func (a *DistanceAccumulator) sameSegmentDistance(source, target phantom.PhantomNode) float64 {
	return target.Forward.DistanceOffset - source.Forward.DistanceOffset
}

func (a *DistanceAccumulator) startOffset(first PackedEdge, source phantom.PhantomNode) float64 {
	switch first.From {
	case source.Forward.NodeID:
		return -source.Forward.DistanceOffset
	case source.Reverse.NodeID:
		return -source.Reverse.DistanceOffset
	default:
		return 0
	}
}

func (a *DistanceAccumulator) endOffset(last PackedEdge, target phantom.PhantomNode) float64 {
	switch last.To {
	case target.Forward.NodeID:
		return -target.Forward.DistanceOffset
	case target.Reverse.NodeID:
		return -target.Reverse.DistanceOffset
	default:
		return 0
	}
}

// directEdgeDistance looks up the geometry length of the single base
// edge from -> to via the facade's adjacency and distance accessor.
func (a *DistanceAccumulator) directEdgeDistance(from, to graph.NodeID) float64 {
	dist := 0.0
	a.facade.ForAdjacentEdges(from, func(e graph.EdgeRef) {
		if e.Target == to {
			dist = a.facade.EdgeDistance(e.EdgeID)
		}
	})
	return dist
}

// unpackAndSum expands one overlay shortcut from -> to into its
// constituent base edges by running a pair of localized forward and
// backward searches on the base graph (level 0 adjacency) and
// stitching them at the meeting node they settle in common, then sums
// each hop's geometry length. Unlike QueryHeap's eager decrease-key
// design, this is the lazy-deletion container/heap pattern — an
// infrequent, small search has no need for the indexed structure's
// bookkeeping.
func (a *DistanceAccumulator) unpackAndSum(from, to graph.NodeID) float64 {
	if from == to {
		return 0
	}

	fwdDist := NewDict[graph.NodeID, int32](16)
	fwdParent := NewDict[graph.NodeID, graph.NodeID](16)
	fwdDone := NewDict[graph.NodeID, bool](16)
	bwdDist := NewDict[graph.NodeID, int32](16)
	bwdParent := NewDict[graph.NodeID, graph.NodeID](16)
	bwdDone := NewDict[graph.NodeID, bool](16)

	fwdDist[from] = 0
	bwdDist[to] = 0

	fwdPQ := &miniHeap{{node: from, key: 0}}
	bwdPQ := &miniHeap{{node: to, key: 0}}

	meeting := graph.SpecialNodeID
	best := int32(0)

	for fwdPQ.Len() > 0 || bwdPQ.Len() > 0 {
		if fwdPQ.Len() > 0 {
			it := heap.Pop(fwdPQ).(miniHeapEntry)
			n, w := it.node, it.key
			if !fwdDone[n] {
				fwdDone[n] = true
				if bwdDone[n] {
					cand := w + bwdDist[n]
					if meeting == graph.SpecialNodeID || cand < best {
						best, meeting = cand, n
					}
				}
				a.facade.ForAdjacentEdges(n, func(e graph.EdgeRef) {
					if !e.Enabled(graph.FORWARD) {
						return
					}
					nd := w + e.Weight
					if d, ok := fwdDist[e.Target]; !ok || nd < d {
						fwdDist[e.Target] = nd
						fwdParent[e.Target] = n
						heap.Push(fwdPQ, miniHeapEntry{node: e.Target, key: nd})
					}
				})
			}
		}
		if bwdPQ.Len() > 0 {
			it := heap.Pop(bwdPQ).(miniHeapEntry)
			n, w := it.node, it.key
			if !bwdDone[n] {
				bwdDone[n] = true
				if fwdDone[n] {
					cand := w + fwdDist[n]
					if meeting == graph.SpecialNodeID || cand < best {
						best, meeting = cand, n
					}
				}
				a.facade.ForAdjacentEdges(n, func(e graph.EdgeRef) {
					if !e.Enabled(graph.BACKWARD) {
						return
					}
					nd := w + e.Weight
					if d, ok := bwdDist[e.Target]; !ok || nd < d {
						bwdDist[e.Target] = nd
						bwdParent[e.Target] = n
						heap.Push(bwdPQ, miniHeapEntry{node: e.Target, key: nd})
					}
				})
			}
		}
		if meeting != graph.SpecialNodeID && fwdPQ.Len() > 0 && bwdPQ.Len() > 0 {
			if (*fwdPQ)[0].key+(*bwdPQ)[0].key >= best {
				break
			}
		}
	}

	if meeting == graph.SpecialNodeID {
		return 0
	}

	total := 0.0
	for n := meeting; n != from; {
		p := fwdParent[n]
		total += a.directEdgeDistance(p, n)
		n = p
	}
	for n := meeting; n != to; {
		p := bwdParent[n]
		total += a.directEdgeDistance(n, p)
		n = p
	}
	return total
}

type miniHeapEntry struct {
	node graph.NodeID
	key  int32
}

type miniHeap []miniHeapEntry

func (h miniHeap) Len() int            { return len(h) }
func (h miniHeap) Less(i, j int) bool  { return h[i].key < h[j].key }
func (h miniHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *miniHeap) Push(x interface{}) { *h = append(*h, x.(miniHeapEntry)) }
func (h *miniHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}
