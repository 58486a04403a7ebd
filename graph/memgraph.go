package graph

import . "github.com/ttpr0/mldmatrix/util"

// EdgeSpec is one directed arc of the base graph as supplied by a
// fixture: u -> v, travel weight/duration, geometry length, and which
// search directions may use it. Forward means the arc is usable by a
// forward search exploring from u; Backward means it is usable by a
// backward search exploring from v (i.e. the arc is physically
// traversable v -> u).
type EdgeSpec struct {
	From, To NodeID
	Forward  bool
	Backward bool
	Weight   int32
	Duration int32
	Distance float64
}

// MemGraph is an in-memory IFacade built directly from a fixture —
// the developer/test substitute for a real preprocessed map, per the
// Non-goal on map loading. Border-edge ranges are derived from a
// cell-lookup closure supplied by SetCellLookup (normally backed by a
// partition.MultiLevelPartition loaded from the same fixture).
type MemGraph struct {
	n        int32
	excluded Dict[NodeID, bool]
	adj      Array[List[EdgeRef]]
	distance Array[float64]
	cellOf   func(level int32, node NodeID) int32
}

// NewMemGraph builds a facade over nodeCount nodes and the given
// directed arcs. Each arc with Forward set contributes one adjacency
// record at From; each arc with Backward set contributes one at To —
// see EdgeSpec's doc comment.
func NewMemGraph(nodeCount int32, edges []EdgeSpec) *MemGraph {
	g := &MemGraph{
		n:        nodeCount,
		excluded: NewDict[NodeID, bool](0),
		adj:      NewArray[List[EdgeRef]](int(nodeCount)),
		distance: NewArray[float64](len(edges)),
	}
	for i := range g.adj {
		l := NewList[EdgeRef](4)
		g.adj[i] = l
	}
	for i, e := range edges {
		id := EdgeID(i)
		g.distance[i] = e.Distance
		if e.Forward {
			fwd := g.adj[e.From]
			fwd.Add(EdgeRef{EdgeID: id, Target: e.To, Forward: true, Backward: false, Weight: e.Weight, Duration: e.Duration})
			g.adj[e.From] = fwd
		}
		if e.Backward {
			bwd := g.adj[e.To]
			bwd.Add(EdgeRef{EdgeID: id, Target: e.From, Forward: false, Backward: true, Weight: e.Weight, Duration: e.Duration})
			g.adj[e.To] = bwd
		}
	}
	return g
}

// SetExcluded marks node as excluded from routing (e.g. a
// turn-restriction-only node in the source map).
func (g *MemGraph) SetExcluded(node NodeID) {
	g.excluded[node] = true
}

// SetCellLookup wires the facade to a partition so ForBorderEdges can
// tell which adjacency entries cross a cell boundary at a given
// level. Kept as a closure rather than a direct import of the
// partition package to avoid a dependency cycle (partition already
// depends on graph for NodeID).
func (g *MemGraph) SetCellLookup(cellOf func(level int32, node NodeID) int32) {
	g.cellOf = cellOf
}

func (g *MemGraph) NodeCount() int32 { return g.n }

func (g *MemGraph) MaxBorderNodeID() int32 { return g.n - 1 }

func (g *MemGraph) ExcludeNode(node NodeID) bool { return g.excluded[node] }

func (g *MemGraph) ForAdjacentEdges(node NodeID, fn func(EdgeRef)) {
	for _, e := range g.adj[node] {
		fn(e)
	}
}

func (g *MemGraph) ForBorderEdges(level int32, node NodeID, fn func(EdgeRef)) {
	if level == 0 || g.cellOf == nil {
		g.ForAdjacentEdges(node, fn)
		return
	}
	cell := g.cellOf(level, node)
	for _, e := range g.adj[node] {
		if g.cellOf(level, e.Target) != cell {
			fn(e)
		}
	}
}

func (g *MemGraph) EdgeDistance(edge EdgeID) float64 {
	return g.distance[edge]
}
