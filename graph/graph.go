package graph

//*******************************************
// graph facade
//*******************************************

// IFacade is the read-only, shared view of the road graph that the
// search core consumes. It never mutates and is safe to share across
// concurrently running queries. It knows nothing about levels or
// cells beyond being asked to enumerate border edges at one — the
// partition and cell metric (see the partition and metric packages)
// are what give "level" and "cell" meaning.
type IFacade interface {
	// NodeCount returns the number of nodes in the base graph.
	NodeCount() int32

	// MaxBorderNodeID returns the largest node id that can ever be a
	// cell boundary node, i.e. the size a query heap must be able to
	// index without reallocating mid-search.
	MaxBorderNodeID() int32

	// ExcludeNode reports whether node must never be settled or
	// relaxed through (e.g. a turn-restriction-only node). An excluded
	// node simply produces no relaxations; this is never a failure.
	ExcludeNode(node NodeID) bool

	// ForAdjacentEdges iterates every edge leaving node in the base
	// graph (level 0). ForBorderEdges(0, node, fn) must produce the
	// same edges.
	ForAdjacentEdges(node NodeID, fn func(EdgeRef))

	// ForBorderEdges iterates the edges leaving node that cross a cell
	// boundary at level; at level 0 this degenerates to every
	// outgoing edge.
	ForBorderEdges(level int32, node NodeID, fn func(EdgeRef))

	// EdgeDistance returns the geometry length of edge in meters. Used
	// only by the distance accumulator when unpacking a shortcut into
	// base edges.
	EdgeDistance(edge EdgeID) float64
}
