package mld

import (
	"container/heap"

	"github.com/ttpr0/mldmatrix/graph"
	. "github.com/ttpr0/mldmatrix/util"
)

// HeapData is the auxiliary payload carried alongside a QueryHeap
// entry's key: the back-pointer needed for packed-path reconstruction
// plus the cumulative duration tracked alongside weight.
type HeapData struct {
	Parent       graph.NodeID
	FromShortcut bool
	Duration     int32
}

type heapItem struct {
	node graph.NodeID
	key  int32
	data HeapData
}

// QueryHeap is a monotone indexed priority queue keyed by cumulative
// weight, with O(1) existence checks via a dense per-node index array
// and O(log n) insert/decrease-key via container/heap — the same
// combination katalvlaran/lvlath's Dijkstra uses container/heap for,
// generalized here with the index array a single-graph search doesn't
// need but a reused, many-times-per-query heap does.
//
// A node's label (key + data) survives DeleteMin: only its membership
// in the open-set priority structure is removed. Reconstruction walks
// parent chains through already-settled nodes, so their labels must
// stay queryable for the lifetime of the search, not just while open.
type QueryHeap struct {
	items []*heapItem
	pos   Array[int32]
	key   Flags[int32]
	label Flags[HeapData]
	has   Flags[bool]
}

// NewQueryHeap allocates a heap sized for up to maxBorderNodeID+1
// concurrent entries. The permanent label storage is a Flags[T] per
// field, the same dense reset-in-bulk scratch storage the rest of the
// engine uses between search phases.
func NewQueryHeap(maxBorderNodeID int32) *QueryHeap {
	n := maxBorderNodeID + 1
	h := &QueryHeap{
		items: make([]*heapItem, 0, 64),
		pos:   NewArray[int32](int(n)),
		key:   NewFlags[int32](n, 0),
		label: NewFlags[HeapData](n, HeapData{Parent: graph.SpecialNodeID}),
		has:   NewFlags[bool](n, false),
	}
	h.Reset()
	return h
}

// Reset clears the heap's logical size while retaining capacity, per
// the engine's reuse-after-reset working-storage discipline. key and
// label are reset along with has: a stale label surviving a reset
// would let ForwardChain's parent-chain walk read a previous phase's
// data for a node this phase never touched.
func (h *QueryHeap) Reset() {
	h.items = h.items[:0]
	for i := range h.pos {
		h.pos[i] = -1
	}
	h.key.Reset()
	h.label.Reset()
	h.has.Reset()
}

func (h *QueryHeap) Len() int { return len(h.items) }

func (h *QueryHeap) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.key != b.key {
		return a.key < b.key
	}
	return a.data.Duration < b.data.Duration
}

func (h *QueryHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.pos[h.items[i].node] = int32(i)
	h.pos[h.items[j].node] = int32(j)
}

func (h *QueryHeap) Push(x any) {
	it := x.(*heapItem)
	h.pos[it.node] = int32(len(h.items))
	h.items = append(h.items, it)
}

func (h *QueryHeap) Pop() any {
	n := len(h.items)
	it := h.items[n-1]
	h.items = h.items[:n-1]
	h.pos[it.node] = -1
	return it
}

// WasInserted reports whether node has ever received a label during
// the current search, open or already settled.
func (h *QueryHeap) WasInserted(node graph.NodeID) bool {
	return *h.has.Get(node)
}

// Insert adds node with the given key and data. node must not already
// have a label; use DecreaseKey to improve an existing one.
func (h *QueryHeap) Insert(node graph.NodeID, key int32, data HeapData) {
	*h.has.Get(node) = true
	*h.key.Get(node) = key
	*h.label.Get(node) = data
	heap.Push(h, &heapItem{node: node, key: key, data: data})
}

// DecreaseKey replaces node's key and data and restores heap order.
// Both must be updated atomically: reconstruction walks the parent
// chain in data, so a stale parent under a fresh key would corrupt it.
func (h *QueryHeap) DecreaseKey(node graph.NodeID, key int32, data HeapData) {
	*h.key.Get(node) = key
	*h.label.Get(node) = data
	p := h.pos[node]
	if p < 0 {
		return
	}
	h.items[p].key = key
	h.items[p].data = data
	heap.Fix(h, int(p))
}

// GetKey returns node's current (or final, once settled) key.
func (h *QueryHeap) GetKey(node graph.NodeID) int32 {
	return *h.key.Get(node)
}

// GetData returns a pointer to node's label for in-place inspection.
// Valid for the remainder of the search even after node leaves the
// open set via DeleteMin.
func (h *QueryHeap) GetData(node graph.NodeID) *HeapData {
	return h.label.Get(node)
}

// DeleteMin pops the minimum-key entry from the open set and returns
// its settled label; the label remains queryable via GetData/GetKey.
func (h *QueryHeap) DeleteMin() (graph.NodeID, int32, HeapData) {
	it := heap.Pop(h).(*heapItem)
	return it.node, it.key, it.data
}

func (h *QueryHeap) Empty() bool { return len(h.items) == 0 }
