// Package phantom models a coordinate snapped onto a graph segment —
// the only representation of a query endpoint the core ever sees.
// Snapping itself (projecting a raw coordinate onto the nearest
// segment) is out of scope; callers construct PhantomNode values
// directly.
package phantom

import "github.com/ttpr0/mldmatrix/graph"

// SegmentHalf is one direction (forward or reverse) of a phantom's
// snap point: the base-graph node the search actually seeds from,
// plus the weight/duration/distance that lie between the phantom's
// exact snap location and that node.
type SegmentHalf struct {
	// NodeID is the base-graph node this half seeds the search at.
	NodeID graph.NodeID

	// Enabled reports whether this half may be used at all — a
	// segment that is one-way in the direction this half represents
	// has Enabled == false.
	Enabled bool

	// WeightPlusOffset is the travel weight from the nearest graph
	// node to the phantom (or from the phantom to the nearest graph
	// node, depending on source/target role) plus the fractional
	// offset on the segment itself.
	WeightPlusOffset int32

	// DurationOffset is the duration analogue of WeightPlusOffset.
	DurationOffset int32

	// DistanceOffset is the meters analogue, used only by the
	// distance accumulator.
	DistanceOffset float64
}

// PhantomNode is a coordinate snapped onto a segment of the road
// graph. It carries up to two halves — forward and reverse — because
// a snap point generally has a predecessor reachable by following the
// segment forward and a different predecessor reachable by following
// it backward.
type PhantomNode struct {
	Forward SegmentHalf
	Reverse SegmentHalf

	// ForwardSegmentID and ReverseSegmentID identify the segment this
	// phantom snaps onto, used to detect when two phantoms share a
	// segment (the empty-path distance special case).
	ForwardSegmentID int32
	ReverseSegmentID int32
}

// IsValidForwardSource reports whether this phantom may seed a search
// via its forward half when acting as a ray origin.
func (p PhantomNode) IsValidForwardSource() bool { return p.Forward.Enabled }

// IsValidReverseSource is the reverse-half analogue of
// IsValidForwardSource.
func (p PhantomNode) IsValidReverseSource() bool { return p.Reverse.Enabled }

// IsValidForwardTarget reports whether this phantom may terminate a
// search via its forward half when acting as a ray sink. Source and
// target validity share the same underlying Enabled bit: the role
// only changes which offset sign is applied at the call site.
func (p PhantomNode) IsValidForwardTarget() bool { return p.Forward.Enabled }

// IsValidReverseTarget is the reverse-half analogue of
// IsValidForwardTarget.
func (p PhantomNode) IsValidReverseTarget() bool { return p.Reverse.Enabled }

// ForwardWeightPlusOffset returns the forward half's weight-plus-offset.
func (p PhantomNode) ForwardWeightPlusOffset() int32 { return p.Forward.WeightPlusOffset }

// ReverseWeightPlusOffset returns the reverse half's weight-plus-offset.
func (p PhantomNode) ReverseWeightPlusOffset() int32 { return p.Reverse.WeightPlusOffset }

// SameSegment reports whether p and other snap onto the same segment,
// triggering the empty-path distance special case. Symmetric: either
// phantom's forward or reverse segment id may match either of the
// other's.
func (p PhantomNode) SameSegment(other PhantomNode) bool {
	return p.ForwardSegmentID == other.ForwardSegmentID ||
		p.ForwardSegmentID == other.ReverseSegmentID ||
		p.ReverseSegmentID == other.ForwardSegmentID ||
		p.ReverseSegmentID == other.ReverseSegmentID
}
