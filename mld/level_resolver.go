package mld

import (
	"github.com/ttpr0/mldmatrix/graph"
	"github.com/ttpr0/mldmatrix/partition"
	"github.com/ttpr0/mldmatrix/phantom"
)

// InvalidLevel is the hard-stop sentinel: the relaxer emits no
// outgoing work for a node resolved to this level.
const InvalidLevel = partition.InvalidLevel

// LevelResolver computes the query level at which a settled node's
// edges may be relaxed, given the active phantom set for the ongoing
// search.
type LevelResolver struct {
	part partition.IPartition
}

func NewLevelResolver(part partition.IPartition) *LevelResolver {
	return &LevelResolver{part: part}
}

// ActiveLevel is the shared computation behind all three modes: the
// minimum, over every enabled half of every phantom in active, of the
// highest-different-level between n and that half's node. A disabled
// half, and a half that coincides with n (HighestDifferentLevel has no
// level to report for a node paired with itself), are both
// non-constraining and contribute nothing to the minimum — mirroring
// the original's INVALID_LEVEL_ID behaving as +infinity inside its
// std::min reduction, not as the most restrictive level.
func (r *LevelResolver) ActiveLevel(n graph.NodeID, active []phantom.PhantomNode) int32 {
	min := int32(0)
	found := false
	consider := func(enabled bool, id graph.NodeID) {
		if !enabled {
			return
		}
		lvl := r.part.HighestDifferentLevel(n, id)
		if lvl == partition.InvalidLevel {
			return
		}
		if !found || lvl < min {
			min = lvl
			found = true
		}
	}
	for _, p := range active {
		consider(p.Forward.Enabled, p.Forward.NodeID)
		consider(p.Reverse.Enabled, p.Reverse.NodeID)
	}
	if !found {
		return partition.InvalidLevel
	}
	return min
}

// OneToMany is the 1-to-N / N-to-1 mode: active is the seed phantom
// first, then every phantom on the many side. A node of the seed
// phantom resolves to level 0, so the seed relaxes its adjacent
// base-graph edges; every other node gets ActiveLevel.
func (r *LevelResolver) OneToMany(n graph.NodeID, active []phantom.PhantomNode) int32 {
	if len(active) > 0 && atPhantom(n, active[0]) {
		return 0
	}
	return r.ActiveLevel(n, active)
}

// ManyToManyForward is the bidirectional forward half: the active
// phantom is just the current source, the target set is ignored. A
// node of the source phantom itself resolves to level 0.
func (r *LevelResolver) ManyToManyForward(n graph.NodeID, source phantom.PhantomNode) int32 {
	if atPhantom(n, source) {
		return 0
	}
	return r.ActiveLevel(n, []phantom.PhantomNode{source})
}

// ManyToManyBackward is the bidirectional backward half: the active
// phantom is the current target (a node of the target phantom itself
// resolves to level 0), capped by maximal_level = L-1; reaching the
// cap returns InvalidLevel.
func (r *LevelResolver) ManyToManyBackward(n graph.NodeID, target phantom.PhantomNode) int32 {
	lvl := r.ActiveLevel(n, []phantom.PhantomNode{target})
	if atPhantom(n, target) {
		lvl = 0
	}
	maximalLevel := r.part.LevelCount() - 1
	if lvl == partition.InvalidLevel || lvl >= maximalLevel {
		return partition.InvalidLevel
	}
	return lvl
}

// atPhantom reports whether n is the node of one of p's enabled halves.
func atPhantom(n graph.NodeID, p phantom.PhantomNode) bool {
	return (p.Forward.Enabled && p.Forward.NodeID == n) || (p.Reverse.Enabled && p.Reverse.NodeID == n)
}
