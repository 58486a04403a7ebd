package phantom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSameSegment_SymmetricForSplitPhantoms(t *testing.T) {
	// Two phantoms snapped to opposite offsets of the same directed
	// segment: one's forward id is the other's reverse id.
	p := PhantomNode{ForwardSegmentID: 5, ReverseSegmentID: 6}
	other := PhantomNode{ForwardSegmentID: 7, ReverseSegmentID: 5}

	require.True(t, p.SameSegment(other))
	require.True(t, other.SameSegment(p))
}

func TestSameSegment_SymmetricForDistinctSegments(t *testing.T) {
	p := PhantomNode{ForwardSegmentID: 1, ReverseSegmentID: 2}
	other := PhantomNode{ForwardSegmentID: 3, ReverseSegmentID: 4}

	require.False(t, p.SameSegment(other))
	require.False(t, other.SameSegment(p))
}

func TestSameSegment_ReverseToReverseMatch(t *testing.T) {
	p := PhantomNode{ForwardSegmentID: 1, ReverseSegmentID: 9}
	other := PhantomNode{ForwardSegmentID: 3, ReverseSegmentID: 9}

	require.True(t, p.SameSegment(other))
	require.True(t, other.SameSegment(p))
}
