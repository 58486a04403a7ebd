package app

import (
	"encoding/json"
	"os"

	"github.com/ttpr0/mldmatrix/graph"
	"github.com/ttpr0/mldmatrix/metric"
	"github.com/ttpr0/mldmatrix/partition"
	"github.com/ttpr0/mldmatrix/phantom"
	. "github.com/ttpr0/mldmatrix/util"
)

// Fixture is the on-disk JSON shape the query/bench commands load: a
// complete, tiny graph plus its partition, cell metric and phantom
// list, hand-authored for tests and demos. There is no map-data loader
// here and no phantom-snapping — both are Non-goals; a fixture already
// carries pre-snapped phantoms.
type Fixture struct {
	NodeCount int32             `json:"node_count"`
	Edges     []fixtureEdge     `json:"edges"`
	Levels    [][]int32         `json:"levels"`
	Cells     []fixtureCell     `json:"cells"`
	Phantoms  []fixturePhantom  `json:"phantoms"`
}

type fixtureEdge struct {
	From     graph.NodeID `json:"from"`
	To       graph.NodeID `json:"to"`
	Forward  bool         `json:"forward"`
	Backward bool         `json:"backward"`
	Weight   int32        `json:"weight"`
	Duration int32        `json:"duration"`
	Distance float64      `json:"distance"`
}

type fixtureCell struct {
	Level    int32          `json:"level"`
	Cell     int32          `json:"cell"`
	Boundary []graph.NodeID `json:"boundary"`
	Weight   [][]int32      `json:"weight"`
	Duration [][]int32      `json:"duration"`
}

type fixtureSegmentHalf struct {
	NodeID         graph.NodeID `json:"node_id"`
	Enabled        bool         `json:"enabled"`
	Weight         int32        `json:"weight"`
	DurationOffset int32        `json:"duration_offset"`
	DistanceOffset float64      `json:"distance_offset"`
}

type fixturePhantom struct {
	Forward          fixtureSegmentHalf `json:"forward"`
	Reverse          fixtureSegmentHalf `json:"reverse"`
	ForwardSegmentID int32              `json:"forward_segment_id"`
	ReverseSegmentID int32              `json:"reverse_segment_id"`
}

// Loaded bundles everything a fixture file describes into the types
// the engine actually consumes.
type Loaded struct {
	Facade     graph.IFacade
	Partition  partition.IPartition
	CellMetric metric.ICellMetric
	Phantoms   []phantom.PhantomNode
}

func LoadFixture(path string) (Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Loaded{}, err
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return Loaded{}, err
	}

	edges := make([]graph.EdgeSpec, len(f.Edges))
	for i, e := range f.Edges {
		edges[i] = graph.EdgeSpec{
			From: e.From, To: e.To,
			Forward: e.Forward, Backward: e.Backward,
			Weight: e.Weight, Duration: e.Duration, Distance: e.Distance,
		}
	}
	mg := graph.NewMemGraph(f.NodeCount, edges)

	part := partition.NewMultiLevelPartition(toMatrix(f.Levels))
	mg.SetCellLookup(part.Cell)

	cm := metric.NewCellMetric()
	for _, c := range f.Cells {
		cm.AddCell(c.Level, c.Cell, toNodeArray(c.Boundary), toMatrix(c.Weight), toMatrix(c.Duration))
	}

	phantoms := make([]phantom.PhantomNode, len(f.Phantoms))
	for i, p := range f.Phantoms {
		phantoms[i] = phantom.PhantomNode{
			Forward:          toSegmentHalf(p.Forward),
			Reverse:          toSegmentHalf(p.Reverse),
			ForwardSegmentID: p.ForwardSegmentID,
			ReverseSegmentID: p.ReverseSegmentID,
		}
	}

	return Loaded{Facade: mg, Partition: part, CellMetric: cm, Phantoms: phantoms}, nil
}

func toSegmentHalf(h fixtureSegmentHalf) phantom.SegmentHalf {
	return phantom.SegmentHalf{
		NodeID:           h.NodeID,
		Enabled:          h.Enabled,
		WeightPlusOffset: h.Weight,
		DurationOffset:   h.DurationOffset,
		DistanceOffset:   h.DistanceOffset,
	}
}

func toMatrix(rows [][]int32) Array[Array[int32]] {
	out := make(Array[Array[int32]], len(rows))
	for i, row := range rows {
		out[i] = Array[int32](row)
	}
	return out
}

func toNodeArray(nodes []graph.NodeID) Array[graph.NodeID] {
	return Array[graph.NodeID](nodes)
}
