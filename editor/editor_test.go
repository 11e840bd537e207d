package editor

import (
	"path/filepath"
	"testing"

	"flowgrid/catalog"
	"flowgrid/connector"
	"flowgrid/core"
	"flowgrid/diagram"
	"flowgrid/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDiagram() *diagram.Diagram {
	return &diagram.Diagram{
		Nodes: []diagram.Node{
			{ID: "start", Type: "trigger", Label: "Start", X: 0, Y: 0, Width: 120, Height: 60},
			{ID: "run", Type: "script", Label: "Run", X: 300, Y: 0, Width: 100, Height: 60},
		},
		Edges: []diagram.Edge{{ID: "e1", From: "start", To: "run"}},
	}
}

// wired builds an editor driven by a real machine with no click delay.
func wired(t *testing.T) (*Editor, *connector.Machine, *stubInput) {
	t.Helper()
	ed := New(sampleDiagram(), catalog.Default())
	in := &stubInput{}
	m := connector.New(ed, in, identity{}, noDelay{}, connector.WithClickDelay(0))
	ed.Attach(m)
	m.Start()
	return ed, m, in
}

func TestCreatePlaceholder(t *testing.T) {
	ed := New(sampleDiagram(), nil)

	id := ed.CreatePlaceholder("start", core.Point{X: 200, Y: 200})
	require.NotEmpty(t, id)

	node, err := ed.Diagram().Node(id)
	require.NoError(t, err)
	assert.True(t, node.Placeholder)
	assert.Equal(t, core.Rect{X: 200, Y: 160, Width: 40, Height: 80}, node.Rect())

	last := ed.Diagram().Edges[len(ed.Diagram().Edges)-1]
	assert.Equal(t, "start", last.From)
	assert.Equal(t, id, last.To)
}

func TestCreatePlaceholderRefusesUnknownSource(t *testing.T) {
	ed := New(sampleDiagram(), nil)

	assert.Empty(t, ed.CreatePlaceholder("missing", core.Point{}))
	assert.Len(t, ed.Diagram().Nodes, 2)

	ph := ed.CreatePlaceholder("start", core.Point{X: 600, Y: 600})
	assert.Empty(t, ed.CreatePlaceholder(ph, core.Point{}), "placeholders have no handles")
}

func TestCancelRemovesPlaceholderAndEdge(t *testing.T) {
	ed := New(sampleDiagram(), nil)
	id := ed.CreatePlaceholder("start", core.Point{X: 600, Y: 600})
	ed.SizingFinalized(id)
	require.True(t, ed.PickerOpen())

	ed.Cancel(id)

	assert.False(t, ed.PickerOpen())
	assert.Equal(t, sampleDiagram().Nodes, ed.Diagram().Nodes)
	assert.Equal(t, sampleDiagram().Edges, ed.Diagram().Edges)
}

func TestGestureThroughMachine(t *testing.T) {
	ed, m, in := wired(t)

	handle := ed.Diagram().Nodes[0].Handle()
	in.pointerDown(handle, ed.HitTest(handle))
	require.Equal(t, connector.PhasePositioning, m.Phase().Kind())

	anchor := core.Point{X: 600, Y: 300}
	in.clickAt(anchor, ed.HitTest(anchor))
	s, ok := m.Phase().(connector.Sizing)
	require.True(t, ok)

	in.moveTo(core.Point{X: 760, Y: 340})
	in.clickAt(core.Point{X: 760, Y: 340}, connector.Target{})
	require.Equal(t, connector.PhasePlaced, m.Phase().Kind())
	assert.True(t, ed.PickerOpen())

	assert.False(t, ed.PickWidget(99))
	require.True(t, ed.PickWidget(1)) // script

	assert.Equal(t, connector.PhaseIdle, m.Phase().Kind())
	assert.False(t, ed.PickerOpen())

	node, err := ed.Diagram().Node(s.PlaceholderID)
	require.NoError(t, err)
	assert.False(t, node.Placeholder)
	assert.Equal(t, "script", node.Type)
	assert.Equal(t, "Script", node.Label)
	assert.Equal(t, 8, node.GridCols)
	assert.Equal(t, 4, node.GridRows)
	assert.Equal(t, "shell", node.Template["language"])
	assert.Equal(t, core.Rect{X: 600, Y: 260, Width: 160, Height: 80}, node.Rect())
	assert.True(t, ed.Dirty())
	assert.Equal(t, s.PlaceholderID, ed.Selected())
}

func TestFinalizePushesNeighboursNotTheNewNode(t *testing.T) {
	ed := New(sampleDiagram(), nil)

	// Overlaps "run" at (300,0).
	id := ed.CreatePlaceholder("start", core.Point{X: 340, Y: 40})
	ed.ResizePlaceholder(id, core.Rect{X: 340, Y: 0, Width: 80, Height: 80})
	ed.Finalize(id, "agent", nil, 4, 4)

	node, err := ed.Diagram().Node(id)
	require.NoError(t, err)
	assert.Equal(t, core.Point{X: 340, Y: 0}, node.Box().Position())

	run, err := ed.Diagram().Node("run")
	require.NoError(t, err)
	a, b := node.Box(), run.Box()
	overlapX := a.X < b.X+b.Width+geometry.GridCell && b.X < a.X+a.Width+geometry.GridCell
	overlapY := a.Y < b.Y+b.Height+geometry.GridCell && b.Y < a.Y+a.Height+geometry.GridCell
	assert.False(t, overlapX && overlapY, "run should have been pushed clear")
	assert.True(t, geometry.OnGrid(run.X) && geometry.OnGrid(run.Y))
}

func TestHitTest(t *testing.T) {
	ed := New(sampleDiagram(), nil)

	tests := []struct {
		name string
		at   core.Point
		want connector.Target
	}{
		{"handle", core.Point{X: 125, Y: 32}, connector.Target{Kind: connector.TargetHandle, NodeID: "start", HandleID: "out"}},
		{"body", core.Point{X: 50, Y: 30}, connector.Target{Kind: connector.TargetNode, NodeID: "start"}},
		{"canvas", core.Point{X: 200, Y: 300}, connector.Target{Kind: connector.TargetCanvas}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ed.HitTest(tt.at))
		})
	}
}

func TestResolveCarriesHandleCell(t *testing.T) {
	ed := New(sampleDiagram(), nil)

	// Handle of start sits at (120,30), drawn in cell (12,3).
	got := ed.Resolve(cellSurface{}, core.Point{X: 13, Y: 3})
	require.NotNil(t, got.HandleScreen)
	assert.Equal(t, connector.TargetHandle, got.Kind)
	assert.Equal(t, "start", got.NodeID)
	assert.Equal(t, core.Point{X: 12, Y: 3}, *got.HandleScreen)

	body := ed.Resolve(cellSurface{}, core.Point{X: 5, Y: 3})
	assert.Equal(t, connector.Target{Kind: connector.TargetNode, NodeID: "start"}, body)
}

func TestMoveNodeResolvesCollisions(t *testing.T) {
	ed := New(sampleDiagram(), nil)

	require.NoError(t, ed.MoveNode("run", core.Point{X: 93, Y: 7}))

	run, _ := ed.Diagram().Node("run")
	assert.Equal(t, core.Point{X: 100, Y: 0}, run.Box().Position(), "moved node snaps and stays")

	start, _ := ed.Diagram().Node("start")
	assert.NotEqual(t, core.Point{X: 0, Y: 0}, start.Box().Position(), "neighbour is pushed")
	assert.True(t, geometry.OnGrid(start.X) && geometry.OnGrid(start.Y))

	assert.ErrorIs(t, ed.MoveNode("missing", core.Point{}), diagram.ErrNodeNotFound)
}

func TestAddNodeAvoidsExisting(t *testing.T) {
	ed := New(sampleDiagram(), nil)

	id, err := ed.AddNode("condition", core.Point{X: 0, Y: 0})
	require.NoError(t, err)

	node, _ := ed.Diagram().Node(id)
	assert.Equal(t, core.Size{Width: 120, Height: 80}, core.Size{Width: node.Width, Height: node.Height})
	assert.NotEqual(t, core.Point{}, node.Box().Position())
	assert.True(t, geometry.OnGrid(node.X) && geometry.OnGrid(node.Y))

	_, err = ed.AddNode("nope", core.Point{})
	assert.ErrorIs(t, err, catalog.ErrUnknownType)
}

func TestAddNodeOnEmptyCanvasKeepsDesired(t *testing.T) {
	ed := New(nil, nil)

	id, err := ed.AddNode("output", core.Point{X: 240, Y: 120})
	require.NoError(t, err)

	node, _ := ed.Diagram().Node(id)
	assert.Equal(t, core.NodeBox{ID: id, X: 240, Y: 120, Width: 100, Height: 60}, node.Box())
}

func TestUndoRedo(t *testing.T) {
	ed := New(sampleDiagram(), nil)
	assert.False(t, ed.Undo())

	id, err := ed.AddNode("output", core.Point{X: 800, Y: 800})
	require.NoError(t, err)
	require.NoError(t, ed.DeleteNode("run"))

	require.True(t, ed.Undo())
	_, err = ed.Diagram().Node("run")
	assert.NoError(t, err)

	require.True(t, ed.Undo())
	_, err = ed.Diagram().Node(id)
	assert.ErrorIs(t, err, diagram.ErrNodeNotFound)

	require.True(t, ed.Redo())
	_, err = ed.Diagram().Node(id)
	assert.NoError(t, err)

	current, total := ed.History().Stats()
	assert.Equal(t, 2, current)
	assert.Equal(t, 3, total)
}

func TestUndoCancelsGesture(t *testing.T) {
	ed, m, in := wired(t)
	_, err := ed.AddNode("output", core.Point{X: 800, Y: 800})
	require.NoError(t, err)

	handle := ed.Diagram().Nodes[0].Handle()
	in.pointerDown(handle, ed.HitTest(handle))
	in.clickAt(core.Point{X: 600, Y: 400}, connector.Target{})
	require.Equal(t, connector.PhaseSizing, m.Phase().Kind())

	require.True(t, ed.Undo())

	assert.Equal(t, connector.PhaseIdle, m.Phase().Kind())
	for _, n := range ed.Diagram().Nodes {
		assert.False(t, n.Placeholder)
	}
	assert.Len(t, ed.Diagram().Nodes, 2)
}

func TestDeleteNode(t *testing.T) {
	ed := New(sampleDiagram(), nil)
	ph := ed.CreatePlaceholder("start", core.Point{X: 600, Y: 600})

	assert.ErrorIs(t, ed.DeleteNode(ph), ErrPlaceholder)
	require.NoError(t, ed.DeleteNode("start"))
	assert.Empty(t, ed.Diagram().Edges)
}

func TestSaveSkipsPlaceholders(t *testing.T) {
	ed := New(sampleDiagram(), nil)
	ed.CreatePlaceholder("start", core.Point{X: 600, Y: 600})
	path := filepath.Join(t.TempDir(), "flow.json")

	require.NoError(t, ed.Save(path))
	assert.False(t, ed.Dirty())

	loaded, err := diagram.Load(path)
	require.NoError(t, err)
	assert.Len(t, loaded.Nodes, 2)
	assert.Len(t, loaded.Edges, 1)
}
