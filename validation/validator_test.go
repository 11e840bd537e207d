package validation

import (
	"math"
	"strings"
	"testing"

	"flowgrid/diagram"
	"flowgrid/geometry"
	"flowgrid/layout"

	"github.com/stretchr/testify/assert"
)

func TestValidateCleanDocument(t *testing.T) {
	d := &diagram.Diagram{
		Nodes: []diagram.Node{
			{ID: "a", X: 0, Y: 0, Width: 100, Height: 60},
			{ID: "b", X: 200, Y: 0, Width: 100, Height: 60},
		},
		Edges: []diagram.Edge{{ID: "e", From: "a", To: "b"}},
	}

	issues := NewValidator().Validate(d)
	assert.Empty(t, issues)
	assert.False(t, HasErrors(issues))
}

func TestValidateFindsProblems(t *testing.T) {
	tests := []struct {
		name string
		d    *diagram.Diagram
		want []string
	}{
		{
			name: "dangling edge",
			d: &diagram.Diagram{
				Nodes: []diagram.Node{{ID: "a", Width: 100, Height: 60}},
				Edges: []diagram.Edge{{ID: "e", From: "a", To: "z"}},
			},
			want: []string{`error: edge e: target "z" does not exist`},
		},
		{
			name: "duplicate node",
			d: &diagram.Diagram{
				Nodes: []diagram.Node{
					{ID: "a", Width: 100, Height: 60},
					{ID: "a", X: 400, Width: 100, Height: 60},
				},
			},
			want: []string{"error: node a: duplicate node id"},
		},
		{
			name: "off grid",
			d: &diagram.Diagram{
				Nodes: []diagram.Node{{ID: "a", X: 15, Y: 0, Width: 100, Height: 50}},
			},
			want: []string{
				"warning: node a: position (15, 0) is off the 20-unit grid",
				"warning: node a: size 100x50 is not whole grid cells",
			},
		},
		{
			name: "crowded",
			d: &diagram.Diagram{
				Nodes: []diagram.Node{
					{ID: "a", X: 0, Y: 0, Width: 100, Height: 60},
					{ID: "b", X: 100, Y: 0, Width: 100, Height: 60},
				},
			},
			want: []string{"warning: node a: within 20 of node b"},
		},
		{
			name: "not finite",
			d: &diagram.Diagram{
				Nodes: []diagram.Node{{ID: "a", X: math.NaN(), Width: 100, Height: 60}},
			},
			want: []string{"error: node a: geometry is not finite"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := NewValidator().Validate(tt.d)
			got := make([]string, len(issues))
			for i, e := range issues {
				got[i] = e.Error()
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateSortsErrorsFirst(t *testing.T) {
	d := &diagram.Diagram{
		Nodes: []diagram.Node{{ID: "a", X: 5, Width: 100, Height: 60}},
		Edges: []diagram.Edge{{ID: "e", From: "x", To: "a"}},
	}

	issues := NewValidator().Validate(d)
	assert.Len(t, issues, 2)
	assert.Equal(t, Error, issues[0].Severity)
	assert.Equal(t, Warning, issues[1].Severity)
	assert.True(t, HasErrors(issues))
}

func TestSetMargin(t *testing.T) {
	d := &diagram.Diagram{
		Nodes: []diagram.Node{
			{ID: "a", X: 0, Y: 0, Width: 100, Height: 60},
			{ID: "b", X: 140, Y: 0, Width: 100, Height: 60},
		},
	}
	v := NewValidator()
	assert.Empty(t, v.Validate(d))

	v.SetMargin(100)
	assert.Len(t, v.Validate(d), 1)
}

func TestSpacingAgreesWithLayout(t *testing.T) {
	a := diagram.Node{ID: "a", X: 0, Y: 0, Width: 100, Height: 60}
	tests := []struct {
		name string
		b    diagram.Node
	}{
		{"one cell right", diagram.Node{ID: "b", X: 120, Y: 0, Width: 100, Height: 60}},
		{"just inside right", diagram.Node{ID: "b", X: 119, Y: 0, Width: 100, Height: 60}},
		{"one cell below", diagram.Node{ID: "b", X: 0, Y: 80, Width: 100, Height: 60}},
		{"diagonal gap", diagram.Node{ID: "b", X: 110, Y: 70, Width: 100, Height: 60}},
		{"far away", diagram.Node{ID: "b", X: 400, Y: 400, Width: 100, Height: 60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &diagram.Diagram{Nodes: []diagram.Node{a, tt.b}}
			crowded := false
			for _, e := range NewValidator().Validate(d) {
				if strings.HasPrefix(e.Message, "within") {
					crowded = true
				}
			}
			assert.Equal(t, layout.Overlaps(a.Box(), tt.b.Box(), geometry.GridCell), crowded)
		})
	}
}
