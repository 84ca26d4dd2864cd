package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGraph_TolerantConstruction(t *testing.T) {
	steps := []Step{
		{ID: "a", DependsOn: []string{"ghost", "a"}}, // dangling + self-loop dropped
		{ID: "b", DependsOn: []string{"a", "a"}},     // duplicate edge deduped
		{Title: "anonymous"},                         // no id, no node
	}

	g := NewGraph(steps)
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.EdgeCount())
	assert.Empty(t, g.Parents("a"))
	assert.Equal(t, []string{"a"}, g.Parents("b"))
	assert.Equal(t, []string{"b"}, g.Children("a"))
}

func TestGraph_HasCycle(t *testing.T) {
	acyclic := NewGraph([]Step{
		{ID: "a"},
		{ID: "b", DependsOn: []string{"a"}},
	})
	ok, path := acyclic.HasCycle()
	assert.False(t, ok)
	assert.Empty(t, path)

	cyclic := NewGraph([]Step{
		{ID: "a", DependsOn: []string{"c"}},
		{ID: "b", DependsOn: []string{"a"}},
		{ID: "c", DependsOn: []string{"b"}},
	})
	ok, path = cyclic.HasCycle()
	require.True(t, ok)
	assert.NotEmpty(t, path)
}

func TestGraph_Levels(t *testing.T) {
	g := NewGraph([]Step{
		{ID: "a"},
		{ID: "b"},
		{ID: "c", DependsOn: []string{"a", "b"}},
		{ID: "d", DependsOn: []string{"c"}},
	})

	assert.Equal(t, [][]string{{"a", "b"}, {"c"}, {"d"}}, g.Levels())
}

func TestGraph_Levels_CycleTrailingLevel(t *testing.T) {
	g := NewGraph([]Step{
		{ID: "root"},
		{ID: "x", DependsOn: []string{"y"}},
		{ID: "y", DependsOn: []string{"x"}},
	})

	levels := g.Levels()
	require.Len(t, levels, 2)
	assert.Equal(t, []string{"root"}, levels[0])
	assert.Equal(t, []string{"x", "y"}, levels[1])
}

func TestGraph_Empty(t *testing.T) {
	g := NewGraph(nil)
	assert.Equal(t, 0, g.NodeCount())
	assert.Empty(t, g.Levels())
	ok, _ := g.HasCycle()
	assert.False(t, ok)
}
