package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benchtop-labs/teardown/internal/catalog"
	"github.com/benchtop-labs/teardown/internal/workflow"
)

func testModel(t *testing.T) Model {
	t.Helper()
	cat := catalog.New([]catalog.Part{
		{ID: "screw", Name: "Screw", Description: "M3 cross-head"},
		{ID: "cover", Name: "Back cover"},
		{ID: "battery", Name: "Battery"},
	})
	steps := []workflow.Step{
		{ID: "open", Title: "Open the case", Elements: []string{"screw", "cover"}},
		{ID: "power", Title: "Remove the battery", DependsOn: []string{"open"}, Elements: []string{"battery"}},
		{Title: "Inspect"},
	}
	return New(steps, cat, t.TempDir(), t.TempDir())
}

func keyPress(m Model, r rune) Model {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return updated.(Model)
}

func TestModelStepNavigation(t *testing.T) {
	m := testModel(t)
	assert.Equal(t, 0, m.cursor.StepIndex())

	m = keyPress(m, 'n')
	assert.Equal(t, 1, m.cursor.StepIndex())

	m = keyPress(m, 'n')
	m = keyPress(m, 'n')
	assert.Equal(t, 0, m.cursor.StepIndex(), "step navigation wraps")

	m = keyPress(m, 'p')
	assert.Equal(t, 2, m.cursor.StepIndex(), "backing up from the first step wraps to the last")
}

func TestModelPartNavigationResetsOnStepChange(t *testing.T) {
	m := testModel(t)

	m = keyPress(m, 'j')
	assert.Equal(t, 1, m.cursor.PartIndex())

	m = keyPress(m, 'n')
	m = keyPress(m, 'p')
	assert.Equal(t, 0, m.cursor.PartIndex(), "revisiting a step starts at its first part")
}

func TestModelPartNavigationSinglePart(t *testing.T) {
	m := testModel(t)
	m = keyPress(m, 'n') // "power" has a single part

	m = keyPress(m, 'j')
	assert.Equal(t, 0, m.cursor.PartIndex(), "a single part cannot be cycled")
}

func TestModelQuit(t *testing.T) {
	m := testModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModelView(t *testing.T) {
	m := testModel(t)
	view := m.View()

	assert.Contains(t, view, "Step 1/3")
	assert.Contains(t, view, "Open the case")
	assert.Contains(t, view, "Screw")
	assert.Contains(t, view, "Back cover")
	assert.Contains(t, view, "No photo for this step.")
}

func TestModelViewUnknownPart(t *testing.T) {
	cat := catalog.New(nil)
	steps := []workflow.Step{{ID: "s1", Title: "Start", Elements: []string{"ghost"}}}
	m := New(steps, cat, t.TempDir(), t.TempDir())

	view := m.View()
	assert.Contains(t, view, "ghost")
	assert.Contains(t, view, "not in catalog")
}

func TestModelViewEmpty(t *testing.T) {
	m := New(nil, catalog.New(nil), t.TempDir(), t.TempDir())
	view := m.View()
	assert.True(t, strings.Contains(view, "No steps available."))

	// No-ops, no panics.
	m = keyPress(m, 'n')
	m = keyPress(m, 'j')
	assert.Equal(t, 0, m.cursor.StepIndex())
}
