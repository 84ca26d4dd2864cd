package commands

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/benchtop-labs/teardown/internal/catalog"
	"github.com/benchtop-labs/teardown/internal/nav"
	"github.com/benchtop-labs/teardown/internal/workflow"
)

func promptFixture(t *testing.T) (*cobra.Command, *promptState, *bytes.Buffer) {
	t.Helper()

	cat := catalog.New([]catalog.Part{
		{ID: "screw", Name: "Screw", Description: "M3 cross-head"},
		{ID: "cover", Name: "Back cover"},
	})
	steps := []workflow.Step{
		{ID: "open", Title: "Open the case", Elements: []string{"screw", "cover"}},
		{ID: "inspect", Title: "Inspect the board", DependsOn: []string{"open"}},
	}

	entries := make([]nav.Entry, 0, len(steps))
	for _, s := range steps {
		entries = append(entries, nav.Entry{ID: s.ID, Parts: len(s.Elements)})
	}
	st := &promptState{
		steps:   steps,
		catalog: cat,
		cursor:  nav.NewCursor(entries),
		stepDir: t.TempDir(),
		partDir: t.TempDir(),
	}

	buf := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	return cmd, st, buf
}

func TestPromptNextPrev(t *testing.T) {
	cmd, st, buf := promptFixture(t)

	quit := handlePromptCommand(cmd, st, "next")
	assert.False(t, quit)
	assert.Equal(t, 1, st.cursor.StepIndex())
	assert.Contains(t, buf.String(), "Inspect the board")

	handlePromptCommand(cmd, st, "next")
	assert.Equal(t, 0, st.cursor.StepIndex(), "next wraps past the last step")

	handlePromptCommand(cmd, st, "prev")
	assert.Equal(t, 1, st.cursor.StepIndex(), "prev wraps past the first step")
}

func TestPromptGoto(t *testing.T) {
	cmd, st, buf := promptFixture(t)

	handlePromptCommand(cmd, st, "goto 2")
	assert.Equal(t, 1, st.cursor.StepIndex())

	handlePromptCommand(cmd, st, "goto 99")
	assert.Equal(t, 1, st.cursor.StepIndex(), "out-of-range goto is rejected")
	assert.Contains(t, buf.String(), "No such step")
}

func TestPromptPartCycle(t *testing.T) {
	cmd, st, buf := promptFixture(t)

	handlePromptCommand(cmd, st, "part next")
	assert.Equal(t, 1, st.cursor.PartIndex())
	assert.Contains(t, buf.String(), "Back cover")

	// Leaving and returning resets the part selection.
	handlePromptCommand(cmd, st, "next")
	handlePromptCommand(cmd, st, "prev")
	assert.Equal(t, 0, st.cursor.PartIndex())
}

func TestPromptParts(t *testing.T) {
	cmd, st, buf := promptFixture(t)

	handlePromptCommand(cmd, st, "parts")
	out := buf.String()
	assert.Contains(t, out, "Screw")
	assert.Contains(t, out, "Back cover")

	buf.Reset()
	handlePromptCommand(cmd, st, "goto 2")
	buf.Reset()
	handlePromptCommand(cmd, st, "parts")
	assert.Contains(t, buf.String(), "no parts")
}

func TestPromptQuit(t *testing.T) {
	cmd, st, _ := promptFixture(t)
	assert.True(t, handlePromptCommand(cmd, st, "quit"))
	assert.True(t, handlePromptCommand(cmd, st, "exit"))
	assert.False(t, handlePromptCommand(cmd, st, "help"))
}

func TestPromptUnknownCommand(t *testing.T) {
	cmd, st, buf := promptFixture(t)
	assert.False(t, handlePromptCommand(cmd, st, "bogus"))
	assert.Contains(t, buf.String(), "Unknown command")
}
