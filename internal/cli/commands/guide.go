package commands

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/benchtop-labs/teardown/internal/cli/output"
	"github.com/benchtop-labs/teardown/internal/session"
	"github.com/benchtop-labs/teardown/internal/tui"
)

// NewGuideCommand creates the guide command.
func NewGuideCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "guide",
		Short: "Walk through the disassembly step by step",
		Long: `Start the interactive walkthrough: steps in dependency order, with the
parts each step touches browsable inside it. Navigation wraps around at
both ends, and returning to a step always starts at its first part.

In a terminal this opens a full-screen interface. When stdout is piped,
or with --plain, it runs a line-oriented prompt instead (next, prev,
parts, goto, quit).`,
		Example: `  # Full-screen walkthrough
  teardown guide

  # Line-oriented prompt
  teardown guide --plain`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGuide(cmd, plain)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "use the line-oriented prompt instead of the full-screen interface")
	return cmd
}

func runGuide(cmd *cobra.Command, plain bool) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	ordered, err := cmdCtx.Session.OrderedSteps()
	if errors.Is(err, session.ErrNoSteps) {
		r.Println("No steps available.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load steps: %w", err)
	}

	cat, err := cmdCtx.Session.Catalog()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	stepDir := cmdCtx.Session.StepImagesDir()
	partDir := cmdCtx.Session.PartImagesDir()

	// Full-screen mode needs a terminal; piped output falls back to the
	// prompt loop.
	if plain || r.EffectiveMode() != output.ModeText {
		return runGuidePrompt(cmd, ordered, cat, stepDir, partDir)
	}

	model := tui.New(ordered, cat, stepDir, partDir)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithOutput(cmd.OutOrStdout()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("walkthrough failed: %w", err)
	}
	return nil
}
