package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/benchtop-labs/teardown/internal/cli/output"
	"github.com/benchtop-labs/teardown/internal/session"
	"github.com/benchtop-labs/teardown/internal/workflow"
	"github.com/spf13/cobra"
)

// NewStepsCommand creates the steps command.
func NewStepsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "steps",
		Short: "List the steps in dependency order",
		Long: `List every disassembly step in the order the guide walks them:
a stable topological sort of the declared depends_on prerequisites,
falling back to file order for cycles and steps without an id.

Output adapts to environment:
  - Terminal: Styled output
  - Piped/Scripted: Markdown format (agent-friendly)`,
		Example: `  # Show the walkthrough order
  teardown steps

  # As JSON
  teardown steps --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSteps(cmd)
		},
	}
	return cmd
}

// StepInfo is the JSON output record for a sequenced step.
type StepInfo struct {
	Order       int      `json:"order"`
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	DependsOn   []string `json:"depends_on,omitempty"`
	Elements    []string `json:"elements,omitempty"`
	Images      []string `json:"images,omitempty"`
}

func runSteps(cmd *cobra.Command) error {
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

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return stepsJSON(r, ordered)
	case output.ModeMarkdown:
		return stepsMarkdown(r, ordered)
	default:
		return stepsText(r, ordered)
	}
}

func stepsText(r *output.Renderer, ordered []workflow.Step) error {
	styles := r.Styles()
	r.Header(1, fmt.Sprintf("Steps (%d total)", len(ordered)))

	for i, s := range ordered {
		depStr := ""
		if len(s.DependsOn) > 0 {
			depStr = styles.Muted.Render(fmt.Sprintf(" <- %s", strings.Join(s.DependsOn, ", ")))
		}
		id := s.ID
		if id == "" {
			id = "-"
		}
		r.Printf("  %2d. %-35s [%s]%s\n", i+1, s.Title, id, depStr)
	}
	return nil
}

func stepsMarkdown(r *output.Renderer, ordered []workflow.Step) error {
	r.Println(output.FormatHeader(1, fmt.Sprintf("Steps (%d total)", len(ordered))))
	r.Println("")

	for i, s := range ordered {
		r.Println(output.FormatHeader(2, fmt.Sprintf("%d. %s", i+1, s.Title)))
		if s.ID != "" {
			r.Println(output.FormatKeyValue("ID", s.ID))
		}
		if s.Description != "" {
			r.Println(output.FormatKeyValue("Description", s.Description))
		}
		if len(s.DependsOn) > 0 {
			r.Println(output.FormatKeyValue("Depends on", strings.Join(s.DependsOn, ", ")))
		}
		if len(s.Elements) > 0 {
			r.Println(output.FormatKeyValue("Parts", strings.Join(s.Elements, ", ")))
		}
		r.Println("")
	}
	return nil
}

func stepsJSON(r *output.Renderer, ordered []workflow.Step) error {
	infos := make([]StepInfo, 0, len(ordered))
	for i, s := range ordered {
		infos = append(infos, StepInfo{
			Order:       i + 1,
			ID:          s.ID,
			Title:       s.Title,
			Description: s.Description,
			DependsOn:   s.DependsOn,
			Elements:    s.Elements,
			Images:      s.Images,
		})
	}

	enc := json.NewEncoder(r.Writer())
	enc.SetIndent("", "  ")
	return enc.Encode(infos)
}
