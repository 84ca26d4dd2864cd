package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/benchtop-labs/teardown/internal/cli/output"
	"github.com/benchtop-labs/teardown/internal/workflow"
	"github.com/spf13/cobra"
)

// NewDAGCommand creates the dag command.
func NewDAGCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dag",
		Short: "Show the step dependency graph",
		Long: `Display the dependency graph of all steps, grouped by dependency depth.

Steps caught in a dependency cycle cannot be assigned a depth and are
grouped into a trailing level; dangling depends_on references are dropped
from the graph but flagged by the doctor command.

Output adapts to environment:
  - Terminal: Styled output
  - Piped/Scripted: Markdown format (agent-friendly)`,
		Example: `  # Show the DAG
  teardown dag

  # Output as JSON
  teardown dag --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDAG(cmd)
		},
	}
	return cmd
}

func runDAG(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	graph, err := cmdCtx.Session.Graph()
	if err != nil {
		return fmt.Errorf("failed to load steps: %w", err)
	}

	if graph.NodeCount() == 0 {
		r.Println("No steps with ids; nothing to graph.")
		return nil
	}

	levels := graph.Levels()

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return dagJSON(r, graph, levels)
	case output.ModeMarkdown:
		return dagMarkdown(r, graph, levels)
	default:
		return dagText(r, graph, levels)
	}
}

func dagText(r *output.Renderer, graph *workflow.Graph, levels [][]string) error {
	styles := r.Styles()
	r.Header(1, "Dependency Graph")

	for i, level := range levels {
		r.Println(styles.Header2.Render(fmt.Sprintf("Level %d:", i)))
		for _, id := range level {
			deps := graph.Parents(id)
			children := graph.Children(id)

			r.Printf("  %s\n", styles.Title.Render(id))
			if len(deps) > 0 {
				r.Printf("    %s %s\n", styles.Muted.Render("depends on:"), strings.Join(deps, ", "))
			}
			if len(children) > 0 {
				r.Printf("    %s %s\n", styles.Muted.Render("required by:"), strings.Join(children, ", "))
			}
		}
		r.Println("")
	}

	r.Println(styles.Muted.Render(fmt.Sprintf("Total: %d steps, %d dependencies", graph.NodeCount(), graph.EdgeCount())))
	return nil
}

func dagMarkdown(r *output.Renderer, graph *workflow.Graph, levels [][]string) error {
	r.Println(output.FormatHeader(1, "Dependency Graph"))
	r.Println("")

	for i, level := range levels {
		r.Println(output.FormatHeader(2, fmt.Sprintf("Level %d", i)))
		for _, id := range level {
			r.Println(output.FormatKeyValue(id, describeNode(graph, id)))
		}
		r.Println("")
	}

	r.Println(fmt.Sprintf("Total: %d steps, %d dependencies", graph.NodeCount(), graph.EdgeCount()))
	return nil
}

func describeNode(graph *workflow.Graph, id string) string {
	var parts []string
	if deps := graph.Parents(id); len(deps) > 0 {
		parts = append(parts, "depends on "+strings.Join(deps, ", "))
	}
	if children := graph.Children(id); len(children) > 0 {
		parts = append(parts, "required by "+strings.Join(children, ", "))
	}
	if len(parts) == 0 {
		return "independent"
	}
	return strings.Join(parts, "; ")
}

// DAGOutput is the JSON output for the dag command.
type DAGOutput struct {
	Levels    [][]string          `json:"levels"`
	Parents   map[string][]string `json:"parents"`
	NodeCount int                 `json:"node_count"`
	EdgeCount int                 `json:"edge_count"`
	HasCycle  bool                `json:"has_cycle"`
	Cycle     []string            `json:"cycle,omitempty"`
}

func dagJSON(r *output.Renderer, graph *workflow.Graph, levels [][]string) error {
	parents := make(map[string][]string, graph.NodeCount())
	for _, id := range graph.IDs() {
		if deps := graph.Parents(id); len(deps) > 0 {
			parents[id] = deps
		}
	}

	hasCycle, cycle := graph.HasCycle()
	out := DAGOutput{
		Levels:    levels,
		Parents:   parents,
		NodeCount: graph.NodeCount(),
		EdgeCount: graph.EdgeCount(),
		HasCycle:  hasCycle,
		Cycle:     cycle,
	}

	enc := json.NewEncoder(r.Writer())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
