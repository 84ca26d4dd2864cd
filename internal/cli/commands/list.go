package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/benchtop-labs/teardown/internal/assets"
	"github.com/benchtop-labs/teardown/internal/catalog"
	"github.com/benchtop-labs/teardown/internal/cli/output"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the part catalog",
		Long: `List every part in the catalog with its description and resolved image.

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # List all parts
  teardown list

  # List parts as JSON
  teardown list --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}
	return cmd
}

// PartInfo is the JSON output record for a part.
type PartInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
	ImagePath   string   `json:"image_path,omitempty"`
}

func runList(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	cat, err := cmdCtx.Session.Catalog()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	if cat.Len() == 0 {
		r.Println("No parts available.")
		return nil
	}

	imgDir := cmdCtx.Session.PartImagesDir()

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return listJSON(r, cat, imgDir)
	case output.ModeMarkdown:
		return listMarkdown(r, cat, imgDir)
	default:
		return listText(r, cat, imgDir)
	}
}

func listText(r *output.Renderer, cat *catalog.Catalog, imgDir string) error {
	r.Header(1, fmt.Sprintf("Parts (%d total)", cat.Len()))

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Description", "Image"})

	for _, p := range cat.Parts() {
		img := ""
		if path, ok := assets.FirstExisting(imgDir, p.Images); ok {
			img = path
		} else if len(p.Images) > 0 {
			img = "(missing)"
		}
		t.AppendRow(table.Row{p.ID, p.Name, p.Description, img})
	}

	t.Render()
	r.Printf("(%d parts)\n", cat.Len())
	return nil
}

func listMarkdown(r *output.Renderer, cat *catalog.Catalog, imgDir string) error {
	r.Println(output.FormatHeader(1, fmt.Sprintf("Parts (%d total)", cat.Len())))
	r.Println("")

	for _, p := range cat.Parts() {
		r.Println(output.FormatHeader(2, p.Name))
		r.Println(output.FormatKeyValue("ID", p.ID))
		if p.Description != "" {
			r.Println(output.FormatKeyValue("Description", p.Description))
		}
		if len(p.Images) > 0 {
			r.Println(output.FormatKeyValue("Images", strings.Join(p.Images, ", ")))
			if path, ok := assets.FirstExisting(imgDir, p.Images); ok {
				r.Println(output.FormatKeyValue("Resolved", path))
			}
		}
		r.Println("")
	}
	return nil
}

func listJSON(r *output.Renderer, cat *catalog.Catalog, imgDir string) error {
	parts := make([]PartInfo, 0, cat.Len())
	for _, p := range cat.Parts() {
		info := PartInfo{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Images:      p.Images,
		}
		if path, ok := assets.FirstExisting(imgDir, p.Images); ok {
			info.ImagePath = path
		}
		parts = append(parts, info)
	}

	enc := json.NewEncoder(r.Writer())
	enc.SetIndent("", "  ")
	return enc.Encode(parts)
}
