package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/benchtop-labs/teardown/internal/assets"
	"github.com/benchtop-labs/teardown/internal/catalog"
	"github.com/benchtop-labs/teardown/internal/cli/output"
	"github.com/benchtop-labs/teardown/internal/workflow"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run a data-quality check over the guide files",
		Long: `Analyze the step and part collections for data-quality issues.

The guide tolerates all of these at runtime (dangling references are
dropped from the ordering, cycles fall back to file order, missing images
show a fallback notice); doctor makes them visible so they can be fixed
in the data files. Findings are advisory: the exit code is always 0 when
the files can be read.

Checks:
- data files present and parseable
- depends_on references that resolve to no step
- element references that resolve to no catalog part
- duplicate step ids (the last-loaded record shadows earlier ones)
- dependency cycles
- image candidates of which none exist on disk`,
		Example: `  # Run the check
  teardown doctor

  # Machine-readable report
  teardown doctor --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd)
		},
	}
	return cmd
}

// HealthCheck is a single doctor finding group.
type HealthCheck struct {
	Name       string   `json:"name"`
	Status     string   `json:"status"` // "pass" or "warn"
	IssueCount int      `json:"issue_count"`
	Details    []string `json:"details,omitempty"`
}

// DoctorOutput is the JSON report of the doctor command.
type DoctorOutput struct {
	Steps      int           `json:"steps"`
	Parts      int           `json:"parts"`
	Checks     []HealthCheck `json:"checks"`
	IssueCount int           `json:"issue_count"`
}

func runDoctor(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	cfg := cmdCtx.Cfg

	cat, err := cmdCtx.Session.Catalog()
	if err != nil {
		return fmt.Errorf("parts file unusable: %w", err)
	}
	steps, err := cmdCtx.Session.Steps()
	if err != nil {
		return fmt.Errorf("steps file unusable: %w", err)
	}
	graph, _ := cmdCtx.Session.Graph()

	checks := []HealthCheck{
		checkDataFiles(cfg.StepsFile, cfg.PartsFile, len(steps), cat.Len()),
		checkDanglingDeps(steps),
		checkUnknownElements(steps, cat),
		checkDuplicateIDs(steps),
		checkCycles(graph),
		checkImages("step images", cmdCtx.Session.StepImagesDir(), stepImageRecords(steps)),
		checkImages("part images", cmdCtx.Session.PartImagesDir(), partImageRecords(cat)),
	}

	report := DoctorOutput{
		Steps:  len(steps),
		Parts:  cat.Len(),
		Checks: checks,
	}
	for _, c := range checks {
		report.IssueCount += c.IssueCount
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case output.ModeMarkdown:
		return doctorMarkdown(r, report)
	default:
		return doctorText(r, report)
	}
}

func checkDataFiles(stepsFile, partsFile string, steps, parts int) HealthCheck {
	c := HealthCheck{Name: "data files", Status: "pass"}
	if _, err := os.Stat(stepsFile); err != nil {
		c.Details = append(c.Details, fmt.Sprintf("steps file missing: %s", stepsFile))
	}
	if _, err := os.Stat(partsFile); err != nil {
		c.Details = append(c.Details, fmt.Sprintf("parts file missing: %s", partsFile))
	}
	if steps == 0 {
		c.Details = append(c.Details, "step collection is empty")
	}
	if parts == 0 {
		c.Details = append(c.Details, "part catalog is empty")
	}
	c.IssueCount = len(c.Details)
	if c.IssueCount > 0 {
		c.Status = "warn"
	}
	return c
}

func checkDanglingDeps(steps []workflow.Step) HealthCheck {
	known := make(map[string]bool)
	for _, s := range steps {
		if s.ID != "" {
			known[s.ID] = true
		}
	}

	c := HealthCheck{Name: "dangling depends_on", Status: "pass"}
	for _, s := range steps {
		for _, dep := range s.DependsOn {
			if !known[dep] {
				c.Details = append(c.Details, fmt.Sprintf("step %q depends on unknown id %q", s.Title, dep))
			}
		}
	}
	c.IssueCount = len(c.Details)
	if c.IssueCount > 0 {
		c.Status = "warn"
	}
	return c
}

func checkUnknownElements(steps []workflow.Step, cat *catalog.Catalog) HealthCheck {
	c := HealthCheck{Name: "unknown part references", Status: "pass"}
	for _, s := range steps {
		for _, eid := range s.Elements {
			if _, ok := cat.Get(eid); !ok {
				c.Details = append(c.Details, fmt.Sprintf("step %q references unknown part %q", s.Title, eid))
			}
		}
	}
	c.IssueCount = len(c.Details)
	if c.IssueCount > 0 {
		c.Status = "warn"
	}
	return c
}

func checkDuplicateIDs(steps []workflow.Step) HealthCheck {
	seen := make(map[string]int)
	for _, s := range steps {
		if s.ID != "" {
			seen[s.ID]++
		}
	}

	c := HealthCheck{Name: "duplicate step ids", Status: "pass"}
	for _, s := range steps {
		if s.ID != "" && seen[s.ID] > 1 {
			c.Details = append(c.Details, fmt.Sprintf("id %q appears %d times (last record shadows the others)", s.ID, seen[s.ID]))
			seen[s.ID] = 0 // report once
		}
	}
	c.IssueCount = len(c.Details)
	if c.IssueCount > 0 {
		c.Status = "warn"
	}
	return c
}

func checkCycles(graph *workflow.Graph) HealthCheck {
	c := HealthCheck{Name: "dependency cycles", Status: "pass"}
	if graph != nil {
		if ok, cycle := graph.HasCycle(); ok {
			c.Details = append(c.Details, fmt.Sprintf("cycle: %s (these steps fall back to file order)", strings.Join(cycle, " -> ")))
		}
	}
	c.IssueCount = len(c.Details)
	if c.IssueCount > 0 {
		c.Status = "warn"
	}
	return c
}

type imageRecord struct {
	label  string
	images []string
}

func stepImageRecords(steps []workflow.Step) []imageRecord {
	var recs []imageRecord
	for _, s := range steps {
		recs = append(recs, imageRecord{label: fmt.Sprintf("step %q", s.Title), images: s.Images})
	}
	return recs
}

func partImageRecords(cat *catalog.Catalog) []imageRecord {
	var recs []imageRecord
	for _, p := range cat.Parts() {
		recs = append(recs, imageRecord{label: fmt.Sprintf("part %q", p.Name), images: p.Images})
	}
	return recs
}

func checkImages(name, dir string, recs []imageRecord) HealthCheck {
	c := HealthCheck{Name: name, Status: "pass"}
	for _, rec := range recs {
		if len(rec.images) == 0 {
			continue
		}
		if _, ok := assets.FirstExisting(dir, rec.images); !ok {
			c.Details = append(c.Details, fmt.Sprintf("%s: no candidate of %s exists under %s", rec.label, strings.Join(rec.images, ", "), dir))
		}
	}
	c.IssueCount = len(c.Details)
	if c.IssueCount > 0 {
		c.Status = "warn"
	}
	return c
}

func doctorText(r *output.Renderer, report DoctorOutput) error {
	styles := r.Styles()
	r.Header(1, "Guide Health Check")
	r.Printf("Steps: %d  Parts: %d\n\n", report.Steps, report.Parts)

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Check", "Status", "Issues"})
	for _, c := range report.Checks {
		status := styles.Success.Render("pass")
		if c.Status == "warn" {
			status = styles.Warn.Render("warn")
		}
		t.AppendRow(table.Row{c.Name, status, c.IssueCount})
	}
	t.Render()

	for _, c := range report.Checks {
		for _, d := range c.Details {
			r.Printf("  %s %s\n", styles.Warn.Render("!"), d)
		}
	}

	if report.IssueCount == 0 {
		r.Println(styles.Success.Render("\nNo issues found."))
	} else {
		r.Println(styles.Muted.Render(fmt.Sprintf("\n%d issue(s); the guide still runs, degrading as documented.", report.IssueCount)))
	}
	return nil
}

func doctorMarkdown(r *output.Renderer, report DoctorOutput) error {
	r.Println(output.FormatHeader(1, "Guide Health Check"))
	r.Println("")
	r.Println(output.FormatKeyValue("Steps", fmt.Sprintf("%d", report.Steps)))
	r.Println(output.FormatKeyValue("Parts", fmt.Sprintf("%d", report.Parts)))
	r.Println("")

	for _, c := range report.Checks {
		r.Println(output.FormatHeader(2, fmt.Sprintf("%s: %s", c.Name, c.Status)))
		for _, d := range c.Details {
			r.Println("- " + d)
		}
		r.Println("")
	}

	r.Println(fmt.Sprintf("Total issues: %d", report.IssueCount))
	return nil
}
