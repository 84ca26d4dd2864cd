// Package tui renders the interactive walkthrough: one screen per
// sequenced step, with the step's referenced parts browsable inside it.
// All navigation state lives in a nav.Cursor; the model only translates
// key presses into cursor transitions and draws whatever the cursor
// points at.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/benchtop-labs/teardown/internal/assets"
	"github.com/benchtop-labs/teardown/internal/catalog"
	"github.com/benchtop-labs/teardown/internal/nav"
	"github.com/benchtop-labs/teardown/internal/workflow"
)

// Model is the root bubbletea model for the guide.
type Model struct {
	steps   []workflow.Step
	catalog *catalog.Catalog
	cursor  *nav.Cursor

	stepDir string
	partDir string

	keys keyMap
	help help.Model

	width  int
	height int
}

// New creates a guide model over the sequenced steps. stepDir and partDir
// are the resolved image directories.
func New(ordered []workflow.Step, cat *catalog.Catalog, stepDir, partDir string) Model {
	entries := make([]nav.Entry, 0, len(ordered))
	for _, s := range ordered {
		entries = append(entries, nav.Entry{ID: s.ID, Parts: len(s.Elements)})
	}
	return Model{
		steps:   ordered,
		catalog: cat,
		cursor:  nav.NewCursor(entries),
		stepDir: stepDir,
		partDir: partDir,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextStep):
			m.cursor.NextStep()
		case key.Matches(msg, m.keys.PrevStep):
			m.cursor.PrevStep()
		case key.Matches(msg, m.keys.NextPart):
			m.cursor.NextPart()
		case key.Matches(msg, m.keys.PrevPart):
			m.cursor.PrevPart()
		case key.Matches(msg, m.keys.First):
			m.cursor.JumpTo(0)
		case key.Matches(msg, m.keys.Last):
			m.cursor.JumpTo(m.cursor.Len() - 1)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m Model) View() string {
	if len(m.steps) == 0 {
		return "No steps available.\n\nPress q to quit.\n"
	}

	step := m.steps[m.cursor.StepIndex()]

	var b strings.Builder
	b.WriteString(counterStyle.Render(fmt.Sprintf("Step %d/%d", m.cursor.StepIndex()+1, m.cursor.Len())))
	b.WriteString("  ")
	b.WriteString(titleStyle.Render(step.Title))
	b.WriteString("\n\n")

	if step.Description != "" {
		b.WriteString(step.Description)
		b.WriteString("\n\n")
	}

	if len(step.DependsOn) > 0 {
		b.WriteString(dimStyle.Render("after: " + strings.Join(step.DependsOn, ", ")))
		b.WriteString("\n\n")
	}

	m.renderImage(&b, m.stepDir, step.Images, "No photo for this step.")
	m.renderParts(&b, step)

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

// renderImage writes the first existing candidate path, or the fallback
// notice when none of the candidates resolve.
func (m Model) renderImage(b *strings.Builder, dir string, candidates []string, fallback string) {
	if path, ok := assets.FirstExisting(dir, candidates); ok {
		b.WriteString(sectionStyle.Render("Photo: "))
		b.WriteString(path)
	} else {
		b.WriteString(warnStyle.Render(fallback))
	}
	b.WriteString("\n\n")
}

func (m Model) renderParts(b *strings.Builder, step workflow.Step) {
	if len(step.Elements) == 0 {
		return
	}

	b.WriteString(sectionStyle.Render(fmt.Sprintf("Parts involved (%d)", len(step.Elements))))
	b.WriteString("\n")

	current := m.cursor.PartIndex()
	for i, eid := range step.Elements {
		part, known := m.catalog.Resolve(eid)
		marker := "  "
		name := part.Name
		if i == current {
			marker = selectedStyle.Render("> ")
			name = selectedStyle.Render(name)
		}
		line := fmt.Sprintf("%s%s", marker, name)
		if !known {
			line += " " + warnStyle.Render("(not in catalog)")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	part, _ := m.catalog.Resolve(step.Elements[current])
	if m.cursor.PartCount() > 1 {
		b.WriteString(counterStyle.Render(fmt.Sprintf("Part %d/%d", current+1, m.cursor.PartCount())))
		b.WriteString("\n")
	}
	if part.Description != "" {
		b.WriteString(part.Description)
		b.WriteString("\n")
	}
	m.renderImage(b, m.partDir, part.Images, "No photo for this part.")
}
