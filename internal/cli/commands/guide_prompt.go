package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/benchtop-labs/teardown/internal/assets"
	"github.com/benchtop-labs/teardown/internal/catalog"
	"github.com/benchtop-labs/teardown/internal/nav"
	"github.com/benchtop-labs/teardown/internal/workflow"
)

// promptState bundles everything the prompt loop needs to show a step.
type promptState struct {
	steps   []workflow.Step
	catalog *catalog.Catalog
	cursor  *nav.Cursor
	stepDir string
	partDir string
}

func runGuidePrompt(cmd *cobra.Command, ordered []workflow.Step, cat *catalog.Catalog, stepDir, partDir string) error {
	entries := make([]nav.Entry, 0, len(ordered))
	for _, s := range ordered {
		entries = append(entries, nav.Entry{ID: s.ID, Parts: len(s.Elements)})
	}
	st := &promptState{
		steps:   ordered,
		catalog: cat,
		cursor:  nav.NewCursor(entries),
		stepDir: stepDir,
		partDir: partDir,
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "teardown> ",
		AutoComplete:    promptCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize prompt: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Walkthrough: %d steps. Type help for commands, quit to exit.\n\n", len(ordered))
	printPromptStep(out, st)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if handlePromptCommand(cmd, st, line) {
			return nil
		}
	}
}

// handlePromptCommand runs one prompt command. Returns true when the loop
// should exit.
func handlePromptCommand(cmd *cobra.Command, st *promptState, line string) bool {
	out := cmd.OutOrStdout()
	fields := strings.Fields(strings.ToLower(line))

	switch fields[0] {
	case "quit", "exit", "q":
		return true

	case "help", "h", "?":
		printPromptHelp(out)

	case "next", "n":
		st.cursor.NextStep()
		printPromptStep(out, st)

	case "prev", "p", "back":
		st.cursor.PrevStep()
		printPromptStep(out, st)

	case "goto", "g":
		if len(fields) < 2 {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Usage: goto <step number>")
			return false
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 || n > st.cursor.Len() {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "No such step: %s (1-%d)\n", fields[1], st.cursor.Len())
			return false
		}
		st.cursor.JumpTo(n - 1)
		printPromptStep(out, st)

	case "show", "s":
		printPromptStep(out, st)

	case "part":
		if len(fields) < 2 {
			printPromptPart(out, st)
			return false
		}
		switch fields[1] {
		case "next", "n":
			st.cursor.NextPart()
		case "prev", "p":
			st.cursor.PrevPart()
		default:
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Usage: part [next|prev]")
			return false
		}
		printPromptPart(out, st)

	case "parts":
		printPromptParts(out, st)

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type help for commands)\n", fields[0])
	}
	return false
}

func printPromptStep(w io.Writer, st *promptState) {
	if len(st.steps) == 0 {
		_, _ = fmt.Fprintln(w, "No steps available.")
		return
	}
	step := st.steps[st.cursor.StepIndex()]

	_, _ = fmt.Fprintf(w, "[%d/%d] %s\n", st.cursor.StepIndex()+1, st.cursor.Len(), step.Title)
	if step.Description != "" {
		_, _ = fmt.Fprintf(w, "  %s\n", step.Description)
	}
	if len(step.DependsOn) > 0 {
		_, _ = fmt.Fprintf(w, "  after: %s\n", strings.Join(step.DependsOn, ", "))
	}
	if path, ok := assets.FirstExisting(st.stepDir, step.Images); ok {
		_, _ = fmt.Fprintf(w, "  photo: %s\n", path)
	}
	if n := len(step.Elements); n > 0 {
		_, _ = fmt.Fprintf(w, "  parts: %d (type parts to list them)\n", n)
	}
	_, _ = fmt.Fprintln(w)
}

func printPromptParts(w io.Writer, st *promptState) {
	if len(st.steps) == 0 {
		_, _ = fmt.Fprintln(w, "No steps available.")
		return
	}
	step := st.steps[st.cursor.StepIndex()]
	if len(step.Elements) == 0 {
		_, _ = fmt.Fprintln(w, "This step references no parts.")
		return
	}

	current := st.cursor.PartIndex()
	for i, eid := range step.Elements {
		part, known := st.catalog.Resolve(eid)
		marker := " "
		if i == current {
			marker = ">"
		}
		note := ""
		if !known {
			note = " (not in catalog)"
		}
		_, _ = fmt.Fprintf(w, " %s %d. %s%s\n", marker, i+1, part.Name, note)
	}
	_, _ = fmt.Fprintln(w)
}

func printPromptPart(w io.Writer, st *promptState) {
	if len(st.steps) == 0 {
		_, _ = fmt.Fprintln(w, "No steps available.")
		return
	}
	step := st.steps[st.cursor.StepIndex()]
	if len(step.Elements) == 0 {
		_, _ = fmt.Fprintln(w, "This step references no parts.")
		return
	}

	current := st.cursor.PartIndex()
	part, known := st.catalog.Resolve(step.Elements[current])

	_, _ = fmt.Fprintf(w, "[part %d/%d] %s\n", current+1, st.cursor.PartCount(), part.Name)
	if !known {
		_, _ = fmt.Fprintln(w, "  (not in catalog)")
	}
	if part.Description != "" {
		_, _ = fmt.Fprintf(w, "  %s\n", part.Description)
	}
	if path, ok := assets.FirstExisting(st.partDir, part.Images); ok {
		_, _ = fmt.Fprintf(w, "  photo: %s\n", path)
	}
	_, _ = fmt.Fprintln(w)
}

func printPromptHelp(w io.Writer) {
	help := `
Commands:
  next / n         Advance to the next step (wraps around)
  prev / p         Go back to the previous step (wraps around)
  goto <n>         Jump to step number n
  show / s         Show the current step again
  parts            List the parts of the current step
  part             Show the selected part in detail
  part next/prev   Cycle through the current step's parts
  help             Show this help message
  quit / exit      Leave the walkthrough
`
	_, _ = fmt.Fprintln(w, help)
}

func promptCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("next"),
		readline.PcItem("prev"),
		readline.PcItem("goto"),
		readline.PcItem("show"),
		readline.PcItem("parts"),
		readline.PcItem("part",
			readline.PcItem("next"),
			readline.PcItem("prev"),
		),
		readline.PcItem("help"),
		readline.PcItem("quit"),
		readline.PcItem("exit"),
	)
}
