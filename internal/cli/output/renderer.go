// Package output renders command results in one of several modes: styled
// text for terminals, markdown for pipes and agents, or raw JSON. The auto
// mode picks text on a TTY and markdown otherwise.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Mode selects the output format.
type Mode string

const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// ParseMode normalizes a user-supplied format string to a Mode.
func ParseMode(s string) Mode {
	switch s {
	case "text":
		return ModeText
	case "markdown", "md":
		return ModeMarkdown
	case "json":
		return ModeJSON
	default:
		return ModeAuto
	}
}

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styles *Styles
	isTTY  bool
}

// NewRenderer creates a renderer over the given writers.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		styles: DefaultStyles(),
		isTTY:  isTerminal(out),
	}
}

// isTerminal reports whether w is an interactive terminal. termenv reports
// the Ascii profile for non-TTY writers, which is also what we want for
// dumb terminals: no styling either way.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return termenv.NewOutput(f).ColorProfile() != termenv.Ascii
}

// EffectiveMode resolves ModeAuto to text on a TTY and markdown otherwise.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// Writer returns the output writer for direct use (JSON encoders, tables).
func (r *Renderer) Writer() io.Writer { return r.out }

// ErrWriter returns the error writer.
func (r *Renderer) ErrWriter() io.Writer { return r.errOut }

// Styles returns the lipgloss style set used in text mode.
func (r *Renderer) Styles() *Styles { return r.styles }

// Println writes a line to the output writer.
func (r *Renderer) Println(s string) {
	_, _ = fmt.Fprintln(r.out, s)
}

// Printf writes formatted output.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// Header writes a section header, styled in text mode and as markdown
// otherwise.
func (r *Renderer) Header(level int, text string) {
	if r.EffectiveMode() == ModeText {
		style := r.styles.Header1
		if level > 1 {
			style = r.styles.Header2
		}
		r.Println(style.Render(text))
		return
	}
	r.Println(FormatHeader(level, text))
	r.Println("")
}

// FormatHeader renders a markdown header line.
func FormatHeader(level int, text string) string {
	prefix := ""
	for i := 0; i < level; i++ {
		prefix += "#"
	}
	return prefix + " " + text
}

// FormatKeyValue renders a markdown key/value bullet.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s**: %s", key, value)
}
