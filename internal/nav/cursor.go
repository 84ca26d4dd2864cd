// Package nav owns the walkthrough cursor: which step of the sequenced
// guide is selected and, within that step, which of its referenced parts.
// The cursor is an explicitly owned value threaded through the presentation
// layer; there is no ambient session state.
//
// Every transition is total. Step navigation wraps around instead of
// overflowing, part navigation is confined to the current step's bucket,
// and a step's part index is forced back to 0 whenever that step becomes
// current after a different step was current.
package nav

import "fmt"

// Entry describes one sequenced step as the cursor sees it: its identity
// and how many parts it references. The cursor never touches the data
// stores directly.
type Entry struct {
	ID    string
	Parts int
}

// Cursor tracks the current step index and a part index per step.
type Cursor struct {
	entries []Entry
	step    int
	lastKey string
	parts   map[string]int
}

// NewCursor creates a cursor over the sequenced step entries, positioned at
// the first step.
func NewCursor(entries []Entry) *Cursor {
	c := &Cursor{
		entries: entries,
		parts:   make(map[string]int),
	}
	c.lastKey = c.key(0)
	return c
}

// key identifies a step's part bucket. Steps are keyed by id; id-less steps
// fall back to their position so two adjacent anonymous steps still trigger
// the reset guard.
func (c *Cursor) key(i int) string {
	if i < 0 || i >= len(c.entries) {
		return ""
	}
	if id := c.entries[i].ID; id != "" {
		return id
	}
	return fmt.Sprintf("#%d", i)
}

// sync runs the transition guard: when the selected step differs from the
// previously selected one, the new step's part index is reset to 0 before
// any part navigation can run.
func (c *Cursor) sync() {
	k := c.key(c.step)
	if k != c.lastKey {
		c.parts[k] = 0
		c.lastKey = k
	}
}

// Len returns the number of steps under the cursor.
func (c *Cursor) Len() int { return len(c.entries) }

// StepIndex returns the current step index, 0 when there are no steps.
func (c *Cursor) StepIndex() int { return c.step }

// PartCount returns the number of parts referenced by the current step.
func (c *Cursor) PartCount() int {
	if len(c.entries) == 0 {
		return 0
	}
	return c.entries[c.step].Parts
}

// PartIndex returns the part index for the current step.
func (c *Cursor) PartIndex() int {
	if len(c.entries) == 0 {
		return 0
	}
	return c.parts[c.key(c.step)]
}

// NextStep advances to the next step, wrapping past the end. No-op when
// there are no steps.
func (c *Cursor) NextStep() {
	if len(c.entries) == 0 {
		return
	}
	c.step = (c.step + 1) % len(c.entries)
	c.sync()
}

// PrevStep retreats to the previous step, wrapping past the start. No-op
// when there are no steps.
func (c *Cursor) PrevStep() {
	if len(c.entries) == 0 {
		return
	}
	c.step = (c.step - 1 + len(c.entries)) % len(c.entries)
	c.sync()
}

// JumpTo selects the step at index i directly. Out-of-range indices are
// ignored.
func (c *Cursor) JumpTo(i int) {
	if i < 0 || i >= len(c.entries) {
		return
	}
	c.step = i
	c.sync()
}

// NextPart advances the current step's part index, wrapping. Part
// navigation only exists when the step references two or more parts;
// otherwise the sole part (if any) is on display and this is a no-op.
func (c *Cursor) NextPart() {
	n := c.PartCount()
	if n < 2 {
		return
	}
	k := c.key(c.step)
	c.parts[k] = (c.parts[k] + 1) % n
}

// PrevPart retreats the current step's part index, wrapping.
func (c *Cursor) PrevPart() {
	n := c.PartCount()
	if n < 2 {
		return
	}
	k := c.key(c.step)
	c.parts[k] = (c.parts[k] - 1 + n) % n
}
