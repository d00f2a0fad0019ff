// Package keypress resolves key events into named commands and runs them on
// whichever command target currently has focus.
//
// A key map entry binds a chord sequence ("ctrl+w k") to a command, optionally
// restricted to a set of modes and guarded by a "when" expression. The
// expression is a disjunction ("||") of conjunctions ("&&") of condition
// tokens, each optionally negated with "!". Tokens are answered by the focus
// target itself, so the same map serves every widget.
package keypress

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Akashdeep-Patra/scmpanel/internal/command"
	"github.com/Akashdeep-Patra/scmpanel/internal/event"
	tea "github.com/charmbracelet/bubbletea"
)

// Mode is the editing mode a focus target reports.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeVisual
	ModeTerminal
)

func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "insert"
	case ModeVisual:
		return "visual"
	case ModeTerminal:
		return "terminal"
	default:
		return "normal"
	}
}

// ParseMode accepts both the long names and their first letter.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n", "normal":
		return ModeNormal, nil
	case "i", "insert":
		return ModeInsert, nil
	case "v", "visual":
		return ModeVisual, nil
	case "t", "terminal":
		return ModeTerminal, nil
	}
	return ModeNormal, fmt.Errorf("unknown mode %q", s)
}

// Focus is a command target: anything that can answer mode and condition
// queries and execute named commands.
type Focus interface {
	Mode() Mode
	CheckCondition(condition string) bool
	// RunCommand executes cmd. count is the numeric prefix typed before the
	// key, or 0 when none was given.
	RunCommand(ctx *event.Ctx, cmd command.Command, count int) command.Executed
	ReceiveChar(ctx *event.Ctx, c string)
}

// KeyMap binds a chord sequence to a command.
type KeyMap struct {
	Keys    []string
	Modes   []Mode
	When    string
	Command command.Command
}

// Option customises a KeyMap built with Bind.
type Option func(*KeyMap)

// InModes restricts the binding to the given modes.
func InModes(modes ...Mode) Option {
	return func(k *KeyMap) { k.Modes = append(k.Modes, modes...) }
}

// When guards the binding with a condition expression.
func When(expr string) Option {
	return func(k *KeyMap) { k.When = expr }
}

// Bind builds a KeyMap from a space-separated chord sequence. The token
// "space" stands for the space bar.
func Bind(keys string, cmd command.Command, opts ...Option) KeyMap {
	km := KeyMap{Keys: ParseKeys(keys), Command: cmd}
	for _, opt := range opts {
		opt(&km)
	}
	return km
}

// ParseKeys splits a chord sequence into the key strings Bubble Tea reports.
func ParseKeys(keys string) []string {
	fields := strings.Fields(keys)
	for i, f := range fields {
		if f == "space" {
			fields[i] = " "
		}
	}
	return fields
}

// Label renders the chord sequence for help screens.
func (k KeyMap) Label() string {
	parts := make([]string, len(k.Keys))
	for i, key := range k.Keys {
		if key == " " {
			key = "space"
		}
		parts[i] = key
	}
	return strings.Join(parts, " ")
}

func (k KeyMap) inMode(m Mode) bool {
	if len(k.Modes) == 0 {
		return true
	}
	for _, mm := range k.Modes {
		if mm == m {
			return true
		}
	}
	return false
}

// CheckWhen evaluates a condition expression against focus.
func CheckWhen(expr string, focus Focus) bool {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return true
	}
	for _, alt := range strings.Split(expr, "||") {
		if allTrue(alt, focus) {
			return true
		}
	}
	return false
}

func allTrue(conj string, focus Focus) bool {
	for _, term := range strings.Split(conj, "&&") {
		term = strings.TrimSpace(term)
		negate := strings.HasPrefix(term, "!")
		term = strings.TrimSpace(strings.TrimPrefix(term, "!"))
		if focus.CheckCondition(term) == negate {
			return false
		}
	}
	return true
}

// ── Dispatcher ──────────────────────────────────────────────────────────────

// Dispatcher holds the key maps and the state of a partially typed chord.
type Dispatcher struct {
	keymaps []KeyMap
	pending []string
	count   string
}

// NewDispatcher creates a dispatcher. Later entries take precedence over
// earlier ones, so user key maps are appended after the defaults.
func NewDispatcher(keymaps []KeyMap) *Dispatcher {
	return &Dispatcher{keymaps: keymaps}
}

// KeyMaps returns the bindings in precedence order, lowest first.
func (d *Dispatcher) KeyMaps() []KeyMap { return d.keymaps }

// Pending returns the keys of an unfinished chord.
func (d *Dispatcher) Pending() []string { return d.pending }

// Count returns the numeric prefix typed so far, or 0.
func (d *Dispatcher) Count() int {
	n, _ := strconv.Atoi(d.count)
	return n
}

// Reset drops any pending chord and count.
func (d *Dispatcher) Reset() {
	d.pending = nil
	d.count = ""
}

// KeyDown resolves key against the key maps and runs the resulting command
// on focus. It reports whether the key was consumed.
func (d *Dispatcher) KeyDown(ctx *event.Ctx, key tea.KeyMsg, focus Focus) bool {
	k := key.String()
	mode := focus.Mode()

	if mode == ModeNormal && len(d.pending) == 0 && d.isCountDigit(k) {
		d.count += k
		return true
	}

	seq := append(append([]string(nil), d.pending...), k)
	full, prefix := d.match(seq, mode, focus)

	for i := len(full) - 1; i >= 0; i-- {
		count := d.Count()
		if focus.RunCommand(ctx, full[i].Command, count) == command.Yes {
			d.Reset()
			return true
		}
	}
	if prefix {
		d.pending = seq
		return true
	}

	retry := len(d.pending) > 0
	d.Reset()
	if retry {
		// The chord broke off; give the last key a chance on its own.
		return d.KeyDown(ctx, key, focus)
	}

	if mode == ModeInsert {
		if c, ok := printable(key); ok {
			focus.ReceiveChar(ctx, c)
			return true
		}
	}
	return false
}

func (d *Dispatcher) isCountDigit(k string) bool {
	if len(k) != 1 || k[0] < '0' || k[0] > '9' {
		return false
	}
	return k != "0" || d.count != ""
}

// match returns the bindings whose keys equal seq, and whether any binding
// has seq as a strict prefix.
func (d *Dispatcher) match(seq []string, mode Mode, focus Focus) (full []KeyMap, prefix bool) {
	for _, km := range d.keymaps {
		if len(km.Keys) < len(seq) || !km.inMode(mode) {
			continue
		}
		if !hasPrefix(km.Keys, seq) || !CheckWhen(km.When, focus) {
			continue
		}
		if len(km.Keys) == len(seq) {
			full = append(full, km)
		} else {
			prefix = true
		}
	}
	return full, prefix
}

func hasPrefix(keys, seq []string) bool {
	for i := range seq {
		if keys[i] != seq[i] {
			return false
		}
	}
	return true
}

func printable(key tea.KeyMsg) (string, bool) {
	switch key.Type {
	case tea.KeySpace:
		return " ", true
	case tea.KeyRunes:
		if key.Alt || len(key.Runes) == 0 {
			return "", false
		}
		return string(key.Runes), true
	}
	return "", false
}
