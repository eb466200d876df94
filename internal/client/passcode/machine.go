// Package passcode implements the six-slot digit entry used by the login view.
//
// Machine is a pure state machine: every operation returns the effects the
// caller has to apply (move focus, submit, show or clear the error, store the
// label, navigate). Controller applies them against real collaborators.
package passcode

import (
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/passgate/internal/common"
)

// Length is the number of digit slots.
const Length = common.PasscodeLength

type State int

const (
	Idle State = iota
	Submitting
	Rejected
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Rejected:
		return "rejected"
	case Done:
		return "done"
	}
	return "unknown"
}

type EffectKind int

const (
	FocusSlot EffectKind = iota
	Submit
	ShowError
	ClearError
	StoreLabel
	Navigate
)

// Dashboard is the navigation target after a successful login.
const Dashboard = "dashboard"

// Effect is a side effect requested by the machine. Only the field relevant
// to Kind is set.
type Effect struct {
	Kind     EffectKind
	Slot     int
	Passcode string
	Label    string
	Target   string
}

type Machine struct {
	state        State
	focus        int
	slots        [Length]string
	errorVisible bool
}

func NewMachine() *Machine {
	return &Machine{state: Idle}
}

func (m *Machine) State() State       { return m.state }
func (m *Machine) Focus() int         { return m.focus }
func (m *Machine) ErrorVisible() bool { return m.errorVisible }

// Slots returns a copy of the slot contents.
func (m *Machine) Slots() [Length]string { return m.slots }

// Input records value typed into slot.
func (m *Machine) Input(slot int, value string) []Effect {
	if slot < 0 || slot >= Length || m.state == Submitting || m.state == Done {
		return nil
	}

	// the slot keeps at most one character and only if it is a digit
	first, _ := utf8.DecodeRuneInString(value)
	if value != "" && isDigit(first) {
		m.slots[slot] = string(first)
	} else {
		m.slots[slot] = ""
	}

	if utf8.RuneCountInString(value) != 1 || !isDigit(first) {
		return nil
	}

	var effects []Effect
	if m.state == Rejected {
		m.state = Idle
		m.errorVisible = false
		effects = append(effects, Effect{Kind: ClearError})
	}
	m.focus = slot

	if slot < Length-1 {
		m.focus = slot + 1
		return append(effects, Effect{Kind: FocusSlot, Slot: m.focus})
	}

	if empty := m.firstEmpty(); empty >= 0 {
		m.focus = empty
		return append(effects, Effect{Kind: FocusSlot, Slot: empty})
	}

	code := strings.Join(m.slots[:], "")
	m.slots = [Length]string{}
	m.state = Submitting
	return append(effects, Effect{Kind: Submit, Passcode: code})
}

// Backspace moves focus back one slot when the focused slot is empty. It
// never clears a slot.
func (m *Machine) Backspace() []Effect {
	if m.state == Submitting || m.state == Done {
		return nil
	}
	if m.slots[m.focus] != "" || m.focus == 0 {
		return nil
	}
	m.focus--
	return []Effect{{Kind: FocusSlot, Slot: m.focus}}
}

// Resolve reports the outcome of the submitted passcode. The slots were
// already cleared when the passcode left them.
func (m *Machine) Resolve(name string, err error) []Effect {
	if m.state != Submitting {
		return nil
	}
	if err != nil {
		m.state = Rejected
		m.focus = 0
		m.errorVisible = true
		return []Effect{{Kind: ShowError}, {Kind: FocusSlot, Slot: 0}}
	}

	m.state = Done
	return []Effect{{Kind: StoreLabel, Label: name}, {Kind: Navigate, Target: Dashboard}}
}

func (m *Machine) firstEmpty() int {
	for i, s := range m.slots {
		if s == "" {
			return i
		}
	}
	return -1
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
