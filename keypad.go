package alarmd

import (
	"fmt"
	"strings"
)

// maxCodeAttempts is how many wrong codes lock the keypad until the
// daemon restarts.
const maxCodeAttempts = 5

// Code is the required state of buttons A through D when enter is
// pressed.
type Code [4]bool

var DefaultCode = Code{true, true, false, false}

func (c Code) String() string {
	names := []string{"a", "b", "c", "d"}
	var held []string
	for i, on := range c {
		if on {
			held = append(held, names[i])
		}
	}
	if len(held) == 0 {
		return "none"
	}
	return strings.Join(held, "+")
}

type KeypadPins struct {
	A, B, C, D, Enter InputPin

	Incorrect OutputPin
	Locked    OutputPin
}

// Keypad reads the deactivation buttons and disarms the latch on a
// correct code. A wrong entry lights the incorrect indicator, which
// inhibits further attempts until all four buttons are held together.
type Keypad struct {
	pins      KeypadPins
	code      Code
	incorrect bool
	attempts  int
}

func NewKeypad(pins KeypadPins, code Code) (*Keypad, error) {
	for _, in := range []InputPin{pins.A, pins.B, pins.C, pins.D, pins.Enter} {
		if in == nil {
			return nil, fmt.Errorf("keypad: missing button pin")
		}
	}
	if pins.Incorrect == nil || pins.Locked == nil {
		return nil, fmt.Errorf("keypad: missing indicator pin")
	}
	return &Keypad{pins: pins, code: code}, nil
}

// Update runs one scan of the keypad against the latch.
func (k *Keypad) Update(l *Latch) {
	if k.Locked() {
		k.pins.Locked.Set(true)
		return
	}

	a := k.pins.A.Read()
	b := k.pins.B.Read()
	c := k.pins.C.Read()
	d := k.pins.D.Read()
	enter := k.pins.Enter.Read()

	// holding all four buttons clears a previous incorrect entry
	if a && b && c && d && !enter {
		k.incorrect = false
		k.pins.Incorrect.Set(false)
	}

	if enter && !k.incorrect && l.State() == AlarmOn {
		if (Code{a, b, c, d}) == k.code {
			l.Disarm()
			k.attempts = 0
			return
		}
		k.incorrect = true
		k.pins.Incorrect.Set(true)
		k.attempts++
		if k.Locked() {
			log.Error("keypad locked after too many incorrect codes", "attempts", k.attempts)
			return
		}
		log.Warn("incorrect code entered", "attempts", k.attempts)
	}
}

func (k *Keypad) Attempts() int {
	return k.attempts
}

func (k *Keypad) Locked() bool {
	return k.attempts >= maxCodeAttempts
}
