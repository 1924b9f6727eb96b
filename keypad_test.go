package alarmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type keypadRig struct {
	a, b, c, d, enter *SimPin
	incorrect, locked *SimPin
	alarmLED          *SimPin
	latch             *Latch
	pad               *Keypad
}

func newKeypadRig(t *testing.T, code Code) *keypadRig {
	t.Helper()
	r := &keypadRig{
		a:         &SimPin{},
		b:         &SimPin{},
		c:         &SimPin{},
		d:         &SimPin{},
		enter:     &SimPin{},
		incorrect: &SimPin{},
		locked:    &SimPin{},
		alarmLED:  &SimPin{},
	}
	r.latch = NewLatch(r.alarmLED)
	pad, err := NewKeypad(KeypadPins{
		A:         r.a,
		B:         r.b,
		C:         r.c,
		D:         r.d,
		Enter:     r.enter,
		Incorrect: r.incorrect,
		Locked:    r.locked,
	}, code)
	require.NoError(t, err)
	r.pad = pad
	return r
}

func (r *keypadRig) set(a, b, c, d, enter bool) {
	r.a.Set(a)
	r.b.Set(b)
	r.c.Set(c)
	r.d.Set(d)
	r.enter.Set(enter)
}

func TestKeypadDisarm(t *testing.T) {
	r := newKeypadRig(t, DefaultCode)
	r.latch.Refresh(Hazard{Gas: true})
	require.Equal(t, AlarmOn, r.latch.State())

	r.set(true, true, false, false, true)
	r.pad.Update(r.latch)

	require.Equal(t, AlarmOff, r.latch.State())
	require.False(t, r.alarmLED.Read())
	require.Equal(t, 0, r.pad.Attempts())
}

func TestKeypadWrongCode(t *testing.T) {
	r := newKeypadRig(t, DefaultCode)
	r.latch.Refresh(Hazard{OverTemp: true})

	r.set(true, false, false, false, true)
	r.pad.Update(r.latch)
	require.Equal(t, AlarmOn, r.latch.State())
	require.True(t, r.incorrect.Read())
	require.Equal(t, 1, r.pad.Attempts())

	// holding enter keeps the attempt from counting again
	r.pad.Update(r.latch)
	r.pad.Update(r.latch)
	require.Equal(t, 1, r.pad.Attempts())

	// all four buttons together clear the incorrect entry
	r.set(true, true, true, true, false)
	r.pad.Update(r.latch)
	require.False(t, r.incorrect.Read())

	r.set(true, true, false, false, true)
	r.pad.Update(r.latch)
	require.Equal(t, AlarmOff, r.latch.State())
	require.Equal(t, 0, r.pad.Attempts())
}

func TestKeypadLockout(t *testing.T) {
	r := newKeypadRig(t, DefaultCode)
	r.latch.Refresh(Hazard{Gas: true})

	for i := 0; i < 5; i++ {
		r.set(false, false, false, true, true)
		r.pad.Update(r.latch)
		r.set(true, true, true, true, false)
		r.pad.Update(r.latch)
	}
	require.True(t, r.pad.Locked())
	require.Equal(t, 5, r.pad.Attempts())

	// even the correct code is refused now
	r.set(true, true, false, false, true)
	r.pad.Update(r.latch)
	require.Equal(t, AlarmOn, r.latch.State())
	require.True(t, r.locked.Read())
	require.Equal(t, 5, r.pad.Attempts())
}

func TestKeypadIdleWhenAlarmOff(t *testing.T) {
	r := newKeypadRig(t, DefaultCode)

	r.set(true, false, true, false, true)
	r.pad.Update(r.latch)

	require.Equal(t, 0, r.pad.Attempts())
	require.False(t, r.incorrect.Read())
}

func TestKeypadCustomCode(t *testing.T) {
	r := newKeypadRig(t, Code{false, false, true, true})
	r.latch.Refresh(Hazard{Gas: true})

	r.set(false, false, true, true, true)
	r.pad.Update(r.latch)
	require.Equal(t, AlarmOff, r.latch.State())
}

func TestCodeString(t *testing.T) {
	require.Equal(t, "a+b", DefaultCode.String())
	require.Equal(t, "none", Code{}.String())
	require.Equal(t, "a+b+c+d", Code{true, true, true, true}.String())
	require.Equal(t, "c+d", Code{false, false, true, true}.String())
}

func TestNewKeypadValidation(t *testing.T) {
	_, err := NewKeypad(KeypadPins{}, DefaultCode)
	require.Error(t, err)

	_, err = NewKeypad(KeypadPins{
		A:     &SimPin{},
		B:     &SimPin{},
		C:     &SimPin{},
		D:     &SimPin{},
		Enter: &SimPin{},
	}, DefaultCode)
	require.Error(t, err)
}
