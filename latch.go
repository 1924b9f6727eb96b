package alarmd

// Latch holds the alarm state. Any hazard turns it on, and it stays on
// until Disarm, no matter what the sensors do afterwards.
type Latch struct {
	state AlarmState
	out   OutputPin
}

func NewLatch(out OutputPin) *Latch {
	return &Latch{out: out}
}

// Refresh samples the given hazard into the latch and mirrors the
// current state to the output pin.
func (l *Latch) Refresh(h Hazard) {
	if h.Any() && l.state == AlarmOff {
		l.state = AlarmOn
		log.Warn("alarm latched", "gas", h.Gas, "overtemp", h.OverTemp)
	}
	l.out.Set(l.state == AlarmOn)
}

// Disarm turns the alarm off. If the hazard persists, the next Refresh
// latches it right back on.
func (l *Latch) Disarm() {
	if l.state == AlarmOn {
		log.Info("alarm deactivated")
	}
	l.state = AlarmOff
	l.out.Set(false)
}

func (l *Latch) State() AlarmState {
	return l.state
}
