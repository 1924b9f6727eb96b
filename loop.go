package alarmd

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	logp "github.com/charmbracelet/log"
)

var log = logp.NewWithOptions(os.Stderr, logp.Options{
	ReportTimestamp: true,
	TimeFormat:      time.Kitchen,
	Prefix:          "alarmd",
})

const (
	// DefaultPeriod is how often the status report goes out.
	DefaultPeriod = 5 * time.Second

	// DefaultTick is the pause between iterations. It bounds both CPU
	// use and the worst case command latency.
	DefaultTick = 100 * time.Millisecond
)

type Options struct {
	Gas      InputPin
	OverTemp InputPin
	Alarm    OutputPin
	Link     Link

	// Keypad is optional. Without one, deactivation only happens
	// through RequestDisarm.
	Keypad *Keypad

	Period time.Duration
	Tick   time.Duration
}

// Snapshot is a consistent view of the monitor taken at the end of an
// iteration. Safe to read from any goroutine.
type Snapshot struct {
	Time     time.Time
	Alarm    AlarmState
	Gas      bool
	OverTemp bool

	Iterations uint64
	Reports    uint64
	Warnings   uint64
	Commands   uint64
	Unknown    uint64
	Dropped    uint64

	KeypadAttempts int
	KeypadLocked   bool
}

// Monitor runs the safety loop: sample sensors, latch the alarm,
// answer commands, report status, warn while hazards hold.
//
// All state is owned by the loop goroutine. Other goroutines interact
// only through RequestDisarm and Snapshot.
type Monitor struct {
	gas      InputPin
	overTemp InputPin
	latch    *Latch
	keypad   *Keypad
	link     Link
	rep      *Reporter
	clock    *Stopwatch
	period   time.Duration
	tick     time.Duration
	now      func() time.Time

	disarm atomic.Bool
	snap   atomic.Pointer[Snapshot]

	iterations uint64
	reports    uint64
	warnings   uint64
	commands   uint64
	unknown    uint64
}

func New(opts Options) (*Monitor, error) {
	if opts.Gas == nil || opts.OverTemp == nil {
		return nil, fmt.Errorf("monitor: missing sensor pin")
	}
	if opts.Alarm == nil {
		return nil, fmt.Errorf("monitor: missing alarm pin")
	}
	if opts.Link == nil {
		return nil, fmt.Errorf("monitor: missing link")
	}
	if opts.Period <= 0 {
		opts.Period = DefaultPeriod
	}
	if opts.Tick <= 0 {
		opts.Tick = DefaultTick
	}
	m := &Monitor{
		gas:      opts.Gas,
		overTemp: opts.OverTemp,
		latch:    NewLatch(opts.Alarm),
		keypad:   opts.Keypad,
		link:     opts.Link,
		rep:      NewReporter(opts.Link),
		clock:    NewStopwatch(),
		period:   opts.Period,
		tick:     opts.Tick,
		now:      time.Now,
	}
	m.publish(Hazard{})
	return m, nil
}

// RequestDisarm asks the loop to deactivate the alarm on its next
// iteration. Callable from any goroutine.
func (m *Monitor) RequestDisarm() {
	m.disarm.Store(true)
}

// Snapshot returns the state as of the last finished iteration.
func (m *Monitor) Snapshot() Snapshot {
	return *m.snap.Load()
}

// Tick runs exactly one iteration, minus the pause.
func (m *Monitor) Tick() {
	h := Hazard{Gas: m.gas.Read(), OverTemp: m.overTemp.Read()}
	m.latch.Refresh(h)

	if m.disarm.Swap(false) {
		m.latch.Disarm()
	}
	if m.keypad != nil {
		m.keypad.Update(m.latch)
	}

	if b, ok := m.link.PollByte(); ok {
		cmd := ParseCommand(b)
		m.commands++
		if cmd == CmdUnknown {
			m.unknown++
			log.Debug("unknown command", "byte", fmt.Sprintf("%q", b))
		} else {
			log.Debug("command received", "cmd", cmd)
		}
		m.rep.Answer(cmd, m.latch.State(), h)
	}

	// Late reports are fine, early ones are not: the clock only resets
	// after a report actually went out, so slow iterations drift the
	// schedule instead of shortening it.
	if m.clock.Elapsed() >= m.period {
		m.rep.Report(m.latch.State(), h)
		m.clock.Reset()
		m.reports++
	}

	m.rep.Warnings(h)
	if h.Gas {
		m.warnings++
	}
	if h.OverTemp {
		m.warnings++
	}

	m.iterations++
	m.publish(h)
}

// Run iterates until the context is done.
func (m *Monitor) Run(ctx context.Context) error {
	log.Info("monitor running", "period", m.period, "tick", m.tick)
	for {
		m.Tick()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.tick):
		}
	}
}

func (m *Monitor) publish(h Hazard) {
	s := &Snapshot{
		Time:       m.now(),
		Alarm:      m.latch.State(),
		Gas:        h.Gas,
		OverTemp:   h.OverTemp,
		Iterations: m.iterations,
		Reports:    m.reports,
		Warnings:   m.warnings,
		Commands:   m.commands,
		Unknown:    m.unknown,
		Dropped:    m.rep.Dropped(),
	}
	if m.keypad != nil {
		s.KeypadAttempts = m.keypad.Attempts()
		s.KeypadLocked = m.keypad.Locked()
	}
	m.snap.Store(s)
}
