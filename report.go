package alarmd

import "fmt"

// Reply texts are a fixed protocol: CRLF line endings, exact wording.
// Terminals and scripts on the other end match on these.
const (
	msgAlarmOn  = "The alarm is activated\r\n"
	msgAlarmOff = "The alarm is not activated\r\n"
	msgGasHigh  = "Gas detected!\r\n"
	msgGasNone  = "No gas detected\r\n"
	msgTempHigh = "Over temperature detected!\r\n"
	msgTempNorm = "Temperature normal\r\n"

	warnGas  = "[WARNING] Gas levels unsafe!\r\n"
	warnTemp = "[WARNING] Temperature too high!\r\n"

	msgHelp = "Available commands:\r\n" +
		"Press '1' to get the alarm state\r\n" +
		"Press '2' to check gas status\r\n" +
		"Press '3' to check temperature status\r\n\r\n"

	reportFormat = "\r\n[STATUS REPORT]\r\nAlarm: %s\r\nGas: %s\r\nTemperature: %s\r\n\r\n"
)

// Reporter writes protocol text to the link. Writes are fire and
// forget: a failed write is counted and dropped, never retried.
type Reporter struct {
	link    Link
	dropped uint64
}

func NewReporter(link Link) *Reporter {
	return &Reporter{link: link}
}

// Answer replies to a single command. Unknown commands get the help
// text, so a lost operator can always find the menu again.
func (r *Reporter) Answer(cmd Command, alarm AlarmState, h Hazard) {
	switch cmd {
	case CmdQueryAlarm:
		if alarm == AlarmOn {
			r.send(msgAlarmOn)
			return
		}
		r.send(msgAlarmOff)
	case CmdQueryGas:
		if h.Gas {
			r.send(msgGasHigh)
			return
		}
		r.send(msgGasNone)
	case CmdQueryTemp:
		if h.OverTemp {
			r.send(msgTempHigh)
			return
		}
		r.send(msgTempNorm)
	default:
		r.Help()
	}
}

func (r *Reporter) Help() {
	r.send(msgHelp)
}

// Report writes the periodic status block.
func (r *Reporter) Report(alarm AlarmState, h Hazard) {
	r.send(fmt.Sprintf(reportFormat, alarm, h.GasString(), h.TempString()))
}

// Warnings writes one line per active hazard, gas first.
func (r *Reporter) Warnings(h Hazard) {
	if h.Gas {
		r.send(warnGas)
	}
	if h.OverTemp {
		r.send(warnTemp)
	}
}

func (r *Reporter) Dropped() uint64 {
	return r.dropped
}

func (r *Reporter) send(msg string) {
	if _, err := r.link.Write([]byte(msg)); err != nil {
		r.dropped++
		log.Debug("dropped outbound message", "size", len(msg), "err", err)
	}
}
