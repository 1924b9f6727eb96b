package alarmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnswer(t *testing.T) {
	link := &SimLink{}
	rep := NewReporter(link)

	t.Run("alarm on", func(t *testing.T) {
		rep.Answer(CmdQueryAlarm, AlarmOn, Hazard{})
		require.Equal(t, "The alarm is activated\r\n", link.Take())
	})

	t.Run("alarm off", func(t *testing.T) {
		rep.Answer(CmdQueryAlarm, AlarmOff, Hazard{})
		require.Equal(t, "The alarm is not activated\r\n", link.Take())
	})

	t.Run("gas detected", func(t *testing.T) {
		rep.Answer(CmdQueryGas, AlarmOn, Hazard{Gas: true})
		require.Equal(t, "Gas detected!\r\n", link.Take())
	})

	t.Run("no gas", func(t *testing.T) {
		rep.Answer(CmdQueryGas, AlarmOff, Hazard{})
		require.Equal(t, "No gas detected\r\n", link.Take())
	})

	t.Run("over temperature", func(t *testing.T) {
		rep.Answer(CmdQueryTemp, AlarmOn, Hazard{OverTemp: true})
		require.Equal(t, "Over temperature detected!\r\n", link.Take())
	})

	t.Run("temperature normal", func(t *testing.T) {
		rep.Answer(CmdQueryTemp, AlarmOff, Hazard{})
		require.Equal(t, "Temperature normal\r\n", link.Take())
	})

	t.Run("unknown gets help", func(t *testing.T) {
		rep.Answer(CmdUnknown, AlarmOn, Hazard{Gas: true, OverTemp: true})
		require.Equal(t, "Available commands:\r\n"+
			"Press '1' to get the alarm state\r\n"+
			"Press '2' to check gas status\r\n"+
			"Press '3' to check temperature status\r\n\r\n", link.Take())
	})
}

func TestHelpIdempotent(t *testing.T) {
	link := &SimLink{}
	rep := NewReporter(link)

	rep.Help()
	first := link.Take()
	rep.Help()
	require.Equal(t, first, link.Take())
}

func TestReport(t *testing.T) {
	link := &SimLink{}
	rep := NewReporter(link)

	t.Run("all quiet", func(t *testing.T) {
		rep.Report(AlarmOff, Hazard{})
		require.Equal(t, "\r\n[STATUS REPORT]\r\n"+
			"Alarm: OFF\r\n"+
			"Gas: Normal\r\n"+
			"Temperature: Normal\r\n\r\n", link.Take())
	})

	t.Run("everything firing", func(t *testing.T) {
		rep.Report(AlarmOn, Hazard{Gas: true, OverTemp: true})
		require.Equal(t, "\r\n[STATUS REPORT]\r\n"+
			"Alarm: ON\r\n"+
			"Gas: Detected\r\n"+
			"Temperature: High\r\n\r\n", link.Take())
	})

	t.Run("latched after hazard cleared", func(t *testing.T) {
		rep.Report(AlarmOn, Hazard{})
		require.Equal(t, "\r\n[STATUS REPORT]\r\n"+
			"Alarm: ON\r\n"+
			"Gas: Normal\r\n"+
			"Temperature: Normal\r\n\r\n", link.Take())
	})
}

func TestWarnings(t *testing.T) {
	link := &SimLink{}
	rep := NewReporter(link)

	t.Run("none", func(t *testing.T) {
		rep.Warnings(Hazard{})
		require.Empty(t, link.Take())
	})

	t.Run("gas only", func(t *testing.T) {
		rep.Warnings(Hazard{Gas: true})
		require.Equal(t, "[WARNING] Gas levels unsafe!\r\n", link.Take())
	})

	t.Run("temperature only", func(t *testing.T) {
		rep.Warnings(Hazard{OverTemp: true})
		require.Equal(t, "[WARNING] Temperature too high!\r\n", link.Take())
	})

	t.Run("both, gas first", func(t *testing.T) {
		rep.Warnings(Hazard{Gas: true, OverTemp: true})
		require.Equal(t, "[WARNING] Gas levels unsafe!\r\n[WARNING] Temperature too high!\r\n", link.Take())
	})
}

func TestDroppedWrites(t *testing.T) {
	link := &SimLink{}
	rep := NewReporter(link)

	link.FailWrites(true)
	rep.Help()
	rep.Warnings(Hazard{Gas: true})
	require.Empty(t, link.Take())
	require.Equal(t, uint64(2), rep.Dropped())

	link.FailWrites(false)
	rep.Warnings(Hazard{Gas: true})
	require.Equal(t, "[WARNING] Gas levels unsafe!\r\n", link.Take())
	require.Equal(t, uint64(2), rep.Dropped())
}
