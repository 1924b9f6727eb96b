package alarmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLatch(t *testing.T) {
	led := &SimPin{}
	l := NewLatch(led)

	t.Run("starts off", func(t *testing.T) {
		l.Refresh(Hazard{})
		require.Equal(t, AlarmOff, l.State())
		require.False(t, led.Read())
	})

	t.Run("gas latches", func(t *testing.T) {
		l.Refresh(Hazard{Gas: true})
		require.Equal(t, AlarmOn, l.State())
		require.True(t, led.Read())
	})

	t.Run("holds after hazard clears", func(t *testing.T) {
		l.Refresh(Hazard{})
		require.Equal(t, AlarmOn, l.State())
		require.True(t, led.Read())
	})

	t.Run("disarm", func(t *testing.T) {
		l.Disarm()
		require.Equal(t, AlarmOff, l.State())
		require.False(t, led.Read())
	})

	t.Run("overtemp latches", func(t *testing.T) {
		l.Refresh(Hazard{OverTemp: true})
		require.Equal(t, AlarmOn, l.State())
		require.True(t, led.Read())
	})

	t.Run("relatches while hazard persists", func(t *testing.T) {
		l.Disarm()
		require.Equal(t, AlarmOff, l.State())
		l.Refresh(Hazard{OverTemp: true})
		require.Equal(t, AlarmOn, l.State())
		require.True(t, led.Read())
	})
}

func TestAlarmStateString(t *testing.T) {
	require.Equal(t, "OFF", AlarmOff.String())
	require.Equal(t, "ON", AlarmOn.String())
}
