package alarmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func TestStopwatch(t *testing.T) {
	clk := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	sw := newStopwatch(clk.Now)

	require.Equal(t, time.Duration(0), sw.Elapsed())

	clk.Advance(4999 * time.Millisecond)
	require.Equal(t, 4999*time.Millisecond, sw.Elapsed())
	require.Less(t, sw.Elapsed(), 5*time.Second)

	clk.Advance(time.Millisecond)
	require.Equal(t, 5*time.Second, sw.Elapsed())

	sw.Reset()
	require.Equal(t, time.Duration(0), sw.Elapsed())

	clk.Advance(7 * time.Second)
	require.Equal(t, 7*time.Second, sw.Elapsed())
}
