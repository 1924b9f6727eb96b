package alarmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	require.Equal(t, CmdQueryAlarm, ParseCommand('1'))
	require.Equal(t, CmdQueryGas, ParseCommand('2'))
	require.Equal(t, CmdQueryTemp, ParseCommand('3'))

	for _, b := range []byte{'0', '4', 'a', '?', ' ', '\r', '\n', 0x00, 0xff} {
		require.Equal(t, CmdUnknown, ParseCommand(b), "byte %q", b)
	}
}

func TestCommandString(t *testing.T) {
	require.Equal(t, "alarm-status", CmdQueryAlarm.String())
	require.Equal(t, "gas-status", CmdQueryGas.String())
	require.Equal(t, "temp-status", CmdQueryTemp.String())
	require.Equal(t, "unknown", CmdUnknown.String())
}
