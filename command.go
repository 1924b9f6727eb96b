package alarmd

type Command byte

const (
	CmdUnknown Command = iota
	CmdQueryAlarm
	CmdQueryGas
	CmdQueryTemp
)

func (c Command) String() string {
	switch c {
	case CmdQueryAlarm:
		return "alarm-status"
	case CmdQueryGas:
		return "gas-status"
	case CmdQueryTemp:
		return "temp-status"
	default:
		return "unknown"
	}
}

// ParseCommand maps a received byte to a command. Anything outside the
// menu is CmdUnknown, which gets answered with the help text.
func ParseCommand(b byte) Command {
	switch b {
	case '1':
		return CmdQueryAlarm
	case '2':
		return CmdQueryGas
	case '3':
		return CmdQueryTemp
	default:
		return CmdUnknown
	}
}
