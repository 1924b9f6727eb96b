package alarmd

// InputPin is a digital input, true when the line is high.
type InputPin interface {
	Read() bool
}

// OutputPin is a digital output, driven high when on.
// Implementations must not block: failures are logged and dropped.
type OutputPin interface {
	Set(on bool)
}

// Link is the operator channel: bytes in, report text out.
//
// PollByte must not block. It returns the next pending byte, if any,
// leaving the rest for later calls. Write is best effort: a failed or
// partial write must not stall the caller.
type Link interface {
	PollByte() (byte, bool)
	Write(p []byte) (int, error)
}
