package alarmd

// Hazard is one sampling of both danger sensors.
type Hazard struct {
	Gas      bool
	OverTemp bool
}

func (h Hazard) Any() bool {
	return h.Gas || h.OverTemp
}

func (h Hazard) GasString() string {
	if h.Gas {
		return "Detected"
	}
	return "Normal"
}

func (h Hazard) TempString() string {
	if h.OverTemp {
		return "High"
	}
	return "Normal"
}

type AlarmState byte

const (
	AlarmOff AlarmState = 0x00
	AlarmOn  AlarmState = 0x01
)

func (s AlarmState) String() string {
	switch s {
	case AlarmOn:
		return "ON"
	default:
		return "OFF"
	}
}
