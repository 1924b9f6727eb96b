package hal

import (
	"fmt"

	"go.bug.st/serial"
)

// Serial is the operator UART. Reads block until at least one byte
// arrives, which is what the console pump wants.
type Serial struct {
	port   serial.Port
	device string
}

func OpenSerial(device string, baud int) (*Serial, error) {
	port, err := serial.Open(device, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", device, err)
	}
	log.Info("serial open", "device", device, "baud", baud)
	return &Serial{port: port, device: device}, nil
}

func (s *Serial) Read(p []byte) (int, error) {
	return s.port.Read(p)
}

func (s *Serial) Write(p []byte) (int, error) {
	return s.port.Write(p)
}

func (s *Serial) Close() error {
	return s.port.Close()
}

func (s *Serial) String() string {
	return s.device
}
