// Package hal opens the real hardware: GPIO pins by name and the
// serial port. Pin names are whatever the host registry knows, e.g.
// GPIO17 on a Raspberry Pi.
package hal

import (
	"fmt"
	"os"
	"sync"
	"time"

	logp "github.com/charmbracelet/log"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

var log = logp.NewWithOptions(os.Stderr, logp.Options{
	ReportTimestamp: true,
	TimeFormat:      time.Kitchen,
	Prefix:          "hal",
})

var (
	initOnce sync.Once
	initErr  error
)

// Init loads the host drivers. Safe to call more than once.
func Init() error {
	initOnce.Do(func() {
		_, initErr = host.Init()
	})
	return initErr
}

// Input is a digital input with the pull-down on, so a floating line
// reads low and a pressed button or firing sensor reads high.
type Input struct {
	pin gpio.PinIO
}

func OpenInput(name string) (*Input, error) {
	pin, err := open(name)
	if err != nil {
		return nil, err
	}
	if err := pin.In(gpio.PullDown, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("could not set %s as input: %w", name, err)
	}
	return &Input{pin: pin}, nil
}

func (i *Input) Read() bool {
	return i.pin.Read() == gpio.High
}

// Output is a digital output, driven low at open.
type Output struct {
	pin gpio.PinIO
}

func OpenOutput(name string) (*Output, error) {
	pin, err := open(name)
	if err != nil {
		return nil, err
	}
	if err := pin.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("could not set %s as output: %w", name, err)
	}
	return &Output{pin: pin}, nil
}

func (o *Output) Set(on bool) {
	lvl := gpio.Low
	if on {
		lvl = gpio.High
	}
	if err := o.pin.Out(lvl); err != nil {
		log.Error("could not drive pin", "pin", o.pin, "err", err)
	}
}

func open(name string) (gpio.PinIO, error) {
	if err := Init(); err != nil {
		return nil, fmt.Errorf("could not init gpio host: %w", err)
	}
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("no such pin: %s", name)
	}
	return pin, nil
}
