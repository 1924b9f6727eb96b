package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/alarmd"
	"golang.org/x/exp/slices"
)

type Config struct {
	Device  string `env:"DEVICE"`
	Baud    int    `env:"BAUD"    envDefault:"115200"`
	Console string `env:"CONSOLE"`

	GasPin      string `env:"GAS_PIN"`
	OverTempPin string `env:"OVERTEMP_PIN"`
	AlarmPin    string `env:"ALARM_PIN"`

	KeypadPins   []string `env:"KEYPAD_PINS"`
	IncorrectPin string   `env:"INCORRECT_PIN"`
	LockedPin    string   `env:"LOCKED_PIN"`
	Code         []string `env:"CODE" envDefault:"a,b"`

	ReportEvery time.Duration `env:"REPORT_EVERY" envDefault:"5s"`
	Tick        time.Duration `env:"TICK"         envDefault:"100ms"`

	Simulate bool   `env:"SIMULATE"`
	Address  string `env:"LISTEN" envDefault:":8099"`
	Store    string `env:"STORE"  envDefault:"./db"`

	MQTTBroker string `env:"MQTT_BROKER"`
	MQTTTopic  string `env:"MQTT_TOPIC" envDefault:"alarmd"`
}

func (c Config) validate() error {
	if !c.Simulate {
		if c.GasPin == "" || c.OverTempPin == "" || c.AlarmPin == "" {
			return fmt.Errorf("need GAS_PIN, OVERTEMP_PIN, and ALARM_PIN outside simulation")
		}
		if n := len(c.KeypadPins); n != 0 && n != 5 {
			return fmt.Errorf("KEYPAD_PINS needs the 5 button pins (a, b, c, d, enter), got %d", n)
		}
		if c.Device == "" && c.Console == "" {
			return fmt.Errorf("need DEVICE or CONSOLE so someone can reach the monitor")
		}
	}
	return nil
}

var buttonNames = []string{"a", "b", "c", "d"}

func (c Config) keypadCode() (alarmd.Code, error) {
	var code alarmd.Code
	for _, name := range c.Code {
		i := slices.Index(buttonNames, strings.ToLower(strings.TrimSpace(name)))
		if i < 0 {
			return code, fmt.Errorf("unknown button in CODE: %q", name)
		}
		code[i] = true
	}
	if code == (alarmd.Code{}) {
		return code, fmt.Errorf("CODE needs at least one button")
	}
	return code, nil
}
