package main

import (
	"fmt"
	"net/http"

	"github.com/brutella/hap"
	"github.com/caarlos0/alarmd"
)

// simRig replaces the GPIO rig with in-memory pins so the whole thing
// runs on a laptop: hazards and buttons get toggled over HTTP.
type simRig struct {
	gas, overTemp, alarm *alarmd.SimPin
	a, b, c, d, enter    *alarmd.SimPin
	incorrect, locked    *alarmd.SimPin
}

func newSimRig() *simRig {
	return &simRig{
		gas:       &alarmd.SimPin{},
		overTemp:  &alarmd.SimPin{},
		alarm:     &alarmd.SimPin{},
		a:         &alarmd.SimPin{},
		b:         &alarmd.SimPin{},
		c:         &alarmd.SimPin{},
		d:         &alarmd.SimPin{},
		enter:     &alarmd.SimPin{},
		incorrect: &alarmd.SimPin{},
		locked:    &alarmd.SimPin{},
	}
}

func (r *simRig) keypad(code alarmd.Code) (*alarmd.Keypad, error) {
	return alarmd.NewKeypad(alarmd.KeypadPins{
		A:         r.a,
		B:         r.b,
		C:         r.c,
		D:         r.d,
		Enter:     r.enter,
		Incorrect: r.incorrect,
		Locked:    r.locked,
	}, code)
}

func (r *simRig) register(mux hap.ServeMux, mon *alarmd.Monitor) {
	mux.HandleFunc("/sim/gas", r.toggle("gas", r.gas))
	mux.HandleFunc("/sim/overtemp", r.toggle("overtemp", r.overTemp))
	mux.HandleFunc("/sim/button/a", r.toggle("a", r.a))
	mux.HandleFunc("/sim/button/b", r.toggle("b", r.b))
	mux.HandleFunc("/sim/button/c", r.toggle("c", r.c))
	mux.HandleFunc("/sim/button/d", r.toggle("d", r.d))
	mux.HandleFunc("/sim/button/enter", r.toggle("enter", r.enter))
	mux.HandleFunc("/sim/disarm", disarmHandler(mon))
}

func (r *simRig) toggle(name string, pin *alarmd.SimPin) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		on := pin.Toggle()
		log.Info("sim toggle", "pin", name, "on", on)
		fmt.Fprintf(w, "%s: %v\n", name, on)
	}
}

func disarmHandler(mon *alarmd.Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		log.Info("disarm requested from sim")
		mon.RequestDisarm()
		fmt.Fprintln(w, "disarm requested")
	}
}
