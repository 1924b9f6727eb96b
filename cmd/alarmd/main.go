package main

import (
	"context"
	_ "embed"
	"errors"
	"html/template"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/brutella/hap"
	"github.com/brutella/hap/accessory"
	"github.com/caarlos0/alarmd"
	"github.com/caarlos0/alarmd/console"
	"github.com/caarlos0/alarmd/hal"
	"github.com/caarlos0/env/v11"
	"github.com/cenkalti/backoff/v4"
	logp "github.com/charmbracelet/log"
	"github.com/denisbrodbeck/machineid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed index.html
var index []byte

var log = logp.NewWithOptions(os.Stderr, logp.Options{
	ReportTimestamp: true,
	TimeFormat:      time.Kitchen,
	Prefix:          "alarmd",
})

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const manufacturer = "becker software"

func main() {
	log.Info(
		"alarmd",
		"version", version,
		"commit", commit,
		"date", date,
		"info", strings.Join([]string{
			"Gas and temperature safety alarm monitor",
			"© Carlos Alexandro Becker",
			"https://becker.software",
		}, "\n"),
	)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatal(
			"could not parse env",
			"err",
			strings.TrimPrefix(strings.ReplaceAll(err.Error(), "; ", "\n"), "env: ")+"\n",
		)
	}
	if err := cfg.validate(); err != nil {
		log.Fatal("bad configuration", "err", err)
	}
	code, err := cfg.keypadCode()
	if err != nil {
		log.Fatal("bad configuration", "err", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := console.New()
	opts := alarmd.Options{
		Link:   hub,
		Period: cfg.ReportEvery,
		Tick:   cfg.Tick,
	}

	var rig *simRig
	if cfg.Simulate {
		if cfg.Device == "" && cfg.Console == "" {
			cfg.Console = ":2323"
			log.Info("no console configured, simulation defaults one", "console", cfg.Console)
		}
		rig = newSimRig()
		opts.Gas = rig.gas
		opts.OverTemp = rig.overTemp
		opts.Alarm = rig.alarm
		pad, err := rig.keypad(code)
		if err != nil {
			log.Fatal("could not build keypad", "err", err)
		}
		opts.Keypad = pad
		log.Info("running in simulation, toggle hazards over http", "code", code)
	} else {
		gas, err := hal.OpenInput(cfg.GasPin)
		if err != nil {
			log.Fatal("could not open gas pin", "err", err)
		}
		overTemp, err := hal.OpenInput(cfg.OverTempPin)
		if err != nil {
			log.Fatal("could not open overtemp pin", "err", err)
		}
		alarmOut, err := hal.OpenOutput(cfg.AlarmPin)
		if err != nil {
			log.Fatal("could not open alarm pin", "err", err)
		}
		opts.Gas = gas
		opts.OverTemp = overTemp
		opts.Alarm = alarmOut

		if len(cfg.KeypadPins) == 5 {
			pad, err := openKeypad(cfg, code)
			if err != nil {
				log.Fatal("could not open keypad", "err", err)
			}
			opts.Keypad = pad
			log.Info("keypad wired", "code", code)
		}
	}

	if cfg.Device != "" {
		port, err := openSerial(cfg)
		if err != nil {
			log.Fatal("could not open serial port", "device", cfg.Device, "err", err)
		}
		hub.Attach(port.String(), port)
	}
	if cfg.Console != "" {
		lis, err := net.Listen("tcp", cfg.Console)
		if err != nil {
			log.Fatal("could not listen", "addr", cfg.Console, "err", err)
		}
		log.Info("console listening", "addr", lis.Addr())
		go func() {
			if err := hub.Serve(ctx, lis); err != nil {
				log.Error("console server stopped", "err", err)
			}
		}()
	}

	mon, err := alarmd.New(opts)
	if err != nil {
		log.Fatal("could not build monitor", "err", err)
	}
	registerMetrics(mon, hub)

	var pub *publisher
	if cfg.MQTTBroker != "" {
		pub, err = setupMQTT(cfg)
		if err != nil {
			log.Fatal("could not setup mqtt", "err", err)
		}
	}

	bridge := accessory.NewBridge(accessory.Info{
		Name:         "Alarm Bridge",
		Manufacturer: manufacturer,
		Firmware:     version,
	})
	system := newSafetySystem(accessory.Info{
		Name:         "Alarm",
		SerialNumber: deviceID(),
		Manufacturer: manufacturer,
		Firmware:     version,
	}, mon)
	system.Id = 2
	gasSensor := newGasSensor(accessory.Info{
		Name:         "Gas",
		Manufacturer: manufacturer,
	})
	gasSensor.Id = 3
	heatSensor := newHeatSensor(accessory.Info{
		Name:         "Overheat",
		Manufacturer: manufacturer,
	})
	heatSensor.Id = 4

	go func() {
		if err := mon.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("monitor stopped", "err", err)
		}
	}()

	go func() {
		tick := time.NewTicker(time.Second)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
				s := mon.Snapshot()
				system.Update(s)
				gasSensor.Update(s)
				heatSensor.Update(s)
				if pub != nil {
					pub.publish(s)
				}
			}
		}
	}()

	fs := hap.NewFsStore(cfg.Store)
	server, err := hap.NewServer(fs, bridge.A, system.A, gasSensor.A, heatSensor.A)
	if err != nil {
		log.Fatal("fail to create server", "error", err)
	}
	server.Addr = cfg.Address
	server.ServeMux().Handle("/metrics", promhttp.Handler())
	server.ServeMux().Handle("/", statusPage(mon, hub, rig != nil))
	if rig != nil {
		rig.register(server.ServeMux(), mon)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	signal.Notify(c, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("stopping server")
		signal.Stop(c)
		cancel()
	}()

	log.Info("starting server", "addr", server.Addr)
	if err := server.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("failed to close server", "err", err)
	}
}

func statusPage(mon *alarmd.Monitor, hub *console.Hub, sim bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		s := mon.Snapshot()
		h := alarmd.Hazard{Gas: s.Gas, OverTemp: s.OverTemp}
		tpl := template.Must(template.New("index").Parse(string(index)))
		_ = tpl.Execute(w, struct {
			Alarm, Gas, Temp       string
			AlarmOn, GasOn, TempOn bool
			Attempts               int
			Locked                 bool
			Iterations             uint64
			Reports                uint64
			Warnings               uint64
			Commands               uint64
			Dropped                uint64
			Links                  int
			Time                   string
			Sim                    bool
		}{
			Alarm:      s.Alarm.String(),
			Gas:        h.GasString(),
			Temp:       h.TempString(),
			AlarmOn:    s.Alarm == alarmd.AlarmOn,
			GasOn:      s.Gas,
			TempOn:     s.OverTemp,
			Attempts:   s.KeypadAttempts,
			Locked:     s.KeypadLocked,
			Iterations: s.Iterations,
			Reports:    s.Reports,
			Warnings:   s.Warnings,
			Commands:   s.Commands,
			Dropped:    s.Dropped,
			Links:      hub.Links(),
			Time:       s.Time.Format(time.RFC3339),
			Sim:        sim,
		})
	})
}

func openSerial(cfg Config) (*hal.Serial, error) {
	bo := backoff.NewExponentialBackOff()
	bo.MaxInterval = time.Second * 5
	bo.MaxElapsedTime = time.Minute

	var port *hal.Serial
	err := backoff.RetryNotify(func() (err error) {
		port, err = hal.OpenSerial(cfg.Device, cfg.Baud)
		return
	}, bo, func(err error, _ time.Duration) {
		log.Error("could not open serial port", "err", err)
	})
	return port, err
}

func openKeypad(cfg Config, code alarmd.Code) (*alarmd.Keypad, error) {
	var buttons [5]alarmd.InputPin
	for i, name := range cfg.KeypadPins {
		in, err := hal.OpenInput(name)
		if err != nil {
			return nil, err
		}
		buttons[i] = in
	}
	return alarmd.NewKeypad(alarmd.KeypadPins{
		A:         buttons[0],
		B:         buttons[1],
		C:         buttons[2],
		D:         buttons[3],
		Enter:     buttons[4],
		Incorrect: openIndicator(cfg.IncorrectPin),
		Locked:    openIndicator(cfg.LockedPin),
	}, code)
}

// openIndicator opens an optional LED pin. An absent or broken
// indicator must not keep the monitor from starting.
func openIndicator(name string) alarmd.OutputPin {
	if name == "" {
		return &alarmd.SimPin{}
	}
	out, err := hal.OpenOutput(name)
	if err != nil {
		log.Warn("could not open indicator pin, leaving it unwired", "pin", name, "err", err)
		return &alarmd.SimPin{}
	}
	return out
}

func deviceID() string {
	id, err := machineid.ID()
	if err != nil {
		log.Warn("could not get machine id", "err", err)
		return "unknown"
	}
	return id
}
