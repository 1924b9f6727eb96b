package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/alarmd"
	"github.com/cenkalti/backoff/v4"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// publisher mirrors the monitor state to retained MQTT topics, so
// home automation picks the alarm up without polling. The will flips
// the online topic if the daemon dies.
type publisher struct {
	cli   mqtt.Client
	topic string
	last  alarmd.Snapshot
	ready bool
}

func setupMQTT(cfg Config) (*publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID("alarmd-" + deviceID()).
		SetAutoReconnect(true).
		SetWill(cfg.MQTTTopic+"/online", "0", 1, true)
	cli := mqtt.NewClient(opts)

	bo := backoff.NewExponentialBackOff()
	bo.MaxInterval = time.Second * 5
	bo.MaxElapsedTime = time.Minute

	if err := backoff.RetryNotify(func() error {
		token := cli.Connect()
		token.Wait()
		return token.Error()
	}, bo, func(err error, _ time.Duration) {
		log.Error("could not connect to broker", "err", err)
	}); err != nil {
		return nil, fmt.Errorf("could not connect to %s: %w", cfg.MQTTBroker, err)
	}

	log.Info("connected to broker", "broker", cfg.MQTTBroker, "topic", cfg.MQTTTopic)
	cli.Publish(cfg.MQTTTopic+"/online", 1, true, "1")
	return &publisher{cli: cli, topic: cfg.MQTTTopic}, nil
}

func (p *publisher) publish(s alarmd.Snapshot) {
	h := alarmd.Hazard{Gas: s.Gas, OverTemp: s.OverTemp}
	if !p.ready || p.last.Alarm != s.Alarm {
		p.cli.Publish(p.topic+"/alarm", 1, true, s.Alarm.String())
	}
	if !p.ready || p.last.Gas != s.Gas {
		p.cli.Publish(p.topic+"/gas", 1, true, h.GasString())
	}
	if !p.ready || p.last.OverTemp != s.OverTemp {
		p.cli.Publish(p.topic+"/overtemp", 1, true, h.TempString())
	}
	if !p.ready || p.last.KeypadLocked != s.KeypadLocked {
		p.cli.Publish(p.topic+"/keypad/locked", 1, true, fmt.Sprintf("%d", boolAs[int](s.KeypadLocked)))
	}
	p.last = s
	p.ready = true
}
