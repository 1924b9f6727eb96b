package main

import (
	"net/http"

	"github.com/brutella/hap"
	"github.com/brutella/hap/accessory"
	"github.com/brutella/hap/characteristic"
	"github.com/brutella/hap/service"
	"github.com/caarlos0/alarmd"
)

type SafetySystem struct {
	*accessory.A
	SecuritySystem *service.SecuritySystem
}

func newSafetySystem(info accessory.Info, mon *alarmd.Monitor) *SafetySystem {
	a := &SafetySystem{}
	a.A = accessory.New(info, accessory.TypeSecuritySystem)

	a.SecuritySystem = service.NewSecuritySystem()
	a.AddS(a.SecuritySystem.S)

	_ = a.SecuritySystem.SecuritySystemTargetState.SetValue(
		characteristic.SecuritySystemTargetStateDisarm,
	)
	a.SecuritySystem.SecuritySystemTargetState.SetValueRequestFunc = func(
		v interface{},
		_ *http.Request,
	) (response interface{}, code int) {
		// hazards arm the system on their own, people only disarm it
		if v.(int) != characteristic.SecuritySystemTargetStateDisarm {
			return nil, hap.JsonStatusInvalidValueInRequest
		}
		log.Info("disarm requested from homekit")
		mon.RequestDisarm()
		return nil, hap.JsonStatusSuccess
	}

	return a
}

func (a *SafetySystem) Update(s alarmd.Snapshot) {
	v := characteristic.SecuritySystemCurrentStateDisarmed
	if s.Alarm == alarmd.AlarmOn {
		v = characteristic.SecuritySystemCurrentStateAlarmTriggered
	}
	if a.SecuritySystem.SecuritySystemCurrentState.Value() != v {
		err := a.SecuritySystem.SecuritySystemCurrentState.SetValue(v)
		log.Info("set current state", "state", v, "err", err)
	}
}

type GasSensor struct {
	*accessory.A
	Smoke *service.SmokeSensor
}

func newGasSensor(info accessory.Info) *GasSensor {
	a := &GasSensor{}
	a.A = accessory.New(info, accessory.TypeSensor)

	a.Smoke = service.NewSmokeSensor()
	a.AddS(a.Smoke.S)

	return a
}

func (a *GasSensor) Update(s alarmd.Snapshot) {
	if v := boolAs[int](s.Gas); a.Smoke.SmokeDetected.Value() != v {
		_ = a.Smoke.SmokeDetected.SetValue(v)
		log.Info("gas sensor", "detected", s.Gas)
	}
}

type HeatSensor struct {
	*accessory.A
	Contact *service.ContactSensor
}

func newHeatSensor(info accessory.Info) *HeatSensor {
	a := &HeatSensor{}
	a.A = accessory.New(info, accessory.TypeSensor)

	a.Contact = service.NewContactSensor()
	a.AddS(a.Contact.S)

	return a
}

func (a *HeatSensor) Update(s alarmd.Snapshot) {
	if v := boolAs[int](s.OverTemp); a.Contact.ContactSensorState.Value() != v {
		_ = a.Contact.ContactSensorState.SetValue(v)
		log.Info("heat sensor", "overtemp", s.OverTemp)
	}
}

func boolAs[T int | float64](b bool) T {
	if b {
		return 1
	}
	return 0
}
