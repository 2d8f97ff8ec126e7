//go:build tinygo

package device

import (
	"errors"
	"machine"
	"strconv"
	"time"

	"tinygo.org/x/drivers/easystepper"
)

// Device plays loaded ramps on the stepper and answers the serial commands
type Device struct {
	stepper  *Stepper
	jog      *easystepper.Device
	stepUnit time.Duration

	ramp      Ramp
	startTime time.Time

	verbose bool
}

// New sets up the stepper pins and the jog driver
func New(stepperCfg StepperConfig, jogCfg JogConfig) (Device, error) {
	stepper, err := NewStepper(stepperCfg)
	if err != nil {
		return Device{}, errors.New("error creating stepper: " + err.Error())
	}

	jog, err := easystepper.New(easystepper.DeviceConfig{
		Pin1: stepperCfg.Pins[0], Pin2: stepperCfg.Pins[1], Pin3: stepperCfg.Pins[2], Pin4: stepperCfg.Pins[3],
		StepCount: jogCfg.StepCount,
		RPM:       jogCfg.RPM,
		Mode:      easystepper.ModeFour,
	})
	if err != nil {
		return Device{}, errors.New("error creating jog stepper: " + err.Error())
	}

	if stepperCfg.StepUnit == 0 {
		stepperCfg.StepUnit = DefaultStepUnit
	}

	return Device{
		stepper:   stepper,
		jog:       jog,
		stepUnit:  stepperCfg.StepUnit,
		startTime: time.Now(),
	}, nil
}

// LoadTable replaces the current ramp
func (d *Device) LoadTable(values []uint16) error {
	r, err := NewRamp(values)
	if err != nil {
		return err
	}
	d.ramp = r

	println(d.ts(), "loaded", d.ramp.String())
	return nil
}

// RunRamp takes one step per table entry, waiting entry × StepUnit after each
func (d *Device) RunRamp(reverse bool) error {
	if len(d.ramp) == 0 {
		return errors.New("no table loaded")
	}

	if d.verbose {
		println(d.ts(), "RunRamp reverse="+strconv.FormatBool(reverse))
	}

	start := time.Now()
	d.ramp.Play(d.stepUnit, reverse, func(wait time.Duration) {
		d.stepper.Step(reverse)
		time.Sleep(wait)
	})
	d.stepper.Off()

	println(d.ts(), "ramp done in", time.Since(start).String())
	return nil
}

// Jog moves at the jog driver's constant speed
func (d *Device) Jog(steps int32) {
	if d.verbose {
		println(d.ts(), "Jog", steps)
	}
	d.jog.Configure()
	d.jog.Move(steps)
	d.jog.Off()
}

// Debug prints the loaded ramp
func (d *Device) Debug() {
	println(d.ts(), d.ramp.String(), "expected", d.ramp.Duration(d.stepUnit).String())
}

// Verbose sets the Device to Verbose mode and increases logging
func (d *Device) Verbose() {
	d.verbose = true
	println(d.ts(), "Set Verbose Mode")
}

// ts returns the uptime timestamp for logging
func (d *Device) ts() string {
	return "[" + time.Since(d.startTime).String() + "]"
}

func (d *Device) ReadByte() (byte, error) {
	return machine.Serial.ReadByte()
}
