//go:build tinygo

package main

import (
	"machine"
	"time"

	"github.com/calvinmclean/stepcurve/firmware/commands"
	"github.com/calvinmclean/stepcurve/firmware/device"
)

func main() {
	stepperCfg := device.StepperConfig{
		Pins:     [4]machine.Pin{machine.GP16, machine.GP17, machine.GP18, machine.GP19},
		StepMode: device.StepModeFull,
		StepUnit: 5 * time.Microsecond,
	}
	jogCfg := device.JogConfig{
		StepCount: 200,
		RPM:       50,
	}

	d, err := device.New(stepperCfg, jogCfg)
	if err != nil {
		panic(err)
	}

	commands.Run(&d)
}
