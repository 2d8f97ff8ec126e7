//go:build tinygo

package device

import (
	"machine"
	"time"
)

// StepperConfig ...
type StepperConfig struct {
	Pins     [4]machine.Pin
	StepMode StepMode
	// StepUnit is multiplied by each table value to get the wait after a step
	StepUnit time.Duration
}

// JogConfig sets up the constant-speed easystepper used by the jog command. It drives the same pins
type JogConfig struct {
	StepCount uint
	RPM       uint
}
