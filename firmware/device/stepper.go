//go:build tinygo

package device

import (
	"errors"
	"machine"
)

type StepMode int

const (
	StepModeFull StepMode = iota
	StepModeHalf
)

// Stepper sequences the coils of a 4-wire stepper one step at a time. Timing between steps is left to the caller
type Stepper struct {
	pins        [4]machine.Pin
	stepMode    StepMode
	currentStep int
}

func NewStepper(cfg StepperConfig) (*Stepper, error) {
	if cfg.StepMode != StepModeFull && cfg.StepMode != StepModeHalf {
		return nil, errors.New("invalid StepMode")
	}

	s := &Stepper{
		pins:     cfg.Pins,
		stepMode: cfg.StepMode,
	}
	for _, p := range s.pins {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	}
	return s, nil
}

var (
	halfStepSequence = [8][4]bool{
		{true, false, false, false},
		{true, true, false, false},
		{false, true, false, false},
		{false, true, true, false},
		{false, false, true, false},
		{false, false, true, true},
		{false, false, false, true},
		{true, false, false, true},
	}

	fullStepSequence = [4][4]bool{
		{true, false, false, false},
		{false, true, false, false},
		{false, false, true, false},
		{false, false, false, true},
	}
)

func (s *Stepper) sequenceLen() int {
	if s.stepMode == StepModeHalf {
		return len(halfStepSequence)
	}
	return len(fullStepSequence)
}

func (s *Stepper) applyStep() {
	var sequence [4]bool
	switch s.stepMode {
	case StepModeHalf:
		sequence = halfStepSequence[s.currentStep]
	default:
		sequence = fullStepSequence[s.currentStep]
	}

	for i := range 4 {
		s.pins[i].Set(sequence[i])
	}
}

// Step advances one step forward, or backward when reverse is set
func (s *Stepper) Step(reverse bool) {
	n := s.sequenceLen()
	if reverse {
		s.currentStep = (s.currentStep - 1 + n) % n
	} else {
		s.currentStep = (s.currentStep + 1) % n
	}
	s.applyStep()
}

// Off releases all coils
func (s *Stepper) Off() {
	for _, p := range s.pins {
		p.Low()
	}
}
