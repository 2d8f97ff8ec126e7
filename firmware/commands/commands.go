// Package commands is the single-byte serial protocol between the host and the ramp player.
// Every command is a flag byte followed by a fixed number of input bytes; the load command then
// reads the table values it announced.
package commands

import (
	"errors"
	"io"
	"strconv"
)

const (
	// MaxTableSize is the largest table the firmware accepts
	MaxTableSize = 500
	// CountDigits is the width of the table length sent with the load command
	CountDigits = 3
	// ValueDigits is the width of each table value
	ValueDigits = 4
	// MaxValue is the largest value that fits in ValueDigits
	MaxValue = 9999

	// JogStepsPerUnit converts the jog digit into motor steps
	JogStepsPerUnit = 50
)

var (
	ErrTableSize  = errors.New("table size must be 1-" + strconv.Itoa(MaxTableSize))
	ErrTableValue = errors.New("table values must be 1-" + strconv.Itoa(MaxValue))
	ErrNoTable    = errors.New("no table loaded")
)

type Command struct {
	Flag        byte
	InputSize   uint
	Run         func(Controller, []byte) error
	Description string
}

// Controller is the device side of the protocol
type Controller interface {
	LoadTable([]uint16) error
	RunRamp(reverse bool) error
	Jog(steps int32)
	Debug()
	Verbose()

	// I/O
	ReadByte() (byte, error)
}

var (
	LoadCommand = &Command{
		Flag:      'L',
		InputSize: CountDigits,
		Run: func(c Controller, input []byte) error {
			count, ok := digits(input)
			if !ok || count < 1 || count > MaxTableSize {
				return ErrTableSize
			}

			table := make([]uint16, count)
			for i := range table {
				raw, err := readInput(c, ValueDigits)
				if err != nil {
					return err
				}
				v, ok := digits(raw)
				if !ok || v < 1 {
					return ErrTableValue
				}
				table[i] = uint16(v)
			}

			return c.LoadTable(table)
		},
		Description: "Load a pulse-time table. Input: 3-digit count, then count 4-digit values.",
	}
	RunCommand = &Command{
		Flag:      'R',
		InputSize: 1,
		Run: func(c Controller, input []byte) error {
			switch input[0] {
			case '+':
				return c.RunRamp(false)
			case '-':
				return c.RunRamp(true)
			default:
				return errors.New("invalid input: " + string(input))
			}
		},
		Description: "Play the loaded table. Input: '+' (first to last) or '-' (last to first).",
	}
	JogCommand = &Command{
		Flag:      'J',
		InputSize: 2,
		Run: func(c Controller, input []byte) error {
			s := int32(1)
			if input[0] == '-' {
				s = -1
			} else if input[0] != '+' {
				return errors.New("invalid input: " + string(input))
			}

			n, ok := digits(input[1:])
			if !ok {
				return errors.New("invalid input: " + string(input))
			}

			c.Jog(int32(n) * JogStepsPerUnit * s)
			return nil
		},
		Description: "Jog the motor at constant speed. Input: '+' or '-', then a digit (x50 steps).",
	}
	DebugCommand = &Command{
		Flag:      'D',
		InputSize: 0,
		Run: func(c Controller, b []byte) error {
			c.Debug()
			return nil
		},
		Description: "Print the loaded table summary.",
	}
	VerboseCommand = &Command{
		Flag:      'V',
		InputSize: 0,
		Run: func(c Controller, b []byte) error {
			c.Verbose()
			return nil
		},
		Description: "Enable verbose output.",
	}
	HelpCommand = &Command{
		Flag:        'H',
		InputSize:   0,
		Description: "Show all available commands and their descriptions.",
		Run: func(c Controller, b []byte) error {
			println("Available Commands:")
			for _, cmd := range commands {
				println(string(cmd.Flag) + ": " + cmd.Description)
			}
			return nil
		},
	}
)

var commands = []*Command{
	LoadCommand,
	RunCommand,
	JogCommand,
	DebugCommand,
	VerboseCommand,
}

func commandMap() map[byte]*Command {
	cmdMap := map[byte]*Command{
		HelpCommand.Flag: HelpCommand,
	}
	for _, cmd := range commands {
		cmdMap[cmd.Flag] = cmd
	}
	return cmdMap
}

// Run reads and executes commands until the controller returns io.EOF. Other read errors mean
// no input is available yet and are retried
func Run(c Controller) {
	cmdMap := commandMap()
	for {
		err := next(c, cmdMap)
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			println("error:", err.Error())
		}
	}
}

// next runs one command. Bytes that are not command flags are skipped
func next(c Controller, cmdMap map[byte]*Command) error {
	cmdIn, err := c.ReadByte()
	if errors.Is(err, io.EOF) {
		return err
	}
	if err != nil {
		return nil
	}

	cmd, ok := cmdMap[cmdIn]
	if !ok {
		return nil
	}

	in, err := readInput(c, int(cmd.InputSize))
	if err != nil {
		return err
	}

	return cmd.Run(c, in)
}

// readInput blocks until n bytes are read
func readInput(c Controller, n int) ([]byte, error) {
	in := make([]byte, n)
	for i := 0; i < n; {
		b, err := c.ReadByte()
		if errors.Is(err, io.EOF) {
			return nil, err
		}
		if err != nil {
			continue
		}

		in[i] = b
		i++
	}
	return in, nil
}

// digits parses ASCII decimal digits
func digits(b []byte) (int, bool) {
	if len(b) == 0 {
		return 0, false
	}
	v := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + int(c-'0')
	}
	return v, true
}
