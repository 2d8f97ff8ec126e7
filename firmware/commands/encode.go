package commands

import (
	"fmt"
	"strings"
)

// EncodeLoad builds the load frame for seq
func EncodeLoad(seq []int) ([]byte, error) {
	if len(seq) < 1 || len(seq) > MaxTableSize {
		return nil, fmt.Errorf("%w: got %d", ErrTableSize, len(seq))
	}

	var b strings.Builder
	b.Grow(1 + CountDigits + len(seq)*ValueDigits)
	b.WriteByte(LoadCommand.Flag)
	fmt.Fprintf(&b, "%0*d", CountDigits, len(seq))
	for i, v := range seq {
		if v < 1 || v > MaxValue {
			return nil, fmt.Errorf("%w: index %d is %d", ErrTableValue, i, v)
		}
		fmt.Fprintf(&b, "%0*d", ValueDigits, v)
	}
	return []byte(b.String()), nil
}

// EncodeRun builds the frame that plays the loaded table
func EncodeRun(reverse bool) []byte {
	if reverse {
		return []byte{RunCommand.Flag, '-'}
	}
	return []byte{RunCommand.Flag, '+'}
}

// EncodeJog builds a jog frame; units is -9..9 and each unit is JogStepsPerUnit steps
func EncodeJog(units int) ([]byte, error) {
	sign := byte('+')
	if units < 0 {
		sign = '-'
		units = -units
	}
	if units > 9 {
		return nil, fmt.Errorf("jog units must be -9..9, got %d", units)
	}
	return []byte{JogCommand.Flag, sign, byte('0' + units)}, nil
}
