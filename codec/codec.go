// Package codec reads and writes a sequence as a C array literal:
//
//	int GeneratedCurve[12] = {
//	93,92,90,87,83,78,72,66,59,52,
//	46,40
//	};
package codec

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/calvinmclean/stepcurve"
)

// DefaultName is the array name used when none is configured
const DefaultName = "GeneratedCurve"

// ValuesPerLine is the number of values written on each line of the literal
const ValuesPerLine = 10

// ErrInvalidName indicates an array name that is not a C identifier
var ErrInvalidName = errors.New("codec: array name is not a C identifier")

var (
	blockPattern = regexp.MustCompile(`\{([^}]*)\}`)
	namePattern  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Parse reads the first brace-delimited block of text. Tokens that are not plain non-negative
// integers are skipped. When there is no block, or it holds no integers, Parse returns an empty
// sequence and stepcurve.ErrMalformedInput
func Parse(text string) ([]int, error) {
	match := blockPattern.FindStringSubmatch(text)
	if match == nil {
		return []int{}, fmt.Errorf("%w: no {...} block found", stepcurve.ErrMalformedInput)
	}

	var seq []int
	for token := range strings.SplitSeq(match[1], ",") {
		token = strings.TrimSpace(token)
		if !isDigits(token) {
			continue
		}
		v, err := strconv.Atoi(token)
		if err != nil {
			// only overflow gets here
			return []int{}, fmt.Errorf("%w: %v", stepcurve.ErrMalformedInput, err)
		}
		seq = append(seq, v)
	}

	if len(seq) == 0 {
		return []int{}, fmt.Errorf("%w: block has no integer values", stepcurve.ErrMalformedInput)
	}
	return seq, nil
}

// Format writes seq as `int <name>[<N>] = { ... };` with ValuesPerLine values per line. An empty
// name uses DefaultName
func Format(name string, seq []int) (string, error) {
	if len(seq) == 0 {
		return "", stepcurve.ErrEmptySequence
	}
	if name == "" {
		name = DefaultName
	}
	if !namePattern.MatchString(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "int %s[%d] = {\n", name, len(seq))
	for i, v := range seq {
		b.WriteString(strconv.Itoa(v))
		b.WriteByte(',')
		if (i+1)%ValuesPerLine == 0 {
			b.WriteByte('\n')
		}
	}

	return strings.TrimRight(b.String(), ",\n") + "\n};", nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
