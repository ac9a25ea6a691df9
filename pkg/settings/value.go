package settings

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// OffToken is the literal accepted (case-insensitively) for switching an
// effect off, and the string form the Off sentinel renders as.
const OffToken = "Off"

// Value is either a numeric parameter value or the Off sentinel. The zero
// value is the number 0.
type Value struct {
	num float64
	off bool
}

// Off is the sentinel meaning "use the preset's built-in default".
var Off = Value{off: true}

// Number returns a numeric Value.
func Number(v float64) Value {
	return Value{num: v}
}

// IsOff reports whether v is the Off sentinel.
func (v Value) IsOff() bool { return v.off }

// Float returns the numeric value. It is only meaningful when IsOff is false.
func (v Value) Float() float64 { return v.num }

// String renders the value for CLI output: "Off" or the shortest decimal form
// of the number.
func (v Value) String() string {
	if v.off {
		return OffToken
	}
	return strconv.FormatFloat(v.num, 'f', -1, 64)
}

// Parse converts user input into a Value. The token "off" (any case) yields
// the Off sentinel; anything else must be a finite number.
func Parse(s string) (Value, error) {
	trimmed := strings.TrimSpace(s)
	if strings.EqualFold(trimmed, OffToken) {
		return Off, nil
	}

	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return Value{}, fmt.Errorf("settings: not a number or %q: %q", OffToken, s)
	}

	return Number(f), nil
}

// ParseFor parses user input destined for the named catalog parameter,
// reporting problems as ValidationError: an unknown name, a value that is
// neither a number nor the Off token, or Off on a parameter that cannot be
// switched off.
func ParseFor(name, s string) (Value, error) {
	def, ok := Lookup(name)
	if !ok {
		return Value{}, unknownSetting(name)
	}

	v, err := Parse(s)
	if err != nil {
		return Value{}, invalidValue(name, fmt.Sprintf("not a number or %q: %q", OffToken, s))
	}

	if v.IsOff() && !def.SupportsOff {
		return Value{}, invalidValue(name, "adjustments cannot be switched off")
	}

	return v, nil
}
