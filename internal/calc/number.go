package calc

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	intPrefix   = regexp.MustCompile(`^[+-]?[0-9]+`)
	floatPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?)`)
)

// Int is an integer read from a form field. Invalid values encode as JSON
// null, which is how an unparsable number reaches the service.
type Int struct {
	Value int64
	Valid bool
}

// Float is a floating point value read from a form field. Invalid and
// non-finite values encode as JSON null.
type Float struct {
	Value float64
	Valid bool
}

// ParseInt reads the leading base-10 integer of a field value. Trailing
// garbage is ignored ("12abc" is 12); a value without leading digits, or one
// that does not fit in 64 bits, is invalid.
func ParseInt(raw string) Int {
	match := intPrefix.FindString(strings.TrimSpace(raw))
	if match == "" {
		return Int{}
	}
	value, err := strconv.ParseInt(match, 10, 64)
	if err != nil {
		return Int{}
	}
	return Int{Value: value, Valid: true}
}

// ParseFloat reads the leading decimal literal of a field value, with the
// same prefix semantics as ParseInt.
func ParseFloat(raw string) Float {
	match := floatPrefix.FindString(strings.TrimSpace(raw))
	if match == "" {
		return Float{}
	}
	switch strings.TrimLeft(match, "+-") {
	case "Infinity":
		if strings.HasPrefix(match, "-") {
			return Float{Value: math.Inf(-1), Valid: true}
		}
		return Float{Value: math.Inf(1), Valid: true}
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil && !isRangeErr(err) {
		return Float{}
	}
	return Float{Value: value, Valid: true}
}

func isRangeErr(err error) bool {
	numErr, ok := err.(*strconv.NumError)
	return ok && numErr.Err == strconv.ErrRange
}

// Ptr returns the value as a pointer, nil when invalid.
func (i Int) Ptr() *int64 {
	if !i.Valid {
		return nil
	}
	v := i.Value
	return &v
}

func (i Int) MarshalJSON() ([]byte, error) {
	if !i.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, i.Value, 10), nil
}

func (f Float) MarshalJSON() ([]byte, error) {
	if !f.Valid || math.IsNaN(f.Value) || math.IsInf(f.Value, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f.Value, 'g', -1, 64), nil
}

// FormatNumber renders a float the way result values are shown to users:
// plain decimal notation, switching to exponent form only for very large or
// very small magnitudes.
func FormatNumber(value float64) string {
	switch {
	case math.IsNaN(value):
		return "NaN"
	case math.IsInf(value, 1):
		return "Infinity"
	case math.IsInf(value, -1):
		return "-Infinity"
	case value == 0:
		return "0"
	}
	abs := math.Abs(value)
	if abs >= 1e21 || abs < 1e-6 {
		formatted := strconv.FormatFloat(value, 'e', -1, 64)
		mantissa, exponent, _ := strings.Cut(formatted, "e")
		sign := exponent[:1]
		digits := strings.TrimLeft(exponent[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
