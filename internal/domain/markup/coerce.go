package markup

import (
	"math"
	"regexp"
	"strconv"
)

var (
	intPattern   = regexp.MustCompile(`^-?[0-9]+$`)
	floatPattern = regexp.MustCompile(`^-?[0-9]+\.[0-9]+$`)
)

// Coerce turns a raw scalar token into a typed Value. Quoted tokens lose
// their quotes with no escape processing; unrecognized tokens stay strings.
func Coerce(raw string) Value {
	switch raw {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	case "null":
		return Null()
	}

	if intPattern.MatchString(raw) {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return Int(n)
		}
		// Out of int64 range: keep the magnitude as a float while it is
		// finite, otherwise the token stays text.
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return Float(f)
		}
		return String(raw)
	}
	if floatPattern.MatchString(raw) {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return Float(f)
		}
		return String(raw)
	}

	if n := len(raw); n >= 2 && (raw[0] == '"' || raw[0] == '\'') && raw[n-1] == raw[0] {
		return String(raw[1 : n-1])
	}

	return String(raw)
}

func formatScalar(v Value) string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		if math.IsInf(v.f, 0) || math.IsNaN(v.f) {
			return "null"
		}
		s := strconv.FormatFloat(v.f, 'f', -1, 64)
		if !floatPattern.MatchString(s) {
			s += ".0"
		}
		return s
	case KindString:
		return v.s
	}
	return ""
}
