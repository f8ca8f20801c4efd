package markup

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
)

// Encode writes a mapping back out in the dialect Parse reads, two spaces
// per nesting level. Parsing the result yields an equal Value for trees the
// dialect can express: sequences cannot nest directly in sequences,
// sequence strings cannot contain ':', empty mappings read back as empty
// sequences and non-finite floats are written as null.
func Encode(v Value) []byte {
	var buf bytes.Buffer
	if v.kind == KindMapping {
		writeMapping(&buf, v.entries, 0)
	}
	return buf.Bytes()
}

func writeMapping(buf *bytes.Buffer, entries []Entry, indent int) {
	pad := strings.Repeat(" ", indent)
	for _, e := range entries {
		switch e.Value.kind {
		case KindAbsent:
			continue
		case KindMapping:
			buf.WriteString(pad + e.Key + ":\n")
			writeMapping(buf, e.Value.entries, indent+2)
		case KindSequence:
			buf.WriteString(pad + e.Key + ":\n")
			writeSequence(buf, e.Value.items, indent+2)
		default:
			buf.WriteString(pad + e.Key + ": " + scalarToken(e.Value) + "\n")
		}
	}
}

func writeSequence(buf *bytes.Buffer, items []Value, indent int) {
	pad := strings.Repeat(" ", indent)
	for _, item := range items {
		switch item.kind {
		case KindAbsent, KindSequence:
			continue
		case KindMapping:
			if len(item.entries) == 0 {
				continue
			}
			first := item.entries[0]
			if first.Value.IsScalar() {
				buf.WriteString(pad + "- " + first.Key + ": " + scalarToken(first.Value) + "\n")
				writeMapping(buf, item.entries[1:], indent+2)
				continue
			}
			// A "- key:" line cannot open a block. Hold the position with null
			// and write the container again as a repeated key, which replaces
			// the value in place.
			buf.WriteString(pad + "- " + first.Key + ": null\n")
			writeMapping(buf, item.entries, indent+2)
		default:
			buf.WriteString(pad + "- " + scalarToken(item) + "\n")
		}
	}
}

// scalarToken renders a scalar so that Coerce reads it back unchanged.
func scalarToken(v Value) string {
	if v.kind != KindString {
		return formatScalar(v)
	}
	s := v.s
	if s == "" || s != strings.TrimSpace(s) || !Coerce(s).Equal(v) {
		return `"` + s + `"`
	}
	return s
}

// MarshalJSON encodes mappings as objects in document order. Absent values
// encode as null.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindAbsent, KindNull:
		buf.WriteString("null")
	case KindBool, KindInt:
		buf.WriteString(formatScalar(v))
	case KindFloat:
		if math.IsInf(v.f, 0) || math.IsNaN(v.f) {
			buf.WriteString("null")
			return nil
		}
		b, err := json.Marshal(v.f)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindString:
		b, err := json.Marshal(v.s)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindMapping:
		buf.WriteByte('{')
		for i, e := range v.entries {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(e.Key)
			if err != nil {
				return err
			}
			buf.Write(k)
			buf.WriteByte(':')
			if err := e.Value.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case KindSequence:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	}
	return nil
}
