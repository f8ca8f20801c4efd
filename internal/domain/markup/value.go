package markup

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindAbsent Kind = iota
	KindNull
	KindBool
	KindInt
	KindFloat
	KindString
	KindMapping
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// Value is an immutable node of a parsed document: a scalar, an ordered
// mapping or an ordered sequence. The zero Value is absent.
type Value struct {
	kind    Kind
	b       bool
	i       int64
	f       float64
	s       string
	entries []Entry
	items   []Value
}

// Entry is one key/value pair of a mapping.
type Entry struct {
	Key   string
	Value Value
}

func Null() Value           { return Value{kind: KindNull} }
func Bool(b bool) Value     { return Value{kind: KindBool, b: b} }
func Int(i int64) Value     { return Value{kind: KindInt, i: i} }
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }
func String(s string) Value { return Value{kind: KindString, s: s} }
func Sequence(items ...Value) Value {
	return Value{kind: KindSequence, items: append([]Value(nil), items...)}
}

// Mapping builds a mapping from entries. A repeated key keeps its first
// position and takes the last value.
func Mapping(entries ...Entry) Value {
	v := Value{kind: KindMapping}
	for _, e := range entries {
		if i := v.indexOf(e.Key); i >= 0 {
			v.entries[i].Value = e.Value
			continue
		}
		v.entries = append(v.entries, e)
	}
	return v
}

func (v Value) Kind() Kind       { return v.kind }
func (v Value) IsAbsent() bool   { return v.kind == KindAbsent }
func (v Value) IsNull() bool     { return v.kind == KindNull }
func (v Value) IsScalar() bool   { return v.kind >= KindNull && v.kind <= KindString }
func (v Value) IsMapping() bool  { return v.kind == KindMapping }
func (v Value) IsSequence() bool { return v.kind == KindSequence }

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsInt returns the integer payload. Floats with no fractional part convert.
func (v Value) AsInt() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true
	case KindFloat:
		if v.f == float64(int64(v.f)) {
			return int64(v.f), true
		}
	}
	return 0, false
}

// AsFloat returns the numeric payload as a float.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	}
	return 0, false
}

// AsString returns the string payload.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// Text renders a scalar as the text a client would see. Containers and
// absent values render as "".
func (v Value) Text() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool, KindInt, KindFloat:
		return formatScalar(v)
	case KindString:
		return v.s
	default:
		return ""
	}
}

// Get returns the value stored under key in a mapping.
func (v Value) Get(key string) (Value, bool) {
	if i := v.indexOf(key); i >= 0 {
		return v.entries[i].Value, true
	}
	return Value{}, false
}

// Entries returns a copy of the mapping's entries in document order.
func (v Value) Entries() []Entry {
	return append([]Entry(nil), v.entries...)
}

// Items returns a copy of the sequence's elements.
func (v Value) Items() []Value {
	return append([]Value(nil), v.items...)
}

// Len returns the number of entries or items; 0 for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindMapping:
		return len(v.entries)
	case KindSequence:
		return len(v.items)
	}
	return 0
}

// Equal reports deep equality. Mapping comparison is order-sensitive.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindString:
		return v.s == o.s
	case KindMapping:
		if len(v.entries) != len(o.entries) {
			return false
		}
		for i := range v.entries {
			if v.entries[i].Key != o.entries[i].Key || !v.entries[i].Value.Equal(o.entries[i].Value) {
				return false
			}
		}
		return true
	case KindSequence:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	}
	return true
}

// Interface converts the value to plain Go data: map[string]any, []any,
// string, int64, float64, bool or nil.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindMapping:
		m := make(map[string]any, len(v.entries))
		for _, e := range v.entries {
			m[e.Key] = e.Value.Interface()
		}
		return m
	case KindSequence:
		s := make([]any, len(v.items))
		for i, item := range v.items {
			s[i] = item.Interface()
		}
		return s
	}
	return nil
}

func (v Value) indexOf(key string) int {
	for i, e := range v.entries {
		if e.Key == key {
			return i
		}
	}
	return -1
}
