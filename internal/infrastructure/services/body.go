package services

import (
	"github.com/sophialabs/blueprintmock/internal/domain/markup"
)

// EncodeBody renders a response body. Strings and other scalars are written
// as their text, structured values and null as JSON, and an absent body as
// nothing.
func EncodeBody(v markup.Value) ([]byte, error) {
	switch v.Kind() {
	case markup.KindAbsent:
		return nil, nil
	case markup.KindMapping, markup.KindSequence, markup.KindNull:
		return v.MarshalJSON()
	default:
		return []byte(v.Text()), nil
	}
}
