package simulation

import (
	"strings"

	"github.com/sophialabs/blueprintmock/internal/domain/blueprint"
)

// HasHeader reports whether headers contains name, ignoring case.
func HasHeader(headers []blueprint.Header, name string) bool {
	_, ok := lookupHeader(headers, name)
	return ok
}

func lookupHeader(headers []blueprint.Header, name string) (string, bool) {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value, true
		}
	}
	return "", false
}
