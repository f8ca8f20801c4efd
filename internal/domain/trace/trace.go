package trace

import "time"

// Entry records one simulated request.
type Entry struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Method    string            `json:"method"`
	Path      string            `json:"path"`
	Route     string            `json:"route,omitempty"`
	Params    map[string]string `json:"params,omitempty"`
	Outcome   string            `json:"outcome"`
	Status    int               `json:"status"`
	DelayMs   int64             `json:"delay_ms"`
}
