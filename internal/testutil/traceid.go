package testutil

// FixedTraceID returns the same trace id every time.
//
// CLI commands stamp JSON responses with a fresh UUIDv7; tests swap in a
// FixedTraceID so outputs compare byte for byte.
type FixedTraceID struct {
	id string
}

// NewFixedTraceID creates a fixed trace id generator.
// If id is empty, Generate() returns "test-trace-default".
func NewFixedTraceID(id string) *FixedTraceID {
	if id == "" {
		id = "test-trace-default"
	}
	return &FixedTraceID{id: id}
}

// Generate returns the fixed trace id.
func (g *FixedTraceID) Generate() string {
	return g.id
}
