package testutil

// FixedIDGenerator returns the same operation id every time, so log
// output in tests is reproducible.
//
// Thread-safety: FixedIDGenerator is stateless and safe for concurrent use.
type FixedIDGenerator struct {
	id string
}

// NewFixedIDGenerator creates a generator for id.
// If id is empty, Generate() returns "test-op-default".
func NewFixedIDGenerator(id string) *FixedIDGenerator {
	if id == "" {
		id = "test-op-default"
	}
	return &FixedIDGenerator{id: id}
}

// Generate returns the fixed id.
func (g *FixedIDGenerator) Generate() string {
	return g.id
}
