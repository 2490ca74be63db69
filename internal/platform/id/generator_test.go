package id

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator_NewID(t *testing.T) {
	t.Parallel()

	gen := NewUUIDGenerator()
	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	second, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct ids, got %s twice", first)
	}
	parsed, err := uuid.Parse(first)
	if err != nil {
		t.Fatalf("parse id %q: %v", first, err)
	}
	if parsed.Version() != 4 {
		t.Fatalf("unexpected uuid version: got=%d want=4", parsed.Version())
	}
}
