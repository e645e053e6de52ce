package pkguid

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerate(t *testing.T) {
	gen := NewUUID()

	first, err := uuid.Parse(gen.Generate())
	if err != nil {
		t.Fatalf("expected valid uuid: %v", err)
	}
	if first.Version() != 7 {
		t.Fatalf("expected version 7, got %d", first.Version())
	}

	second, _ := uuid.Parse(gen.Generate())
	if first == second {
		t.Fatal("expected distinct ids")
	}
	if second.String() < first.String() {
		t.Fatalf("expected time ordered ids, got %s after %s", second, first)
	}
}
