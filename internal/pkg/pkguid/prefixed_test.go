package pkguid

import (
	"strings"
	"testing"
)

type counter struct {
	n int64
}

func (c *counter) Generate() int64 {
	c.n++
	return c.n
}

func TestPrefixedGenerate(t *testing.T) {
	gen := NewPrefixed("TXN", &counter{})
	if got := gen.Generate(); got != "TXN1" {
		t.Fatalf("expected TXN1, got %q", got)
	}
	if got := gen.Generate(); got != "TXN2" {
		t.Fatalf("expected TXN2, got %q", got)
	}
}

func TestPrefixedOverSnowflakeIsUnique(t *testing.T) {
	node, err := NewSnowflakeNode(7)
	if err != nil {
		t.Fatalf("NewSnowflakeNode: %v", err)
	}
	gen := NewPrefixed("REV", node)

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := gen.Generate()
		if !strings.HasPrefix(id, "REV") {
			t.Fatalf("expected REV prefix, got %q", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
}
