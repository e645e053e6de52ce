package pkguid

import "strconv"

// Prefixed turns a NumberID into a StringID by prepending a fixed prefix,
// e.g. "TXN" + 1234 -> "TXN1234".
type Prefixed struct {
	prefix string
	gen    NumberID
}

func NewPrefixed(prefix string, gen NumberID) *Prefixed {
	return &Prefixed{prefix: prefix, gen: gen}
}

// Generate returns the prefixed decimal form of the next numeric ID.
func (p *Prefixed) Generate() string {
	return p.prefix + strconv.FormatInt(p.gen.Generate(), 10)
}
