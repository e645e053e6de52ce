package pkguid

// StringID produces identifiers such as correlation, event and transaction ids.
type StringID interface {
	Generate() string
}

// NumberID produces strictly positive numeric identifiers.
type NumberID interface {
	Generate() int64
}

var (
	_ StringID = (*UUID)(nil)
	_ StringID = (*Prefixed)(nil)
	_ NumberID = (*Snowflake)(nil)
)
