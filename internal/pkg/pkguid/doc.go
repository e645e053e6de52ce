// Package pkguid provides helpers for generating unique identifiers.
//
// String IDs come from UUIDs (correlation and event ids) or from a prefixed
// Snowflake sequence (ledger transaction ids such as "TXN..." and "REV...").
package pkguid
