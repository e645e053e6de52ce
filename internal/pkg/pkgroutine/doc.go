// Package pkgroutine runs background work with a bounded number of
// goroutines. Errors are collected for Wait and panics are logged.
package pkgroutine
