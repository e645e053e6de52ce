// Package pkgerror holds the structured error shared by every layer.
//
// An Error carries a user-facing message, a Type and a Code; handlers turn
// the Code into an HTTP status. Domain packages declare their sentinels as
// *Error values so callers can match them with errors.Is.
package pkgerror
