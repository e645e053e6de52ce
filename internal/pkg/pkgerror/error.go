package pkgerror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned by stores for a missing account or transaction.
// Callers translate it into their own domain sentinel.
var ErrNotFound = errors.New("resource not found")

// Type is the broad class of an error.
type Type int

const (
	TypeServer Type = iota
	TypeBusiness
	TypeValidation
)

func (t Type) String() string {
	switch t {
	case TypeValidation:
		return "ERROR_TYPE_VALIDATION"
	case TypeBusiness:
		return "ERROR_TYPE_BUSINESS"
	case TypeServer:
		return "ERROR_TYPE_SERVER"
	default:
		return "ERROR_TYPE_UNKNOWN"
	}
}

// Code is the stable identifier sent to clients in the error body.
type Code int

const (
	CodeInternal Code = iota
	CodeInvalidFormat
	CodeInvalidInput
	CodeNotFound
	CodeConflict          // ledger state forbids the operation, e.g. already reversed
	CodeInsufficientFunds // debit larger than the available balance
)

var codes = map[Code]struct {
	name   string
	status int
}{
	CodeInternal:          {"ERROR_CODE_INTERNAL", http.StatusInternalServerError},
	CodeInvalidFormat:     {"ERROR_CODE_INVALID_FORMAT", http.StatusBadRequest},
	CodeInvalidInput:      {"ERROR_CODE_INVALID_INPUT", http.StatusUnprocessableEntity},
	CodeNotFound:          {"ERROR_CODE_NOT_FOUND", http.StatusNotFound},
	CodeConflict:          {"ERROR_CODE_CONFLICT", http.StatusConflict},
	CodeInsufficientFunds: {"ERROR_CODE_INSUFFICIENT_FUNDS", http.StatusConflict},
}

func (c Code) String() string {
	if m, ok := codes[c]; ok {
		return m.name
	}
	return codes[CodeInternal].name
}

// Error carries a client-facing message, a type and a code, optionally
// wrapping the cause.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
}

func (e *Error) Error() string {
	switch {
	case e.err != nil:
		return e.err.Error()
	case e.msg != "":
		return e.msg
	case e.errType == TypeValidation:
		return "invalid request"
	case e.errType == TypeBusiness:
		return "operation rejected by ledger rules"
	default:
		return "internal error"
	}
}

// String is the verbose form used in server logs.
func (e *Error) String() string {
	return fmt.Sprintf("type=%s code=%s msg=%q cause=%v", e.errType, e.code, e.msg, e.err)
}

func (e *Error) Msg() string   { return e.msg }
func (e *Error) Type() Type    { return e.errType }
func (e *Error) Code() Code    { return e.code }
func (e *Error) Unwrap() error { return e.err }

// StatusCode maps the code to an HTTP status. Unknown codes are 500.
func (e *Error) StatusCode() int {
	if m, ok := codes[e.code]; ok {
		return m.status
	}
	return http.StatusInternalServerError
}

func new(err error, msg string, et Type, code Code) error {
	return &Error{err: err, msg: msg, errType: et, code: code}
}

// NewServer hides err from clients behind a generic message.
func NewServer(err error) error {
	return new(err, "Internal server error", TypeServer, CodeInternal)
}

// NewBusiness reports a ledger rule violation, e.g. an overdraw.
func NewBusiness(msg string, code Code) error {
	return new(nil, msg, TypeBusiness, code)
}

// NewInvalidInput wraps err so errors.Is still matches the domain sentinel.
func NewInvalidInput(err error) error {
	return new(err, "validation error", TypeValidation, CodeInvalidInput)
}

func NewValidation(msg string) error {
	return new(nil, msg, TypeValidation, CodeInvalidInput)
}

func NewInvalidFormat() error {
	return new(nil, "invalid request body", TypeValidation, CodeInvalidFormat)
}
