package pkgerror

import "errors"

type Code int

const (
	CodeInternal Code = iota
	CodeInvalidInput
	CodeNotFound
	CodeUnavailable
)

const MsgInternal = "Something went wrong. Please try again."

// Error is a business error whose message is safe to show to callers.
type Error struct {
	msg  string
	code Code
}

func NewBusiness(msg string, code Code) *Error {
	return &Error{msg: msg, code: code}
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Code() Code { return e.code }

// As returns the business error wrapped in err, if any.
func As(err error) (*Error, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
