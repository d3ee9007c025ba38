package types

import "errors"

// Error kinds. Concrete errors returned by this package wrap one of these,
// so callers classify failures with errors.Is.
var (
	ErrInvalidFormat = errors.New("invalid format")
	ErrNotFound      = errors.New("not found")
)

// Field and record errors.
var (
	ErrInvalidPhone    = kindError(ErrInvalidFormat, "phone number must contain exactly 10 digits")
	ErrInvalidBirthday = kindError(ErrInvalidFormat, "invalid date format, use DD.MM.YYYY")
	ErrEmptyName       = kindError(ErrInvalidFormat, "contact name must not be empty")
	ErrPhoneNotFound   = kindError(ErrNotFound, "phone number not found")
	ErrContactNotFound = kindError(ErrNotFound, "contact not found")
)

// kindedError carries its own message and unwraps to an error kind.
type kindedError struct {
	kind error
	msg  string
}

func kindError(kind error, msg string) error {
	return &kindedError{kind: kind, msg: msg}
}

func (e *kindedError) Error() string { return e.msg }
func (e *kindedError) Unwrap() error { return e.kind }
