package errors

import (
	goerrors "errors"
)

// AsError returns the first *Error in err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if goerrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Unwrap passes through to the standard library.
func Unwrap(err error) error {
	return goerrors.Unwrap(err)
}

// Is reports whether any error in err's chain matches target. Two *Error
// values match on code and message.
func Is(err, target error) bool {
	return goerrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return goerrors.As(err, target)
}

// Join wraps errs, discarding nils. It returns nil when nothing is left,
// which lets fan-out code return Join(errs...) directly.
func Join(errs ...error) error {
	return goerrors.Join(errs...)
}
