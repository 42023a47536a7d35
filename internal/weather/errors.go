package weather

import "errors"

// Service fails with an *Error whose Kind is one of these.
var (
	// ErrAddressNotFound means the geocoder found no results for the address.
	ErrAddressNotFound = errors.New("address not found")
	// ErrWeatherNotFound means a weather endpoint had no data for the location.
	ErrWeatherNotFound = errors.New("weather not found")
	// ErrService covers every other failure behind the service.
	ErrService = errors.New("weather service error")
)

// Error is the application-level failure returned by Service. The provider
// error that caused it is kept for logging but is not unwrappable, so callers
// only ever match on Kind.
type Error struct {
	Kind    error
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

// Cause returns the underlying provider or translation error.
func (e *Error) Cause() error { return e.cause }

func newError(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}
