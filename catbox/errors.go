package catbox

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthenticationRequired is returned when an operation that needs a
	// userhash is called on a Client that does not hold one.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrMissingField is returned when a required request field is empty.
	ErrMissingField = errors.New("required field is empty")

	// ErrUnsupportedRequest is returned for a Request the encoder does not know.
	ErrUnsupportedRequest = errors.New("unsupported request type")
)

// ValidationError is a local failure detected before any network call.
type ValidationError struct {
	Operation RequestType
	Field     string
	Err       error
}

func (e *ValidationError) Error() string {
	if e.Operation == "" {
		return fmt.Sprintf("catbox: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("catbox %s: %s: %v", e.Operation, e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// TransportError reports a failed exchange with the Catbox endpoint. Either
// StatusCode is set (the server answered outside 2xx) or Err holds the
// underlying network failure.
type TransportError struct {
	StatusCode int
	Status     string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catbox API request failed: %v", e.Err)
	}
	return fmt.Sprintf("catbox API request failed: API error: %s", e.Status)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsAuthenticationRequired reports whether err was caused by a missing userhash.
func IsAuthenticationRequired(err error) bool {
	return errors.Is(err, ErrAuthenticationRequired)
}

// StatusCode returns the HTTP status carried by a TransportError in err's
// chain, or 0 when there is none.
func StatusCode(err error) int {
	var te *TransportError
	if errors.As(err, &te) {
		return te.StatusCode
	}
	return 0
}
