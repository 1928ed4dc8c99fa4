package teslamate

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoVehicles indicates the API returned an empty vehicle list.
var ErrNoVehicles = errors.New("no vehicles returned by the API")

// ErrMalformedResponse indicates a response body was valid JSON but lacked an expected member.
var ErrMalformedResponse = errors.New("response is missing expected fields")

// HTTPError reports a non-200 response.
type HTTPError struct {
	Endpoint string
	Code     int
	Body     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s returned status code %d (%s)", e.Endpoint, e.Code, http.StatusText(e.Code))
}

// Kind classifies failures that did not produce an HTTP status.
type Kind int

const (
	KindTransport Kind = iota // The request could not be sent or the body could not be read.
	KindDecode                // The body was not valid JSON for the expected type.
	KindMalformed             // The body decoded but lacked a required member.
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	case KindMalformed:
		return "malformed"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// QueryError wraps an unexpected failure of a single query.
type QueryError struct {
	Endpoint string
	Kind     Kind
	Err      error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s error querying %s: %s", e.Kind, e.Endpoint, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code carried by err, if any.
func StatusCode(err error) (int, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, true
	}
	return 0, false
}

// IsKind reports whether err is a QueryError of the given kind.
func IsKind(err error, kind Kind) bool {
	var queryErr *QueryError
	return errors.As(err, &queryErr) && queryErr.Kind == kind
}
