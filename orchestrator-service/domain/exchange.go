package domain

import (
	"errors"
	"net/http"
)

var ErrEmptyBody = errors.New("empty response body")

// Exchange is the transport outcome of one outbound call. StatusCode is 0
// when no response arrived.
type Exchange struct {
	StatusCode int
	Err        error
}

// OK reports a 200 response with a usable body
func (e Exchange) OK() bool {
	return e.Err == nil && e.StatusCode == http.StatusOK
}
