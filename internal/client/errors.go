package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/buger/jsonparser"
)

var errNotJSON = errors.New("response body is not JSON")

// HTTPStatusError is a non-2xx answer. Message is the backend's "message"
// field and is empty when the body carried none.
type HTTPStatusError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "http request failed"
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Status, e.Message)
	}
	if e.Status != "" {
		return e.Status
	}
	return "http request failed"
}

// TransportError means no usable JSON answer arrived: the dial failed, the
// request timed out or the body was not JSON.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if e == nil {
		return "transport failed"
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func IsHTTPStatus(err error) bool {
	var statusErr *HTTPStatusError
	return errors.As(err, &statusErr)
}

func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

// MessageOf returns the text a notification should show for err. A status
// error without a backend message falls back to its status line.
func MessageOf(err error) string {
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		if statusErr.Message != "" {
			return statusErr.Message
		}
		return statusErr.Status
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

func newHTTPStatusError(resp *http.Response, body []byte) *HTTPStatusError {
	status := resp.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	message, err := jsonparser.GetString(body, "message")
	if err != nil {
		message = ""
	}
	return &HTTPStatusError{StatusCode: resp.StatusCode, Status: status, Message: message}
}
