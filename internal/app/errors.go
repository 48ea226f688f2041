package app

import "errors"

var (
	ErrNilEvent       = errors.New("app: nil event")
	ErrUnhandledEvent = errors.New("app: no handler for event")
	ErrEventRejected  = errors.New("app: event payload does not match its kind")
)
