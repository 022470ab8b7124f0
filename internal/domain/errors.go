package domain

import "errors"

var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrApplicationMismatch = errors.New("application id mismatch")
	ErrUnknownIntent       = errors.New("unknown intent")
	ErrInvalidSelection    = errors.New("selection out of range")
	ErrNoLinkedAccount     = errors.New("no linked account")
)

// RemoteError marks a failed record-store call. Handlers recover it into an
// apologetic spoken response instead of surfacing it to the platform.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
