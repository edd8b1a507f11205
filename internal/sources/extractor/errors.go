package extractor

import (
	"errors"
	"fmt"
)

// MessageKey is the catalog key shown to the user for any lookup failure.
const MessageKey = "errorLookup"

// ErrLookupFailed matches every *LookupError via errors.Is.
var ErrLookupFailed = errors.New("video lookup failed")

// LookupError reports why a lookup failed. Upstream carries the server's own
// message, if any; it is meant for logs, never for the UI.
type LookupError struct {
	Reason   string
	Upstream string
	Err      error
}

func (e *LookupError) Error() string {
	msg := "video lookup failed: " + e.Reason
	if e.Upstream != "" {
		msg += fmt.Sprintf(" (server: %s)", e.Upstream)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LookupError) Unwrap() error { return e.Err }

func (e *LookupError) Is(target error) bool { return target == ErrLookupFailed }

// MessageKey returns the localizable message key.
func (e *LookupError) MessageKey() string { return MessageKey }

func lookupErr(reason string, err error) *LookupError {
	return &LookupError{Reason: reason, Err: err}
}
