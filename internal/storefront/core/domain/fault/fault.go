// Package fault defines the error taxonomy shared by the gateways and the
// coordinator:
//
//   - Network: no response was received (DNS, connection refused, timeout).
//   - HTTPStatus: a non-2xx response, with the message extracted from the
//     body's "detail" field when one is present.
//   - Validation: a local precondition failure that never reaches the
//     network (empty cart, no file selected).
//
// Every fault is terminal for the workflow that raised it: nothing is
// retried automatically, and nothing is fatal to the process; the
// coordinator converts each one into a transient notification.
package fault

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind classifies a fault within the taxonomy.
type Kind string

const (
	Network    Kind = "NETWORK"
	HTTPStatus Kind = "HTTP_STATUS"
	Validation Kind = "VALIDATION"
)

// Fault is a terminal workflow error carrying a user-presentable message.
type Fault struct {
	Kind    Kind
	Status  int    // HTTP status code; set only for HTTPStatus faults
	Message string // human-readable cause shown to the user
	cause   error
}

func (f *Fault) Error() string { return f.Message }

func (f *Fault) Unwrap() error { return f.cause }

// FromNetwork wraps a transport-level error as a Network fault.
func FromNetwork(err error) *Fault {
	return &Fault{
		Kind:    Network,
		Message: fmt.Sprintf("no response from service: %v", err),
		cause:   err,
	}
}

// FromResponse builds an HTTPStatus fault from a non-2xx response. If the
// body is parseable JSON carrying a "detail" field, that field becomes the
// message; otherwise a generic status-code message is used.
func FromResponse(status int, body []byte) *Fault {
	msg := fmt.Sprintf("service responded with HTTP %d", status)
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		msg = payload.Detail
	}
	return &Fault{Kind: HTTPStatus, Status: status, Message: msg}
}

// FromValidation reports a local precondition failure.
func FromValidation(msg string) *Fault {
	return &Fault{Kind: Validation, Message: msg}
}

// KindOf classifies err, returning the empty Kind when err carries no Fault.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}
