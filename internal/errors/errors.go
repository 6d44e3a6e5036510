// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//  http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

// Package errors provides the error type shared by settee and its HTTP
// transport.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an [Error].
type Kind int

const (
	// KindUnknown is reported for errors not produced by settee.
	KindUnknown Kind = iota
	// KindRemote means the server answered the request, but reported a
	// failure in the response body.
	KindRemote
	// KindTransport means the request could not be completed, or the response
	// could not be decoded.
	KindTransport
	// KindInvalidArgument means the caller supplied unusable input.
	KindInvalidArgument
)

func (k Kind) String() string {
	switch k {
	case KindRemote:
		return "remote"
	case KindTransport:
		return "transport"
	case KindInvalidArgument:
		return "invalid argument"
	}
	return "unknown"
}

// Error is the error type returned by settee.
type Error struct {
	Kind Kind

	// Op is the label of the attempted operation, such as "create" or "list".
	Op string

	// Status is the HTTP status associated with the error. When zero, a
	// default for Kind is reported by HTTPStatus.
	Status int

	// Body is the raw response body, verbatim, if one was received.
	Body string

	// Message is a human-readable summary.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	parts := make([]string, 0, 3) // nolint:gomnd
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	if body := strings.TrimRight(e.Body, "\r\n"); body != "" {
		parts = append(parts, body)
	}
	if len(parts) == 0 {
		return http.StatusText(e.HTTPStatus())
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status embedded in the error.
func (e *Error) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	switch e.Kind {
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindTransport:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// HTTPStatus returns the HTTP status code embedded in err. If err is nil, 0
// is returned. If err carries no status, 500 is returned.
func HTTPStatus(err error) int {
	if err == nil {
		return 0
	}
	var coder interface {
		HTTPStatus() int
	}
	if errors.As(err, &coder) {
		return coder.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// KindOf returns the Kind of the outermost *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// MissingArg returns an invalid argument error for a required argument.
func MissingArg(arg string) error {
	return &Error{
		Kind:    KindInvalidArgument,
		Message: fmt.Sprintf("settee: %s required", arg),
	}
}

// Transport wraps err as a transport error, preserving any status it
// already carries.
func Transport(err error) error {
	if err == nil {
		return nil
	}
	status := http.StatusBadGateway
	if s := HTTPStatus(err); s != http.StatusInternalServerError {
		status = s
	}
	return &Error{
		Kind:   KindTransport,
		Status: status,
		Err:    err,
	}
}
