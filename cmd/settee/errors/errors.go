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

// Package errors maps settee failures to process exit codes.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/go-kivik/settee"
)

// Exit status codes
//
// See https://man.openbsd.org/sysexits.3
const (
	// ErrUsage indicates an incorrect command, option, or unparseable
	// configuration or command line options.
	ErrUsage = 2
	// ErrUnknown indicates that the server responded with an HTTP status > 500.
	// Probably an indication of a proxy server interfering.
	ErrUnknown = 3
	// ErrInternalServerError indicates that the server responded with a 500
	// error.
	ErrInternalServerError = 4

	// ErrBadRequest indicates that the server responded with a 400 error.
	ErrBadRequest = 10
	// ErrUnauthorized indicates that the server responded with a 401 error.
	ErrUnauthorized = 11
	// ErrForbidden indicates that the server responded with a 403 error.
	ErrForbidden = 13
	// ErrNotFound indicates that the server responded with a 404 error.
	ErrNotFound = 14
	// ErrConflict indicates that the server responded with a 409 error.
	ErrConflict = 19
	// ErrPreconditionFailed indicates that the server responded with a 412
	// error.
	ErrPreconditionFailed = 22

	// ErrUnavailable indicates that the server could not be reached, such as
	// a connection refused.
	ErrUnavailable = 69
	// ErrProtocol indicates a protocol error, such as a CouchDB server
	// returning a non-JSON response.
	ErrProtocol = 76
)

// exitError carries the process exit code for the error it wraps.
type exitError struct {
	error
	code int
}

func (e *exitError) Unwrap() error {
	return e.error
}

func (e *exitError) ExitStatus() int {
	return e.code
}

// WithCode wraps err with an exit code.
func WithCode(err error, code int) error {
	return &exitError{
		error: err,
		code:  code,
	}
}

// InspectErrorCode returns the exit code for err, or 0 if none can be
// determined.
func InspectErrorCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitStatus()
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return ErrUnavailable
	}

	jsonSyntax := new(json.SyntaxError)
	if errors.As(err, &jsonSyntax) {
		return ErrProtocol
	}

	switch settee.KindOf(err) {
	case settee.KindInvalidArgument:
		return ErrUsage
	case settee.KindTransport:
		return ErrProtocol
	case settee.KindRemote:
		return fromHTTPStatus(settee.HTTPStatus(err))
	}

	var coder interface {
		HTTPStatus() int
	}
	if errors.As(err, &coder) {
		return fromHTTPStatus(coder.HTTPStatus())
	}

	return 0
}

func fromHTTPStatus(status int) int {
	switch {
	case status == http.StatusInternalServerError:
		return ErrInternalServerError
	case status >= 400 && status < 500:
		return status - 390 // nolint:gomnd
	default:
		return ErrUnknown
	}
}

// Code attaches an exit code to err. A single error argument is wrapped; any
// other arguments are formatted with fmt.Sprint. A single nil argument
// yields nil.
func Code(code int, err ...interface{}) error {
	if len(err) == 1 {
		switch e := err[0].(type) {
		case nil:
			return nil
		case error:
			return WithCode(e, code)
		}
	}
	return WithCode(errors.New(fmt.Sprint(err...)), code)
}

// Codef attaches an exit code to the output of fmt.Errorf.
func Codef(code int, format string, args ...interface{}) error {
	return WithCode(fmt.Errorf(format, args...), code)
}
