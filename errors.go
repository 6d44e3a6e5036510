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

package settee

import (
	"errors"

	internal "github.com/go-kivik/settee/internal/errors"
)

// Error is the error type returned by all settee operations. Use
// [errors.As] to inspect it, or the helper functions below.
type Error = internal.Error

// Kind classifies an [Error].
type Kind = internal.Kind

// Error kinds.
const (
	// KindUnknown is reported for errors not produced by settee.
	KindUnknown = internal.KindUnknown
	// KindRemote is a failure reported by the server in the response body.
	// Retrying will not help without changing the request.
	KindRemote = internal.KindRemote
	// KindTransport is a failure to complete the request or to decode the
	// response. These are often transient.
	KindTransport = internal.KindTransport
	// KindInvalidArgument is a problem with the caller's input, detected
	// before any request was made.
	KindInvalidArgument = internal.KindInvalidArgument
)

// HTTPStatus returns the HTTP status code embedded in the error, or 500
// (internal server error), if there was no specified status code. If err is
// nil, HTTPStatus returns 0.
func HTTPStatus(err error) int {
	return internal.HTTPStatus(err)
}

// KindOf returns the kind of err.
func KindOf(err error) Kind {
	return internal.KindOf(err)
}

// IsRemoteError returns true if err was reported by the server.
func IsRemoteError(err error) bool {
	return KindOf(err) == KindRemote
}

// IsTransportError returns true if err is a network, read or decode failure.
func IsTransportError(err error) bool {
	return KindOf(err) == KindTransport
}

// IsInvalidArgument returns true if err is due to invalid local input.
func IsInvalidArgument(err error) bool {
	return KindOf(err) == KindInvalidArgument
}

// ResponseBody returns the raw server response carried by err, if any.
func ResponseBody(err error) string {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return ""
		}
		if e.Body != "" {
			return e.Body
		}
		err = e.Err
	}
	return ""
}
