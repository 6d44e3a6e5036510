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

package chttp

import (
	"encoding/json"
	"net/http"

	internal "github.com/go-kivik/settee/internal/errors"
)

// Response is the result of a single HTTP call. The body has already been
// read in full, and the underlying connection released.
type Response struct {
	StatusCode int
	Header     http.Header

	// Body is the raw response body.
	Body []byte
}

// Raw returns the response body as text.
func (r *Response) Raw() string {
	return string(r.Body)
}

// Success reports whether the HTTP status indicates success.
func (r *Response) Success() bool {
	return r.StatusCode < http.StatusBadRequest
}

// Decode returns the best-effort JSON decoding of the body: an object
// decodes to map[string]interface{}, an array to []interface{}, and so on.
// A body which is not valid JSON results in a transport error carrying the
// raw body.
func (r *Response) Decode() (interface{}, error) {
	var v interface{}
	if err := r.DecodeJSON(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// DecodeJSON unmarshals the response body into i.
func (r *Response) DecodeJSON(i interface{}) error {
	if err := json.Unmarshal(r.Body, i); err != nil {
		status := http.StatusBadGateway
		if !r.Success() {
			status = r.StatusCode
		}
		return &internal.Error{
			Kind:    internal.KindTransport,
			Status:  status,
			Message: "settee: invalid JSON response",
			Body:    r.Raw(),
			Err:     err,
		}
	}
	return nil
}
