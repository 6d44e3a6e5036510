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
	"fmt"
	"net/http"

	"github.com/go-kivik/settee/chttp"
	internal "github.com/go-kivik/settee/internal/errors"
)

// Operation labels, as reported in [Error.Op].
const (
	opCreate  = "create"
	opDrop    = "drop"
	opList    = "list"
	opExists  = "exists"
	opVersion = "version"
)

var opMessages = map[string]string{
	opCreate:  "settee: could not create database",
	opDrop:    "settee: could not drop database",
	opList:    "settee: could not get list of databases",
	opExists:  "settee: could not check database",
	opVersion: "settee: could not get server version",
}

// attrError reports whether decoded is a JSON object whose error member is
// truthy. The member name is matched exactly. It is the failure test for
// create, drop, exists and version.
func attrError(decoded interface{}) bool {
	obj, ok := decoded.(map[string]interface{})
	if !ok {
		return false
	}
	return truthy(obj["error"])
}

// errorValue returns the error member of decoded as a string.
func errorValue(decoded interface{}) string {
	obj, _ := decoded.(map[string]interface{})
	if s, ok := obj["error"].(string); ok {
		return s
	}
	return fmt.Sprint(obj["error"])
}

// keyError reports whether decoded is an object whose exact "error" key is
// truthy. It is the failure test for list.
//
// TODO: Confirm against live servers whether the two error shapes ever
// differ in practice, and merge keyError into attrError if not.
func keyError(decoded interface{}) bool {
	obj, ok := decoded.(map[string]interface{})
	if !ok {
		return false
	}
	return truthy(obj["error"])
}

// truthy reports whether a decoded JSON value is non-empty: null, false, 0,
// "", "0" and [] are falsy. Any object, even {}, is truthy.
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != "" && t != "0"
	case []interface{}:
		return len(t) > 0
	}
	return true
}

func remoteError(op string, res *chttp.Response) error {
	var status int
	if !res.Success() {
		status = res.StatusCode
	}
	return &internal.Error{
		Kind:    internal.KindRemote,
		Op:      op,
		Status:  status,
		Message: opMessages[op],
		Body:    res.Raw(),
	}
}

// opError labels a failure which did not come from the server's error field.
func opError(op string, err error) error {
	kind := internal.KindOf(err)
	status := internal.HTTPStatus(err)
	if kind == internal.KindUnknown {
		kind = internal.KindTransport
		if status == http.StatusInternalServerError {
			status = http.StatusBadGateway
		}
	}
	return &internal.Error{
		Kind:    kind,
		Op:      op,
		Status:  status,
		Message: opMessages[op],
		Err:     err,
	}
}

func unexpectedResponse(res *chttp.Response, want string) error {
	return &internal.Error{
		Kind:    internal.KindTransport,
		Status:  http.StatusBadGateway,
		Message: "settee: unexpected response, expected " + want,
		Body:    res.Raw(),
	}
}
