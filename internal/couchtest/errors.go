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

package couchtest

import (
	"fmt"
	"net/http"
)

type couchError struct {
	status int
	Err    string `json:"error"`
	Reason string `json:"reason"`
}

func (e *couchError) Error() string {
	return e.Reason
}

func (e *couchError) HTTPStatus() int {
	return e.status
}

var (
	errNotFound = &couchError{
		status: http.StatusNotFound,
		Err:    "not_found",
		Reason: "Database does not exist.",
	}
	errFileExists = &couchError{
		status: http.StatusPreconditionFailed,
		Err:    "file_exists",
		Reason: "The database could not be created, the file already exists.",
	}
)

func illegalDBName(name string) error {
	return &couchError{
		status: http.StatusBadRequest,
		Err:    "illegal_database_name",
		Reason: fmt.Sprintf("Name: '%s'. Only lowercase characters (a-z), digits (0-9), and any of the characters _, $, (, ), +, -, and / are allowed. Must begin with a letter.", name),
	}
}
