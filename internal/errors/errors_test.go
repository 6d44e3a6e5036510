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

package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"gitlab.com/flimzy/testy"
)

func TestErrorString(t *testing.T) {
	type tt struct {
		err  *Error
		want string
	}

	tests := testy.NewTable()
	tests.Add("empty", tt{
		err:  &Error{},
		want: "Internal Server Error",
	})
	tests.Add("empty transport", tt{
		err:  &Error{Kind: KindTransport},
		want: "Bad Gateway",
	})
	tests.Add("message only", tt{
		err:  &Error{Message: "settee: dbName required"},
		want: "settee: dbName required",
	})
	tests.Add("remote with body", tt{
		err: &Error{
			Kind:    KindRemote,
			Message: "settee: could not create database",
			Body:    `{"error":"file_exists"}` + "\n",
		},
		want: `settee: could not create database: {"error":"file_exists"}`,
	})
	tests.Add("cause and body", tt{
		err: &Error{
			Kind:    KindTransport,
			Message: "settee: could not get list of databases",
			Err:     errors.New("invalid character '<'"),
			Body:    "<html>",
		},
		want: "settee: could not get list of databases: invalid character '<': <html>",
	})

	tests.Run(t, func(t *testing.T, tt tt) {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("want %q, got %q", tt.want, got)
		}
	})
}

func TestHTTPStatus(t *testing.T) {
	type tt struct {
		err  error
		want int
	}

	tests := testy.NewTable()
	tests.Add("nil", tt{
		err:  nil,
		want: 0,
	})
	tests.Add("plain", tt{
		err:  errors.New("foo"),
		want: http.StatusInternalServerError,
	})
	tests.Add("invalid argument", tt{
		err:  MissingArg("dbName"),
		want: http.StatusBadRequest,
	})
	tests.Add("explicit status", tt{
		err:  &Error{Kind: KindRemote, Status: http.StatusPreconditionFailed},
		want: http.StatusPreconditionFailed,
	})
	tests.Add("wrapped", tt{
		err:  fmt.Errorf("oink: %w", &Error{Kind: KindTransport}),
		want: http.StatusBadGateway,
	})

	tests.Run(t, func(t *testing.T, tt tt) {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("want %d, got %d", tt.want, got)
		}
	})
}

func TestKindOf(t *testing.T) {
	if k := KindOf(errors.New("foo")); k != KindUnknown {
		t.Errorf("unexpected kind: %s", k)
	}
	if k := KindOf(MissingArg("x")); k != KindInvalidArgument {
		t.Errorf("unexpected kind: %s", k)
	}
	if k := KindOf(fmt.Errorf("x: %w", Transport(errors.New("net error")))); k != KindTransport {
		t.Errorf("unexpected kind: %s", k)
	}
}

func TestTransport(t *testing.T) {
	if err := Transport(nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	err := Transport(&Error{Kind: KindInvalidArgument})
	if status := HTTPStatus(err); status != http.StatusBadRequest {
		t.Errorf("embedded status should be kept, got %d", status)
	}
	err = Transport(errors.New("connection refused"))
	if status := HTTPStatus(err); status != http.StatusBadGateway {
		t.Errorf("unexpected status %d", status)
	}
	testy.Error(t, "connection refused", err)
}
