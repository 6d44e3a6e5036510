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
	"fmt"
	"net/http"
	"testing"

	"gitlab.com/flimzy/testy"
)

func TestKindHelpers(t *testing.T) {
	type tt struct {
		err       error
		remote    bool
		transport bool
		invalid   bool
	}

	tests := testy.NewTable()
	tests.Add("nil", tt{})
	tests.Add("plain", tt{
		err: errors.New("foo"),
	})
	tests.Add("remote", tt{
		err:    &Error{Kind: KindRemote},
		remote: true,
	})
	tests.Add("wrapped transport", tt{
		err:       fmt.Errorf("oink: %w", &Error{Kind: KindTransport}),
		transport: true,
	})
	tests.Add("invalid argument", tt{
		err:     &Error{Kind: KindInvalidArgument},
		invalid: true,
	})

	tests.Run(t, func(t *testing.T, tt tt) {
		if got := IsRemoteError(tt.err); got != tt.remote {
			t.Errorf("IsRemoteError: want %t, got %t", tt.remote, got)
		}
		if got := IsTransportError(tt.err); got != tt.transport {
			t.Errorf("IsTransportError: want %t, got %t", tt.transport, got)
		}
		if got := IsInvalidArgument(tt.err); got != tt.invalid {
			t.Errorf("IsInvalidArgument: want %t, got %t", tt.invalid, got)
		}
	})
}

func TestResponseBody(t *testing.T) {
	type tt struct {
		err  error
		want string
	}

	tests := testy.NewTable()
	tests.Add("nil", tt{})
	tests.Add("plain", tt{
		err: errors.New("foo"),
	})
	tests.Add("direct", tt{
		err:  &Error{Kind: KindRemote, Body: `{"error":"conflict"}`},
		want: `{"error":"conflict"}`,
	})
	tests.Add("nested", tt{
		err: &Error{
			Kind:    KindTransport,
			Message: "settee: could not drop database",
			Err:     &Error{Kind: KindTransport, Body: "<html>"},
		},
		want: "<html>",
	})
	tests.Add("wrapped", tt{
		err:  fmt.Errorf("oink: %w", &Error{Body: "[]"}),
		want: "[]",
	})

	tests.Run(t, func(t *testing.T, tt tt) {
		if got := ResponseBody(tt.err); got != tt.want {
			t.Errorf("want %q, got %q", tt.want, got)
		}
	})
}

func TestHTTPStatusDefaults(t *testing.T) {
	if got := HTTPStatus(nil); got != 0 {
		t.Errorf("nil: got %d", got)
	}
	if got := HTTPStatus(&Error{Kind: KindRemote}); got != http.StatusInternalServerError {
		t.Errorf("remote: got %d", got)
	}
	if got := HTTPStatus(&Error{Kind: KindTransport}); got != http.StatusBadGateway {
		t.Errorf("transport: got %d", got)
	}
}
