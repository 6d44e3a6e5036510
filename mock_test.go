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
	"context"
	"net/http"
	"sync"

	"github.com/go-kivik/settee/chttp"
)

type call struct {
	Method string
	Path   string
}

// fakeTransport is a Transport double which serves canned responses and
// records every call made against it.
type fakeTransport struct {
	baseURL string
	status  int
	body    string
	err     error

	mu    sync.Mutex
	calls []call
}

var _ Transport = (*fakeTransport)(nil)

func newFake(status int, body string) *fakeTransport {
	return &fakeTransport{
		baseURL: "http://localhost:5984",
		status:  status,
		body:    body,
	}
}

func (t *fakeTransport) BaseURL() string {
	return t.baseURL
}

func (t *fakeTransport) do(ctx context.Context, method, path string) (*chttp.Response, error) {
	t.mu.Lock()
	t.calls = append(t.calls, call{Method: method, Path: path})
	t.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if t.err != nil {
		return nil, t.err
	}
	return &chttp.Response{
		StatusCode: t.status,
		Header:     http.Header{"Content-Type": {"application/json"}},
		Body:       []byte(t.body),
	}, nil
}

func (t *fakeTransport) Get(ctx context.Context, path string) (*chttp.Response, error) {
	return t.do(ctx, http.MethodGet, path)
}

func (t *fakeTransport) Put(ctx context.Context, path string) (*chttp.Response, error) {
	return t.do(ctx, http.MethodPut, path)
}

func (t *fakeTransport) Delete(ctx context.Context, path string) (*chttp.Response, error) {
	return t.do(ctx, http.MethodDelete, path)
}

func (t *fakeTransport) Calls() []call {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]call{}, t.calls...)
}
