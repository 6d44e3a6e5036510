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
	"fmt"
	"net/http"
	"strings"
)

type authenticator interface {
	Authenticate(*Client) error
}

// wrapTransport wraps the round tripper of a copy of the client's
// *http.Client, leaving a caller-supplied client untouched.
func wrapTransport(c *Client, wrap func(http.RoundTripper) http.RoundTripper) {
	hc := *c.client
	next := hc.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	hc.Transport = wrap(next)
	c.client = &hc
}

type basicAuth struct {
	Username string
	Password string

	transport http.RoundTripper
}

var (
	_ authenticator = &basicAuth{}
	_ Option        = (*basicAuth)(nil)
)

// BasicAuth provides HTTP Basic Auth for a client. It takes precedence over
// credentials included in the DSN.
func BasicAuth(username, password string) Option {
	return &basicAuth{
		Username: username,
		Password: password,
	}
}

func (a *basicAuth) Apply(target interface{}) {
	if client, ok := target.(*Client); ok {
		// Clone, so the same option may be passed to many clients.
		client.auth = &basicAuth{
			Username: a.Username,
			Password: a.Password,
		}
	}
}

func (a *basicAuth) String() string {
	return fmt.Sprintf("[BasicAuth{user:%s,pass:%s}]", a.Username, strings.Repeat("*", len(a.Password)))
}

// RoundTrip fulfills the http.RoundTripper interface. It sets HTTP Basic Auth
// on outbound requests.
func (a *basicAuth) RoundTrip(req *http.Request) (*http.Response, error) {
	req.SetBasicAuth(a.Username, a.Password)
	return a.transport.RoundTrip(req)
}

// Authenticate sets HTTP Basic Auth headers for the client.
func (a *basicAuth) Authenticate(c *Client) error {
	wrapTransport(c, func(next http.RoundTripper) http.RoundTripper {
		a.transport = next
		return a
	})
	return nil
}

type jwtAuth struct {
	Token string

	transport http.RoundTripper
}

var (
	_ authenticator = &jwtAuth{}
	_ Option        = (*jwtAuth)(nil)
)

// JWTAuth provides JWT based auth for a client.
func JWTAuth(token string) Option {
	return &jwtAuth{
		Token: token,
	}
}

func (a *jwtAuth) Apply(target interface{}) {
	if client, ok := target.(*Client); ok {
		client.auth = &jwtAuth{
			Token: a.Token,
		}
	}
}

func (a *jwtAuth) String() string {
	token := a.Token
	const unmaskedLen = 3
	if len(token) > unmaskedLen {
		token = token[:unmaskedLen] + strings.Repeat("*", len(token)-unmaskedLen)
	}
	return fmt.Sprintf("[JWTAuth{token:%s}]", token)
}

// RoundTrip satisfies the http.RoundTripper interface.
func (a *jwtAuth) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+a.Token)
	return a.transport.RoundTrip(req)
}

// Authenticate installs the bearer token on the client.
func (a *jwtAuth) Authenticate(c *Client) error {
	wrapTransport(c, func(next http.RoundTripper) http.RoundTripper {
		a.transport = next
		return a
	})
	return nil
}
