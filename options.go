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
	"net/http"

	"github.com/go-kivik/settee/chttp"
	"github.com/go-kivik/settee/log"
)

// Option is a configuration option for [New] and [NewWithTransport].
type Option = chttp.Option

// OptionLogger sets the logger used for debug output by the Server and its
// transport.
func OptionLogger(l log.Logger) Option {
	return chttp.OptionLogger(l)
}

// OptionHTTPClient sets the *http.Client used by the transport created by
// [New].
func OptionHTTPClient(client *http.Client) Option {
	return chttp.OptionHTTPClient(client)
}

// OptionUserAgent appends ua to the User-Agent header of every request.
func OptionUserAgent(ua string) Option {
	return chttp.OptionUserAgent(ua)
}

// OptionRequestIDs tags each request with a random X-Request-ID header.
func OptionRequestIDs() Option {
	return chttp.OptionRequestIDs()
}

// BasicAuth authenticates every request with HTTP Basic Auth.
func BasicAuth(username, password string) Option {
	return chttp.BasicAuth(username, password)
}

// JWTAuth authenticates every request with a bearer token.
func JWTAuth(token string) Option {
	return chttp.JWTAuth(token)
}
