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

	"github.com/go-kivik/settee/log"
)

// Option is a configuration option. Each option knows which targets it
// applies to, and silently ignores all others.
type Option interface {
	Apply(target interface{})
}

type optionHTTPClient struct {
	*http.Client
}

func (o optionHTTPClient) Apply(target interface{}) {
	if client, ok := target.(*Client); ok && o.Client != nil {
		client.client = o.Client
	}
}

func (o optionHTTPClient) String() string {
	return fmt.Sprintf("[HTTPClient:%p]", o.Client)
}

// OptionHTTPClient sets the *http.Client used for all requests. Timeouts
// and cancellation beyond the request context are configured here.
func OptionHTTPClient(client *http.Client) Option {
	return optionHTTPClient{Client: client}
}

type optionUserAgent string

func (a optionUserAgent) Apply(target interface{}) {
	if client, ok := target.(*Client); ok {
		client.UserAgents = append(client.UserAgents, string(a))
	}
}

func (a optionUserAgent) String() string {
	return fmt.Sprintf("[UserAgent:%s]", string(a))
}

// OptionUserAgent appends ua to the default User-Agent header sent on all
// requests.
func OptionUserAgent(ua string) Option {
	return optionUserAgent(ua)
}

type optionRequestIDs struct{}

func (optionRequestIDs) Apply(target interface{}) {
	if client, ok := target.(*Client); ok {
		client.requestIDs = true
	}
}

func (optionRequestIDs) String() string { return "[RequestIDs]" }

// OptionRequestIDs sets a random X-Request-ID header on each request, and
// includes it in debug logs.
func OptionRequestIDs() Option {
	return optionRequestIDs{}
}

type optionLogger struct {
	log.Logger
}

func (o optionLogger) Apply(target interface{}) {
	if o.Logger == nil {
		return
	}
	switch t := target.(type) {
	case *Client:
		t.log = o.Logger
	case *log.Logger:
		*t = o.Logger
	}
}

func (optionLogger) String() string { return "[Logger]" }

// OptionLogger sets the logger used for debug output.
func OptionLogger(l log.Logger) Option {
	return optionLogger{Logger: l}
}
