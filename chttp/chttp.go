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

// Package chttp provides a minimal HTTP transport for communicating with
// CouchDB servers.
package chttp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/net/publicsuffix"

	internal "github.com/go-kivik/settee/internal/errors"
	"github.com/go-kivik/settee/log"
)

const typeJSON = "application/json"

// DefaultURL is the server address used when none is given.
const DefaultURL = "http://127.0.0.1:5984"

// The default UserAgent values
const (
	UserAgent = "Settee chttp"
	Version   = "0.1.0"
)

// HeaderRequestID is the header carrying the per-request ID, when enabled
// with [OptionRequestIDs].
const HeaderRequestID = "X-Request-ID"

// Client is an HTTP transport bound to a single CouchDB server. A Client is
// safe for concurrent use.
type Client struct {
	// UserAgents is appended to set the User-Agent header. Typically it should
	// contain pairs of product name and version.
	UserAgents []string

	client     *http.Client
	rawDSN     string
	dsn        *url.URL
	auth       authenticator
	requestIDs bool
	log        log.Logger
}

// New returns a transport for the CouchDB server at dsn. Trailing slashes and
// spaces are stripped from dsn, and an empty dsn means [DefaultURL]. If
// credentials are included in the URL, requests are authenticated with HTTP
// Basic Auth, unless another authentication option is passed.
func New(dsn string, options ...Option) (*Client, error) {
	dsnURL, err := parseDSN(dsn)
	if err != nil {
		return nil, err
	}
	user := dsnURL.User
	dsnURL.User = nil
	c := &Client{
		UserAgents: []string{fmt.Sprintf("Settee/%s", Version)},
		client:     defaultHTTPClient(),
		rawDSN:     dsn,
		dsn:        dsnURL,
		log:        log.Nil(),
	}
	for _, opt := range options {
		if opt != nil {
			opt.Apply(c)
		}
	}
	if c.auth == nil && user != nil {
		password, _ := user.Password()
		c.auth = &basicAuth{
			Username: user.Username(),
			Password: password,
		}
	}
	if c.auth != nil {
		if err := c.auth.Authenticate(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func defaultHTTPClient() *http.Client {
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	return &http.Client{Jar: jar}
}

// NormalizeURL strips trailing slashes and spaces from dsn, substituting
// [DefaultURL] when nothing remains.
func NormalizeURL(dsn string) string {
	dsn = strings.TrimRight(dsn, " /")
	if dsn == "" {
		return DefaultURL
	}
	return dsn
}

func parseDSN(dsn string) (*url.URL, error) {
	dsn = NormalizeURL(dsn)
	if !strings.HasPrefix(dsn, "http://") && !strings.HasPrefix(dsn, "https://") {
		dsn = "http://" + dsn
	}
	dsnURL, err := url.Parse(dsn)
	if err != nil {
		return nil, &internal.Error{Kind: internal.KindInvalidArgument, Message: "settee: invalid URL", Err: err}
	}
	if dsnURL.Host == "" {
		return nil, &internal.Error{Kind: internal.KindInvalidArgument, Message: fmt.Sprintf("settee: no host in URL %q", dsn)}
	}
	dsnURL.RawQuery = ""
	dsnURL.Fragment = ""
	return dsnURL, nil
}

// DSN returns the unparsed DSN used to connect.
func (c *Client) DSN() string {
	return c.rawDSN
}

// BaseURL returns the normalized server URL, without credentials. It never
// changes over the life of the Client.
func (c *Client) BaseURL() string {
	return c.dsn.String()
}

// Get performs a GET request against path, relative to the base URL.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.DoReq(ctx, http.MethodGet, path)
}

// Put performs a PUT request against path, relative to the base URL.
func (c *Client) Put(ctx context.Context, path string) (*Response, error) {
	return c.DoReq(ctx, http.MethodPut, path)
}

// Delete performs a DELETE request against path, relative to the base URL.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.DoReq(ctx, http.MethodDelete, path)
}

// NewRequest returns a new *http.Request to the CouchDB server for path,
// which must already be escaped.
func (c *Client) NewRequest(ctx context.Context, method, path string) (*http.Request, error) {
	target := c.BaseURL() + "/" + strings.TrimPrefix(path, "/")
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, &internal.Error{
			Kind: internal.KindInvalidArgument,
			Err:  errors.Wrap(err, "chttp: build request"),
		}
	}
	req.Header.Set("Accept", typeJSON)
	req.Header.Set("User-Agent", c.userAgent())
	if c.requestIDs {
		req.Header.Set(HeaderRequestID, uuid.NewString())
	}
	return req, nil
}

// DoReq does an HTTP request, and reads the full response body. An error is
// returned only if the request could not be completed. In particular, an
// error status code, such as 400 or 500, does _not_ cause an error to be
// returned.
func (c *Client) DoReq(ctx context.Context, method, path string) (*Response, error) {
	if method == "" {
		return nil, internal.MissingArg("method")
	}
	req, err := c.NewRequest(ctx, method, path)
	if err != nil {
		return nil, err
	}
	c.logRequest(req)
	res, err := c.client.Do(req)
	if err != nil {
		c.log.Debugf("< %s", err)
		return nil, netError(err)
	}
	defer CloseBody(res.Body)
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, internal.Transport(errors.Wrap(err, "chttp: read response body"))
	}
	c.log.Debugf("< %s", res.Status)
	return &Response{
		StatusCode: res.StatusCode,
		Header:     res.Header,
		Body:       body,
	}, nil
}

func (c *Client) logRequest(req *http.Request) {
	if id := req.Header.Get(HeaderRequestID); id != "" {
		c.log.Debugf("> %s %s [%s]", req.Method, req.URL, id)
		return
	}
	c.log.Debugf("> %s %s", req.Method, req.URL)
}

func netError(err error) error {
	if err == nil {
		return nil
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &internal.Error{
			Kind:   internal.KindTransport,
			Status: http.StatusBadGateway,
			Err:    err,
		}
	}
	return internal.Transport(err)
}

// CloseBody drains and closes body, ignoring any errors.
func CloseBody(body io.ReadCloser) {
	if body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}

func (c *Client) userAgent() string {
	ua := fmt.Sprintf("%s/%s (Language=%s; Platform=%s/%s)",
		UserAgent, Version, runtime.Version(), runtime.GOARCH, runtime.GOOS)
	return strings.Join(append([]string{ua}, c.UserAgents...), " ")
}
