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
	"net/url"

	"github.com/go-kivik/settee/chttp"
	"github.com/go-kivik/settee/log"
)

// Transport is the HTTP surface a Server depends on. Paths are relative to
// the base URL and already escaped. A Transport must be safe for concurrent
// use. [*chttp.Client] implements Transport.
type Transport interface {
	BaseURL() string
	Get(ctx context.Context, path string) (*chttp.Response, error)
	Put(ctx context.Context, path string) (*chttp.Response, error)
	Delete(ctx context.Context, path string) (*chttp.Response, error)
}

var _ Transport = (*chttp.Client)(nil)

// Server is a connection to a CouchDB server. It holds no state beyond its
// base URL and transport, and is safe for concurrent use.
type Server struct {
	baseURL   string
	transport Transport
	log       log.Logger
}

// New returns a connection to the CouchDB server at dsn, using a new
// [chttp.Client] as its transport. An empty dsn connects to [DefaultURL].
func New(dsn string, options ...Option) (*Server, error) {
	client, err := chttp.New(dsn, options...)
	if err != nil {
		return nil, err
	}
	return NewWithTransport(client, options...), nil
}

// NewWithTransport returns a connection which performs all requests with t.
// The connection's base URL is taken from t.
func NewWithTransport(t Transport, options ...Option) *Server {
	s := &Server{
		baseURL:   chttp.NormalizeURL(t.BaseURL()),
		transport: t,
		log:       log.Nil(),
	}
	for _, opt := range options {
		if opt != nil {
			opt.Apply(&s.log)
		}
	}
	return s
}

// BaseURL returns the normalized base URL of the server.
func (s *Server) BaseURL() string {
	return s.baseURL
}

// DB returns a handle to the named database. No request is made, and the
// database need not exist.
func (s *Server) DB(dbName string) DB {
	return DB{
		baseURL: s.baseURL,
		name:    dbName,
	}
}

// CreateDB creates the database identified by db, and returns the decoded
// server response.
func (s *Server) CreateDB(ctx context.Context, db DBRef) (interface{}, error) {
	name, err := resolveName(db)
	if err != nil {
		return nil, err
	}
	s.log.Debugf("create database %q", name)
	res, err := s.transport.Put(ctx, url.PathEscape(name))
	return lifecycleResult(opCreate, res, err)
}

// DestroyDB drops the database identified by db, and returns the decoded
// server response.
func (s *Server) DestroyDB(ctx context.Context, db DBRef) (interface{}, error) {
	name, err := resolveName(db)
	if err != nil {
		return nil, err
	}
	s.log.Debugf("drop database %q", name)
	res, err := s.transport.Delete(ctx, url.PathEscape(name))
	return lifecycleResult(opDrop, res, err)
}

func lifecycleResult(op string, res *chttp.Response, err error) (interface{}, error) {
	if err != nil {
		return nil, opError(op, err)
	}
	decoded, err := res.Decode()
	if err != nil {
		return nil, opError(op, err)
	}
	if attrError(decoded) {
		return nil, remoteError(op, res)
	}
	return decoded, nil
}

// AllDBs returns the names of all databases on the server, in the order the
// server lists them.
func (s *Server) AllDBs(ctx context.Context) ([]string, error) {
	s.log.Debug("list databases")
	res, err := s.transport.Get(ctx, "_all_dbs")
	if err != nil {
		return nil, opError(opList, err)
	}
	decoded, err := res.Decode()
	if err != nil {
		return nil, opError(opList, err)
	}
	if keyError(decoded) {
		return nil, remoteError(opList, res)
	}
	list, ok := decoded.([]interface{})
	if !ok {
		return nil, opError(opList, unexpectedResponse(res, "array of database names"))
	}
	names := make([]string, 0, len(list))
	for _, v := range list {
		name, ok := v.(string)
		if !ok {
			return nil, opError(opList, unexpectedResponse(res, "array of database names"))
		}
		names = append(names, name)
	}
	return names, nil
}

// DBExists returns true if the database identified by db exists.
func (s *Server) DBExists(ctx context.Context, db DBRef) (bool, error) {
	name, err := resolveName(db)
	if err != nil {
		return false, err
	}
	s.log.Debugf("check database %q", name)
	res, err := s.transport.Get(ctx, url.PathEscape(name))
	if err != nil {
		return false, opError(opExists, err)
	}
	decoded, err := res.Decode()
	if err != nil {
		return false, opError(opExists, err)
	}
	if attrError(decoded) {
		if errorValue(decoded) == "not_found" {
			return false, nil
		}
		return false, remoteError(opExists, res)
	}
	return true, nil
}
