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

// Package couchtest provides an in-memory stand-in for the database lifecycle
// endpoints of a CouchDB server, for use in tests.
package couchtest

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"sort"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"gitlab.com/flimzy/httpe"
)

// Version is the CouchDB version reported by GET /.
const Version = "3.3.3"

var validDBName = regexp.MustCompile(`^[a-z][a-z0-9_$()+/-]*$`)

// Server is an in-memory CouchDB stand-in. It serves GET /, GET /_all_dbs,
// and GET, PUT and DELETE on /{db}. The zero value is not usable; call New.
type Server struct {
	mux *chi.Mux

	mu       sync.Mutex
	dbs      map[string]struct{}
	injected map[string][]canned
	requests int
}

type canned struct {
	status int
	body   string
}

// New returns a new, empty server.
func New() *Server {
	s := &Server{
		mux:      chi.NewMux(),
		dbs:      map[string]struct{}{},
		injected: map[string][]canned{},
	}
	s.routes(s.mux)
	return s
}

// Start starts an HTTP server backed by a new Server, which is closed when
// the test completes.
func Start(t testing.TB) (*httptest.Server, *Server) {
	t.Helper()
	s := New()
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)
	return srv, s
}

func (s *Server) routes(mux *chi.Mux) {
	mux.Use(
		s.count,
		s.inject,
		httpe.ToMiddleware(s.handleErrors),
	)
	mux.Get("/", httpe.ToHandler(s.root()).ServeHTTP)
	mux.Get("/_all_dbs", httpe.ToHandler(s.allDBs()).ServeHTTP)
	mux.Get("/{db}", httpe.ToHandler(s.getDB()).ServeHTTP)
	mux.Put("/{db}", httpe.ToHandler(s.createDB()).ServeHTTP)
	mux.Delete("/{db}", httpe.ToHandler(s.destroyDB()).ServeHTTP)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Inject queues a canned response for the next request matching method and
// path. Canned responses are served in the order they were injected, before
// any normal handling takes place.
func (s *Server) Inject(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := method + " " + path
	s.injected[key] = append(s.injected[key], canned{status: status, body: body})
}

// Requests returns the number of requests served so far.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// DBs returns the sorted list of existing databases.
func (s *Server) DBs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	dbs := make([]string, 0, len(s.dbs))
	for name := range s.dbs {
		dbs = append(dbs, name)
	}
	sort.Strings(dbs)
	return dbs
}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests++
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) inject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		s.mu.Lock()
		queue := s.injected[key]
		var resp *canned
		if len(queue) > 0 {
			resp = &queue[0]
			s.injected[key] = queue[1:]
		}
		s.mu.Unlock()
		if resp == nil {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.status)
		_, _ = io.WriteString(w, resp.body)
	})
}

func (s *Server) handleErrors(next httpe.HandlerWithError) httpe.HandlerWithError {
	return httpe.HandlerWithErrorFunc(func(w http.ResponseWriter, r *http.Request) error {
		if err := next.ServeHTTPWithError(w, r); err != nil {
			ce := &couchError{}
			if !errors.As(err, &ce) {
				ce = &couchError{
					status: http.StatusInternalServerError,
					Err:    "unknown_error",
					Reason: err.Error(),
				}
			}
			return serveJSON(w, ce.status, ce)
		}
		return nil
	})
}

func serveJSON(w http.ResponseWriter, status int, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = io.Copy(w, bytes.NewReader(append(body, '\n')))
	return err
}

func dbName(r *http.Request) (string, error) {
	name, err := url.PathUnescape(chi.URLParam(r, "db"))
	if err != nil {
		return "", &couchError{status: http.StatusBadRequest, Err: "bad_request", Reason: err.Error()}
	}
	return name, nil
}

func (s *Server) root() httpe.HandlerWithError {
	vendor := map[string]string{"name": "The Apache Software Foundation"}
	features := []string{"access-ready", "partitioned", "pluggable-storage-engines", "scheduler"}
	return httpe.HandlerWithErrorFunc(func(w http.ResponseWriter, _ *http.Request) error {
		return serveJSON(w, http.StatusOK, map[string]interface{}{
			"couchdb":  "Welcome",
			"version":  Version,
			"features": features,
			"vendor":   vendor,
		})
	})
}

func (s *Server) allDBs() httpe.HandlerWithError {
	return httpe.HandlerWithErrorFunc(func(w http.ResponseWriter, _ *http.Request) error {
		return serveJSON(w, http.StatusOK, s.DBs())
	})
}

func (s *Server) getDB() httpe.HandlerWithError {
	return httpe.HandlerWithErrorFunc(func(w http.ResponseWriter, r *http.Request) error {
		name, err := dbName(r)
		if err != nil {
			return err
		}
		s.mu.Lock()
		_, ok := s.dbs[name]
		s.mu.Unlock()
		if !ok {
			return errNotFound
		}
		return serveJSON(w, http.StatusOK, map[string]interface{}{
			"db_name":       name,
			"doc_count":     0,
			"doc_del_count": 0,
		})
	})
}

func (s *Server) createDB() httpe.HandlerWithError {
	return httpe.HandlerWithErrorFunc(func(w http.ResponseWriter, r *http.Request) error {
		name, err := dbName(r)
		if err != nil {
			return err
		}
		if !validDBName.MatchString(name) {
			return illegalDBName(name)
		}
		s.mu.Lock()
		_, exists := s.dbs[name]
		if !exists {
			s.dbs[name] = struct{}{}
		}
		s.mu.Unlock()
		if exists {
			return errFileExists
		}
		return serveJSON(w, http.StatusCreated, map[string]bool{"ok": true})
	})
}

func (s *Server) destroyDB() httpe.HandlerWithError {
	return httpe.HandlerWithErrorFunc(func(w http.ResponseWriter, r *http.Request) error {
		name, err := dbName(r)
		if err != nil {
			return err
		}
		s.mu.Lock()
		_, exists := s.dbs[name]
		delete(s.dbs, name)
		s.mu.Unlock()
		if !exists {
			return errNotFound
		}
		return serveJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
}
