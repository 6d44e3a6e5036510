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
	"net/url"

	internal "github.com/go-kivik/settee/internal/errors"
)

// DB is a handle to a single database. It is only an address: creating one
// performs no I/O, and two handles with the same base URL and name are
// interchangeable, and compare equal with ==.
type DB struct {
	baseURL string
	name    string
}

// Name returns the database name.
func (db DB) Name() string {
	return db.name
}

// BaseURL returns the base URL of the server the database lives on.
func (db DB) BaseURL() string {
	return db.baseURL
}

// URL returns the full URL of the database.
func (db DB) URL() string {
	return db.baseURL + "/" + url.PathEscape(db.name)
}

func (db DB) dbName() string {
	return db.name
}

// DBRef identifies a database, either by name ([DBName]) or by handle ([DB]).
// No other types implement DBRef.
type DBRef interface {
	dbName() string
}

var (
	_ DBRef = DBName("")
	_ DBRef = DB{}
)

// DBName identifies a database by name.
type DBName string

func (n DBName) dbName() string {
	return string(n)
}

// resolveName extracts the database name from ref. The name is otherwise
// passed to the server unvalidated.
func resolveName(ref DBRef) (string, error) {
	if ref == nil {
		return "", internal.MissingArg("database")
	}
	name := ref.dbName()
	if name == "" {
		return "", internal.MissingArg("dbName")
	}
	return name, nil
}
