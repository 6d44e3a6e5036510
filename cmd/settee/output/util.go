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

package output

import (
	"bytes"
	"encoding/json"
	"io"
	"text/template"
)

// JSONReader returns a reader over the JSON encoding of i. An encoding
// failure is returned by the first Read.
func JSONReader(i interface{}) io.Reader {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(i); err != nil {
		return &errReader{err: err}
	}
	return buf
}

type errReader struct {
	err error
}

func (r *errReader) Read([]byte) (int, error) {
	return 0, r.err
}

// FriendlyOutput is a result that can render itself for humans, and is
// also readable as JSON for the machine-readable formats.
type FriendlyOutput interface {
	io.Reader
	Execute(io.Writer) error
}

type friendly struct {
	io.Reader
	data interface{}
	tmpl *template.Template
}

var _ FriendlyOutput = &friendly{}

// Friendly returns data as a FriendlyOutput. The text format renders it
// with tmpl; all other formats read its JSON encoding.
func Friendly(tmpl string, data interface{}) FriendlyOutput {
	return &friendly{
		Reader: JSONReader(data),
		data:   data,
		tmpl:   template.Must(template.New("").Parse(tmpl)),
	}
}

func (f *friendly) Execute(w io.Writer) error {
	return f.tmpl.Execute(w, f.data)
}
