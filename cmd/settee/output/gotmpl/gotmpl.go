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

// Package gotmpl renders output through a user-supplied Go template, given
// as --format go-template=TEMPLATE.
package gotmpl

import (
	"encoding/json"
	"io"
	"strings"
	"text/template"

	"github.com/go-kivik/settee/cmd/settee/output"
)

var funcs = template.FuncMap{
	"join":  joinAll,
	"upper": strings.ToUpper,
}

// joinAll joins the elements of a decoded JSON array with sep.
func joinAll(sep string, list []interface{}) string {
	parts := make([]string, len(list))
	for i, v := range list {
		if s, ok := v.(string); ok {
			parts[i] = s
			continue
		}
		b, _ := json.Marshal(v)
		parts[i] = string(b)
	}
	return strings.Join(parts, sep)
}

type format struct {
	tmpl *template.Template
}

var _ output.FormatArg = &format{}

// New returns a go-template formatter. Templates may call join and upper,
// in addition to the standard template functions.
func New() output.Format {
	return &format{}
}

func (format) Required() bool { return true }

func (f *format) Arg(arg string) error {
	tmpl, err := template.New("").Funcs(funcs).Parse(arg)
	if err != nil {
		return err
	}
	f.tmpl = tmpl
	return nil
}

func (f *format) Output(w io.Writer, r io.Reader) error {
	var result interface{}
	if err := json.NewDecoder(r).Decode(&result); err != nil {
		return err
	}
	return f.tmpl.Execute(w, result)
}
