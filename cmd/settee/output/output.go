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

// Package output renders command results in the format selected on the
// command line.
package output

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/spf13/pflag"

	"github.com/go-kivik/settee/cmd/settee/errors"
)

// Formatter manages output formatting.
type Formatter struct {
	mu         sync.Mutex
	formats    map[string]Format
	formatOpts []string
	out        io.Writer

	format string
}

// New returns an output formatter instance, writing to stdout.
func New() *Formatter {
	return &Formatter{
		formats: map[string]Format{},
		out:     os.Stdout,
	}
}

// Format is the output format interface.
type Format interface {
	Output(io.Writer, io.Reader) error
}

// FormatArg is an optional interface. If implemented by a formatter, it
// may receive an argument.
type FormatArg interface {
	Arg(string) error
	Required() bool
}

// Register registers an output formatter. The format registered with the
// empty name is the default.
func (f *Formatter) Register(name string, fmt Format) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.formats[name]; ok {
		panic(name + " already registered")
	}
	f.formats[name] = fmt
	if name != "" {
		f.formatOpts = append(f.formatOpts, formatOptions(name, fmt))
	}
}

func (f *Formatter) options() []string {
	if len(f.formats) == 0 {
		panic("no formatters registered")
	}
	return f.formatOpts
}

func formatOptions(name string, f Format) string {
	if argFmt, ok := f.(FormatArg); ok {
		if argFmt.Required() {
			return name + "=..."
		}
		return name + "[=...]"
	}
	return name
}

// ConfigFlags sets up the CLI flags based on the configured formatters.
func (f *Formatter) ConfigFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&f.format, "format", "f", "", "Output format. One of: "+strings.Join(f.options(), "|"))
}

// SetOut sets the destination for all output.
func (f *Formatter) SetOut(w io.Writer) {
	f.mu.Lock()
	f.out = w
	f.mu.Unlock()
}

// SetFormat selects the output format, as though given with --format.
func (f *Formatter) SetFormat(format string) {
	f.mu.Lock()
	f.format = format
	f.mu.Unlock()
}

// Validate reports a usage error if the selected format is not usable.
func (f *Formatter) Validate() error {
	_, err := f.formatter()
	return err
}

// Output renders r in the selected format. Output is serialized, so
// concurrent callers never interleave.
func (f *Formatter) Output(r io.Reader) error {
	fmt, err := f.formatter()
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := ensureNewlineEnding(f.out)
	defer out.Close() // nolint:errcheck
	return fmt.Output(out, r)
}

func (f *Formatter) formatter() (Format, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	args := strings.SplitN(f.format, "=", 2) //nolint:gomnd
	name := args[0]
	format, ok := f.formats[name]
	if !ok {
		return nil, errors.Codef(errors.ErrUsage, "unrecognized output format option: %s", name)
	}
	if fmtArg, ok := format.(FormatArg); ok {
		if fmtArg.Required() && len(args) == 1 {
			return nil, errors.Codef(errors.ErrUsage, "format %s requires an argument", name)
		}
		if len(args) > 1 {
			if err := fmtArg.Arg(args[1]); err != nil {
				return nil, errors.Code(errors.ErrUsage, err)
			}
		}
	} else if len(args) > 1 {
		return nil, errors.Codef(errors.ErrUsage, "format %s takes no arguments", name)
	}
	return format, nil
}

// OK reports a bare success.
func (f *Formatter) OK() error {
	result := Friendly(`OK`, map[string]bool{"ok": true})
	return f.Output(result)
}

func ensureNewlineEnding(w io.Writer) io.WriteCloser {
	return &addNewlineEnding{Writer: w}
}

type addNewlineEnding struct {
	io.Writer
	last byte
}

func (w *addNewlineEnding) Write(p []byte) (int, error) {
	if len(p) > 0 {
		w.last = p[len(p)-1]
	}
	return w.Writer.Write(p)
}

func (w *addNewlineEnding) Close() error {
	if w.last != '\n' {
		_, err := w.Writer.Write([]byte{'\n'})
		return err
	}
	return nil
}
