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

package cmd

import (
	"context"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/go-kivik/settee"
	"github.com/go-kivik/settee/cmd/settee/output"
)

type version struct {
	*root
	clientOnly bool
}

func versionCmd(r *root) *cobra.Command {
	c := &version{
		root: r,
	}
	cmd := &cobra.Command{
		Use:     "version",
		Aliases: []string{"ver"},
		Short:   "Print client and server version information",
		Args:    cobra.NoArgs,
		RunE:    c.RunE,
	}
	cmd.Flags().BoolVar(&c.clientOnly, "client", false, "Print only the client version")
	return cmd
}

type serverVersion struct {
	Version  string   `json:"version"`
	Vendor   string   `json:"vendor"`
	Features []string `json:"features"`
}

func (c *version) RunE(cmd *cobra.Command, _ []string) error {
	data := struct {
		Version   string         `json:"version"`
		GoVersion string         `json:"goVersion"`
		GOARCH    string         `json:"GOARCH"`
		GOOS      string         `json:"GOOS"`
		Server    *serverVersion `json:"server,omitempty"`
	}{
		Version:   settee.SetteeVersion,
		GoVersion: runtime.Version(),
		GOOS:      runtime.GOOS,
		GOARCH:    runtime.GOARCH,
	}

	if !c.clientOnly {
		server, err := c.client()
		if err != nil {
			return err
		}
		err = c.retry(cmd.Context(), func(ctx context.Context) error {
			v, err := server.Version(ctx)
			if err != nil {
				return err
			}
			data.Server = &serverVersion{
				Version:  v.Version,
				Vendor:   v.Vendor,
				Features: v.Features,
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	format := `settee version {{ .Version }} {{ .GoVersion }} {{ .GOOS }}/{{ .GOARCH }}
{{- with .Server }}
server version {{ .Version }} ({{ .Vendor }})
{{- end }}`
	result := output.Friendly(format, data)
	return c.fmt.Output(result)
}
