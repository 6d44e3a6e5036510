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

	"github.com/spf13/cobra"

	"github.com/go-kivik/settee/cmd/settee/output"
)

type listDBs struct {
	*root
}

func listDBsCmd(r *root) *cobra.Command {
	c := &listDBs{
		root: r,
	}
	return &cobra.Command{
		Use:     "list-dbs",
		Aliases: []string{"all-dbs", "alldbs"},
		Short:   "List all databases",
		Args:    cobra.NoArgs,
		RunE:    c.RunE,
	}
}

func (c *listDBs) RunE(cmd *cobra.Command, _ []string) error {
	server, err := c.client()
	if err != nil {
		return err
	}

	var dbs []string
	err = c.retry(cmd.Context(), func(ctx context.Context) error {
		var err error
		dbs, err = server.AllDBs(ctx)
		return err
	})
	if err != nil {
		return err
	}

	format := `{{ range . }}{{ . }}
{{ end }}`
	result := output.Friendly(format, dbs)
	return c.fmt.Output(result)
}
