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

	"github.com/go-kivik/settee"
	"github.com/go-kivik/settee/cmd/settee/output"
)

type dbExists struct {
	*root
}

func dbExistsCmd(r *root) *cobra.Command {
	c := &dbExists{
		root: r,
	}
	return &cobra.Command{
		Use:   "db-exists NAME",
		Short: "Report whether a database exists",
		Args:  cobra.ExactArgs(1),
		RunE:  c.RunE,
	}
}

func (c *dbExists) RunE(cmd *cobra.Command, args []string) error {
	server, err := c.client()
	if err != nil {
		return err
	}

	data := struct {
		DB     string `json:"db"`
		Exists bool   `json:"exists"`
	}{
		DB: args[0],
	}
	err = c.retry(cmd.Context(), func(ctx context.Context) error {
		var err error
		data.Exists, err = server.DBExists(ctx, settee.DBName(data.DB))
		return err
	})
	if err != nil {
		return err
	}

	format := `{{ .DB }} {{ if .Exists }}exists{{ else }}does not exist{{ end }}`
	result := output.Friendly(format, data)
	return c.fmt.Output(result)
}
