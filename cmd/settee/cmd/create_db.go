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
	"github.com/spf13/cobra"
)

type createDB struct {
	*root
}

func createDBCmd(r *root) *cobra.Command {
	c := &createDB{
		root: r,
	}
	cmd := &cobra.Command{
		Use:     "create-db NAME...",
		Aliases: []string{"createdb"},
		Short:   "Create one or more databases",
		Args:    cobra.MinimumNArgs(1),
		RunE:    c.RunE,
	}
	cmd.Flags().Int("parallel", 1, "Number of databases to create at once")
	return cmd
}

func (c *createDB) RunE(cmd *cobra.Command, args []string) error {
	server, err := c.client()
	if err != nil {
		return err
	}
	c.log.Debugf("[create-db] Will create %d database(s) on %s", len(args), server.BaseURL())
	return c.eachDB(cmd.Context(), args, "created", server.CreateDB)
}
