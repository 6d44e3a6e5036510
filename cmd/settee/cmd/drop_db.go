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

type dropDB struct {
	*root
}

func dropDBCmd(r *root) *cobra.Command {
	c := &dropDB{
		root: r,
	}
	cmd := &cobra.Command{
		Use:     "drop-db NAME...",
		Aliases: []string{"dropdb", "delete-db"},
		Short:   "Drop one or more databases",
		Args:    cobra.MinimumNArgs(1),
		RunE:    c.RunE,
	}
	cmd.Flags().Int("parallel", 1, "Number of databases to drop at once")
	return cmd
}

func (c *dropDB) RunE(cmd *cobra.Command, args []string) error {
	server, err := c.client()
	if err != nil {
		return err
	}
	c.log.Debugf("[drop-db] Will drop %d database(s) on %s", len(args), server.BaseURL())
	return c.eachDB(cmd.Context(), args, "dropped", server.DestroyDB)
}
