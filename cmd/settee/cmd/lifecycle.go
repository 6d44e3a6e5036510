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

	"golang.org/x/sync/errgroup"

	"github.com/go-kivik/settee"
	"github.com/go-kivik/settee/cmd/settee/output"
)

type dbResult struct {
	DB     string      `json:"db"`
	Result interface{} `json:"result"`
}

// eachDB calls op once per name, running up to the configured number of
// calls at a time. Results are reported in argument order once all calls
// have succeeded. The first failure cancels calls not yet started.
func (r *root) eachDB(ctx context.Context, names []string, verb string, op func(context.Context, settee.DBRef) (interface{}, error)) error {
	results := make([]dbResult, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.conf.Parallel)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			return r.retry(ctx, func(ctx context.Context) error {
				res, err := op(ctx, settee.DBName(name))
				if err != nil {
					return err
				}
				r.log.Debugf("%s %s: %v", verb, name, res)
				results[i] = dbResult{DB: name, Result: res}
				return nil
			})
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	format := `{{ range . }}` + verb + ` database {{ .DB }}
{{ end }}`
	return r.fmt.Output(output.Friendly(format, results))
}
