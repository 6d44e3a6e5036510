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

// Package cmd implements the settee command tree.
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"

	"github.com/go-kivik/settee"
	"github.com/go-kivik/settee/cmd/settee/config"
	"github.com/go-kivik/settee/cmd/settee/errors"
	"github.com/go-kivik/settee/cmd/settee/output"
	"github.com/go-kivik/settee/cmd/settee/output/gotmpl"
	"github.com/go-kivik/settee/cmd/settee/output/json"
	"github.com/go-kivik/settee/cmd/settee/output/text"
	"github.com/go-kivik/settee/cmd/settee/output/yaml"
	"github.com/go-kivik/settee/log"
)

type root struct {
	confFile string
	debug    bool
	log      log.Logger
	conf     *config.Config
	cmd      *cobra.Command
	fmt      *output.Formatter

	// zeroDelay is set when --retry-delay 0 was given explicitly, which
	// disables the default exponential backoff.
	zeroDelay bool
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) int {
	lg := log.New()
	root := rootCmd(lg)
	return root.execute(ctx)
}

func (r *root) execute(ctx context.Context) int {
	err := r.cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	return extractExitCode(err)
}

func extractExitCode(err error) int {
	if code := errors.InspectErrorCode(err); code != 0 {
		return code
	}

	// Any unhandled errors are assumed to be from Cobra, so return a "failed
	// to initialize" error
	return errors.ErrUsage
}

func formatter() *output.Formatter {
	f := output.New()
	f.Register("", text.New())
	f.Register("text", text.New())
	f.Register("json", json.New())
	f.Register("yaml", yaml.New())
	f.Register("go-template", gotmpl.New())
	return f
}

func rootCmd(lg log.Logger) *root {
	r := &root{
		log: lg,
		fmt: formatter(),
	}
	r.cmd = &cobra.Command{
		Use:               "settee",
		Short:             "settee manages the databases of a CouchDB server",
		Long:              `This tool creates, drops and lists the databases of a CouchDB server.`,
		PersistentPreRunE: r.init,
	}

	pf := r.cmd.PersistentFlags()

	r.fmt.ConfigFlags(pf)
	pf.StringVar(&r.confFile, "config", config.DefaultFile, "Path to config file to use for CLI requests")
	pf.BoolVarP(&r.debug, "debug", "d", false, "Enable debug output")
	pf.StringP("url", "u", settee.DefaultURL, "CouchDB server URL")
	pf.Bool("request-ids", false, "Send a unique X-Request-ID header with each request")
	pf.Int("retry", 0, "In case of transient error, retry up to this many times. A negative value retries forever.")
	pf.Duration("request-timeout", 0, "The time limit for each request.")
	pf.Duration("retry-delay", 0, "Delay between retry attempts. Disables the default exponential backoff algorithm.")
	pf.Duration("retry-timeout", 0, "When used with --retry, no more retries will be attempted after this timeout.")

	r.cmd.AddCommand(createDBCmd(r))
	r.cmd.AddCommand(dropDBCmd(r))
	r.cmd.AddCommand(listDBsCmd(r))
	r.cmd.AddCommand(dbExistsCmd(r))
	r.cmd.AddCommand(versionCmd(r))

	return r
}

func (r *root) init(cmd *cobra.Command, _ []string) error {
	r.log.SetOut(cmd.OutOrStdout())
	r.log.SetErr(cmd.ErrOrStderr())
	r.log.SetDebug(r.debug)
	r.fmt.SetOut(cmd.OutOrStdout())

	r.log.Debug("Debug mode enabled")

	if err := r.fmt.Validate(); err != nil {
		return err
	}

	conf, err := config.Load(r.confFile, cmd.Flags(), r.log)
	if err != nil {
		return err
	}
	r.conf = conf
	r.zeroDelay = cmd.Flags().Changed("retry-delay") && conf.RetryDelay == 0
	r.log.Debugf("config: %s", conf)

	cmd.SilenceUsage = true
	return nil
}

func (r *root) client() (*settee.Server, error) {
	opts := append(r.conf.Options(),
		settee.OptionLogger(r.log),
		settee.OptionUserAgent("settee-cli/"+settee.SetteeVersion),
	)
	s, err := settee.New(r.conf.URL, opts...)
	if err != nil {
		return nil, errors.Code(errors.ErrUsage, err)
	}
	return s, nil
}

// withTimeout calls fn, bounded by the configured request timeout.
func (r *root) withTimeout(ctx context.Context, fn func(context.Context) error) error {
	if r.conf.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.conf.RequestTimeout)
		defer cancel()
	}
	return fn(ctx)
}

// retry calls fn, retrying transport failures as configured. Remote and
// invalid argument errors are never retried.
func (r *root) retry(ctx context.Context, fn func(context.Context) error) error {
	if r.conf.Retry == 0 {
		return r.withTimeout(ctx, fn)
	}
	var bo backoff.BackOff
	switch {
	case r.zeroDelay:
		bo = &backoff.ZeroBackOff{}
	case r.conf.RetryDelay > 0:
		bo = backoff.NewConstantBackOff(r.conf.RetryDelay)
	default:
		bo = backoff.NewExponentialBackOff()
	}
	if r.conf.Retry > 0 {
		bo = backoff.WithMaxRetries(bo, uint64(r.conf.Retry))
	}
	if r.conf.RetryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.conf.RetryTimeout)
		defer cancel()
	}
	bo = backoff.WithContext(bo, ctx)
	var last error
	err := backoff.RetryNotify(func() error {
		last = r.withTimeout(ctx, fn)
		if last != nil && !settee.IsTransportError(last) {
			return backoff.Permanent(last)
		}
		return last
	}, bo, func(err error, next time.Duration) {
		r.log.Infof("Warning: Transient problem: %s. Will retry in %s.", err, fmtDuration(next))
	})
	// When the retry timeout expires, report the last failure rather than
	// the expired context.
	if err != nil && last != nil && ctx.Err() != nil {
		return last
	}
	return err
}

// nolint:gomnd
func fmtDuration(dur time.Duration) string {
	s := dur.Seconds()
	if s < 60 {
		return fmt.Sprintf("%0.2fs", s)
	}
	m := int(s / 60)
	s -= float64(m) * 60
	if m < 60 {
		return fmt.Sprintf("%dm%ds", m, int(s))
	}
	h := m / 60
	m -= h * 60
	if h < 24 {
		return fmt.Sprintf("%dh%dm", h, m)
	}
	d := h / 24
	h -= d * 24
	return fmt.Sprintf("%dd%dh%dm", d, h, m)
}
