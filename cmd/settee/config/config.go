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

// Package config loads CLI settings from a YAML file, the environment and
// command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/go-kivik/settee"
	clierrors "github.com/go-kivik/settee/cmd/settee/errors"
	"github.com/go-kivik/settee/log"
)

const envPrefix = "SETTEE"

// DefaultFile is the config file read when --config is not given.
const DefaultFile = "~/.settee.yaml"

// Config is the full CLI configuration.
type Config struct {
	URL            string        `mapstructure:"url" validate:"required"`
	User           string        `mapstructure:"user" validate:"required_with=Password"`
	Password       string        `mapstructure:"password"`
	Token          string        `mapstructure:"token" validate:"excluded_with=User"`
	RequestTimeout time.Duration `mapstructure:"request-timeout" validate:"gte=0"`
	Retry          int           `mapstructure:"retry" validate:"gte=-1"`
	RetryDelay     time.Duration `mapstructure:"retry-delay" validate:"gte=0"`
	RetryTimeout   time.Duration `mapstructure:"retry-timeout" validate:"gte=0"`
	Parallel       int           `mapstructure:"parallel" validate:"gte=1,lte=64"`
	RequestIDs     bool          `mapstructure:"request-ids"`
}

// keys are bound to the environment explicitly, so that values set only in
// the environment are seen by Unmarshal.
var keys = []string{
	"url", "user", "password", "token", "request-timeout",
	"retry", "retry-delay", "retry-timeout", "parallel", "request-ids",
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads the configuration. Values are taken, in order of precedence,
// from changed flags in fs, SETTEE_* environment variables, filename, and
// the flag defaults. A missing file is only an error when filename is not
// DefaultFile.
func Load(filename string, fs *pflag.FlagSet, lg log.Logger) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, clierrors.Code(clierrors.ErrUsage, err)
		}
	}
	v.SetDefault("url", settee.DefaultURL)
	v.SetDefault("parallel", 1)

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, clierrors.Code(clierrors.ErrUsage, err)
		}
	}

	if err := readFile(v, filename, lg); err != nil {
		return nil, err
	}

	conf := &Config{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, clierrors.Code(clierrors.ErrUsage, err)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func readFile(v *viper.Viper, filename string, lg log.Logger) error {
	if filename == "" {
		lg.Debug("no config file specified")
		return nil
	}
	path := ResolveHome(filename)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) && filename == DefaultFile {
			lg.Debugf("no config file at %s", path)
			return nil
		}
		lg.Debugf("failed to read config: %s", err)
		return clierrors.Code(clierrors.ErrUsage, err)
	}
	lg.Debugf("successfully read config file %q", path)
	return nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return clierrors.Codef(clierrors.ErrUsage, "invalid configuration: %s failed on %s", strings.ToLower(fe.Field()), fe.Tag())
	}
	return clierrors.Code(clierrors.ErrUsage, err)
}

// Options returns the settee options described by the configuration.
func (c *Config) Options() []settee.Option {
	var opts []settee.Option
	switch {
	case c.Token != "":
		opts = append(opts, settee.JWTAuth(c.Token))
	case c.User != "":
		opts = append(opts, settee.BasicAuth(c.User, c.Password))
	}
	if c.RequestIDs {
		opts = append(opts, settee.OptionRequestIDs())
	}
	return opts
}

// String returns the configuration with secrets masked, for debug logs.
func (c *Config) String() string {
	password := ""
	if c.Password != "" {
		password = "*****"
	}
	return fmt.Sprintf("url=%s user=%s password=%s request-timeout=%s retry=%d parallel=%d",
		c.URL, c.User, password, c.RequestTimeout, c.Retry, c.Parallel)
}

// ResolveHome expands a leading ~/ in path to the current user's home
// directory.
func ResolveHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	usr, err := user.Current()
	if err != nil {
		return path
	}
	return filepath.Join(usr.HomeDir, path[2:])
}
