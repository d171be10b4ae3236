// Package config resolves CLI settings from flags, SYQGEN_* environment
// variables, an optional config file, and defaults, in that precedence.
package config

import (
	"net"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/goliatone/go-syqgen/pkg/render"
)

const EnvPrefix = "SYQGEN"

// Keys shared by flags, environment variables and config files.
const (
	KeyMode     = "mode"
	KeyElide    = "elide"
	KeyIndent   = "indent"
	KeyVariable = "variable"
	KeyFragment = "fragment"
	KeyMinify   = "minify"
	KeySanitize = "sanitize"
	KeyListen   = "listen"
	KeyDebounce = "debounce"
	KeyLogJSON  = "log_json"
)

// Config is the resolved CLI configuration.
type Config struct {
	Mode     string        `mapstructure:"mode" validate:"oneof=inline hoist"`
	Elide    []string      `mapstructure:"elide" validate:"dive,oneof=head body title"`
	Indent   int           `mapstructure:"indent" validate:"gte=1,lte=8"`
	Variable string        `mapstructure:"variable" validate:"omitempty,max=64"`
	Fragment bool          `mapstructure:"fragment"`
	Minify   bool          `mapstructure:"minify"`
	Sanitize bool          `mapstructure:"sanitize"`
	Listen   string        `mapstructure:"listen" validate:"required"`
	Debounce time.Duration `mapstructure:"debounce" validate:"gte=0,lte=10s"`
	LogJSON  bool          `mapstructure:"log_json"`
}

// SetDefaults configures default values for every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyMode, string(render.EmbedInline))
	v.SetDefault(KeyElide, []string{})
	v.SetDefault(KeyIndent, render.DefaultIndentWidth)
	v.SetDefault(KeyVariable, "")
	v.SetDefault(KeyFragment, false)
	v.SetDefault(KeyMinify, false)
	v.SetDefault(KeySanitize, true)
	v.SetDefault(KeyListen, "127.0.0.1:8080")
	v.SetDefault(KeyDebounce, 150*time.Millisecond)
	v.SetDefault(KeyLogJSON, false)
}

// NewViper returns a viper instance with defaults and environment binding.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads the optional config file into v and decodes the result.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = NewViper()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "config: read %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "config: decode")
	}
	cfg.Elide = splitList(cfg.Elide)
	cfg.Mode = strings.ToLower(strings.TrimSpace(cfg.Mode))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and the listen address.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.WithHint(errors.Wrap(err, "config: invalid"), "see syqgen --help for accepted values")
	}
	if _, _, err := net.SplitHostPort(c.Listen); err != nil {
		return errors.Wrapf(err, "config: invalid listen address %q", c.Listen)
	}
	return c.RenderOptions().Validate()
}

// RenderOptions converts the configuration into per-request mode flags.
func (c Config) RenderOptions() render.RenderOptions {
	return render.RenderOptions{
		Mode:        render.EmbedMode(c.Mode),
		Elide:       append([]string(nil), c.Elide...),
		IndentWidth: c.Indent,
		Variable:    c.Variable,
		Fragment:    c.Fragment,
	}
}

// splitList accepts both repeated values and comma-separated entries.
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
