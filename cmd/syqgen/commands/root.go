// Package commands holds the syqgen cobra command tree.
package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/goliatone/go-syqgen/internal/config"
	"github.com/goliatone/go-syqgen/pkg/render"
	"github.com/goliatone/go-syqgen/pkg/tui"
)

// Option customises the command tree, mostly for tests.
type Option func(*app)

// WithPromptDriver replaces the survey driver used by `examples --pick`.
func WithPromptDriver(driver tui.PromptDriver) Option {
	return func(a *app) {
		a.driver = driver
	}
}

// WithViper supplies the viper instance flags are bound to.
func WithViper(v *viper.Viper) Option {
	return func(a *app) {
		if v != nil {
			a.v = v
		}
	}
}

// NewRootCmd builds the syqgen command tree. Each call returns an independent
// tree with its own flag and config state.
func NewRootCmd(options ...Option) *cobra.Command {
	a := &app{v: config.NewViper()}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}

	rootCmd := &cobra.Command{
		Use:   "syqgen",
		Short: "Convert HTML documents into Syqlorix builder source",
		Long: `syqgen converts an HTML document into the equivalent Python source that
rebuilds it with the Syqlorix builder DSL, and renders an indented preview.

Available commands:
  convert   - Print builder source for a document
  preview   - Print the indented preview document
  watch     - Re-convert a file whenever it changes
  serve     - Live conversion over HTTP and websockets
  examples  - List, print, or interactively pick bundled examples

Examples:
  syqgen convert page.html
  cat page.html | syqgen convert --mode hoist -
  syqgen convert --fragment --variable card card.html
  syqgen examples --pick`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&a.verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	flags.StringVar(&a.configFile, "config", "", "Config file (yaml, json, or toml)")
	flags.String("mode", string(render.EmbedInline), "Embedded style/script handling: inline or hoist")
	flags.StringSlice("elide", nil, "Wrappers to splice into their parent: head, body, title")
	flags.Int("indent", render.DefaultIndentWidth, "Spaces per indentation level")
	flags.String("variable", "", "Variable name for fragment output")
	flags.Bool("fragment", false, "Accept markup without a doctype and emit a component")
	flags.Bool("minify", false, "Minify preview output")
	flags.Bool("log-json", false, "Emit JSON logs")
	a.bind(flags, map[string]string{
		config.KeyMode:     "mode",
		config.KeyElide:    "elide",
		config.KeyIndent:   "indent",
		config.KeyVariable: "variable",
		config.KeyFragment: "fragment",
		config.KeyMinify:   "minify",
		config.KeyLogJSON:  "log-json",
	})

	rootCmd.AddCommand(
		newConvertCmd(a),
		newPreviewCmd(a),
		newWatchCmd(a),
		newServeCmd(a),
		newExamplesCmd(a),
	)
	return rootCmd
}

// bind maps config keys to flag names. Unknown flags are a programming error.
func (a *app) bind(flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := a.v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}
