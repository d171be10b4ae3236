package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	syqgen "github.com/goliatone/go-syqgen"
	"github.com/goliatone/go-syqgen/internal/config"
	"github.com/goliatone/go-syqgen/internal/logger"
	"github.com/goliatone/go-syqgen/pkg/markup"
	"github.com/goliatone/go-syqgen/pkg/orchestrator"
	"github.com/goliatone/go-syqgen/pkg/render"
	"github.com/goliatone/go-syqgen/pkg/renderers/preview"
	"github.com/goliatone/go-syqgen/pkg/renderers/syqlorix"
	"github.com/goliatone/go-syqgen/pkg/tui"
)

const fetchTimeout = 30 * time.Second

// ErrConversionFailed is returned after a failure-shaped output was printed.
var ErrConversionFailed = errors.New("conversion failed")

type app struct {
	v          *viper.Viper
	verbosity  int
	configFile string
	driver     tui.PromptDriver
}

// session is the resolved state one command invocation runs with.
type session struct {
	cfg    *config.Config
	logger *zap.Logger
	gen    *orchestrator.Orchestrator
}

// session loads config and builds the orchestrator. sanitize enables the
// preview sanitizer when the config allows it.
func (a *app) session(cmd *cobra.Command, sanitize bool) (*session, error) {
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return nil, err
	}
	log := logger.NewWithWriter(cmd.ErrOrStderr(), a.verbosity, cfg.LogJSON)

	code, err := syqlorix.New()
	if err != nil {
		return nil, err
	}
	var previewOptions []preview.Option
	if cfg.Minify {
		previewOptions = append(previewOptions, preview.WithMinify())
	}
	if sanitize && cfg.Sanitize {
		previewOptions = append(previewOptions, preview.WithSanitizer(nil))
	}
	registry := render.NewRegistry()
	registry.MustRegister(code)
	registry.MustRegister(preview.New(previewOptions...))

	gen := syqgen.NewOrchestrator(
		orchestrator.WithLoader(syqgen.NewLoader(markup.WithHTTPFallback(fetchTimeout))),
		orchestrator.WithParser(syqgen.NewParser()),
		orchestrator.WithRegistry(registry),
		orchestrator.WithLogger(log),
	)
	return &session{cfg: cfg, logger: log, gen: gen}, nil
}

// request builds an orchestrator request for a FILE, URL, or "-" argument.
func (s *session) request(cmd *cobra.Command, arg string) (orchestrator.Request, error) {
	req := orchestrator.Request{Options: s.cfg.RenderOptions()}

	src, err := markup.ParseSource(arg)
	if err != nil {
		return req, err
	}
	if src.Kind() != markup.SourceKindInline {
		req.Source = src
		return req, nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return req, errors.Wrap(err, "read stdin")
	}
	doc, err := markup.NewDocument(src, data)
	if err != nil {
		return req, err
	}
	req.Document = &doc
	return req, nil
}

// emit writes a successful output to path, or stdout when path is empty.
// Failure output always goes to stdout so a previous good file survives.
func emit(cmd *cobra.Command, path string, out []byte, err error) error {
	if err != nil {
		if !isFailure(err) {
			return err
		}
		_, _ = cmd.OutOrStdout().Write(out)
		return errors.Mark(errors.Wrap(err, "conversion failed"), ErrConversionFailed)
	}
	if path == "" {
		_, werr := cmd.OutOrStdout().Write(out)
		return werr
	}
	if werr := os.WriteFile(path, out, 0o644); werr != nil {
		return errors.Wrapf(werr, "write %s", path)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	return nil
}

func isFailure(err error) bool {
	var conv *render.ConversionError
	var rend *render.RenderError
	return errors.As(err, &conv) || errors.As(err, &rend)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func argOrStdin(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}
