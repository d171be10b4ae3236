package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-syqgen/internal/config"
	"github.com/goliatone/go-syqgen/internal/watch"
	"github.com/goliatone/go-syqgen/pkg/render"
	"github.com/goliatone/go-syqgen/pkg/renderers/preview"
	"github.com/goliatone/go-syqgen/pkg/renderers/syqlorix"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		output      string
		showPreview bool
	)
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-convert a file every time it changes",
		Long: `Watch converts FILE once, then again after every save. A failed
conversion is reported but never overwrites --output, and watching continues.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session(cmd, false)
			if err != nil {
				return err
			}

			renderer := syqlorix.Name
			if showPreview {
				renderer = preview.Name
			}

			w, err := watch.New(args[0],
				watch.WithDebounce(s.cfg.Debounce),
				watch.WithLogger(s.logger),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			run := func(ctx context.Context, path string) {
				req, err := s.request(cmd, path)
				if err != nil {
					s.logger.Error("watch: build request", zap.Error(err))
					return
				}
				req.Renderer = renderer
				out, err := s.gen.Generate(ctx, req)
				if err := emit(cmd, output, out, err); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", path, render.Message(err))
				}
			}

			run(ctx, w.Path())
			return w.Run(ctx, run)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write each successful conversion to a file")
	cmd.Flags().BoolVar(&showPreview, "preview", false, "Emit the preview document instead of source")
	cmd.Flags().Duration("debounce", 0, "Quiet period before re-converting (default 150ms)")
	a.bind(cmd.Flags(), map[string]string{config.KeyDebounce: "debounce"})
	return cmd
}
