package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-syqgen/internal/config"
	"github.com/goliatone/go-syqgen/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		Short:   "Serve live conversion over HTTP and websockets",
		Long: `Serve answers every websocket message carrying new markup with fresh
builder source and preview. POST /convert performs a single conversion and
GET /examples lists the bundled examples.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.session(cmd, true)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(s.gen,
				server.WithLogger(s.logger),
				server.WithRenderOptions(s.cfg.RenderOptions()),
			)
			fmt.Fprintf(cmd.ErrOrStderr(), "Listening on http://%s\n", s.cfg.Listen)
			return srv.ListenAndServe(ctx, s.cfg.Listen)
		},
	}
	cmd.Flags().String("listen", "", "Address to listen on (default 127.0.0.1:8080)")
	cmd.Flags().Bool("sanitize", true, "Filter previews through the bluemonday policy")
	a.bind(cmd.Flags(), map[string]string{
		config.KeyListen:   "listen",
		config.KeySanitize: "sanitize",
	})
	return cmd
}
