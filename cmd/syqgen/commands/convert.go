package commands

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-syqgen/pkg/renderers/preview"
	"github.com/goliatone/go-syqgen/pkg/renderers/syqlorix"
)

func newConvertCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "convert [FILE|URL|-]",
		Short: "Print Syqlorix builder source for an HTML document",
		Long: `Convert reads a complete HTML document and prints the Python source that
rebuilds it with Syqlorix. Without an argument, or with "-", the document is
read from stdin.

When the input fails a precondition the failure comment is printed to stdout,
--output is left untouched, and the command exits non-zero.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate(cmd, argOrStdin(args), syqlorix.Name, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write source to a file instead of stdout")
	return cmd
}

func newPreviewCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "preview [FILE|URL|-]",
		Short: "Print the indented preview document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate(cmd, argOrStdin(args), preview.Name, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write preview to a file instead of stdout")
	return cmd
}

func (a *app) generate(cmd *cobra.Command, arg, renderer, output string) error {
	s, err := a.session(cmd, false)
	if err != nil {
		return err
	}
	req, err := s.request(cmd, arg)
	if err != nil {
		return err
	}
	req.Renderer = renderer

	out, err := s.gen.Generate(commandContext(cmd), req)
	return emit(cmd, output, out, err)
}
