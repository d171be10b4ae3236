package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-syqgen/pkg/examples"
	"github.com/goliatone/go-syqgen/pkg/orchestrator"
	"github.com/goliatone/go-syqgen/pkg/render"
	"github.com/goliatone/go-syqgen/pkg/tui"
)

func newExamplesCmd(a *app) *cobra.Command {
	var (
		pick    bool
		convert bool
	)
	cmd := &cobra.Command{
		Use:   "examples [NAME]",
		Short: "List, print, or pick bundled example documents",
		Long: `Without arguments, examples lists the bundled documents. With NAME it
prints that document, or its builder source with --convert. --pick walks
through an interactive picker for the example and the mode flags.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case pick:
				return a.pickExample(cmd)
			case len(args) == 1:
				ex, err := examples.Get(args[0])
				if err != nil {
					return err
				}
				if !convert {
					_, err = fmt.Fprint(cmd.OutOrStdout(), ex.Markup)
					return err
				}
				s, err := a.session(cmd, false)
				if err != nil {
					return err
				}
				return s.convertExample(cmd, ex, s.cfg.RenderOptions())
			default:
				return listExamples(cmd)
			}
		},
	}
	cmd.Flags().BoolVar(&pick, "pick", false, "Choose an example and options interactively")
	cmd.Flags().BoolVar(&convert, "convert", false, "Print builder source instead of markup")
	return cmd
}

func listExamples(cmd *cobra.Command) error {
	all, err := examples.All()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, ex := range all {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", ex.Name, ex.Title, ex.Description)
	}
	return tw.Flush()
}

func (a *app) pickExample(cmd *cobra.Command) error {
	s, err := a.session(cmd, false)
	if err != nil {
		return err
	}
	all, err := examples.All()
	if err != nil {
		return err
	}

	sel, err := tui.NewPicker(a.driver).Pick(commandContext(cmd), all, s.cfg.RenderOptions())
	if err != nil {
		return err
	}
	if !sel.Convert {
		_, err = fmt.Fprint(cmd.OutOrStdout(), sel.Example.Markup)
		return err
	}
	return s.convertExample(cmd, sel.Example, sel.Options)
}

// convertExample prints builder source for ex.
func (s *session) convertExample(cmd *cobra.Command, ex examples.Example, options render.RenderOptions) error {
	out, err := s.gen.Generate(commandContext(cmd), orchestrator.Request{
		Input:   ex.Markup,
		Options: options,
	})
	return emit(cmd, "", out, err)
}
