package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/henri123lemoine/gallery/internal/app"
)

type renderOptions struct {
	width  int
	height int
	plain  bool
}

func newRenderCmd(flags *rootFlags) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Compose one frame of a demo and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, flags, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.width, "width", "w", 0, "Frame width (default: terminal width, else 80)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "Frame height (default: terminal height, else 24)")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Strip colors and styles")

	return cmd
}

func runRender(cmd *cobra.Command, flags *rootFlags, opts *renderOptions) error {
	cfg, err := loadConfig(flags, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if err := enableDebug(cfg); err != nil {
		return fmt.Errorf("enabling debug log: %w", err)
	}

	width, height := opts.width, opts.height
	if width <= 0 || height <= 0 {
		tw, th := terminalSize()
		if width <= 0 {
			width = tw
		}
		if height <= 0 {
			height = th
		}
	}

	out, err := app.RenderFrame(cfg, app.Deps{Loader: newLoader(cfg)}, width, height)
	if err != nil {
		return err
	}
	if opts.plain {
		out = ansi.Strip(out)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// terminalSize returns the size of stdout, or 80x24 when it is not a
// terminal.
func terminalSize() (int, int) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 80, 24
	}
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}
