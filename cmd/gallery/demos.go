package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/henri123lemoine/gallery/internal/catalog"
)

func newDemosCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "demos [filter]",
		Short: "List the demos that can be mounted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			demos := catalog.All()
			if len(args) == 1 {
				demos = catalog.Filter(args[0])
			}
			if len(demos) == 0 {
				return fmt.Errorf("no demo matches %q", args[0])
			}

			title := cases.Title(language.English, cases.NoLower)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE")
			for _, d := range demos {
				if verbose {
					fmt.Fprintf(w, "%s\t%s\t%s\n", d.ID, title.String(d.Title), d.Description)
					continue
				}
				fmt.Fprintf(w, "%s\t%s\n", d.ID, title.String(d.Title))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Include descriptions")

	return cmd
}
