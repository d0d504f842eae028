package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sohaib432002/Dashboard/internal/view"
)

var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "List available dashboard views and their filter controls",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, d := range view.Definitions {
			controls := make([]string, len(d.Controls))
			for i, c := range d.Controls {
				controls[i] = c.String()
			}
			fmt.Fprintf(out, "- %s: %s\n", d.Name, d.Title)
			fmt.Fprintf(out, "  controls: %s; defaults: %s\n", strings.Join(controls, ", "), d.Defaults)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(viewsCmd)
}
