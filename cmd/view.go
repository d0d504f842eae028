package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sohaib432002/Dashboard/internal/utils"
	"github.com/Sohaib432002/Dashboard/internal/view"
)

var (
	viewFilters    filterFlags
	viewFormat     string
	viewOutputPath string
)

var viewCmd = &cobra.Command{
	Use:   "view <name>",
	Short: "Compute one dashboard view over the dataset",
	Long: `Compute one dashboard view. Filters start from the view's defaults; only
the flags you set override them. Filters the view does not expose are
reported and ignored. Run 'dashboard views' for names and controls.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := view.Find(args[0])
		if err != nil {
			return err
		}
		c, err := viewFilters.criteria(cmd, def.Defaults)
		if err != nil {
			return err
		}
		for _, ctl := range def.Ignored(c) {
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: view %s does not expose the %s filter; ignoring it\n", def.Name, ctl)
		}
		ds, err := loadDataset(cmd.Context())
		if err != nil {
			return err
		}
		warnDataset(cmd, ds)
		out, err := def.Compute(ds.Records(), c)
		if err != nil {
			return err
		}
		log.Debug().
			Str("view", out.View).
			Str("filters", out.Criteria.String()).
			Int("matched", out.Matched).
			Int("total", out.Total).
			Msg("view computed")

		var buf bytes.Buffer
		if err := view.Encode(&buf, out, outputFormat(viewFormat)); err != nil {
			return err
		}
		if viewOutputPath != "" {
			if err := utils.SafeWriteFile(viewOutputPath, buf.Bytes()); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s to %s\n", def.Name, viewOutputPath)
			return nil
		}
		_, err = cmd.OutOrStdout().Write(buf.Bytes())
		return err
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
	viewFilters.register(viewCmd.Flags())
	viewCmd.Flags().StringVarP(&viewFormat, "format", "f", "", "output format: json|yaml|markdown|html (default from config)")
	viewCmd.Flags().StringVarP(&viewOutputPath, "output", "o", "", "optional path to write the view")
}
