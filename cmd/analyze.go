package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sohaib432002/Dashboard/internal/analysis"
	"github.com/Sohaib432002/Dashboard/internal/dataset"
	"github.com/Sohaib432002/Dashboard/internal/utils"
)

var (
	anaOutputPath string
	anaSampleRows int
	anaMaxRows    int
	anaGroupBy    string
	anaCorr       bool
	anaOutliers   bool
	anaOutlierThr float64
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [dataset]",
	Short: "Profile the dataset and produce a concise Markdown summary",
	Long: `Profile the raw dataset table: column contract coverage, per-column statistics,
robust outliers, per-group summaries and correlations. Defaults to the
configured dataset when no argument is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		location := cfg.Dataset
		if len(args) == 1 {
			location = args[0]
		}
		opt := analysis.DefaultOptions()
		if anaSampleRows > 0 {
			opt.SampleRows = anaSampleRows
		}
		if anaMaxRows > 0 {
			opt.MaxRows = anaMaxRows
		}
		if cmd.Flags().Changed("group-by") {
			opt.GroupBy = nil
			for _, g := range strings.Split(anaGroupBy, ",") {
				if g = strings.TrimSpace(g); g != "" {
					opt.GroupBy = append(opt.GroupBy, g)
				}
			}
		}
		opt.Correlations = anaCorr
		opt.Outliers = anaOutliers
		if anaOutlierThr > 0 {
			opt.OutlierThreshold = anaOutlierThr
		}

		dopt := dataset.Options{
			Sheet:   cfg.Sheet,
			Timeout: time.Duration(cfg.HTTPTimeoutSec) * time.Second,
			Logger:  log,
		}
		t, err := dataset.ReadTable(cmd.Context(), location, dopt)
		if err != nil {
			return err
		}
		ds, err := dataset.FromTable(filepath.Base(location), t, log)
		if err != nil {
			return err
		}
		rep := analysis.Profile(ds.Name(), t, opt)
		rep.ID = ds.ID().String()
		md := rep.Markdown()

		if anaOutputPath != "" {
			if err := utils.SafeWriteFile(anaOutputPath, []byte(md)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote analysis to %s\n", anaOutputPath)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write analysis (Markdown)")
	analyzeCmd.Flags().IntVar(&anaSampleRows, "sample-rows", 5, "number of sample rows to include")
	analyzeCmd.Flags().IntVar(&anaMaxRows, "max-rows", 100000, "maximum rows to process (0 = unlimited)")
	analyzeCmd.Flags().StringVar(&anaGroupBy, "group-by", "", "comma-separated column names to group by (default \"Gallstone Status\")")
	analyzeCmd.Flags().BoolVar(&anaCorr, "correlations", true, "compute Pearson correlations among numeric columns")
	analyzeCmd.Flags().BoolVar(&anaOutliers, "outliers", true, "compute robust outlier counts (MAD)")
	analyzeCmd.Flags().Float64Var(&anaOutlierThr, "outlier-threshold", 3.5, "robust |z| threshold for outliers (MAD-based)")
}
