package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Sohaib432002/Dashboard/internal/utils"
	"github.com/Sohaib432002/Dashboard/internal/view"
)

var (
	expFilters filterFlags
	expFormat  string
	expDir     string
	expWorkers int
	expViews   string
	expQuiet   bool
)

// manifest describes one export run.
type manifest struct {
	DatasetID string   `json:"dataset_id"`
	Dataset   string   `json:"dataset"`
	Records   int      `json:"records"`
	Format    string   `json:"format"`
	Columns   []string `json:"columns"`
	// MissingColumns lists contract columns absent from the source.
	MissingColumns []string `json:"missing_columns"`
	// ParseIssues counts unparseable values per column, read as absent.
	ParseIssues map[string]int  `json:"parse_issues"`
	GeneratedAt time.Time       `json:"generated_at"`
	Views       []manifestEntry `json:"views"`
}

type manifestEntry struct {
	View    string `json:"view"`
	File    string `json:"file"`
	Filters string `json:"filters"`
	Matched int    `json:"matched"`
	Total   int    `json:"total"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Compute every view and write one file per view plus a manifest",
	Long: `Compute all views (or those named with --views) concurrently over a single
load of the dataset. Each view starts from its own defaults; filter flags
override them where the view exposes the control.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := outputFormat(expFormat)
		ext, err := formatExt(format)
		if err != nil {
			return err
		}
		dir := expDir
		if dir == "" {
			dir = cfg.ExportDir
		}
		workers := expWorkers
		if workers <= 0 {
			workers = cfg.ExportWorkers
		}
		if workers <= 0 {
			workers = 1
		}

		defs := view.Definitions
		if strings.TrimSpace(expViews) != "" {
			defs = nil
			seen := map[string]bool{}
			for _, name := range strings.Split(expViews, ",") {
				d, err := view.Find(strings.TrimSpace(name))
				if err != nil {
					return err
				}
				if seen[d.Name] {
					continue
				}
				seen[d.Name] = true
				defs = append(defs, d)
			}
		}

		ds, err := loadDataset(cmd.Context())
		if err != nil {
			return err
		}
		if !expQuiet {
			warnDataset(cmd, ds)
		}
		records := ds.Records()
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("mkdir export dir: %w", err)
		}

		entries := make([]manifestEntry, len(defs))
		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(workers)
		for i, def := range defs {
			i, def := i, def
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				c, err := expFilters.criteria(cmd, def.Defaults)
				if err != nil {
					return err
				}
				if ignored := def.Ignored(c); len(ignored) > 0 {
					names := make([]string, len(ignored))
					for j, ctl := range ignored {
						names[j] = ctl.String()
					}
					log.Debug().Str("view", def.Name).Strs("ignored", names).Msg("filters not exposed by view")
				}
				out, err := def.Compute(records, c)
				if err != nil {
					return err
				}
				var buf bytes.Buffer
				if err := view.Encode(&buf, out, format); err != nil {
					return fmt.Errorf("encode %s: %w", def.Name, err)
				}
				file := def.Name + ext
				if err := utils.SafeWriteFile(filepath.Join(dir, file), buf.Bytes()); err != nil {
					return fmt.Errorf("write %s: %w", file, err)
				}
				entries[i] = manifestEntry{View: def.Name, File: file, Filters: out.Criteria.String(), Matched: out.Matched, Total: out.Total}
				log.Debug().Str("view", def.Name).Str("file", file).Msg("view exported")
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		m := manifest{
			DatasetID:      ds.ID().String(),
			Dataset:        ds.Name(),
			Records:        ds.Len(),
			Format:         format,
			Columns:        ds.Columns(),
			MissingColumns: ds.MissingColumns(),
			ParseIssues:    ds.ParseIssues(),
			GeneratedAt:    time.Now().UTC(),
			Views:          entries,
		}
		b, err := utils.PrettyJSON(m)
		if err != nil {
			return err
		}
		if err := utils.SafeWriteFile(filepath.Join(dir, "manifest.json"), b); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}
		if !expQuiet {
			for i, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "[%d/%d] %s: %d of %d records\n", i+1, len(entries), e.File, e.Matched, e.Total)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d view(s) to %s\n", len(entries), dir)
		}
		return nil
	},
}

func formatExt(format string) (string, error) {
	switch strings.ToLower(format) {
	case "json":
		return ".json", nil
	case "yaml", "yml":
		return ".yaml", nil
	case "markdown", "md":
		return ".md", nil
	case "html":
		return ".html", nil
	}
	return "", fmt.Errorf("unsupported format %q (use %s)", format, strings.Join(view.Formats, "|"))
}

func init() {
	rootCmd.AddCommand(exportCmd)
	expFilters.register(exportCmd.Flags())
	exportCmd.Flags().StringVarP(&expFormat, "format", "f", "", "output format: json|yaml|markdown|html (default from config)")
	exportCmd.Flags().StringVarP(&expDir, "dir", "d", "", "output directory (default from config export_dir)")
	exportCmd.Flags().IntVar(&expWorkers, "workers", 0, "views computed concurrently (default from config export_workers)")
	exportCmd.Flags().StringVar(&expViews, "views", "", "comma-separated view names (default all)")
	exportCmd.Flags().BoolVarP(&expQuiet, "quiet", "q", false, "suppress per-view progress output")
}
