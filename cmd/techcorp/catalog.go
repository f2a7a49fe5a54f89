package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/techcorp/internal/errors"
	"github.com/vango-dev/techcorp/pkg/catalog"
)

var catalogSections = []string{"products", "downloads", "videos", "faqs"}

func catalogCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "catalog [section]",
		Short: "Show the embedded content catalog",
		Long: `Show the embedded content catalog.

Without a section a summary is printed. Sections are products,
downloads, videos and faqs.

Examples:
  techcorp catalog
  techcorp catalog videos
  techcorp catalog products --format=json`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: catalogSections,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Default()
			if err != nil {
				return errors.New("T201").Wrap(err)
			}
			if len(args) == 0 {
				return printSummary(os.Stdout, c)
			}
			section, err := catalogSection(c, args[0])
			if err != nil {
				return err
			}
			return printSection(os.Stdout, args[0], section, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json or yaml")
	return cmd
}

func catalogSection(c *catalog.Catalog, name string) (any, error) {
	switch name {
	case "products":
		return c.Products, nil
	case "downloads":
		return c.Downloads, nil
	case "videos":
		return c.Videos, nil
	case "faqs":
		return c.FAQs, nil
	}
	return nil, errors.New("T202").WithDetail("Unknown section " + strconv.Quote(name) + ".")
}

func printSummary(out io.Writer, c *catalog.Catalog) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "products\t%d\n", len(c.Products))
	fmt.Fprintf(w, "downloads\t%d\t%s downloads, %.0f MB\n", len(c.Downloads),
		catalog.FormatCount(c.TotalDownloads()), c.TotalDownloadSizeMB())
	fmt.Fprintf(w, "videos\t%d\t%s views, %s\n", len(c.Videos),
		catalog.FormatViews(c.TotalViews()), catalog.FormatHoursMinutes(c.TotalDuration()))
	fmt.Fprintf(w, "faqs\t%d\n", len(c.FAQs))
	return w.Flush()
}

func printSection(out io.Writer, name string, section any, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(section)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(map[string]any{name: section})
	case "table", "":
	default:
		return fmt.Errorf("unknown format %q (want table, json or yaml)", format)
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	switch items := section.(type) {
	case []catalog.Product:
		fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE")
		for _, p := range items {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, catalog.PriceLabel(p.Price))
		}
	case []catalog.Download:
		fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tPLATFORMS\tSIZE\tDOWNLOADS")
		for _, d := range items {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", d.ID, d.Title, d.Category,
				strings.Join(d.Platform, ","), d.FileSize, catalog.FormatCount(d.Downloads))
		}
	case []catalog.Video:
		fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tDURATION\tVIEWS")
		for _, v := range items {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", v.ID, v.Title, v.Category,
				catalog.FormatDuration(v.Duration), catalog.FormatViews(v.Views))
		}
	case []catalog.FAQ:
		fmt.Fprintln(w, "ID\tCATEGORY\tQUESTION")
		for _, f := range items {
			fmt.Fprintf(w, "%d\t%s\t%s\n", f.ID, f.Category, f.Question)
		}
	}
	return w.Flush()
}
