package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print every configuration key with its effective value and the layer
that supplied it: default, file or env. Secrets are masked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadConfig()
			if err != nil {
				return err
			}
			if loaded.Path != "" {
				info("file: %s", loaded.Path)
			} else {
				info("file: none (defaults and environment only)")
			}
			fmt.Println()

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, e := range loaded.Entries() {
				fmt.Fprintf(w, "%s\t%v\t%s\n", e.Key, e.Value, e.Source)
			}
			return w.Flush()
		},
	}
}
