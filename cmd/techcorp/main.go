package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/techcorp/internal/config"
	"github.com/vango-dev/techcorp/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╔╦╗┌─┐┌─┐┬ ┬╔═╗┌─┐┬─┐┌─┐
   ║ ├┤ │  ├─┤║  │ │├┬┘├─┘
   ╩ └─┘└─┘┴ ┴╚═╝└─┘┴└─┴
`

// configPath is the --config flag shared by every command.
var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "techcorp",
		Short: "TechCorp website server",
		Long: `techcorp serves the TechCorp marketing site.

Pages are rendered on the server from the embedded content catalog.
The contact form keeps one controller per visitor and delivers
inquiries to the configured inbox (log, memory, disk, redis or s3).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.FileName, "Configuration file")

	rootCmd.AddCommand(
		serveCmd(),
		routesCmd(),
		catalogCmd(),
		configCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration named by --config.
func loadConfig() (*config.Loaded, error) {
	return config.Load(configPath)
}

// printBanner prints the ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
