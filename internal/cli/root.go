// Package cli implements the command line entry points.
package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// version can be overridden at build time via:
	// go build -ldflags "-X github.com/mume-dayo/kato-daikou/internal/cli.version=1.2.3"
	version = "0.1.0"
	logo    = "\n" +
		"  _         _\n" +
		" | | ____ _| |_ ___\n" +
		" | |/ / _` | __/ _ \\\n" +
		" |   < (_| | || (_) |\n" +
		" |_|\\_\\__,_|\\__\\___/\n"
)

var rootCmd = &cobra.Command{
	Use:   "katodaikou",
	Short: "katodaikou - cash-out panel bot",
	Long:  color.CyanString(logo) + "\nA chat bot that collects cash-out requests through a persistent button panel.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(commandsCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		printHeader(cmd, "🏷️ Version")
		fmt.Fprintf(cmd.OutOrStdout(), "Version: %s\n", version)
	},
}

func printHeader(cmd *cobra.Command, title string) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, color.CyanString(logo))
	if title != "" {
		fmt.Fprintln(out, title)
		fmt.Fprintln(out, "─────────────────────")
	}
}
