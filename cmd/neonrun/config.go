package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-runner/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the built-in runner configuration as YAML. Save it to
~/.neonrun/configs/runner.yaml or pass it with --config to customise.

Examples:
  neonrun config > my-runner.yaml
  neonrun play --config my-runner.yaml`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		if _, err := os.Stdout.Write(config.DefaultYAML()); err != nil {
			fail("%v", err)
		}
	},
}
