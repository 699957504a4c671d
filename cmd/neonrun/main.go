// neonrun is a neon endless runner for the terminal, a desktop window or SSH.
// Every milestone distance the run pauses while a new sector is generated.
//
// Usage:
//
//	neonrun play              - Play in the terminal
//	neonrun window            - Play in a desktop window
//	neonrun serve             - Start SSH server for remote play
//	neonrun scores            - Show the best runs
//	neonrun simulate          - Run headless with an autopilot
//	neonrun config            - Print the default configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.neonrun/neonrun.db)
//	--config <path>       - Use a custom runner config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--evolution <name>    - Sector provider: gemini, static or offline
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-runner/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagEvolution  string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "neonrun",
	Short: "Neon Runner - an evolving endless runner",
	Long: `Neon Runner is an endless runner drawn in neon. Jump the ground
hazards, stay low under the flying ones, and every 1000m the run pauses
while the world evolves into a new sector.

Available commands:
  play      - Play in the terminal
  window    - Play in a desktop window
  serve     - Start SSH server for remote play
  scores    - View the best runs
  simulate  - Headless autopilot run
  config    - Print the default configuration

Examples:
  neonrun play
  neonrun play --difficulty hard --evolution static
  neonrun window
  neonrun serve --ssh :2222
  neonrun simulate --ticks 100000 --seed 42`,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagEvolution, "evolution", "", "Sector provider: gemini, static, offline (default from config)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
