package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-runner/internal/platform/hud"
	"github.com/vovakirdan/neon-runner/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the best recorded runs and overall statistics.

Examples:
  neonrun scores
  neonrun scores --limit 25
  neonrun scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded runs")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(); err != nil {
			fail("%v", err)
		}
		fmt.Println("All runs deleted.")
		return
	}

	scores, err := store.TopScores(flagLimit)
	if err != nil {
		store.Close()
		fail("retrieving scores: %v", err)
	}

	fmt.Println("Hi-Records - Neon Runner")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'neonrun play' to set the first record!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %-16s  %s\n", "Rank", "Distance", "Player", "Date")
	fmt.Printf("  %-4s  %-10s  %-16s  %s\n", "----", "--------", "------", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10s  %-16s  %s\n", i+1, hud.Distance(entry.Score), entry.Player, dateStr)
	}

	stats, err := store.Stats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return
	}
	fmt.Println()
	fmt.Printf("Runs: %d   Best: %s   Average: %.0fm   Total: %dm\n",
		stats.Runs, hud.Distance(stats.HighScore), stats.AvgScore, stats.TotalScore)
}
