package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-whackamole/internal/layout"
	"github.com/vovakirdan/tui-whackamole/internal/platform/tui"
	"github.com/vovakirdan/tui-whackamole/internal/storage"
)

var (
	flagRuns        int
	flagInteractive bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [layout]",
	Short: "Show high scores",
	Long: `Display the top 10 scores for a garden layout, or a summary of every
layout when none is given.

Examples:
  whack scores
  whack scores classic
  whack scores classic --runs 5
  whack scores -i`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRuns, "runs", 0, "Also list this many recent runs")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores of the layout")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if _, err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if len(args) == 0 {
		printSummary(store)
		printRuns(store, "")
		return
	}

	l, err := layout.Get(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown layout %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'whack list' to see available layouts.")
		os.Exit(1)
	}
	gameID := layout.ScoreKey(l.ID)

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared scores for %s.\n", l.Title)
		return
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", l.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'whack play %s' to set the first high score!\n", l.ID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, ok, err := store.HighScore(gameID); err == nil && ok {
		fmt.Printf("Best: %d\n", best)
	}
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Games: %d  Average: %.1f\n", stats.GamesCount, stats.AvgScore)
	}

	printRuns(store, l.ID)
}

// printSummary lists every layout with its best score.
func printSummary(store *storage.Store) {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores")
	fmt.Println()
	fmt.Printf("  %-10s  %-6s  %-6s  %s\n", "Layout", "Games", "Best", "Last played")
	fmt.Printf("  %-10s  %-6s  %-6s  %s\n", "------", "-----", "----", "-----------")

	for _, l := range layout.List() {
		gs, ok := stats[layout.ScoreKey(l.ID)]
		if !ok {
			fmt.Printf("  %-10s  %-6d  %-6s  %s\n", l.ID, 0, "-", "-")
			continue
		}
		fmt.Printf("  %-10s  %-6d  %-6d  %s\n", l.ID, gs.GamesCount, gs.HighScore, gs.LastPlayed.Format("2006-01-02 15:04"))
	}
}

// printRuns lists the most recent runs when --runs is set.
func printRuns(store *storage.Store, layoutID string) {
	if flagRuns <= 0 {
		return
	}

	runs, err := store.RecentRuns(layoutID, flagRuns)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("Recent runs")
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("  none")
		return
	}

	fmt.Printf("  %-16s  %-8s  %-6s  %-5s  %-5s  %-5s  %s\n", "Date", "Layout", "Score", "Hits", "Ouch", "Moles", "Run")
	for _, r := range runs {
		fmt.Printf("  %-16s  %-8s  %-6d  %-5d  %-5d  %-5d  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Layout, r.Score,
			r.BenignHits, r.HostileHits, r.Spawned, r.RunID)
	}
}
