// whack is a terminal whack-a-mole garden.
//
// Usage:
//
//	whack list               - List garden layouts
//	whack play [layout]      - Play a garden
//	whack menu               - Pick gardens interactively
//	whack serve              - Start SSH server for remote play
//	whack scores [layout]    - Show high scores and recent runs
//	whack config             - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.whack/scores.db)
//	--log-file <path>   - Write logs to a file
//	--debug             - Log at debug level
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-whackamole/internal/storage"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogFile string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "whack",
	Short: "Whack-a-Mole in your terminal",
	Long: `Whack is a whack-a-mole garden for the terminal.

Find a surface, place the garden, and whack the moles that pop out of
their holes before the timer runs out. Hostile moles cost points.

Available commands:
  list     - Show garden layouts
  play     - Play a garden directly
  menu     - Interactive garden picker
  serve    - Start SSH server for remote play
  scores   - View high scores and recent runs
  config   - Print the effective configuration

Examples:
  whack play
  whack play wide --difficulty hard
  whack serve --ssh :2222 --spectate :8080
  whack scores classic`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the process logger. Without --log-file, interactive
// commands discard logs because the alternate screen owns the terminal.
// The returned cleanup must be called on exit.
func newLogger(prefix string, toStderr bool) (*log.Logger, func(), error) {
	var w io.Writer = io.Discard
	cleanup := func() {}

	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		cleanup = func() { f.Close() }
	case toStderr:
		w = os.Stderr
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, cleanup, nil
}
