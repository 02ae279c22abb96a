package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-whackamole/internal/config"
	"github.com/vovakirdan/tui-whackamole/internal/core"
	"github.com/vovakirdan/tui-whackamole/internal/garden"
	"github.com/vovakirdan/tui-whackamole/internal/layout"
	"github.com/vovakirdan/tui-whackamole/internal/platform/tui"
	"github.com/vovakirdan/tui-whackamole/internal/spectate"
	"github.com/vovakirdan/tui-whackamole/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLayout     string
	flagSpectate   string
)

var playCmd = &cobra.Command{
	Use:   "play [layout]",
	Short: "Play a garden",
	Long: `Start playing the given garden layout (default: classic).

Controls:
  Enter          - Place the garden / start
  Arrows/WASD    - Move the cursor
  Space          - Whack the hole under the cursor
  1-9            - Whack a hole directly
  P              - Pause
  R              - Restart (after game over)
  Esc/B          - Leave (when not mid-run)
  Q/Ctrl+C       - Quit

Difficulty options:
  easy   - Slower spawns, moles stay up longer
  normal - Configured pacing with the difficulty schedule
  hard   - Faster spawns and more hostile moles
  fixed  - Configured pacing, no difficulty schedule

Examples:
  whack play
  whack play big --difficulty hard
  whack play --config ./my-garden.toml
  whack play --spectate :8080`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config (YAML or TOML)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagLayout, "layout", layout.DefaultID, "Garden layout")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve the spectator feed on this address (e.g. :8080)")
}

func runPlay(_ *cobra.Command, args []string) {
	layoutID := flagLayout
	if len(args) == 1 {
		layoutID = args[0]
	}
	if !layout.Exists(layoutID) {
		fmt.Fprintf(os.Stderr, "Error: unknown layout %q\n", layoutID)
		fmt.Fprintln(os.Stderr, "Run 'whack list' to see available layouts.")
		os.Exit(1)
	}

	gameCfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger("whack", false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store := openStore(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := startSpectate(ctx, flagSpectate, store, logger)

	game, err := gameFactory(gameCfg, logger, hub)(layoutID, uuid.NewString())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	runErr := tui.Run(game, store, terminalConfig(), logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// loadGameConfig loads the tuning file and applies the difficulty preset.
func loadGameConfig() (config.WhackConfig, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.WhackConfig{}, err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.WhackConfig{}, err
	}

	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return config.WhackConfig{}, err
	}
	return cfg, nil
}

// gameFactory builds gardens for the given tuning. With a hub, every garden
// also publishes its session events to spectators.
func gameFactory(cfg config.WhackConfig, logger *log.Logger, hub *spectate.Hub) tui.GameFactory {
	return func(layoutID, sessionID string) (tui.Game, error) {
		l, err := layout.Get(layoutID)
		if err != nil {
			return nil, err
		}

		opts := []garden.Option{
			garden.WithLogger(logger.With("layout", l.ID, "session", sessionID)),
		}
		if hub != nil {
			opts = append(opts, garden.WithHost(hub.Host(sessionID)))
		}
		return garden.New(cfg, l, opts...), nil
	}
}

// openStore opens the scores database. Games still work without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "error", err)
		return nil
	}
	return store
}

// startSpectate runs the spectator hub and HTTP server until ctx is done.
// Returns nil when addr is empty.
func startSpectate(ctx context.Context, addr string, store *storage.Store, logger *log.Logger) *spectate.Hub {
	if addr == "" {
		return nil
	}

	spectateLog := logger.WithPrefix("spectate")
	hub := spectate.NewHub(spectateLog)
	go hub.Run(ctx)

	// A nil *Store must not become a non-nil interface.
	var scores spectate.ScoreSource
	if store != nil {
		scores = store
	}

	srv := spectate.NewServer(hub, scores, spectateLog)
	go func() {
		if err := srv.ListenAndServe(ctx, addr); err != nil {
			spectateLog.Error("spectator server stopped", "error", err)
		}
	}()
	return hub
}

// terminalConfig builds the runtime config from the flags and terminal size.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
