package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/depot/internal/backend"
	"github.com/mmcdole/depot/internal/config"
	"github.com/mmcdole/depot/internal/domain"
	"github.com/mmcdole/depot/internal/lifecycle"
	"github.com/mmcdole/depot/internal/log"
	"github.com/mmcdole/depot/internal/picker"
	"github.com/mmcdole/depot/internal/store"
	"github.com/mmcdole/depot/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("depot %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting depot", "version", Version, "engine_url", cfg.Engine.URL)

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("depot requires an interactive terminal")
	}

	client := backend.NewClient(cfg.Engine.URL, cfg.Engine.Timeout, logger)

	// Probe the engine before opening the panel so a dead backend fails
	// with a readable message instead of an empty screen.
	if err := waitForEngine(client, cfg.Engine.URL, cfg.Engine.Timeout); err != nil {
		return err
	}

	snapStore, err := store.NewSnapshotStore(config.GetCachePath(), cfg.Engine.URL)
	if err != nil {
		logger.Warn("snapshot cache unavailable, running memory-only", "error", err)
		snapStore, _ = store.NewSnapshotStore("", cfg.Engine.URL)
	}
	defer snapStore.Close()

	ctrl := lifecycle.NewController(client, snapStore, cfg.Poll.Interval, logger)
	defer ctrl.Close()

	model := tui.NewModel(ctrl, client, picker.NewNative(logger), logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// waitForEngine probes engine health, offering a retry when the engine is
// merely unreachable. Any other health failure is terminal.
func waitForEngine(client *backend.Client, engineURL string, timeout time.Duration) error {
	reader := bufio.NewReader(os.Stdin)

	for {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		err := client.Health(ctx)
		cancel()

		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrEngineOffline) {
			return fmt.Errorf("engine health check failed: %w", err)
		}

		fmt.Printf("Engine is not reachable at %s — is it running?\n", engineURL)
		fmt.Print("Retry? [y/N]: ")
		input, readErr := reader.ReadString('\n')
		if readErr != nil || !strings.EqualFold(strings.TrimSpace(input), "y") {
			return fmt.Errorf("engine is not reachable at %s", engineURL)
		}
	}
}
