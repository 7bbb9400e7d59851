package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"contexere/internal/adapters/editor"
	"contexere/internal/adapters/filesystem"
	"contexere/internal/adapters/sqlite"
	"contexere/internal/adapters/tui"
	"contexere/internal/adapters/tui/views"
	"contexere/internal/config"
	"contexere/internal/ports"
)

func main() {
	configFlag := flag.String("config", "", "config file (default $XDG_CONFIG_HOME/contexere/config.yaml)")
	useLedger := flag.Bool("ledger", false, "read the history from the ledger")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flag.NArg() > 0 {
		cfg.Directory = flag.Arg(0)
	}

	// The alternate screen owns the terminal, so logs only go to a file when asked
	logOut, closeLog := logOutput(cfg.LogFile)
	defer closeLog()
	logger := cfg.NewLogger(logOut)

	location, err := filesystem.ResolveLocation(cfg.Directory)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var provider ports.HistoryProvider = filesystem.NewRepository(location)
	if *useLedger {
		ledger := sqlite.NewLedger(logger)
		if err := ledger.Open(sqlite.DatabasePath(cfg.DataDir)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer ledger.Close()
		provider = ledger
	}

	watcher, err := tui.NewWatcher(location, logger)
	if err != nil {
		logger.Warn("live refresh disabled", "error", err)
		watcher = nil
	} else {
		defer watcher.Close()
	}

	app := tui.NewApp(views.Source{
		Provider: provider,
		Location: location,
		Timezone: cfg.Timezone,
		Clock:    ports.SystemClock{},
	}, editor.NewOpener(cfg.Editor), watcher)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func logOutput(path string) (io.Writer, func()) {
	if path == "" {
		return io.Discard, func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		return io.Discard, func() {}
	}
	return f, func() { f.Close() }
}
