// cmd/train.go
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ColonelBlimp/cwtrainer/internal/audio"
	"github.com/ColonelBlimp/cwtrainer/internal/config"
	"github.com/ColonelBlimp/cwtrainer/internal/store"
	"github.com/ColonelBlimp/cwtrainer/internal/trainer"
)

// runScreen loads settings, wires the sidetone and session store, and runs
// one training screen until the operator quits.
func runScreen(build func(*config.Settings, trainer.Sounder, *store.Store) tea.Model) error {
	settings, err := config.Get()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if settings.Debug {
		f, err := tea.LogToFile("cwtrainer-debug.log", "debug")
		if err != nil {
			return fmt.Errorf("debug log: %w", err)
		}
		defer f.Close()
	}

	sounder, closeSounder, err := newSounder(settings)
	if err != nil {
		return err
	}
	defer closeSounder()

	st := openStore()
	if st != nil {
		defer st.Close()
	}

	program := tea.NewProgram(build(settings, sounder, st), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("trainer: %w", err)
	}
	return nil
}

func newSounder(settings *config.Settings) (trainer.Sounder, func(), error) {
	if settings.Silent {
		return trainer.NewSilentSounder(settings.Frequency, settings.Volume), func() {}, nil
	}
	cfg := audio.DefaultConfig()
	cfg.Frequency = settings.Frequency
	cfg.Volume = settings.Volume
	player := audio.New(cfg)
	if err := player.Start(); err != nil {
		return nil, nil, fmt.Errorf("audio error: %w", err)
	}
	return player, func() {
		if err := player.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "audio close: %v\n", err)
		}
	}, nil
}

// openStore is best-effort: training runs without a session log if the
// database cannot be opened.
func openStore() *store.Store {
	dir, err := config.DataDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "session store unavailable: %v\n", err)
		return nil
	}
	st, err := store.Open(filepath.Join(dir, "sessions.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "session store unavailable: %v\n", err)
		return nil
	}
	return st
}
