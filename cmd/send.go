// cmd/send.go
package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ColonelBlimp/cwtrainer/internal/config"
	"github.com/ColonelBlimp/cwtrainer/internal/store"
	"github.com/ColonelBlimp/cwtrainer/internal/trainer"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Practice sending Morse code",
	Long: `Key Morse code with the keyboard and watch it decoded live. Space is the
straight key; in iambic modes [ and ] are the dit and dash paddles.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScreen(func(cfg *config.Settings, snd trainer.Sounder, st *store.Store) tea.Model {
			return trainer.NewSend(cfg, snd, st)
		})
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
}
