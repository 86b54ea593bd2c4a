// cmd/listen.go
package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ColonelBlimp/cwtrainer/internal/config"
	"github.com/ColonelBlimp/cwtrainer/internal/store"
	"github.com/ColonelBlimp/cwtrainer/internal/trainer"
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Practice copying Morse code by ear",
	Long: `The trainer plays randomly generated code groups; type what you copied and
check it. Use --charset to choose which characters the groups draw from.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScreen(func(cfg *config.Settings, snd trainer.Sounder, st *store.Store) tea.Model {
			return trainer.NewListen(cfg, snd, st)
		})
	},
}

func init() {
	listenCmd.Flags().IntP("group-size", "g", 5, "characters per code group (1-10)")
	listenCmd.Flags().StringP("charset", "c", "letters", "group charset: letters, digits, signs, mixed")
	listenCmd.Flags().BoolP("farnsworth", "F", false, "Farnsworth spacing (stretched gaps between characters)")

	viper.BindPFlag("group_size", listenCmd.Flags().Lookup("group-size"))
	viper.BindPFlag("charset", listenCmd.Flags().Lookup("charset"))
	viper.BindPFlag("farnsworth", listenCmd.Flags().Lookup("farnsworth"))

	rootCmd.AddCommand(listenCmd)
}
