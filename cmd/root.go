// cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/ColonelBlimp/cwtrainer/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "cwtrainer",
	Short: "CW (Morse code) trainer for the terminal",
	Long: `A terminal Morse code trainer. Practice sending with a straight key or
iambic paddles and watch your keying decoded live, or practice copying
randomly generated code groups by ear.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags (override config file)
	rootCmd.PersistentFlags().IntP("wpm", "w", 10, "keying speed in words per minute")
	rootCmd.PersistentFlags().Float64P("frequency", "f", 550, "sidetone frequency in Hz")
	rootCmd.PersistentFlags().Float64P("volume", "v", 20, "sidetone volume (0-100)")
	rootCmd.PersistentFlags().StringP("mode", "m", "straight", "keyer mode: straight, iambic-a, iambic-b")
	rootCmd.PersistentFlags().BoolP("silent", "s", false, "run without audio output")
	rootCmd.PersistentFlags().BoolP("debug", "D", false, "enable debug logging to a file")

	// Bind flags to viper
	viper.BindPFlag("wpm", rootCmd.PersistentFlags().Lookup("wpm"))
	viper.BindPFlag("frequency", rootCmd.PersistentFlags().Lookup("frequency"))
	viper.BindPFlag("volume", rootCmd.PersistentFlags().Lookup("volume"))
	viper.BindPFlag("keyer_mode", rootCmd.PersistentFlags().Lookup("mode"))
	viper.BindPFlag("silent", rootCmd.PersistentFlags().Lookup("silent"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
}
