// cmd/codes.go
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ColonelBlimp/cwtrainer/internal/morse"
)

var codesCmd = &cobra.Command{
	Use:   "codes",
	Short: "Print the Morse code table",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, c := range morse.Codes() {
			fmt.Fprintf(out, "%c  %s\n", c.Char, c.Pattern)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Prosigns:")
		for _, p := range morse.Prosigns {
			fmt.Fprintf(out, "%-8s %s\n", p.Pattern, renderProsign(p.Text))
		}
	},
}

// renderProsign makes the newline-committing prosigns printable.
func renderProsign(text string) string {
	if strings.HasSuffix(text, "\n") {
		return strings.TrimSuffix(text, "\n") + " (New Line)"
	}
	return text
}

func init() {
	rootCmd.AddCommand(codesCmd)
}
