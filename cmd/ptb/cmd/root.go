package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ptb",
	Short: "ProtoBoard - breadboard circuit editor",
	Long: `ProtoBoard (ptb) is an editor for solderless breadboard circuits:
  - Interactive placement of wires and DIP chips on 830/1260-point boards
  - Chip package and function libraries (text or JSON format)
  - Headless inspection of boards, libraries, and saved circuits

Examples:
  ptb ui                              # Launch the interactive editor
  ptb ui --board 1260 -f led.json     # Open a saved circuit on a double board
  ptb board --size 830                # Print the hole layout summary
  ptb lib check chips.cl              # Validate a chip library file
  ptb circuit info led.json           # Summarize a saved circuit`,
	Version: "0.3.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
