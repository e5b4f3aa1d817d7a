package cmd

import (
	"fmt"
	"os"

	gioapp "gioui.org/app"
	"github.com/spf13/cobra"

	appui "github.com/ProtoTraceLab/ProtoBoard/internal/ui"
	"github.com/ProtoTraceLab/ProtoBoard/pkg/circuit"
)

var (
	uiBoardSize   int
	uiCircuitFile string
	uiLibraryFile string
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the interactive editor",
	Long: `Launch the breadboard editor with graphical placement of wires and
chips, pan/zoom navigation, and circuit save/load.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		size := circuit.Board830
		switch uiBoardSize {
		case 830:
		case 1260:
			size = circuit.Board1260
		default:
			return fmt.Errorf("unsupported board size %d (830 or 1260)", uiBoardSize)
		}

		lib, err := loadLibrary(uiLibraryFile)
		if err != nil {
			return err
		}

		window := new(gioapp.Window)
		editor, err := appui.New(window, appui.NewState(), lib, size)
		if err != nil {
			return err
		}
		if uiCircuitFile != "" {
			if err := editor.LoadCircuit(uiCircuitFile); err != nil {
				return fmt.Errorf("loading %s: %w", uiCircuitFile, err)
			}
		}

		go func() {
			if err := editor.Run(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			os.Exit(0)
		}()
		gioapp.Main()
		return nil
	},
}

func init() {
	uiCmd.Flags().IntVar(&uiBoardSize, "board", 830, "board size (830 or 1260)")
	uiCmd.Flags().StringVarP(&uiCircuitFile, "file", "f", "", "circuit file to open")
	uiCmd.Flags().StringVarP(&uiLibraryFile, "lib", "l", "", "chip library file (text format)")
	rootCmd.AddCommand(uiCmd)
}
