package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ProtoTraceLab/ProtoBoard/pkg/circuit"
)

var circuitBoardSize int

var circuitCmd = &cobra.Command{
	Use:   "circuit",
	Short: "Inspect saved circuit files",
}

var circuitInfoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Summarize a saved circuit without opening the editor",
	Long: `Replay a saved circuit onto a headless board and print what it
contains. Replay uses the same placement rules as the editor, so a
file that overlaps entities or falls off the board fails here too.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		size := circuit.Board830
		switch circuitBoardSize {
		case 830:
		case 1260:
			size = circuit.Board1260
		default:
			return fmt.Errorf("unsupported board size %d (830 or 1260)", circuitBoardSize)
		}

		doc, err := circuit.NewDocument(&circuit.NullBackend{}, size)
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		if err := doc.Load(f); err != nil {
			return err
		}

		wires, chips := 0, 0
		for _, id := range doc.Store.IDs() {
			e, _ := doc.Store.Get(id)
			if e.Kind == circuit.KindWire {
				wires++
			} else {
				chips++
			}
		}
		fmt.Printf("%s: %d entities (%d wires, %d chips)\n", args[0], doc.Store.Len(), wires, chips)

		for _, id := range doc.Store.IDs() {
			e, _ := doc.Store.Get(id)
			switch e.Kind {
			case circuit.KindWire:
				fmt.Printf("  %-12s wire  %-7s %s -> %s\n", e.ID, e.Color, e.Ends[0], e.Ends[1])
			case circuit.KindChip:
				fmt.Printf("  %-12s chip  %-10s anchor %s (%d pins)\n", e.ID, e.Label, e.Claims[0], e.PinCount)
			}
			if verbose {
				fmt.Printf("               claims %v\n", e.Claims)
			}
		}
		return nil
	},
}

func init() {
	circuitInfoCmd.Flags().IntVar(&circuitBoardSize, "board", 830, "board size to replay onto (830 or 1260)")
	circuitCmd.AddCommand(circuitInfoCmd)
	rootCmd.AddCommand(circuitCmd)
}
