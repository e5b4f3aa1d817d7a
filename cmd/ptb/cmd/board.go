package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ProtoTraceLab/ProtoBoard/pkg/board"
)

var boardSizeFlag int

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Print the hole layout of a board",
	Long: `Build the hole matrix for a board size and print a per-band summary.
Useful for checking coordinates when writing layout programs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m := board.NewMatrix()
		var err error
		switch boardSizeFlag {
		case 830:
			err = board.BuildMatrix830(1, 1, m)
		case 1260:
			err = board.BuildMatrix1260(1, 1, m)
		default:
			return fmt.Errorf("unsupported board size %d (830 or 1260)", boardSizeFlag)
		}
		if err != nil {
			return err
		}

		counts := map[board.Band]int{}
		for _, key := range m.Keys() {
			counts[m.Hole(key).Band]++
		}
		fmt.Printf("Board %d: %d holes\n", boardSizeFlag, len(m))
		fmt.Printf("  distribution: %d\n", counts[board.BandDistribution])
		fmt.Printf("  rail:         %d\n", counts[board.BandRail])

		if verbose {
			for _, key := range m.Keys() {
				h := m.Hole(key)
				fmt.Printf("  %-8s %-12s (%.1f, %.1f)\n", key, h.Band, h.Pos.X, h.Pos.Y)
			}
		}
		return nil
	},
}

func init() {
	boardCmd.Flags().IntVar(&boardSizeFlag, "size", 830, "board size (830 or 1260)")
	rootCmd.AddCommand(boardCmd)
}
