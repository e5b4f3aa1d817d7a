package cmd

import (
	"fmt"
	"os"

	"github.com/chewxy/sexp"
	"github.com/spf13/cobra"
)

var sexpCmd = &cobra.Command{
	Use:   "sexp <file>",
	Short: "Dump the structure of an s-expression file",
	Long: `Parse an s-expression file (KiCad netlist exports and similar) and
print its top-level structure. Useful for checking whether a file is
well-formed before trying to import anything from it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return err
		}

		sexps, err := sexp.Parse(f)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", args[0], err)
		}

		fmt.Printf("%s: %d bytes, %d top-level s-expressions\n", args[0], info.Size(), len(sexps))
		for i, s := range sexps {
			if s == nil {
				continue
			}
			if s.IsLeaf() {
				fmt.Printf("  [%d] leaf\n", i)
			} else {
				fmt.Printf("  [%d] list, %d leaves\n", i, s.LeafCount())
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sexpCmd)
}
