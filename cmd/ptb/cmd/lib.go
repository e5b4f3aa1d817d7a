package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ProtoTraceLab/ProtoBoard/pkg/chiplib"
)

// loadLibrary returns the chip library the editor places from: the
// built-in defaults when path is empty, otherwise the parsed text
// definitions from path.
func loadLibrary(path string) (*chiplib.Library, error) {
	if path == "" {
		return chiplib.DefaultLibrary(), nil
	}
	parser, err := chiplib.NewParser()
	if err != nil {
		return nil, err
	}
	lib := chiplib.NewLibrary()
	if err := parser.ParseFile(path, lib); err != nil {
		return nil, err
	}
	return lib, nil
}

var libCmd = &cobra.Command{
	Use:   "lib",
	Short: "Inspect chip library files",
}

var libCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Parse a library file and list its definitions",
	Long: `Parse a chip library in the text definition format and print the
packages and chips it declares. A non-zero exit means the file did
not parse or referenced an unknown package.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := loadLibrary(args[0])
		if err != nil {
			return err
		}

		pkgs := lib.Packages()
		sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].TypeName < pkgs[j].TypeName })
		chips := lib.Chips()
		sort.Slice(chips, func(i, j int) bool { return chips[i].Name < chips[j].Name })

		fmt.Printf("%s: %d packages, %d chips\n", args[0], len(pkgs), len(chips))
		for _, p := range pkgs {
			fmt.Printf("  package %-8s width=%.1f pins=%d\n", p.TypeName, p.ChipWidth, p.PinCount)
		}
		for _, c := range chips {
			// Every chip resolved here: loadLibrary already rejected
			// dangling package references.
			chip, pkg, err := lib.Resolve(c.Name)
			if err != nil {
				return err
			}
			fmt.Printf("  chip    %-10s %s (%d pins)\n", chip.Name, pkg.TypeName, pkg.PinCount)
			if verbose && len(chip.Functions) > 0 {
				fmt.Printf("          functions: %s\n", strings.Join(chip.Functions, ", "))
			}
		}
		return nil
	},
}

func init() {
	libCmd.AddCommand(libCheckCmd)
	rootCmd.AddCommand(libCmd)
}
