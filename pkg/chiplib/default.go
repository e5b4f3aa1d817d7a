package chiplib

// DefaultLibrary returns the built-in library used when no library
// files are given: the common DIP packages and a starter set of
// 74-series logic chips.
func DefaultLibrary() *Library {
	lib := NewLibrary()
	packages := []PackageDef{
		{TypeName: "DIP8", ChipWidth: 2, PinCount: 8},
		{TypeName: "DIP14", ChipWidth: 2, PinCount: 14},
		{TypeName: "DIP16", ChipWidth: 2, PinCount: 16},
		{TypeName: "DIP20", ChipWidth: 2, PinCount: 20},
	}
	chips := []ChipDef{
		{Name: "NE555", Package: "DIP8", Functions: []string{"TIMER"}},
		{Name: "74HC00", Package: "DIP14", Functions: []string{"NAND", "NAND", "NAND", "NAND"}},
		{Name: "74HC04", Package: "DIP14", Functions: []string{"NOT", "NOT", "NOT", "NOT", "NOT", "NOT"}},
		{Name: "74HC08", Package: "DIP14", Functions: []string{"AND", "AND", "AND", "AND"}},
		{Name: "74HC32", Package: "DIP14", Functions: []string{"OR", "OR", "OR", "OR"}},
		{Name: "74HC86", Package: "DIP14", Functions: []string{"XOR", "XOR", "XOR", "XOR"}},
		{Name: "74HC138", Package: "DIP16", Functions: []string{"3-TO-8 DECODER"}},
		{Name: "74HC595", Package: "DIP16", Functions: []string{"SHIFT REGISTER"}},
		{Name: "74HC245", Package: "DIP20", Functions: []string{"BUS TRANSCEIVER"}},
	}
	for _, def := range packages {
		if err := lib.AddPackage(def); err != nil {
			panic(err) // static data, must be valid
		}
	}
	for _, def := range chips {
		if err := lib.AddChip(def); err != nil {
			panic(err)
		}
	}
	return lib
}
