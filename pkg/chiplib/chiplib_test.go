package chiplib

import (
	"strings"
	"testing"
)

const sampleLib = `
-- standard DIP packages
package DIP14 is width 2 pins 14;
package DIP16 is width 2 pins 16;

chip 74HC00 is package DIP14
  function "NAND";
  function "NAND";
  function "NAND";
  function "NAND";
end 74HC00;

chip 74HC595 is package DIP16
  function "SHIFT REGISTER";
end 74HC595;
`

func TestParseLibrary(t *testing.T) {
	p, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	lib := NewLibrary()
	if err := p.ParseString(sampleLib, lib); err != nil {
		t.Fatalf("ParseString: %v", err)
	}

	pkg, ok := lib.Package("DIP14")
	if !ok {
		t.Fatal("package DIP14 not found")
	}
	if pkg.PinCount != 14 || pkg.ChipWidth != 2 {
		t.Errorf("DIP14 = %+v, want pins 14 width 2", pkg)
	}

	chip, ok := lib.Chip("74HC00")
	if !ok {
		t.Fatal("chip 74HC00 not found")
	}
	if chip.Package != "DIP14" {
		t.Errorf("74HC00 package = %q, want DIP14", chip.Package)
	}
	if len(chip.Functions) != 4 || chip.Functions[0] != "NAND" {
		t.Errorf("74HC00 functions = %v, want four NAND entries", chip.Functions)
	}
}

func TestParseEndNameMismatch(t *testing.T) {
	p, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	lib := NewLibrary()
	src := `
package DIP14 is width 2 pins 14;
chip 74HC00 is package DIP14
  function "NAND";
end 74HC04;
`
	if err := p.ParseString(src, lib); err == nil {
		t.Fatal("expected error for mismatched end name")
	}
}

func TestParseChipBeforePackage(t *testing.T) {
	p, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	lib := NewLibrary()
	src := `
chip 74HC00 is package DIP14
end 74HC00;
`
	if err := p.ParseString(src, lib); err == nil {
		t.Fatal("expected error for chip referencing undeclared package")
	}
}

func TestResolve(t *testing.T) {
	lib := NewLibrary()
	if err := lib.AddPackage(PackageDef{TypeName: "DIP14", ChipWidth: 2, PinCount: 14}); err != nil {
		t.Fatalf("AddPackage: %v", err)
	}
	if err := lib.AddChip(ChipDef{Name: "74HC00", Package: "DIP14"}); err != nil {
		t.Fatalf("AddChip: %v", err)
	}

	chip, pkg, err := lib.Resolve("74HC00")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if chip.Name != "74HC00" || pkg.PinCount != 14 {
		t.Errorf("Resolve = %+v, %+v", chip, pkg)
	}

	if _, _, err := lib.Resolve("74HC999"); err == nil {
		t.Error("expected error for unknown chip")
	}
}

func TestAddPackageValidation(t *testing.T) {
	lib := NewLibrary()
	cases := []PackageDef{
		{TypeName: "", ChipWidth: 2, PinCount: 14},
		{TypeName: "DIP13", ChipWidth: 2, PinCount: 13},
		{TypeName: "DIP0", ChipWidth: 2, PinCount: 0},
		{TypeName: "FLAT", ChipWidth: 0, PinCount: 14},
	}
	for _, def := range cases {
		if err := lib.AddPackage(def); err == nil {
			t.Errorf("AddPackage(%+v) succeeded, want error", def)
		}
	}
}

func TestLoadJSON(t *testing.T) {
	lib := NewLibrary()
	packages := `[{"type_name": "DIP14", "chip_width": 2, "pin_count": 14}]`
	if err := lib.LoadPackagesJSON(strings.NewReader(packages)); err != nil {
		t.Fatalf("LoadPackagesJSON: %v", err)
	}
	chips := `[{"name": "74HC00", "package": "DIP14", "functions": ["NAND"]}]`
	if err := lib.LoadChipsJSON(strings.NewReader(chips)); err != nil {
		t.Fatalf("LoadChipsJSON: %v", err)
	}
	if _, _, err := lib.Resolve("74HC00"); err != nil {
		t.Fatalf("Resolve after JSON load: %v", err)
	}
}
