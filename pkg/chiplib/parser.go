package chiplib

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The text library format is a compact declaration language:
//
//	-- quad 2-input NAND
//	package DIP14 is width 2 pins 14;
//
//	chip 74HC00 is package DIP14
//	  function "NAND";
//	  function "NAND";
//	  function "NAND";
//	  function "NAND";
//	end 74HC00;

var libraryLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `--[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},

	{Name: "KwPackage", Pattern: `(?i)\bPACKAGE\b`},
	{Name: "KwChip", Pattern: `(?i)\bCHIP\b`},
	{Name: "KwIs", Pattern: `(?i)\bIS\b`},
	{Name: "KwEnd", Pattern: `(?i)\bEND\b`},
	{Name: "KwWidth", Pattern: `(?i)\bWIDTH\b`},
	{Name: "KwPins", Pattern: `(?i)\bPINS\b`},
	{Name: "KwFunction", Pattern: `(?i)\bFUNCTION\b`},

	{Name: "String", Pattern: `"[^"]*"`},
	// Identifiers may start with digits (74HC00) but always contain a
	// letter, which keeps them distinct from numbers.
	{Name: "Ident", Pattern: `[0-9]*[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Number", Pattern: `[0-9]+(?:\.[0-9]+)?`},
	{Name: "Semicolon", Pattern: `;`},
})

// libraryFile is the parse tree of one library text file.
type libraryFile struct {
	Decls []*libraryDecl `parser:"@@*"`
}

type libraryDecl struct {
	Package *packageDecl `parser:"  @@"`
	Chip    *chipDecl    `parser:"| @@"`
}

type packageDecl struct {
	Name  string  `parser:"KwPackage @Ident KwIs"`
	Width float64 `parser:"KwWidth @Number"`
	Pins  int     `parser:"KwPins @Number Semicolon"`
}

type chipDecl struct {
	Name      string   `parser:"KwChip @Ident KwIs KwPackage"`
	Package   string   `parser:"@Ident"`
	Functions []string `parser:"( KwFunction @String Semicolon )*"`
	EndName   string   `parser:"KwEnd @Ident Semicolon"`
}

// Parser parses text chip library files.
type Parser struct {
	parser *participle.Parser[libraryFile]
}

// NewParser builds the library grammar once; the parser is reusable
// across files.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[libraryFile](
		participle.Lexer(libraryLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.Unquote("String"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("chiplib: building parser: %w", err)
	}
	return &Parser{parser: parser}, nil
}

// Parse reads library declarations into lib. Packages must appear
// before the chips that reference them, and a chip's end name must
// match its declaration.
func (p *Parser) Parse(r io.Reader, lib *Library) error {
	file, err := p.parser.Parse("", r)
	if err != nil {
		return fmt.Errorf("chiplib: parse error: %w", err)
	}
	return p.install(file, lib)
}

// ParseString parses library declarations from a string.
func (p *Parser) ParseString(input string, lib *Library) error {
	file, err := p.parser.ParseString("", input)
	if err != nil {
		return fmt.Errorf("chiplib: parse error: %w", err)
	}
	return p.install(file, lib)
}

// ParseFile parses a library file from disk.
func (p *Parser) ParseFile(filename string, lib *Library) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("chiplib: opening %s: %w", filename, err)
	}
	defer f.Close()
	return p.Parse(f, lib)
}

func (p *Parser) install(file *libraryFile, lib *Library) error {
	for _, decl := range file.Decls {
		switch {
		case decl.Package != nil:
			err := lib.AddPackage(PackageDef{
				TypeName:  decl.Package.Name,
				ChipWidth: decl.Package.Width,
				PinCount:  decl.Package.Pins,
			})
			if err != nil {
				return err
			}
		case decl.Chip != nil:
			if decl.Chip.EndName != decl.Chip.Name {
				return fmt.Errorf("chiplib: chip %s ends with mismatched name %s",
					decl.Chip.Name, decl.Chip.EndName)
			}
			err := lib.AddChip(ChipDef{
				Name:      decl.Chip.Name,
				Package:   decl.Chip.Package,
				Functions: decl.Chip.Functions,
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}
