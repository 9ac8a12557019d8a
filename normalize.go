package sciexpr

import "strings"

// glyphs lists keypad glyphs and their canonical spellings. Where one glyph
// is a prefix of another, the longer one must come first; the replacer tries
// candidates at each position in this order.
var glyphs = []string{
	// roots, bare name when the caller already opened the argument list
	"y√x(", "root(",
	"y√x", "root(",
	"ʸ√(", "root(",
	"ʸ√", "root(",
	"∛(", "cbrt(",
	"∛", "cbrt(",
	"√(", "sqrt(",
	"√", "sqrt(",

	// logarithms
	"log₁₀", "log10",
	"logₑ", "ln",
	"log₂", "log2",

	// powers
	"10ˣ", "10^",
	"xʸ", "^",
	"²", "^2",
	"³", "^3",

	// arithmetic
	"×", "*",
	"·", "*",
	"∙", "*",
	"÷", "/",
	"−", "-",
	"%", "/100",
	"n!", "!",

	// constants
	"π", "pi",
	"ℯ", "e",
}

var normalizer = strings.NewReplacer(glyphs...)

// Normalize rewrites calculator glyphs into the plain spelling understood by
// Parse, e.g. "2×π" becomes "2*pi" and "√16" becomes "sqrt(16". Characters
// without a registered substitution pass through unchanged.
func Normalize(raw string) string {
	return normalizer.Replace(raw)
}
