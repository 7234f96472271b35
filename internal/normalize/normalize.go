package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Name folds a player nickname into its lookup form: diacritics stripped,
// lower case, surrounding space removed. "Ratão " and "ratao" collide on
// purpose.
func Name(name string) string {
	folded, _, err := transform.String(stripper, name)
	if err != nil {
		folded = name
	}
	return strings.ToLower(strings.TrimSpace(folded))
}
