package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Letters that carry their stroke in the base code point and do not decompose under NFD.
var strokeLetters = strings.NewReplacer(
	"đ", "d", "Đ", "D",
	"ø", "o", "Ø", "O",
	"ł", "l", "Ł", "L",
)

// RemoveDiacritics strips accents: "José Núñez" → "Jose Nunez".
// Decomposes to NFD, drops every combining mark (Mn, Mc, Me) and recomposes.
func RemoveDiacritics(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.M)), norm.NFC)
	result, _, err := transform.String(t, input)
	if err != nil {
		result = input
	}
	return strokeLetters.Replace(result)
}

// Fold lower-cases s after removing its diacritics.
// Two strings that differ only by case or accents fold to the same value.
func Fold(s string) string {
	return strings.ToLower(RemoveDiacritics(s))
}
