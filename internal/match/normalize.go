package match

import "strings"

// quotes and apostrophes (straight and smart) disappear entirely; colons and
// dash variants become spaces so "Dog Parks: A Study" and "Dog Parks - A
// Study" normalize the same way.
var (
	quoteStripper = strings.NewReplacer(
		"'", "", "‘", "", "’", "",
		`"`, "", "“", "", "”", "",
		"`", "",
	)
	dashReplacer = strings.NewReplacer(
		":", " ", "-", " ", "–", " ", "—", " ",
	)
	punctStripper = strings.NewReplacer(
		".", "", ",", "", "!", "", "?", "", ";", "",
	)
)

// NormalizeTitle canonicalizes a story title for comparison: lowercase, no
// quotes or apostrophes, colons and dashes flattened to spaces, trailing
// punctuation stripped, whitespace collapsed. Idempotent: normalizing twice
// is the same as normalizing once.
func NormalizeTitle(s string) string {
	s = strings.ToLower(s)
	s = quoteStripper.Replace(s)
	s = dashReplacer.Replace(s)
	s = punctStripper.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
