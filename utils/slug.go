package utils

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// SafeName turns a profession or location into a file name fragment:
// lower-cased, with every run of non-word characters replaced by "_".
// An empty input yields "all".
func SafeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "all"
	}
	return nonWord.ReplaceAllString(cases.Lower(language.German).String(s), "_")
}
