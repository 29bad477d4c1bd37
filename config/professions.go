package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultProfessions is used when no input file is given.
var DefaultProfessions = []string{
	"sanitärinstallation",
	"elektroinstallationen",
	"steuerberatung",
	"arzt",
	"rechtsanwalt",
}

// ReadProfessions reads one profession per line. Lines are trimmed and
// lower-cased; blank lines are skipped.
func ReadProfessions(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("input file not found: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("could not read input file: %w", err)
	}

	professions := NormalizeProfessions(lines)
	if len(professions) == 0 {
		return nil, fmt.Errorf("input file %s lists no professions", path)
	}
	return professions, nil
}

func NormalizeProfessions(in []string) []string {
	lower := cases.Lower(language.German)
	out := make([]string, 0, len(in))
	for _, p := range in {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, lower.String(p))
	}
	return out
}
