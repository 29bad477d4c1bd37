package storage

import (
	"regexp"
	"strings"
)

// "Reichenbachstr. 17, 80469 München (Isarvorstadt)"
var addressPattern = regexp.MustCompile(`^(.*?),\s*(\d{5})\s*(\S.*?)(?:\s*\(.*\))?$`)

// ParseAddress splits a one-line German address into street, postal code
// and city. The district suffix in parentheses is dropped. An address that
// does not fit the pattern is returned whole as the street.
func ParseAddress(address string) (street, postalCode, city string) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", "", ""
	}

	m := addressPattern.FindStringSubmatch(address)
	if m == nil {
		return address, "", ""
	}
	return m[1], m[2], m[3]
}
