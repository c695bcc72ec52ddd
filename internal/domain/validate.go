package domain

import "strings"

var (
	nationalIDCleaner = strings.NewReplacer(".", "", " ", "")
	phoneCleaner      = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
)

// ValidNationalID reports whether s is a well-formed national identity
// number: 7 or 8 digits once dots and spaces are stripped.
func ValidNationalID(s string) bool {
	cleaned := nationalIDCleaner.Replace(s)
	return allDigits(cleaned) && len(cleaned) >= 7 && len(cleaned) <= 8
}

// ValidPhone reports whether s is a well-formed phone number: 8 to 15
// digits once spaces, hyphens, and parentheses are stripped.
func ValidPhone(s string) bool {
	cleaned := phoneCleaner.Replace(s)
	return allDigits(cleaned) && len(cleaned) >= 8 && len(cleaned) <= 15
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
