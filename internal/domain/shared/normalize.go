package shared

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upper = cases.Upper(language.Und)

// NormalizeCode trims and upper-cases a business code such as a vendor or
// item code, so lookups and uniqueness checks are case-insensitive.
func NormalizeCode(code string) string {
	return upper.String(strings.TrimSpace(code))
}
