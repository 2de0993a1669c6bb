package match

import (
	"strconv"
	"strings"
)

// ExtractLinkCount pulls the link-count figure out of a raw metrics row.
// The sheet has renamed this column several times over the years, so the
// accepted spellings arrive as an ordered alias list from configuration.
// The first non-empty value wins; if it does not parse as an integer the
// result is 0, never an error.
func ExtractLinkCount(fields map[string]string, aliases []string) int {
	for _, key := range aliases {
		v, ok := fields[key]
		if !ok {
			continue
		}
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		// tolerate thousands separators ("1,204")
		n, err := strconv.Atoi(strings.ReplaceAll(v, ",", ""))
		if err != nil || n < 0 {
			return 0
		}
		return n
	}
	return 0
}
