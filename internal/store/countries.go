package store

import (
	"encoding/json"
	"errors"
	"strings"
)

var errNotStringArray = errors.New("country list is not a JSON array of strings")

// ParseCountryList parses the countries column of a shipping zone into a
// typed set. The column holds a JSON array of ISO-3166 alpha-2 codes
// (legacy rows sometimes carry a comma-separated string instead). Codes are
// uppercased and blanks dropped. A malformed value returns a nil set and an
// error; the caller treats such a zone as matching nothing.
func ParseCountryList(raw string) (map[string]struct{}, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]struct{}{}, nil
	}
	if strings.HasPrefix(raw, "[") {
		var codes []string
		if err := json.Unmarshal([]byte(raw), &codes); err != nil {
			return nil, errNotStringArray
		}
		return buildSet(codes), nil
	}
	// Legacy comma-separated form.
	return buildSet(strings.Split(raw, ",")), nil
}

func buildSet(codes []string) map[string]struct{} {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		set[c] = struct{}{}
	}
	return set
}
