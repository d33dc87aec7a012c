package youtube

import (
	"regexp"
	"strconv"
)

// ShortMaxSeconds is the duration threshold for the short classification.
const ShortMaxSeconds = 60

// durationRe matches the ISO-8601 duration tokens the Data API emits,
// e.g. "PT1H2M3S", "PT45S", "PT1M".
var durationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseDurationSeconds parses a Data API duration token into total seconds.
// Tokens that do not match the fixed pattern parse as 0.
func ParseDurationSeconds(token string) int {
	m := durationRe.FindStringSubmatch(token)
	if m == nil {
		return 0
	}
	hours := atoiDefault(m[1])
	minutes := atoiDefault(m[2])
	seconds := atoiDefault(m[3])
	return hours*3600 + minutes*60 + seconds
}

// IsShort classifies a duration token: total length of at most 60 seconds
// means short-form. The classification is derived once at fetch time.
func IsShort(token string) bool {
	return ParseDurationSeconds(token) <= ShortMaxSeconds
}

func atoiDefault(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
