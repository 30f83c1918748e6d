package sonar

import (
	"strconv"
	"strings"
)

// SonarCloud counts a work day as eight hours.
const minutesPerDay = 8 * 60

// ParseEffort converts a Sonar duration such as "5min", "1h 30min" or "2d"
// into minutes. ok is false when s is empty or not a valid duration.
func ParseEffort(s string) (minutes int, ok bool) {
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return 0, false
	}

	units := []struct {
		suffix string
		scale  int
	}{
		{"d", minutesPerDay},
		{"h", 60},
		{"min", 1},
	}

	rest := s
	for _, u := range units {
		idx := strings.Index(rest, u.suffix)
		if idx < 0 {
			continue
		}
		n, err := strconv.Atoi(rest[:idx])
		if err != nil || n < 0 {
			return 0, false
		}
		minutes += n * u.scale
		rest = rest[idx+len(u.suffix):]
	}

	if rest != "" || rest == s {
		return 0, false
	}
	return minutes, true
}
