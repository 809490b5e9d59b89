package motion

import (
	"strings"
)

// Reduced-motion modes accepted by DetectReducedMotion.
const (
	ReducedAuto = "auto"
	ReducedOn   = "on"
	ReducedOff  = "off"
)

// DetectReducedMotion resolves the system motion preference once at startup.
// In auto mode PREFERS_REDUCED_MOTION wins; GTK_ENABLE_ANIMATIONS=0 also
// counts as a request to reduce motion.
func DetectReducedMotion(mode string, getenv func(string) string) bool {
	switch mode {
	case ReducedOn:
		return true
	case ReducedOff:
		return false
	}

	if v := strings.ToLower(strings.TrimSpace(getenv("PREFERS_REDUCED_MOTION"))); v != "" {
		switch v {
		case "1", "true", "yes", "reduce":
			return true
		default:
			return false
		}
	}

	switch strings.ToLower(strings.TrimSpace(getenv("GTK_ENABLE_ANIMATIONS"))) {
	case "0", "false", "no":
		return true
	}
	return false
}
