package service

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// displayTopic normalizes a stored topic for display; storage keeps the
// original (lowercased) value.
func displayTopic(topic string) string {
	return titleCaser.String(topic)
}

// formatTimeDelta renders a duration in seconds as "1h 2m 3s", eliding zero
// units. Zero seconds renders as "0s".
func formatTimeDelta(seconds int64) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if secs > 0 {
		parts = append(parts, fmt.Sprintf("%ds", secs))
	}
	if len(parts) == 0 {
		return "0s"
	}
	return strings.Join(parts, " ")
}
