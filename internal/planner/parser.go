package planner

import (
	"regexp"
	"strings"
)

// TotalTimeUnknown is the sentinel returned when model output carries no
// total-time marker line.
const TotalTimeUnknown = "Unknown"

var totalTimeRe = regexp.MustCompile(`\*\*Total time\*\*: (.*?)(?:\r|\n|$)`)

// ExtractTotalTime scans model output for the "**Total time**:" marker line
// and returns the trimmed value that follows it. A missing marker is an
// expected case and yields TotalTimeUnknown; the function never fails.
func ExtractTotalTime(text string) string {
	m := totalTimeRe.FindStringSubmatch(text)
	if m == nil {
		return TotalTimeUnknown
	}
	return strings.TrimSpace(m[1])
}
