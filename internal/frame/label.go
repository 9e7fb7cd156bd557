// internal/frame/label.go
package frame

import (
	"regexp"
	"strconv"
)

var labelIndex = regexp.MustCompile(`\((\d+)\)`)

// LabelIndex recovers the marker number from a label like "New Marker (3)".
// The first parenthesized number wins. Range is NOT checked here:
// encoding drops out-of-range indices.
func LabelIndex(label string) (int, bool) {
	m := labelIndex.FindStringSubmatch(label)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
