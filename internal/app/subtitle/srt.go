package subtitle

import (
	"fmt"
	"strings"

	"videomind/internal/app/model"
)

// GenerateSRT renders transcript segments as SubRip caption blocks: a 1-based
// index line, a timecode line, the text line, then a blank separator. Pure
// transform, no I/O.
func GenerateSRT(segments []model.Segment) string {
	var b strings.Builder
	for i, seg := range segments {
		b.WriteString(fmt.Sprintf("%d\n", i+1))
		b.WriteString(fmt.Sprintf("%s --> %s\n", formatTimecode(seg.Start), formatTimecode(seg.End)))
		b.WriteString(seg.Text)
		b.WriteString("\n\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// formatTimecode renders seconds as HH:MM:SS,mmm with zero padding.
// Milliseconds are truncated toward zero, not rounded.
func formatTimecode(seconds float64) string {
	h := int(seconds) / 3600
	m := (int(seconds) % 3600) / 60
	s := int(seconds) % 60
	ms := int((seconds - float64(int(seconds))) * 1000)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}
