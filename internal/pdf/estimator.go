package pdf

import "unicode/utf8"

// Estimator computes how much vertical space a text block occupies before
// layout. It wraps by rune count rather than measured glyph width, which is
// accurate for the CJK script these forms are written in and deliberately
// approximate for mixed narrow/wide scripts. Keeping it behind this type lets
// a glyph-metrics wrapper replace it without touching the planner.
type Estimator struct {
	wrapWidth int
}

// NewEstimator creates an estimator wrapping at wrapWidth runes per line.
// Non-positive widths fall back to the layout default.
func NewEstimator(wrapWidth int) Estimator {
	if wrapWidth <= 0 {
		wrapWidth = defaultWrapWidth
	}
	return Estimator{wrapWidth: wrapWidth}
}

// LineCount returns how many wrapped lines text occupies. Empty text still
// occupies one line.
func (e Estimator) LineCount(text string) int {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return 1
	}
	return (n + e.wrapWidth - 1) / e.wrapWidth
}

// RowHeight returns the table row height for a line item whose execution
// content is text.
func (e Estimator) RowHeight(text string) float64 {
	h := float64(e.LineCount(text)) * perLineHeight
	if h < minRowHeight {
		h = minRowHeight
	}
	return h
}

// Wrap splits text into chunks of at most wrapWidth runes, matching the line
// count reported by LineCount. Empty text yields a single empty line.
func (e Estimator) Wrap(text string) []string {
	if text == "" {
		return []string{""}
	}
	runes := []rune(text)
	lines := make([]string, 0, (len(runes)+e.wrapWidth-1)/e.wrapWidth)
	for start := 0; start < len(runes); start += e.wrapWidth {
		end := start + e.wrapWidth
		if end > len(runes) {
			end = len(runes)
		}
		lines = append(lines, string(runes[start:end]))
	}
	return lines
}
