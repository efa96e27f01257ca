package pdf

import "github.com/longyuju1116/invoice/internal/models"

// SplitPlan is an ordered list of strictly increasing item index boundaries
// [0 = b0 < b1 < ... < bn = len(items)]. Each half-open interval
// [b(i-1), b(i)) is the item range of one payment page. With zero items the
// plan is [0, 0]: a single empty payment page is still emitted so downstream
// signature-grid counting stays consistent.
type SplitPlan []int

// Segment is a contiguous item range assigned to one payment page
type Segment struct {
	Start int
	End   int
}

// Segments expands the boundary list into per-page item ranges
func (p SplitPlan) Segments() []Segment {
	segments := make([]Segment, 0, len(p)-1)
	for i := 1; i < len(p); i++ {
		segments = append(segments, Segment{Start: p[i-1], End: p[i]})
	}
	return segments
}

// PageCount returns the number of payment pages the plan produces
func (p SplitPlan) PageCount() int {
	if len(p) < 2 {
		return 1
	}
	return len(p) - 1
}

// PlanPages computes where to cut the item list into page-sized segments.
//
// Single greedy forward pass: each item contributes its estimated row height,
// and the first item of every segment additionally carries the table header
// row, since the header repeats at the top of each page. When an item no
// longer fits the current budget the segment is closed before it, and the
// item opens the next segment against the continuation budget. An item that
// alone exceeds its budget still gets its own segment; items are never split
// mid-row, so the pass always makes progress.
func PlanPages(items []models.LineItem, budget Budget, est Estimator) SplitPlan {
	plan := SplitPlan{0}
	if len(items) == 0 {
		return append(plan, 0)
	}

	current := budget.FirstPage
	segmentStart := 0
	accumulated := 0.0
	for i, item := range items {
		rowHeight := est.RowHeight(item.ExecutionContent)
		if i == segmentStart {
			rowHeight += headerRowHeight
		}
		if accumulated+rowHeight > current && i > segmentStart {
			plan = append(plan, i)
			segmentStart = i
			current = budget.Continuation
			// The item now opens a segment, so it carries the header row
			accumulated = est.RowHeight(item.ExecutionContent) + headerRowHeight
			continue
		}
		accumulated += rowHeight
	}
	return append(plan, len(items))
}
