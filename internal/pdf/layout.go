package pdf

// All lengths are in centimeters on an A4 portrait page. The page budgets,
// the planner and the renderer share these constants so that the point where
// the planner cuts a segment is the point where the renderer runs out of room.
const (
	pageWidth  = 21.0
	pageHeight = 29.7

	marginLeft   = 1.5
	marginRight  = 1.5
	marginTop    = 2.0
	marginBottom = 6.0 // reserves the signature band on payment pages

	contentWidth  = pageWidth - marginLeft - marginRight
	contentHeight = pageHeight - marginTop - marginBottom

	// Item table metrics. Row height grows with the wrapped line count of
	// the execution content column.
	defaultWrapWidth = 9
	perLineHeight    = 0.6
	minRowHeight     = 0.8
	headerRowHeight  = 1.2

	// Fixed block above the table on the first payment page: title, basic
	// info rows, section heading and the category legend.
	titleBlockHeight     = 2.2
	basicInfoRowHeight   = 0.8
	basicInfoBlockHeight = 3 * basicInfoRowHeight
	sectionHeadingHeight = 1.1
	legendBlockHeight    = 2.0
	firstPageReserved    = titleBlockHeight + basicInfoBlockHeight +
		sectionHeadingHeight + legendBlockHeight + 0.8

	// Continuation pages carry only the table, pushed down from the top edge
	continuationTopGap = 4.0
)

// tableColWidths are the six item table column widths:
// 專案, 費用類型, 執行時間, 執行內容, 金額, 備註憑證.
var tableColWidths = [6]float64{3.0, 3.0, 2.5, 4.0, 2.5, 2.5}

func tableWidth() float64 {
	w := 0.0
	for _, c := range tableColWidths {
		w += c
	}
	return w
}

// Budget is the vertical space available to the item table, one value for
// the first payment page and one for every continuation page.
type Budget struct {
	FirstPage    float64
	Continuation float64
}

// DefaultBudget derives the two page budgets from the page geometry
func DefaultBudget() Budget {
	return Budget{
		FirstPage:    contentHeight - firstPageReserved,
		Continuation: contentHeight - continuationTopGap,
	}
}
