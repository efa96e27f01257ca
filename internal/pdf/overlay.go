package pdf

import (
	"bytes"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Signature grid geometry. The grid anchors to the same absolute page
// coordinates on every qualifying page, independent of the flowing content.
const (
	sigGridWidth    = contentWidth
	sigColumns      = 5
	sigColWidth     = sigGridWidth / sigColumns
	sigRowUnits     = 0.8 // top band: paying/requesting unit labels
	sigRowRoles     = 0.8 // middle band: role titles
	sigRowBlank     = 1.0 // bottom band: signature space
	sigGridHeight   = sigRowUnits + sigRowRoles + sigRowBlank
	sigBottomOffset = 2.0
	sigGridTop      = pageHeight - sigBottomOffset - sigGridHeight

	markTargetHeight = 2.0
	pageNumberOffset = 1.5 // from the bottom edge
)

var sigRoleTitles = [sigColumns]string{"執行秘書", "財務主管", "財務經辦", "請款單位主管", "請款人"}

// overlayRenderer draws the fixed-position elements of each physical page:
// page number, org mark, back-office caption, and (on payment pages only)
// the signature grid and the running total caption.
type overlayRenderer struct {
	font       FontHandle
	mark       []byte  // normalized PNG, nil when absent or undecodable
	markAspect float64 // width / height
	logger     *zap.Logger
}

func newOverlayRenderer(font FontHandle, mark []byte, logger *zap.Logger) *overlayRenderer {
	o := &overlayRenderer{font: font, logger: logger}
	if len(mark) == 0 {
		return o
	}
	normalized, aspect, err := normalizeImage(mark)
	if err != nil {
		logger.Warn("Org mark image is not usable, pages will omit it", zap.Error(err))
		return o
	}
	o.mark = normalized
	o.markAspect = aspect
	return o
}

// Render draws the overlay for one physical page. pageNo is 1-based and
// doc.PaymentPageCount decides whether the signature grid applies.
func (o *overlayRenderer) Render(doc *fpdf.Fpdf, pageNo int, document Document, total decimal.Decimal) {
	doc.SetDrawColor(0, 0, 0)
	doc.SetTextColor(0, 0, 0)

	// Centered page number near the bottom edge
	doc.SetFont(o.font.Family, "", 12)
	textCentered(doc, pageWidth/2, pageHeight-pageNumberOffset, strconv.Itoa(pageNo))

	// Back-office reference caption, top right
	doc.SetFont(o.font.Family, "", 10)
	textRight(doc, pageWidth-2.0, 2.0, "費用申請單號：")
	textRight(doc, pageWidth-2.0, 2.3, "(財務組填寫)")

	o.drawMark(doc)

	if pageNo <= document.PaymentPageCount {
		o.drawSignatureGrid(doc)
		doc.SetFont(o.font.Family, "", 14)
		caption := "總計：NT$ " + FormatCurrency(total)
		textRight(doc, marginLeft+sigGridWidth, sigGridTop-0.5, caption)
	}
}

// drawMark places the org mark at the top left, scaled to a fixed height
// while preserving the original aspect ratio
func (o *overlayRenderer) drawMark(doc *fpdf.Fpdf) {
	if len(o.mark) == 0 {
		return
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	if doc.GetImageInfo("org-mark") == nil {
		doc.RegisterImageOptionsReader("org-mark", opts, bytes.NewReader(o.mark))
	}
	doc.ImageOptions("org-mark", 2.0, 0.5, markTargetHeight*o.markAspect, markTargetHeight,
		false, opts, 0, "")
}

// drawSignatureGrid draws the bordered 2+5+5 cell sign-off block. The grid
// content is identical on every payment page.
func (o *overlayRenderer) drawSignatureGrid(doc *fpdf.Fpdf) {
	startX := marginLeft
	doc.SetLineWidth(0.03)
	doc.Rect(startX, sigGridTop, sigGridWidth, sigGridHeight, "D")

	// Top band: two merged cells spanning 3 and 2 columns
	doc.Rect(startX, sigGridTop, 3*sigColWidth, sigRowUnits, "D")
	doc.Rect(startX+3*sigColWidth, sigGridTop, 2*sigColWidth, sigRowUnits, "D")
	doc.SetFont(o.font.Family, "", 14)
	unitBaseline := sigGridTop + sigRowUnits - 0.25
	textCentered(doc, startX+1.5*sigColWidth, unitBaseline, "付款單位")
	textCentered(doc, startX+4*sigColWidth, unitBaseline, "請款單位")

	// Middle band: five role title cells
	rolesTop := sigGridTop + sigRowUnits
	doc.SetFont(o.font.Family, "", 13)
	roleBaseline := rolesTop + sigRowRoles - 0.25
	for i := 0; i < sigColumns; i++ {
		x := startX + float64(i)*sigColWidth
		doc.Rect(x, rolesTop, sigColWidth, sigRowRoles, "D")
		textCentered(doc, x+sigColWidth/2, roleBaseline, sigRoleTitles[i])
	}

	// Bottom band: five empty signature cells
	blankTop := rolesTop + sigRowRoles
	for i := 0; i < sigColumns; i++ {
		doc.Rect(startX+float64(i)*sigColWidth, blankTop, sigColWidth, sigRowBlank, "D")
	}
}

func textCentered(doc *fpdf.Fpdf, x, baseline float64, s string) {
	doc.Text(x-doc.GetStringWidth(s)/2, baseline, s)
}

func textRight(doc *fpdf.Fpdf, x, baseline float64, s string) {
	doc.Text(x-doc.GetStringWidth(s), baseline, s)
}
