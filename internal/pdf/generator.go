// Package pdf implements the payment request document engine: height
// estimation, pagination planning, page assembly and PDF rendering.
package pdf

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/longyuju1116/invoice/internal/models"
)

// Category legends printed above the item table on the first payment page.
// They explain the single-character tokens used in the 專案 and 費用類型
// columns.
const (
	legendProjects = "專案：A.會議(理監事會議、審查會議、幹事會議等) B.活動(含年會、各項座談會、年度志工激勵活動、各區學生輔導活動等) C.志工培訓(含志工會議) D.學校訪談 E.專案補助 F.其他"
	legendExpenses = "費用類型：1.交通費 2.場地租借 3.餐費 4.文宣 5.電話費 6.補助 7.志工津貼 8.設備器材(含軟硬體) 9.雜支"
)

var tableHeaders = [6]string{"專案", "費用類型", "執行時間", "執行內容", "金額", "備註憑證"}

// Config holds generator configuration
type Config struct {
	WrapWidth     int    // runes per line in the execution content column
	Budget        Budget // zero values select DefaultBudget
	MarkImagePath string // org mark drawn at the top left of every page
}

// Generator turns a validated request form into a finished multi-page PDF.
// One generation request is a single synchronous pass; concurrent requests
// share only the immutable font handle.
type Generator struct {
	font   FontHandle
	est    Estimator
	budget Budget
	mark   []byte
	logger *zap.Logger
}

// NewGenerator creates a new document generator. A missing or unreadable org
// mark image is logged and skipped, never fatal.
func NewGenerator(cfg Config, font FontHandle, logger *zap.Logger) *Generator {
	budget := cfg.Budget
	if budget.FirstPage <= 0 || budget.Continuation <= 0 {
		budget = DefaultBudget()
	}
	g := &Generator{
		font:   font,
		est:    NewEstimator(cfg.WrapWidth),
		budget: budget,
		logger: logger,
	}
	if cfg.MarkImagePath != "" {
		mark, err := os.ReadFile(cfg.MarkImagePath)
		if err != nil {
			logger.Warn("Org mark image could not be read, pages will omit it",
				zap.String("path", cfg.MarkImagePath),
				zap.Error(err))
		} else {
			g.mark = mark
		}
	}
	return g
}

// Paginate computes the split plan and page sequence without rendering.
// It is a pure function of the form and the configured budgets.
func (g *Generator) Paginate(form *models.RequestForm) (SplitPlan, Document) {
	plan := PlanPages(form.Items, g.budget, g.est)
	return plan, Assemble(form, plan)
}

// Generate renders the complete document and returns the PDF bytes.
// A form violating the engine preconditions aborts the request with an error;
// the process keeps serving other requests.
func (g *Generator) Generate(form *models.RequestForm) ([]byte, error) {
	if err := form.Validate(); err != nil {
		return nil, fmt.Errorf("request form violates engine preconditions: %w", err)
	}

	_, document := g.Paginate(form)
	g.logger.Debug("Planned request form document",
		zap.Int("items", len(form.Items)),
		zap.Int("payment_pages", document.PaymentPageCount),
		zap.Int("total_pages", len(document.Pages)))

	doc := fpdf.New("P", "cm", "A4", "")
	doc.SetMargins(marginLeft, marginTop, marginRight)
	doc.SetAutoPageBreak(false, 0)
	g.font.install(doc)
	overlay := newOverlayRenderer(g.font, g.mark, g.logger)

	for i, page := range document.Pages {
		doc.AddPage()
		g.renderPage(doc, form, page)
		overlay.Render(doc, i+1, document, form.TotalAmount)
	}

	if doc.Err() {
		return nil, fmt.Errorf("render document: %w", doc.Error())
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}
	return buf.Bytes(), nil
}

// renderPage draws one page's flowing content. A failure is confined to the
// page: it is logged and replaced by an in-page placeholder so the rest of
// the document still prints.
func (g *Generator) renderPage(doc *fpdf.Fpdf, form *models.RequestForm, page PageContent) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("Page rendering failed",
				zap.Int("kind", int(page.Kind)),
				zap.Any("panic", r))
			doc.SetFont(g.font.Family, "", 12)
			textCentered(doc, pageWidth/2, pageHeight/2, "（本頁內容產生失敗）")
		}
	}()

	switch page.Kind {
	case PagePaymentTable:
		g.renderPaymentPage(doc, form, page)
	case PageReceiptAttachment:
		g.renderAttachmentPage(doc, form)
	case PageBankReference:
		g.renderBankReferencePage(doc, form)
	}
}

func (g *Generator) renderPaymentPage(doc *fpdf.Fpdf, form *models.RequestForm, page PageContent) {
	if page.First {
		doc.SetXY(marginLeft, marginTop)
		doc.SetFont(g.font.Family, "", 28)
		doc.CellFormat(contentWidth, titleBlockHeight-0.4, "請款單", "", 1, "C", false, 0, "")
		doc.Ln(0.4)

		g.drawBasicInfo(doc, form)

		doc.SetX(marginLeft)
		doc.SetFont(g.font.Family, "", 18)
		doc.CellFormat(contentWidth, sectionHeadingHeight, "請款明細", "", 1, "L", false, 0, "")
		doc.SetFont(g.font.Family, "", 11)
		doc.MultiCell(contentWidth, 0.5, legendProjects, "", "L", false)
		doc.MultiCell(contentWidth, 0.5, legendExpenses, "", "L", false)
		doc.Ln(0.3)
	} else {
		// Continuation pages carry only the table
		doc.SetY(marginTop + continuationTopGap)
	}

	g.drawItemTable(doc, form.Items[page.Start:page.End])
}

func (g *Generator) drawBasicInfo(doc *fpdf.Fpdf, form *models.RequestForm) {
	applicationDate := form.ApplicationDate
	if applicationDate == "" {
		applicationDate = "（未填寫）"
	}
	rows := [3][4]string{
		{"申請日期", applicationDate, "請款單位", RequestingUnitDisplay(form)},
		{"受款人", form.Payee, "付款方式", PaymentMethodDisplay(form)},
		{"請款金額", "NT$ " + FormatCurrency(form.TotalAmount), "", ""},
	}
	for _, row := range rows {
		doc.SetX(marginLeft)
		for c, cell := range row {
			if c%2 == 0 {
				doc.SetFont(g.font.Family, "", 13)
			} else {
				doc.SetFont(g.font.Family, "", 12)
			}
			doc.CellFormat(4.0, basicInfoRowHeight, cell, "", 0, "L", false, 0, "")
		}
		doc.Ln(basicInfoRowHeight)
	}
}

// drawItemTable renders the bordered item table starting at the current Y,
// with the header row repeated on every page. Row heights come from the same
// estimator the planner used, so rows planned onto a page always fit it.
func (g *Generator) drawItemTable(doc *fpdf.Fpdf, items []models.LineItem) {
	doc.SetLineWidth(0.03)
	y := doc.GetY()

	doc.SetFont(g.font.Family, "", 12)
	x := marginLeft
	for c, header := range tableHeaders {
		g.drawTableCell(doc, x, y, tableColWidths[c], headerRowHeight, []string{header})
		x += tableColWidths[c]
	}
	y += headerRowHeight

	doc.SetFont(g.font.Family, "", 11)
	for _, item := range items {
		rowHeight := g.est.RowHeight(item.ExecutionContent)
		cells := [6][]string{
			{ProjectToken(item.ProjectType)},
			{ExpenseToken(item.ExpenseType)},
			{item.ExecutionTime},
			g.est.Wrap(item.ExecutionContent),
			{"NT$ " + FormatCurrency(item.Amount)},
			{""}, // 備註憑證 left blank for the back office to fill in
		}
		x = marginLeft
		for c := range cells {
			g.drawTableCell(doc, x, y, tableColWidths[c], rowHeight, cells[c])
			x += tableColWidths[c]
		}
		y += rowHeight
	}
	doc.SetY(y)
}

// drawTableCell draws one bordered cell with its text lines vertically
// centered and left aligned
func (g *Generator) drawTableCell(doc *fpdf.Fpdf, x, y, w, h float64, lines []string) {
	doc.Rect(x, y, w, h, "D")
	top := y + (h-float64(len(lines))*perLineHeight)/2
	for i, line := range lines {
		if line == "" {
			continue
		}
		baseline := top + float64(i)*perLineHeight + perLineHeight*0.75
		doc.Text(x+0.25, baseline, line)
	}
}

func (g *Generator) renderAttachmentPage(doc *fpdf.Fpdf, form *models.RequestForm) {
	doc.SetXY(marginLeft, marginTop)
	doc.SetFont(g.font.Family, "", 24)
	doc.CellFormat(contentWidth, 1.6, "單據憑證黏貼單", "", 1, "C", false, 0, "")
	doc.Ln(0.2)

	doc.SetX(marginLeft)
	doc.SetFont(g.font.Family, "", 14)
	doc.CellFormat(3.0, 2.0, "請款人", "", 0, "L", false, 0, "")
	doc.CellFormat(5.0, 2.0, form.Payee, "", 0, "L", false, 0, "")
	doc.CellFormat(3.0, 2.0, "申請日期", "", 0, "L", false, 0, "")
	doc.CellFormat(5.0, 2.0, form.ApplicationDate, "", 1, "L", false, 0, "")
	doc.Ln(0.2)

	doc.SetX(marginLeft)
	doc.CellFormat(contentWidth, 0.8, "請將收據、發票等憑證黏貼於下方空白處", "", 1, "L", false, 0, "")
	// The rest of the page stays blank for pasted receipts
}

func (g *Generator) renderBankReferencePage(doc *fpdf.Fpdf, form *models.RequestForm) {
	doc.SetXY(marginLeft, marginTop)
	doc.SetFont(g.font.Family, "", 24)
	doc.CellFormat(contentWidth, 1.6, "存摺影本", "", 1, "C", false, 0, "")
	doc.Ln(0.8)

	if len(form.BankBookImage) == 0 {
		doc.SetX(marginLeft)
		doc.SetFont(g.font.Family, "", 14)
		doc.CellFormat(contentWidth, 0.8, "請黏貼存摺影本", "", 1, "L", false, 0, "")
		return
	}

	normalized, aspect, err := normalizeImage(form.BankBookImage)
	if err != nil {
		g.logger.Warn("Bank book image is not usable, rendering placeholder", zap.Error(err))
		doc.SetX(marginLeft)
		doc.SetFont(g.font.Family, "", 12)
		doc.CellFormat(contentWidth, 0.8, "存摺影本圖片載入失敗", "", 1, "L", false, 0, "")
		return
	}

	// Same width as the item table, scaled proportionally
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("bank-book", opts, bytes.NewReader(normalized))
	width := tableWidth()
	doc.ImageOptions("bank-book", marginLeft, doc.GetY(), width, width/aspect, false, opts, 0, "")
}
