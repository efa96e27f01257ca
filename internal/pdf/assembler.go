package pdf

import "github.com/longyuju1116/invoice/internal/models"

// PageKind tags the content variant of one physical page
type PageKind int

const (
	// PagePaymentTable carries a slice of the line item table plus the
	// signature grid overlay
	PagePaymentTable PageKind = iota
	// PageReceiptAttachment is the mandatory receipt paste sheet
	PageReceiptAttachment
	// PageBankReference is the conditional bank book copy sheet
	PageBankReference
)

// PageContent describes one physical page of the assembled document.
// Start/End and the payment flags are meaningful only for PagePaymentTable.
type PageContent struct {
	Kind  PageKind
	Start int  // first item index on this page
	End   int  // one past the last item index
	Index int  // 1-based ordinal among payment pages
	First bool // carries title, basic info and legend
	Last  bool
}

// Document is the ordered page sequence produced by Assemble. It is read-only
// to the overlay renderer; PaymentPageCount decides which physical pages
// receive the signature grid.
type Document struct {
	Pages            []PageContent
	PaymentPageCount int
}

// Assemble turns a split plan into the full page sequence: one payment table
// page per plan segment, exactly one receipt attachment page, and a bank
// reference page when the payment method requires account proof. The bank
// page is keyed on the payment method alone; other methods omit it even if a
// bank book image happens to be present.
func Assemble(form *models.RequestForm, plan SplitPlan) Document {
	segments := plan.Segments()

	pages := make([]PageContent, 0, len(segments)+2)
	for i, seg := range segments {
		pages = append(pages, PageContent{
			Kind:  PagePaymentTable,
			Start: seg.Start,
			End:   seg.End,
			Index: i + 1,
			First: i == 0,
			Last:  i == len(segments)-1,
		})
	}
	pages = append(pages, PageContent{Kind: PageReceiptAttachment})
	if form.PaymentMethod.RequiresBankProof() {
		pages = append(pages, PageContent{Kind: PageBankReference})
	}

	return Document{
		Pages:            pages,
		PaymentPageCount: len(segments),
	}
}
