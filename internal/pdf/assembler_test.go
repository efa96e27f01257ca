package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longyuju1116/invoice/internal/models"
)

func TestAssemble_CashFormWithoutItems(t *testing.T) {
	form := &models.RequestForm{PaymentMethod: models.PaymentMethodCash}

	doc := Assemble(form, SplitPlan{0, 0})

	require.Len(t, doc.Pages, 2)
	assert.Equal(t, PagePaymentTable, doc.Pages[0].Kind)
	assert.Equal(t, PageReceiptAttachment, doc.Pages[1].Kind)
	assert.Equal(t, 1, doc.PaymentPageCount)
	assert.True(t, doc.Pages[0].First)
	assert.True(t, doc.Pages[0].Last)
}

func TestAssemble_TransferFormGetsBankReferencePage(t *testing.T) {
	form := &models.RequestForm{PaymentMethod: models.PaymentMethodTransfer}

	doc := Assemble(form, SplitPlan{0, 1})

	require.Len(t, doc.Pages, 3)
	assert.Equal(t, PagePaymentTable, doc.Pages[0].Kind)
	assert.Equal(t, PageReceiptAttachment, doc.Pages[1].Kind)
	assert.Equal(t, PageBankReference, doc.Pages[2].Kind)
}

func TestAssemble_AdvanceFormGetsBankReferencePage(t *testing.T) {
	form := &models.RequestForm{PaymentMethod: models.PaymentMethodAdvance}

	doc := Assemble(form, SplitPlan{0, 2})

	require.Len(t, doc.Pages, 3)
	assert.Equal(t, PageBankReference, doc.Pages[2].Kind)
}

func TestAssemble_BankPageKeyedOnMethodNotImage(t *testing.T) {
	// a stray uploaded image on a donation form must not add a bank page
	form := &models.RequestForm{
		PaymentMethod: models.PaymentMethodDonation,
		BankBookImage: []byte{0x89, 0x50, 0x4e, 0x47},
	}

	doc := Assemble(form, SplitPlan{0, 1})

	require.Len(t, doc.Pages, 2)
	for _, page := range doc.Pages {
		assert.NotEqual(t, PageBankReference, page.Kind)
	}
}

func TestAssemble_MultiSegmentPlan(t *testing.T) {
	form := &models.RequestForm{PaymentMethod: models.PaymentMethodTransfer}

	doc := Assemble(form, SplitPlan{0, 2, 5, 7})

	assert.Equal(t, 3, doc.PaymentPageCount)
	require.Len(t, doc.Pages, 5)

	first := doc.Pages[0]
	assert.True(t, first.First)
	assert.False(t, first.Last)
	assert.Equal(t, 0, first.Start)
	assert.Equal(t, 2, first.End)
	assert.Equal(t, 1, first.Index)

	middle := doc.Pages[1]
	assert.False(t, middle.First)
	assert.False(t, middle.Last)
	assert.Equal(t, 2, middle.Index)

	last := doc.Pages[2]
	assert.False(t, last.First)
	assert.True(t, last.Last)
	assert.Equal(t, 5, last.Start)
	assert.Equal(t, 7, last.End)
}
