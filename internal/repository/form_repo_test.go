package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/longyuju1116/invoice/internal/models"
	"github.com/longyuju1116/invoice/pkg/database"
)

func testRepo(t *testing.T) *FormRepository {
	t.Helper()
	logger := zap.NewNop()
	db, err := database.New(database.Config{
		Path:         filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns: 2,
		MaxIdleConns: 1,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.NewMigrator(db, logger).Run())
	return NewFormRepository(db, logger)
}

func sampleForm(id string) *models.RequestForm {
	form := &models.RequestForm{
		ID:              id,
		ApplicationDate: "114.1.15",
		Payee:           "王小明",
		PaymentMethod:   models.PaymentMethodTransfer,
		RequestingUnit:  models.RequestingUnitGuidance,
		BankBookImage:   []byte{0x89, 0x50, 0x4e, 0x47, 0x01, 0x02},
		CreatedAt:       time.Now().UTC().Truncate(time.Second),
		Items: []models.LineItem{
			{
				ProjectType:      models.ProjectMeeting,
				ExpenseType:      models.ExpenseMeal,
				ExecutionTime:    "114.1.10",
				ExecutionContent: "理監事會議便當",
				Amount:           decimal.NewFromInt(1200),
				ReceiptNote:      "發票兩張",
			},
			{
				ProjectType:      models.ProjectActivity,
				ExpenseType:      models.ExpenseTransportation,
				ExecutionContent: "高鐵來回票",
				Amount:           decimal.NewFromFloat(2980.5),
			},
		},
	}
	form.TotalAmount = form.ItemTotal()
	return form
}

func TestFormRepository_CreateAndGet(t *testing.T) {
	repo := testRepo(t)
	form := sampleForm("RF001")

	require.NoError(t, repo.Create(form))

	loaded, err := repo.GetByID("RF001")
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, form.ID, loaded.ID)
	assert.Equal(t, form.Payee, loaded.Payee)
	assert.Equal(t, form.PaymentMethod, loaded.PaymentMethod)
	assert.Equal(t, form.RequestingUnit, loaded.RequestingUnit)
	assert.Equal(t, form.ApplicationDate, loaded.ApplicationDate)
	assert.Equal(t, form.BankBookImage, loaded.BankBookImage)
	assert.True(t, loaded.TotalAmount.Equal(form.TotalAmount))

	require.Len(t, loaded.Items, 2)
	assert.Equal(t, form.Items[0].ExecutionContent, loaded.Items[0].ExecutionContent)
	assert.Equal(t, form.Items[0].ReceiptNote, loaded.Items[0].ReceiptNote)
	assert.True(t, loaded.Items[1].Amount.Equal(decimal.NewFromFloat(2980.5)),
		"amounts must survive the round trip exactly")
}

func TestFormRepository_GetMissing(t *testing.T) {
	repo := testRepo(t)

	loaded, err := repo.GetByID("does-not-exist")

	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestFormRepository_DuplicateIDRejected(t *testing.T) {
	repo := testRepo(t)
	require.NoError(t, repo.Create(sampleForm("RF001")))

	err := repo.Create(sampleForm("RF001"))
	assert.Error(t, err)
}

func TestFormRepository_List(t *testing.T) {
	repo := testRepo(t)

	first := sampleForm("RF001")
	first.CreatedAt = time.Now().UTC().Add(-time.Hour)
	second := sampleForm("RF002")
	second.CreatedAt = time.Now().UTC()

	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Create(second))

	forms, err := repo.List()
	require.NoError(t, err)
	require.Len(t, forms, 2)

	// newest first
	assert.Equal(t, "RF002", forms[0].ID)
	assert.Equal(t, "RF001", forms[1].ID)
	assert.Len(t, forms[0].Items, 2)
}

func TestFormRepository_ListEmpty(t *testing.T) {
	repo := testRepo(t)

	forms, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, forms)
}
