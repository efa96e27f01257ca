// Package export produces spreadsheet listings of submitted request forms
// for the finance team.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/longyuju1116/invoice/internal/models"
	"github.com/longyuju1116/invoice/internal/pdf"
)

const sheetName = "請款單"

var headers = []string{
	"請款單編號", "申請日期", "受款人", "請款單位", "付款方式",
	"總金額", "明細筆數", "建立時間",
}

// Exporter writes request form listings as xlsx workbooks
type Exporter struct {
	logger *zap.Logger
}

// NewExporter creates a new exporter
func NewExporter(logger *zap.Logger) *Exporter {
	return &Exporter{logger: logger}
}

// Export renders the forms as a single-sheet workbook and returns its bytes
func (e *Exporter) Export(forms []*models.RequestForm) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to set header: %w", err)
		}
	}

	for rowIdx, form := range forms {
		values := []any{
			form.ID,
			form.ApplicationDate,
			form.Payee,
			pdf.RequestingUnitDisplay(form),
			pdf.PaymentMethodDisplay(form),
			pdf.FormatCurrency(form.TotalAmount),
			len(form.Items),
			form.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("failed to compute cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	e.logger.Info("Exported request forms", zap.Int("count", len(forms)))
	return buf.Bytes(), nil
}
