package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/longyuju1116/invoice/internal/models"
	"github.com/longyuju1116/invoice/pkg/database"
)

// FormRepository handles request form database operations
type FormRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewFormRepository creates a new form repository
func NewFormRepository(db *database.DB, logger *zap.Logger) *FormRepository {
	return &FormRepository{db: db, logger: logger}
}

// Create stores a request form and its line items atomically
func (r *FormRepository) Create(form *models.RequestForm) error {
	err := r.db.WithTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO request_forms (
				id, application_date, payee, payment_method, payment_method_other,
				requesting_unit, requesting_unit_other, total_amount,
				bank_book_image, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			form.ID,
			form.ApplicationDate,
			form.Payee,
			string(form.PaymentMethod),
			form.PaymentMethodOther,
			string(form.RequestingUnit),
			form.RequestingUnitOther,
			form.TotalAmount.String(),
			form.BankBookImage,
			form.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert form: %w", err)
		}

		for i, item := range form.Items {
			_, err := tx.Exec(`
				INSERT INTO request_form_items (
					form_id, seq, project_type, expense_type,
					execution_time, execution_content, amount, receipt_note
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`,
				form.ID,
				i,
				string(item.ProjectType),
				string(item.ExpenseType),
				item.ExecutionTime,
				item.ExecutionContent,
				item.Amount.String(),
				item.ReceiptNote,
			)
			if err != nil {
				return fmt.Errorf("failed to insert item %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to create request form",
			zap.String("id", form.ID),
			zap.Error(err))
		return err
	}

	r.logger.Info("Request form stored",
		zap.String("id", form.ID),
		zap.Int("items", len(form.Items)))
	return nil
}

// GetByID retrieves a request form with its line items.
// Returns nil without error when the form does not exist.
func (r *FormRepository) GetByID(id string) (*models.RequestForm, error) {
	row := r.db.QueryRow(`
		SELECT id, application_date, payee, payment_method, payment_method_other,
			requesting_unit, requesting_unit_other, total_amount,
			bank_book_image, created_at
		FROM request_forms
		WHERE id = ?
	`, id)

	form, err := scanForm(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get form: %w", err)
	}

	items, err := r.loadItems(form.ID)
	if err != nil {
		return nil, err
	}
	form.Items = items
	return form, nil
}

// List retrieves all request forms ordered by creation time, newest first
func (r *FormRepository) List() ([]*models.RequestForm, error) {
	rows, err := r.db.Query(`
		SELECT id, application_date, payee, payment_method, payment_method_other,
			requesting_unit, requesting_unit_other, total_amount,
			bank_book_image, created_at
		FROM request_forms
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list forms: %w", err)
	}
	defer rows.Close()

	var forms []*models.RequestForm
	for rows.Next() {
		form, err := scanForm(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan form: %w", err)
		}
		forms = append(forms, form)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, form := range forms {
		items, err := r.loadItems(form.ID)
		if err != nil {
			return nil, err
		}
		form.Items = items
	}
	return forms, nil
}

func (r *FormRepository) loadItems(formID string) ([]models.LineItem, error) {
	rows, err := r.db.Query(`
		SELECT project_type, expense_type, execution_time,
			execution_content, amount, receipt_note
		FROM request_form_items
		WHERE form_id = ?
		ORDER BY seq
	`, formID)
	if err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}
	defer rows.Close()

	var items []models.LineItem
	for rows.Next() {
		var item models.LineItem
		var projectType, expenseType, amount string
		if err := rows.Scan(
			&projectType,
			&expenseType,
			&item.ExecutionTime,
			&item.ExecutionContent,
			&amount,
			&item.ReceiptNote,
		); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		item.ProjectType = models.ProjectType(projectType)
		item.ExpenseType = models.ExpenseType(expenseType)
		item.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("stored item amount is not a decimal: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanForm(row scanner) (*models.RequestForm, error) {
	var form models.RequestForm
	var paymentMethod, requestingUnit, totalAmount string
	var createdAt time.Time
	err := row.Scan(
		&form.ID,
		&form.ApplicationDate,
		&form.Payee,
		&paymentMethod,
		&form.PaymentMethodOther,
		&requestingUnit,
		&form.RequestingUnitOther,
		&totalAmount,
		&form.BankBookImage,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	form.PaymentMethod = models.PaymentMethod(paymentMethod)
	form.RequestingUnit = models.RequestingUnit(requestingUnit)
	form.TotalAmount, err = decimal.NewFromString(totalAmount)
	if err != nil {
		return nil, fmt.Errorf("stored total amount is not a decimal: %w", err)
	}
	form.CreatedAt = createdAt
	return &form, nil
}
