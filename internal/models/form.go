package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/longyuju1116/invoice/pkg/utils"
)

// PaymentMethod is how the payee receives the money (付款方式)
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "現金"
	PaymentMethodTransfer PaymentMethod = "匯款"
	PaymentMethodDonation PaymentMethod = "轉捐款"
	PaymentMethodAdvance  PaymentMethod = "預支"
	PaymentMethodOther    PaymentMethod = "其他"
)

// PaymentMethods lists all valid payment methods in display order
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		PaymentMethodCash,
		PaymentMethodTransfer,
		PaymentMethodDonation,
		PaymentMethodAdvance,
		PaymentMethodOther,
	}
}

// Valid reports whether m is one of the known payment methods
func (m PaymentMethod) Valid() bool {
	for _, known := range PaymentMethods() {
		if m == known {
			return true
		}
	}
	return false
}

// RequiresBankProof reports whether this payment method requires a bank book
// copy page in the generated document. Transfers and advances are paid into
// an account, so the finance team needs the account proof attached.
func (m PaymentMethod) RequiresBankProof() bool {
	return m == PaymentMethodTransfer || m == PaymentMethodAdvance
}

// RequestingUnit is the committee requesting the payment (請款單位)
type RequestingUnit string

const (
	RequestingUnitGuidance     RequestingUnit = "輔導活動執委會"
	RequestingUnitAdminFinance RequestingUnit = "行政財務執委會"
	RequestingUnitInfoMedia    RequestingUnit = "資訊媒體執委會"
	RequestingUnitOther        RequestingUnit = "其他"
)

// RequestingUnits lists all valid requesting units in display order
func RequestingUnits() []RequestingUnit {
	return []RequestingUnit{
		RequestingUnitGuidance,
		RequestingUnitAdminFinance,
		RequestingUnitInfoMedia,
		RequestingUnitOther,
	}
}

// Valid reports whether u is one of the known requesting units
func (u RequestingUnit) Valid() bool {
	for _, known := range RequestingUnits() {
		if u == known {
			return true
		}
	}
	return false
}

// ProjectType is the project category of a line item (專案類型)
type ProjectType string

const (
	ProjectMeeting           ProjectType = "A.會議(理監事會議、審查會議、幹事會議等)"
	ProjectActivity          ProjectType = "B.活動(含年會、各項座談會、年度志工激勵活動、各區學生輔導活動等)"
	ProjectVolunteerTraining ProjectType = "C.志工培訓(含志工會議)"
	ProjectSchoolInterview   ProjectType = "D.學校訪談"
	ProjectSubsidy           ProjectType = "E.專案補助"
	ProjectOther             ProjectType = "F.其他"
)

// ExpenseType is the expense category of a line item (費用類型)
type ExpenseType string

const (
	ExpenseTransportation     ExpenseType = "1.交通費"
	ExpenseVenueRental        ExpenseType = "2.場地租借"
	ExpenseMeal               ExpenseType = "3.餐費"
	ExpensePublicity          ExpenseType = "4.文宣"
	ExpensePhone              ExpenseType = "5.電話費"
	ExpenseSubsidy            ExpenseType = "6.補助"
	ExpenseVolunteerAllowance ExpenseType = "7.志工津貼"
	ExpenseEquipment          ExpenseType = "8.設備器材(含軟硬體)"
	ExpenseMiscellaneous      ExpenseType = "9.雜支"
)

// LineItem is a single payment detail row (請款明細項目).
// Immutable once constructed; the pagination engine never mutates it.
type LineItem struct {
	ProjectType      ProjectType     `json:"project_type"`
	ExpenseType      ExpenseType     `json:"expense_type"`
	ExecutionTime    string          `json:"execution_time,omitempty"`
	ExecutionContent string          `json:"execution_content"`
	Amount           decimal.Decimal `json:"amount"`
	ReceiptNote      string          `json:"receipt_note,omitempty"`
}

// RequestForm is a complete payment request record (請款單).
type RequestForm struct {
	ID                  string          `json:"id"`
	ApplicationDate     string          `json:"application_date,omitempty"` // ROC date, xxx.xx.xx
	Payee               string          `json:"payee"`
	PaymentMethod       PaymentMethod   `json:"payment_method"`
	PaymentMethodOther  string          `json:"payment_method_other,omitempty"`
	RequestingUnit      RequestingUnit  `json:"requesting_unit"`
	RequestingUnitOther string          `json:"requesting_unit_other,omitempty"`
	TotalAmount         decimal.Decimal `json:"total_amount"`
	Items               []LineItem      `json:"payment_details"`
	BankBookImage       []byte          `json:"bank_book_image,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
}

// ItemTotal returns the arithmetic sum of all line item amounts
func (f *RequestForm) ItemTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range f.Items {
		total = total.Add(item.Amount)
	}
	return total
}

// Validate checks the invariants the pagination engine assumes already hold.
// A form that fails here must never reach document generation.
func (f *RequestForm) Validate() error {
	if f.Payee == "" {
		return fmt.Errorf("payee is required")
	}
	if !f.PaymentMethod.Valid() {
		return fmt.Errorf("unknown payment method: %s", f.PaymentMethod)
	}
	if f.PaymentMethod == PaymentMethodOther && f.PaymentMethodOther == "" {
		return fmt.Errorf("payment_method_other is required when payment method is %s", PaymentMethodOther)
	}
	if !f.RequestingUnit.Valid() {
		return fmt.Errorf("unknown requesting unit: %s", f.RequestingUnit)
	}
	if f.RequestingUnit == RequestingUnitOther && f.RequestingUnitOther == "" {
		return fmt.Errorf("requesting_unit_other is required when requesting unit is %s", RequestingUnitOther)
	}
	if err := utils.ValidateROCDate(f.ApplicationDate); err != nil {
		return fmt.Errorf("invalid application date: %w", err)
	}
	if f.TotalAmount.IsNegative() {
		return fmt.Errorf("total amount must not be negative: %s", f.TotalAmount)
	}
	for i, item := range f.Items {
		if item.Amount.IsNegative() {
			return fmt.Errorf("item %d: amount must not be negative: %s", i, item.Amount)
		}
	}
	if !f.TotalAmount.Equal(f.ItemTotal()) {
		return fmt.Errorf("total amount %s does not match item sum %s", f.TotalAmount, f.ItemTotal())
	}
	return nil
}
