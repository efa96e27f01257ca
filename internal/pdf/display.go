package pdf

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/longyuju1116/invoice/internal/models"
)

// Single-character table tokens, keyed on enum variant identity. The legend
// printed above the table explains the letters and digits.
var projectTokens = map[models.ProjectType]string{
	models.ProjectMeeting:           "A",
	models.ProjectActivity:          "B",
	models.ProjectVolunteerTraining: "C",
	models.ProjectSchoolInterview:   "D",
	models.ProjectSubsidy:           "E",
	models.ProjectOther:             "F",
}

var expenseTokens = map[models.ExpenseType]string{
	models.ExpenseTransportation:     "1",
	models.ExpenseVenueRental:        "2",
	models.ExpenseMeal:               "3",
	models.ExpensePublicity:          "4",
	models.ExpensePhone:              "5",
	models.ExpenseSubsidy:            "6",
	models.ExpenseVolunteerAllowance: "7",
	models.ExpenseEquipment:          "8",
	models.ExpenseMiscellaneous:      "9",
}

// ProjectToken returns the one-character table token for a project type.
// Unknown variants fall back to the full label.
func ProjectToken(t models.ProjectType) string {
	if token, ok := projectTokens[t]; ok {
		return token
	}
	return string(t)
}

// ExpenseToken returns the one-character table token for an expense type
func ExpenseToken(t models.ExpenseType) string {
	if token, ok := expenseTokens[t]; ok {
		return token
	}
	return string(t)
}

// PaymentMethodDisplay returns the payment method label, with the free-text
// companion appended for the "other" variant
func PaymentMethodDisplay(form *models.RequestForm) string {
	if form.PaymentMethod == models.PaymentMethodOther {
		return string(form.PaymentMethod) + " (" + form.PaymentMethodOther + ")"
	}
	return string(form.PaymentMethod)
}

// RequestingUnitDisplay returns the requesting unit label, with the free-text
// companion appended for the "other" variant
func RequestingUnitDisplay(form *models.RequestForm) string {
	if form.RequestingUnit == models.RequestingUnitOther {
		return string(form.RequestingUnit) + " (" + form.RequestingUnitOther + ")"
	}
	return string(form.RequestingUnit)
}

var currencyPrinter = message.NewPrinter(language.English)

// FormatCurrency renders an amount with thousands separators and no decimal
// places, e.g. 12345 -> "12,345"
func FormatCurrency(amount decimal.Decimal) string {
	value, _ := amount.Round(0).Float64()
	return currencyPrinter.Sprintf("%.0f", value)
}
