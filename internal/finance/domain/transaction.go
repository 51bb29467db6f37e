package domain

import (
	"time"

	"github.com/shopspring/decimal"

	financeErrors "github.com/sebuszqo/HomeBudget/internal/finance/errors"
)

// Transaction type ids form a closed enumeration.
const (
	TypeIncome   = 1
	TypeExpense  = 2
	TypeTransfer = 3
)

type TransactionRepository interface {
	Save(transaction Transaction) error
	FindByID(transactionID string) (*Transaction, error)
	FindByUser(userID string) ([]Transaction, error)
	Update(transaction Transaction) error
	Delete(transactionID string) error
}

// Transaction always stores Amount as a non-negative magnitude. The
// direction of the money flow is derived from TypeID and IsShared when
// the balance delta is computed, never stored on the transaction itself.
type Transaction struct {
	ID                   string          `json:"id"`
	UserID               string          `json:"user_id"`
	Amount               decimal.Decimal `json:"amount"`
	Currency             string          `json:"currency"`
	TypeID               int             `json:"transaction_type_id"`
	IsShared             bool            `json:"is_shared"`
	Date                 time.Time       `json:"date"`
	Description          string          `json:"description"`
	PredefinedCategoryID *int            `json:"predefined_category_id"`
	UserCategoryID       *int            `json:"user_category_id"`
	AccountID            *string         `json:"account_id"`
}

func (t *Transaction) Validate() error {
	if t.Amount.IsNegative() {
		return financeErrors.NewValidationError("Amount must not be negative")
	}
	if t.TypeID != TypeIncome && t.TypeID != TypeExpense && t.TypeID != TypeTransfer {
		return financeErrors.NewValidationError("Transaction type must be income, expense or transfer")
	}
	if t.Currency == "" {
		return financeErrors.NewValidationError("Currency is required")
	}
	if len(t.Description) > 200 {
		return financeErrors.NewValidationError("Description must be of length less than 200")
	}
	if t.PredefinedCategoryID != nil && t.UserCategoryID != nil {
		return financeErrors.NewValidationError("Only one of predefined or user category may be set")
	}
	return nil
}
