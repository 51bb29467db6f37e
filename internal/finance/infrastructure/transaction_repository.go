package infrastructure

import (
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/sebuszqo/HomeBudget/internal/finance/domain"
	financeErrors "github.com/sebuszqo/HomeBudget/internal/finance/errors"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, user_id, amount, currency, transaction_type_id, is_shared, date, description, predefined_category_id, user_category_id, account_id`

func (r *TransactionRepository) Save(transaction domain.Transaction) error {
	_, err := r.db.Exec(
		`INSERT INTO transactions (`+transactionColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		transaction.ID, transaction.UserID, transaction.Amount.String(), transaction.Currency,
		transaction.TypeID, transaction.IsShared, transaction.Date, transaction.Description,
		transaction.PredefinedCategoryID, transaction.UserCategoryID, transaction.AccountID,
	)
	return err
}

func scanTransaction(scan func(dest ...interface{}) error) (*domain.Transaction, error) {
	var transaction domain.Transaction
	var amount string
	if err := scan(&transaction.ID, &transaction.UserID, &amount, &transaction.Currency,
		&transaction.TypeID, &transaction.IsShared, &transaction.Date, &transaction.Description,
		&transaction.PredefinedCategoryID, &transaction.UserCategoryID, &transaction.AccountID); err != nil {
		return nil, err
	}
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		// A stored amount that does not parse is corrupt data, not a zero.
		return nil, financeErrors.NewIntegrityError("stored transaction amount is not a valid decimal", err)
	}
	transaction.Amount = parsed
	return &transaction, nil
}

func (r *TransactionRepository) FindByID(transactionID string) (*domain.Transaction, error) {
	row := r.db.QueryRow(
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, transactionID,
	)
	transaction, err := scanTransaction(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, financeErrors.NewNotFoundError("Transaction not found")
	}
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

func (r *TransactionRepository) FindByUser(userID string) ([]domain.Transaction, error) {
	rows, err := r.db.Query(
		`SELECT `+transactionColumns+` FROM transactions WHERE user_id = $1 ORDER BY date DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *transaction)
	}
	return transactions, rows.Err()
}

func (r *TransactionRepository) Update(transaction domain.Transaction) error {
	result, err := r.db.Exec(
		`UPDATE transactions
		 SET amount = $2, currency = $3, transaction_type_id = $4, is_shared = $5,
		     date = $6, description = $7, predefined_category_id = $8, user_category_id = $9, account_id = $10
		 WHERE id = $1`,
		transaction.ID, transaction.Amount.String(), transaction.Currency, transaction.TypeID,
		transaction.IsShared, transaction.Date, transaction.Description,
		transaction.PredefinedCategoryID, transaction.UserCategoryID, transaction.AccountID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.NewNotFoundError("Transaction not found")
	}
	return nil
}

func (r *TransactionRepository) Delete(transactionID string) error {
	result, err := r.db.Exec(`DELETE FROM transactions WHERE id = $1`, transactionID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.NewNotFoundError("Transaction not found")
	}
	return nil
}
