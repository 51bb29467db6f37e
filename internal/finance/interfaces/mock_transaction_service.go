package interfaces

import (
	"github.com/sebuszqo/HomeBudget/internal/finance/domain"
)

// MockTransactionService records calls for handler tests and returns the
// configured results.
type MockTransactionService struct {
	CreateErr error
	UpdateErr error
	DeleteErr error
	ListErr   error

	Created      []domain.Transaction
	Updated      []domain.Transaction
	DeletedIDs   []string
	Transactions []domain.Transaction
}

func (m *MockTransactionService) CreateTransaction(transaction *domain.Transaction) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	transaction.ID = "mock-id"
	m.Created = append(m.Created, *transaction)
	return nil
}

func (m *MockTransactionService) UpdateTransaction(transaction *domain.Transaction) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.Updated = append(m.Updated, *transaction)
	return nil
}

func (m *MockTransactionService) DeleteTransaction(transactionID, userID string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.DeletedIDs = append(m.DeletedIDs, transactionID)
	return nil
}

func (m *MockTransactionService) GetUserTransactions(userID string) ([]domain.Transaction, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Transactions, nil
}
