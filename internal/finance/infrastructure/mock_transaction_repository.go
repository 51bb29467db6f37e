package infrastructure

import (
	"sync"

	"github.com/sebuszqo/HomeBudget/internal/finance/domain"
	financeErrors "github.com/sebuszqo/HomeBudget/internal/finance/errors"
)

// MockTransactionRepository is an in-memory TransactionRepository used by
// service and handler tests. Optional error fields force failures at the
// matching operation.
type MockTransactionRepository struct {
	mu           sync.Mutex
	Transactions map[string]domain.Transaction

	SaveErr   error
	UpdateErr error
	DeleteErr error
	FindErr   error
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{Transactions: make(map[string]domain.Transaction)}
}

func (m *MockTransactionRepository) Save(transaction domain.Transaction) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transactions[transaction.ID] = transaction
	return nil
}

func (m *MockTransactionRepository) FindByID(transactionID string) (*domain.Transaction, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	transaction, ok := m.Transactions[transactionID]
	if !ok {
		return nil, financeErrors.NewNotFoundError("Transaction not found")
	}
	return &transaction, nil
}

func (m *MockTransactionRepository) FindByUser(userID string) ([]domain.Transaction, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var transactions []domain.Transaction
	for _, transaction := range m.Transactions {
		if transaction.UserID == userID {
			transactions = append(transactions, transaction)
		}
	}
	return transactions, nil
}

func (m *MockTransactionRepository) Update(transaction domain.Transaction) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Transactions[transaction.ID]; !ok {
		return financeErrors.NewNotFoundError("Transaction not found")
	}
	m.Transactions[transaction.ID] = transaction
	return nil
}

func (m *MockTransactionRepository) Delete(transactionID string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Transactions[transactionID]; !ok {
		return financeErrors.NewNotFoundError("Transaction not found")
	}
	delete(m.Transactions, transactionID)
	return nil
}
