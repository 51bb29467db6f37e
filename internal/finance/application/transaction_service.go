package application

import (
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sebuszqo/HomeBudget/internal/finance/domain"
	financeErrors "github.com/sebuszqo/HomeBudget/internal/finance/errors"
	"github.com/sebuszqo/HomeBudget/internal/notifier"
)

type CategoryServiceInterface interface {
	DoesPredefinedCategoryExist(categoryID int) (bool, error)
	DoesUserCategoryExist(categoryID int, userID string) (bool, error)
}

// UserBalanceService is the balance side of the user service. Increment
// applies both deltas in one atomic write and returns the new balances.
type UserBalanceService interface {
	IncrementBalances(userID string, personalDelta, familyDelta decimal.Decimal) (decimal.Decimal, decimal.Decimal, error)
	HouseholdID(userID string) (string, bool, error)
}

type NotifierService interface {
	NotifyUser(userID string, event notifier.Event) bool
	NotifyHousehold(householdID string, event notifier.Event, excludeUserID string)
}

// TransactionService runs every transaction mutation through the same
// sequence: load prior state, persist, compute the ledger delta, apply
// it, then notify. Notification comes last so a connected client never
// sees a transaction event before the balance it implies is durable.
type TransactionService struct {
	repo            domain.TransactionRepository
	categoryService CategoryServiceInterface
	userService     UserBalanceService
	notifier        NotifierService
	locks           *transactionLocks
}

func NewTransactionService(
	repo domain.TransactionRepository,
	categoryService CategoryServiceInterface,
	userService UserBalanceService,
	notifier NotifierService,
) *TransactionService {
	return &TransactionService{
		repo:            repo,
		categoryService: categoryService,
		userService:     userService,
		notifier:        notifier,
		locks:           newTransactionLocks(),
	}
}

func (s *TransactionService) validate(transaction *domain.Transaction) error {
	if err := transaction.Validate(); err != nil {
		return err
	}
	if transaction.PredefinedCategoryID != nil {
		exists, err := s.categoryService.DoesPredefinedCategoryExist(*transaction.PredefinedCategoryID)
		if err != nil {
			return err
		}
		if !exists {
			return financeErrors.ErrInvalidPredefinedCategory
		}
	}
	if transaction.UserCategoryID != nil {
		exists, err := s.categoryService.DoesUserCategoryExist(*transaction.UserCategoryID, transaction.UserID)
		if err != nil {
			return err
		}
		if !exists {
			return financeErrors.ErrInvalidUserCategory
		}
	}
	return nil
}

// applyDelta mutates the owner's balances and pushes BALANCE_UPDATE. A
// failure here leaves a persisted transaction without its balance
// effect, which is exactly the inconsistency the integrity error names;
// it is logged for out-of-band reconciliation and surfaced to the
// caller.
func (s *TransactionService) applyDelta(userID string, delta domain.BalanceDelta) error {
	personal, family, err := s.userService.IncrementBalances(userID, delta.Personal, delta.Family)
	if err != nil {
		log.Printf("WARNING: balance delta (%s, %s) for user %s persisted transaction but failed to apply: %v",
			delta.Personal, delta.Family, userID, err)
		return financeErrors.NewIntegrityError("transaction persisted but balance update failed", err)
	}

	s.notifier.NotifyUser(userID, notifier.Event{
		Type: notifier.EventBalanceUpdate,
		Payload: map[string]string{
			"personal_balance": personal.String(),
			"family_balance":   family.String(),
		},
	})
	return nil
}

// notifyHousehold pushes a TRANSACTION_* event to the owner's household
// co-members, excluding the owner. Owners without a household get no
// household fan-out even for shared transactions.
func (s *TransactionService) notifyHousehold(userID string, eventType notifier.EventType, payload interface{}) {
	householdID, inHousehold, err := s.userService.HouseholdID(userID)
	if err != nil {
		log.Printf("Could not resolve household for user %s: %v", userID, err)
		return
	}
	if !inHousehold {
		return
	}
	s.notifier.NotifyHousehold(householdID, notifier.Event{Type: eventType, Payload: payload}, userID)
}

func (s *TransactionService) CreateTransaction(transaction *domain.Transaction) error {
	if err := s.validate(transaction); err != nil {
		return err
	}
	transaction.ID = uuid.NewString()

	if err := s.repo.Save(*transaction); err != nil {
		return err
	}

	if err := s.applyDelta(transaction.UserID, domain.CreateDelta(*transaction)); err != nil {
		return err
	}

	if transaction.IsShared {
		s.notifyHousehold(transaction.UserID, notifier.EventTransactionCreated, transaction)
	}
	return nil
}

func (s *TransactionService) UpdateTransaction(updated *domain.Transaction) error {
	if err := s.validate(updated); err != nil {
		return err
	}

	s.locks.lock(updated.ID)
	defer s.locks.unlock(updated.ID)

	prior, err := s.repo.FindByID(updated.ID)
	if err != nil {
		return err
	}
	if prior == nil || prior.UserID != updated.UserID {
		return financeErrors.NewNotFoundError("Transaction not found")
	}
	if updated.Date.IsZero() {
		updated.Date = prior.Date
	}

	if err := s.repo.Update(*updated); err != nil {
		return err
	}

	if err := s.applyDelta(updated.UserID, domain.UpdateDelta(*prior, *updated)); err != nil {
		return err
	}

	if prior.IsShared || updated.IsShared {
		s.notifyHousehold(updated.UserID, notifier.EventTransactionUpdated, updated)
	}
	return nil
}

func (s *TransactionService) DeleteTransaction(transactionID, userID string) error {
	s.locks.lock(transactionID)
	defer s.locks.unlock(transactionID)

	prior, err := s.repo.FindByID(transactionID)
	if err != nil {
		return err
	}
	if prior == nil || prior.UserID != userID {
		return financeErrors.NewNotFoundError("Transaction not found")
	}

	if err := s.repo.Delete(transactionID); err != nil {
		return err
	}

	if err := s.applyDelta(userID, domain.DeleteDelta(*prior)); err != nil {
		return err
	}

	if prior.IsShared {
		s.notifyHousehold(userID, notifier.EventTransactionDeleted, map[string]string{"id": transactionID})
	}
	return nil
}

func (s *TransactionService) GetUserTransactions(userID string) ([]domain.Transaction, error) {
	return s.repo.FindByUser(userID)
}
