package user

import (
	"errors"

	"github.com/badoux/checkmail"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrEmailTaken        = errors.New("email is already registered")
	ErrPasswordTooShort  = errors.New("password must have at least 8 characters")
	ErrNameRequired      = errors.New("name is required")
	ErrInternalError     = errors.New("internal server error")
	ErrInvalidCredential = errors.New("invalid email or password")
)

type UserRepository interface {
	Create(user User) error
	GetByID(userID string) (*User, error)
	GetByEmail(email string) (*User, error)
	IncrementBalances(userID string, personalDelta, familyDelta decimal.Decimal) (decimal.Decimal, decimal.Decimal, error)
	SetTwoFactorSecret(userID, secret string) error
}

type Service interface {
	Register(email, name, password string) (*User, error)
	GetUserByID(userID string) (*User, error)
	GetUserByEmail(email string) (*User, error)
	VerifyPassword(user *User, password string) error
	SetTwoFactorSecret(userID, secret string) error
	IncrementBalances(userID string, personalDelta, familyDelta decimal.Decimal) (decimal.Decimal, decimal.Decimal, error)
	HouseholdID(userID string) (string, bool, error)
}

type service struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) Service {
	return &service{repo: repo}
}

func (s *service) Register(email, name, password string) (*User, error) {
	if err := checkmail.ValidateFormat(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(password) < 8 {
		return nil, ErrPasswordTooShort
	}
	if _, err := s.repo.GetByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrInternalError
	}

	user := User{
		ID:              uuid.NewString(),
		Email:           email,
		Name:            name,
		HashedPassword:  string(hashed),
		PersonalBalance: decimal.Zero,
		FamilyBalance:   decimal.Zero,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *service) GetUserByID(userID string) (*User, error) {
	return s.repo.GetByID(userID)
}

func (s *service) GetUserByEmail(email string) (*User, error) {
	return s.repo.GetByEmail(email)
}

func (s *service) VerifyPassword(user *User, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return ErrInvalidCredential
	}
	return nil
}

func (s *service) SetTwoFactorSecret(userID, secret string) error {
	return s.repo.SetTwoFactorSecret(userID, secret)
}

func (s *service) IncrementBalances(userID string, personalDelta, familyDelta decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	return s.repo.IncrementBalances(userID, personalDelta, familyDelta)
}

// HouseholdID reports the household the user belongs to, if any. The
// orchestrator uses it to decide whether household fan-out applies.
func (s *service) HouseholdID(userID string) (string, bool, error) {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		return "", false, err
	}
	if user.HouseholdID == nil {
		return "", false, nil
	}
	return *user.HouseholdID, true, nil
}
