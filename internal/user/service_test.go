package user

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeRepo struct {
	byID    map[string]*User
	byEmail map[string]*User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]*User), byEmail: make(map[string]*User)}
}

func (f *fakeRepo) Create(u User) error {
	stored := u
	f.byID[u.ID] = &stored
	f.byEmail[u.Email] = &stored
	return nil
}

func (f *fakeRepo) GetByID(userID string) (*User, error) {
	u, ok := f.byID[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (f *fakeRepo) GetByEmail(email string) (*User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (f *fakeRepo) IncrementBalances(userID string, personalDelta, familyDelta decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	u, ok := f.byID[userID]
	if !ok {
		return decimal.Zero, decimal.Zero, ErrUserNotFound
	}
	u.PersonalBalance = u.PersonalBalance.Add(personalDelta)
	u.FamilyBalance = u.FamilyBalance.Add(familyDelta)
	return u.PersonalBalance, u.FamilyBalance, nil
}

func (f *fakeRepo) SetTwoFactorSecret(userID, secret string) error {
	u, ok := f.byID[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.TwoFactorSecret = &secret
	return nil
}

func TestRegister_HashesPasswordAndStartsAtZero(t *testing.T) {
	service := NewUserService(newFakeRepo())

	u, err := service.Register("jane@example.com", "Jane", "correct horse battery")
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.True(t, u.PersonalBalance.IsZero())
	assert.True(t, u.FamilyBalance.IsZero())
	assert.NotEqual(t, "correct horse battery", u.HashedPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte("correct horse battery")))
}

func TestRegister_Validation(t *testing.T) {
	service := NewUserService(newFakeRepo())

	_, err := service.Register("not-an-email", "Jane", "long enough password")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = service.Register("jane@example.com", "", "long enough password")
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = service.Register("jane@example.com", "Jane", "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	service := NewUserService(newFakeRepo())

	_, err := service.Register("jane@example.com", "Jane", "long enough password")
	require.NoError(t, err)

	_, err = service.Register("jane@example.com", "Jane Again", "long enough password")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestVerifyPassword(t *testing.T) {
	service := NewUserService(newFakeRepo())
	u, err := service.Register("jane@example.com", "Jane", "long enough password")
	require.NoError(t, err)

	assert.NoError(t, service.VerifyPassword(u, "long enough password"))
	assert.ErrorIs(t, service.VerifyPassword(u, "wrong password"), ErrInvalidCredential)
}

func TestHouseholdID(t *testing.T) {
	repo := newFakeRepo()
	service := NewUserService(repo)
	u, err := service.Register("jane@example.com", "Jane", "long enough password")
	require.NoError(t, err)

	_, inHousehold, err := service.HouseholdID(u.ID)
	require.NoError(t, err)
	assert.False(t, inHousehold)

	householdID := "household-1"
	repo.byID[u.ID].HouseholdID = &householdID

	resolved, inHousehold, err := service.HouseholdID(u.ID)
	require.NoError(t, err)
	assert.True(t, inHousehold)
	assert.Equal(t, "household-1", resolved)
}
