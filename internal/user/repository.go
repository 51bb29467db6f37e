package user

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrUserNotFound = errors.New("user not found")

// User carries the two balance accumulators. Both are exact decimals
// stored in NUMERIC columns; they are written only through
// IncrementBalances, never set directly.
type User struct {
	ID              string
	Email           string
	Name            string
	HashedPassword  string
	PersonalBalance decimal.Decimal
	FamilyBalance   decimal.Decimal
	HouseholdID     *string
	TwoFactorSecret *string
	CreatedAt       time.Time
}

type Repository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(user User) error {
	_, err := r.db.Exec(
		`INSERT INTO users (id, email, name, hashed_password, personal_balance, family_balance)
		 VALUES ($1, $2, $3, $4, 0, 0)`,
		user.ID, user.Email, user.Name, user.HashedPassword,
	)
	return err
}

func (r *Repository) scanUser(row *sql.Row) (*User, error) {
	var user User
	var personal, family string
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.HashedPassword,
		&personal, &family, &user.HouseholdID, &user.TwoFactorSecret, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if user.PersonalBalance, err = decimal.NewFromString(personal); err != nil {
		return nil, fmt.Errorf("invalid personal balance for user %s: %w", user.ID, err)
	}
	if user.FamilyBalance, err = decimal.NewFromString(family); err != nil {
		return nil, fmt.Errorf("invalid family balance for user %s: %w", user.ID, err)
	}
	return &user, nil
}

const selectUser = `SELECT id, email, name, hashed_password, personal_balance, family_balance, household_id, two_factor_secret, created_at FROM users`

func (r *Repository) GetByID(userID string) (*User, error) {
	return r.scanUser(r.db.QueryRow(selectUser+` WHERE id = $1`, userID))
}

func (r *Repository) GetByEmail(email string) (*User, error) {
	return r.scanUser(r.db.QueryRow(selectUser+` WHERE email = $1`, email))
}

// IncrementBalances applies both deltas in one atomic read-modify-write
// so concurrent mutations touching the same user cannot lose updates and
// no reader ever observes one balance moved without the other. The
// updated balances are returned for the BALANCE_UPDATE push.
func (r *Repository) IncrementBalances(userID string, personalDelta, familyDelta decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	var personal, family string
	err := r.db.QueryRow(
		`UPDATE users
		 SET personal_balance = personal_balance + $2,
		     family_balance = family_balance + $3
		 WHERE id = $1
		 RETURNING personal_balance, family_balance`,
		userID, personalDelta.String(), familyDelta.String(),
	).Scan(&personal, &family)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, decimal.Zero, ErrUserNotFound
	}
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	personalBalance, err := decimal.NewFromString(personal)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid personal balance for user %s: %w", userID, err)
	}
	familyBalance, err := decimal.NewFromString(family)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid family balance for user %s: %w", userID, err)
	}
	return personalBalance, familyBalance, nil
}

func (r *Repository) SetTwoFactorSecret(userID, secret string) error {
	_, err := r.db.Exec(`UPDATE users SET two_factor_secret = $2 WHERE id = $1`, userID, secret)
	return err
}
