package infrastructure

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sebuszqo/HomeBudget/internal/finance/domain"
	financeErrors "github.com/sebuszqo/HomeBudget/internal/finance/errors"
	"github.com/sebuszqo/HomeBudget/internal/user"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("homebudget_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	schema, err := os.ReadFile("../../db/schema.sql")
	require.NoError(t, err)
	// pgx's default exec mode takes one statement at a time.
	for _, statement := range strings.Split(string(schema), ";") {
		if strings.TrimSpace(statement) == "" {
			continue
		}
		_, err = db.Exec(statement)
		require.NoError(t, err)
	}

	return db
}

func insertTestUser(t *testing.T, db *sql.DB, userID string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO users (id, email, name, hashed_password) VALUES ($1, $2, 'Test User', 'x')`,
		userID, userID+"@example.com",
	)
	require.NoError(t, err)
}

func TestTransactionRepository_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTransactionRepository(db)

	userID := "7f9c24e5-5bd1-4f4a-9c8e-0a2b1d9c3e11"
	insertTestUser(t, db, userID)

	transaction := domain.Transaction{
		ID:       "0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d",
		UserID:   userID,
		Amount:   decimal.RequireFromString("123.45"),
		Currency: "EUR",
		TypeID:   domain.TypeExpense,
		IsShared: true,
		Date:     time.Now().UTC(),
	}
	require.NoError(t, repo.Save(transaction))

	loaded, err := repo.FindByID(transaction.ID)
	require.NoError(t, err)
	assert.True(t, loaded.Amount.Equal(transaction.Amount), "amount must survive the NUMERIC round trip exactly")
	assert.Equal(t, domain.TypeExpense, loaded.TypeID)
	assert.True(t, loaded.IsShared)

	loaded.Amount = decimal.RequireFromString("80")
	loaded.IsShared = false
	require.NoError(t, repo.Update(*loaded))

	reloaded, err := repo.FindByID(transaction.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Amount.Equal(decimal.RequireFromString("80")))
	assert.False(t, reloaded.IsShared)

	byUser, err := repo.FindByUser(userID)
	require.NoError(t, err)
	assert.Len(t, byUser, 1)

	require.NoError(t, repo.Delete(transaction.ID))
	_, err = repo.FindByID(transaction.ID)
	assert.True(t, financeErrors.IsNotFoundError(err))
	assert.True(t, financeErrors.IsNotFoundError(repo.Delete(transaction.ID)))
}

func TestUserRepository_IncrementBalancesIsRelative(t *testing.T) {
	db := setupTestDB(t)
	repo := user.NewUserRepository(db)

	userID := "3c1a9d7e-2b4f-4c8a-9e6d-5f0a1b2c3d4e"
	insertTestUser(t, db, userID)

	personal, family, err := repo.IncrementBalances(userID,
		decimal.RequireFromString("-50"), decimal.RequireFromString("50"))
	require.NoError(t, err)
	assert.True(t, personal.Equal(decimal.RequireFromString("-50")))
	assert.True(t, family.Equal(decimal.RequireFromString("50")))

	// A second delta stacks on top of the first instead of overwriting it.
	personal, family, err = repo.IncrementBalances(userID,
		decimal.RequireFromString("-30"), decimal.RequireFromString("30"))
	require.NoError(t, err)
	assert.True(t, personal.Equal(decimal.RequireFromString("-80")))
	assert.True(t, family.Equal(decimal.RequireFromString("80")))
}
