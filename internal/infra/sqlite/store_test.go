package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akshan03/Personal-Finance-Agent/internal/infra/sqlite"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/holding"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/transaction"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/user"
)

func openStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "finance.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func createUser(t *testing.T, store *sqlite.Store) *user.User {
	t.Helper()
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	u := &user.User{
		ID:           uuid.New(),
		Email:        "jane-" + uuid.NewString()[:8] + "@example.com",
		FullName:     "Jane Doe",
		PasswordHash: "hash",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return u
}

func TestOpen_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finance.db")
	ctx := context.Background()

	first, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	defer second.Close()
	assert.NoError(t, second.Health(ctx))
}

func TestUserRepository(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	repo := store.Users()
	u := createUser(t, store)

	got, err := repo.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "Jane Doe", got.FullName)
	assert.True(t, got.IsActive)
	assert.True(t, u.CreatedAt.Equal(got.CreatedAt))
	assert.Nil(t, got.LastLoginAt)

	exists, err := repo.Exists(ctx, u.Email)
	require.NoError(t, err)
	assert.True(t, exists)

	dup := *u
	dup.ID = uuid.New()
	assert.ErrorIs(t, repo.Create(ctx, &dup), user.ErrUserAlreadyExists)

	login := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	u.UpdateLastLogin(login)
	require.NoError(t, repo.Update(ctx, u))

	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLoginAt)
	assert.True(t, login.Equal(*got.LastLoginAt))

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestTransactionRepository(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	repo := store.Transactions()
	u := createUser(t, store)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	amounts := []string{"3000", "-1200.50", "-80.25", "-45"}
	categories := []transaction.Category{
		transaction.CategoryIncome, transaction.CategoryHousing, transaction.CategoryFood, transaction.CategoryFood,
	}
	ids := make([]uuid.UUID, len(amounts))
	for i := range amounts {
		ids[i] = uuid.New()
		require.NoError(t, repo.Create(ctx, &transaction.Transaction{
			ID:        ids[i],
			UserID:    u.ID,
			Amount:    decimal.RequireFromString(amounts[i]),
			Category:  categories[i],
			Timestamp: base.AddDate(0, 0, i),
			CreatedAt: base,
			UpdatedAt: base,
		}))
	}

	all, err := repo.List(ctx, u.ID, transaction.Filter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, ids[3], all[0].ID)
	assert.Equal(t, "-1200.50", all[2].Amount.StringFixed(2))

	food := transaction.CategoryFood
	foods, err := repo.List(ctx, u.ID, transaction.Filter{Category: &food, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, foods, 2)

	start := base.AddDate(0, 0, 1)
	windowed, err := repo.List(ctx, u.ID, transaction.Filter{StartDate: &start})
	require.NoError(t, err)
	assert.Len(t, windowed, 3)

	page, err := repo.List(ctx, u.ID, transaction.Filter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[1], page[0].ID)

	require.NoError(t, repo.SetFraudulent(ctx, ids[2], true))
	flagged, err := repo.List(ctx, u.ID, transaction.Filter{FraudulentOnly: true})
	require.NoError(t, err)
	require.Len(t, flagged, 1)
	assert.True(t, flagged[0].IsFraudulent)

	tx, err := repo.GetByID(ctx, ids[0])
	require.NoError(t, err)
	desc := "salary"
	tx.Description = &desc
	require.NoError(t, repo.Update(ctx, tx))
	tx, err = repo.GetByID(ctx, ids[0])
	require.NoError(t, err)
	require.NotNil(t, tx.Description)
	assert.Equal(t, "salary", *tx.Description)

	require.NoError(t, repo.Delete(ctx, ids[0]))
	assert.ErrorIs(t, repo.Delete(ctx, ids[0]), transaction.ErrTransactionNotFound)
	assert.ErrorIs(t, repo.SetFraudulent(ctx, ids[0], true), transaction.ErrTransactionNotFound)
}

func TestHoldingRepository(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	repo := store.Holdings()
	u := createUser(t, store)

	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	sym := "BTC"
	btc := &holding.Holding{
		ID:            uuid.New(),
		UserID:        u.ID,
		AssetName:     "Bitcoin",
		Symbol:        &sym,
		AssetType:     holding.AssetTypeCrypto,
		Quantity:      decimal.RequireFromString("0.12345678"),
		PurchasePrice: decimal.NewFromInt(40000),
		PurchaseDate:  now,
		LastUpdated:   now,
		CreatedAt:     now,
	}
	house := &holding.Holding{
		ID:            uuid.New(),
		UserID:        u.ID,
		AssetName:     "House",
		AssetType:     holding.AssetTypeRealEstate,
		Quantity:      decimal.NewFromInt(1),
		PurchasePrice: decimal.NewFromInt(250000),
		PurchaseDate:  now,
		LastUpdated:   now,
		CreatedAt:     now.Add(time.Minute),
	}
	require.NoError(t, repo.Create(ctx, btc))
	require.NoError(t, repo.Create(ctx, house))

	list, err := repo.GetByUserID(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, btc.ID, list[0].ID)
	assert.Equal(t, "0.12345678", list[0].Quantity.String())
	assert.Nil(t, list[0].CurrentValue)

	priced, err := repo.GetPriced(ctx)
	require.NoError(t, err)
	require.Len(t, priced, 1)
	assert.Equal(t, "BTC", *priced[0].Symbol)

	later := now.Add(time.Hour)
	require.NoError(t, repo.UpdateValuation(ctx, btc.ID, decimal.RequireFromString("6172.84"), later))
	got, err := repo.GetByID(ctx, btc.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CurrentValue)
	assert.Equal(t, "6172.84", got.CurrentValue.StringFixed(2))
	assert.True(t, later.Equal(got.LastUpdated))

	house.AssetName = "Family house"
	require.NoError(t, repo.Update(ctx, house))
	got, err = repo.GetByID(ctx, house.ID)
	require.NoError(t, err)
	assert.Equal(t, "Family house", got.AssetName)

	require.NoError(t, repo.Delete(ctx, house.ID))
	_, err = repo.GetByID(ctx, house.ID)
	assert.ErrorIs(t, err, holding.ErrHoldingNotFound)
	assert.ErrorIs(t, repo.UpdateValuation(ctx, house.ID, decimal.Zero, later), holding.ErrHoldingNotFound)
}
