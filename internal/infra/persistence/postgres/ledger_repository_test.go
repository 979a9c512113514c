package postgres

import (
	"context"
	"testing"
	"time"

	"wellness/internal/domain/entity"
	"wellness/internal/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerRepository_NewestFirstWithLimit(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewLedgerRepository(db)
	ctx := context.Background()

	m := newMembership(t, "user-1", entity.TierSilver)
	staff := "admin-1"
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	for i := range 5 {
		tx := entity.NewTransaction(m, entity.TransactionCredit, decimal.NewFromInt(int64(100*(i+1))), "topup", decimal.Zero, nil, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.Create(ctx, tx))
	}
	adminTx := entity.NewTransaction(m, entity.TransactionDebit, decimal.NewFromInt(50), "adjustment", decimal.Zero, &staff, base.Add(time.Hour))
	require.NoError(t, repo.Create(ctx, adminTx))

	txs, err := repo.FindByUserID(ctx, "user-1", 3)
	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.Equal(t, adminTx.ID, txs[0].ID)
	require.NotNil(t, txs[0].StaffID)
	assert.Equal(t, "admin-1", *txs[0].StaffID)
	assert.True(t, txs[1].Amount.Equal(decimal.NewFromInt(500)), "amount = %s", txs[1].Amount)
	assert.True(t, txs[2].Amount.Equal(decimal.NewFromInt(400)), "amount = %s", txs[2].Amount)

	all, err := repo.FindByMembershipID(ctx, m.ID, 0)
	require.NoError(t, err)
	assert.Len(t, all, 6)

	none, err := repo.FindByUserID(ctx, "user-2", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLedgerRepository_SameInstantKeepsInsertOrder(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewLedgerRepository(db)
	ctx := context.Background()

	m := newMembership(t, "user-1", entity.TierGold)
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	var ids []uuid.UUID
	for i := range 5 {
		tx := entity.NewTransaction(m, entity.TransactionCredit, decimal.NewFromInt(int64(i+1)), "topup", decimal.Zero, nil, at)
		require.NoError(t, repo.Create(ctx, tx))
		ids = append(ids, tx.ID)
	}

	txs, err := repo.FindByUserID(ctx, "user-1", 0)
	require.NoError(t, err)
	require.Len(t, txs, 5)
	for i, tx := range txs {
		assert.Equal(t, ids[len(ids)-1-i], tx.ID, "position %d", i)
	}
}
