package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"wellness/config"
	"wellness/internal/domain/entity"
	"wellness/internal/domain/repository"
	"wellness/internal/infra/persistence/postgres"
	"wellness/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			AccessTokenTTL:  time.Minute,
			RefreshTokenTTL: time.Hour,
			AdminEmails:     []string{"Staff@Clinic.example"},
		},
		Ledger: &config.LedgerConfig{MaxRetries: 3},
		Cache:  &config.CacheConfig{EventsTTL: time.Minute, CleanupInterval: time.Minute},
	}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	return cfg
}

// testRepos bundles the sqlite-backed repositories a service test needs.
type testRepos struct {
	db         *gorm.DB
	tx         repository.TransactionManager
	users      repository.UserRepository
	membership repository.MembershipRepository
	ledger     repository.LedgerRepository
	gifts      repository.WelcomeGiftRepository
	events     repository.EventRepository
}

func newTestRepos(t *testing.T) *testRepos {
	t.Helper()

	db := testutil.NewDB(t)

	return &testRepos{
		db:         db,
		tx:         postgres.NewTransactionManager(db),
		users:      postgres.NewUserRepository(db),
		membership: postgres.NewMembershipRepository(db),
		ledger:     postgres.NewLedgerRepository(db),
		gifts:      postgres.NewWelcomeGiftRepository(db),
		events:     postgres.NewEventRepository(db),
	}
}

// seedMembership stores a user and an active membership at tier.
func (r *testRepos) seedMembership(t *testing.T, userID string, tier entity.Tier) *entity.Membership {
	t.Helper()

	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, r.users.Upsert(ctx, &entity.User{
		ID:        userID,
		Email:     userID + "@example.com",
		FirstName: "Ana",
		LastName:  "Lopez",
		Language:  "en",
		CreatedAt: now,
		UpdatedAt: now,
	}))

	m, err := entity.NewMembership(userID, tier, now)
	require.NoError(t, err)
	require.NoError(t, r.membership.Create(ctx, m))

	return m
}

func assertBalance(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.NewFromInt(want).Equal(got), "balance: want %d, got %s", want, got)
}

// flakyTxManager makes the first n compare-and-swap updates lose the race.
type flakyTxManager struct {
	inner     repository.TransactionManager
	conflicts int
	attempts  int
}

func (m *flakyTxManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	return m.inner.Execute(ctx, func(factory repository.RepositoryFactory) error {
		return fn(&flakyFactory{RepositoryFactory: factory, manager: m})
	})
}

type flakyFactory struct {
	repository.RepositoryFactory
	manager *flakyTxManager
}

func (f *flakyFactory) NewMembershipRepository() repository.MembershipRepository {
	return &flakyMembershipRepo{MembershipRepository: f.RepositoryFactory.NewMembershipRepository(), manager: f.manager}
}

type flakyMembershipRepo struct {
	repository.MembershipRepository
	manager *flakyTxManager
}

func (r *flakyMembershipRepo) UpdateWithVersion(ctx context.Context, m *entity.Membership) error {
	r.manager.attempts++
	if r.manager.attempts <= r.manager.conflicts {
		return repository.ErrVersionConflict
	}

	return r.MembershipRepository.UpdateWithVersion(ctx, m)
}
