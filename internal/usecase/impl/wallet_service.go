package impl

import (
	"context"
	"log/slog"
	"time"

	"wellness/config"
	deliverycontext "wellness/internal/delivery/context"
	"wellness/internal/domain/entity"
	domainerrors "wellness/internal/domain/errors"
	"wellness/internal/domain/repository"
	"wellness/internal/domain/service"
	"wellness/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

const outcomeOK = "ok"

type walletService struct {
	txManager      repository.TransactionManager
	membershipRepo repository.MembershipRepository
	ledgerRepo     repository.LedgerRepository
	publisher      service.EventPublisher
	metrics        service.LedgerMetrics
	maxRetries     int
	logger         *slog.Logger
}

// WalletServiceParams holds dependencies for WalletService, injected by Fx.
type WalletServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	MembershipRepo repository.MembershipRepository
	LedgerRepo     repository.LedgerRepository
	Publisher      service.EventPublisher
	Metrics        service.LedgerMetrics `optional:"true"`
	Config         *config.Config
	Logger         *slog.Logger
}

// NewWalletService creates a new wallet service instance
func NewWalletService(params WalletServiceParams) usecase.WalletUsecase {
	return &walletService{
		txManager:      params.TxManager,
		membershipRepo: params.MembershipRepo,
		ledgerRepo:     params.LedgerRepo,
		publisher:      params.Publisher,
		metrics:        params.Metrics,
		maxRetries:     maxRetriesFrom(params.Config),
		logger:         params.Logger,
	}
}

func (srv *walletService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// mutation applies one change to a freshly read membership and returns the ledger row to append.
type mutation func(m *entity.Membership, now time.Time) (*entity.Transaction, error)

// loader reads the membership the mutation targets, inside the transaction.
type loader func(ctx context.Context, repo repository.MembershipRepository) (*entity.Membership, error)

// RecordTransaction applies a member-initiated mutation. Debits and purchases fail on insufficient funds.
func (srv *walletService) RecordTransaction(ctx context.Context, input *usecase.RecordTransactionInput) (*usecase.LedgerOutput, error) {
	if !input.Type.IsValid() {
		return nil, domainerrors.ErrInvalidTransactionType.WithDetails("unknown transaction type: " + input.Type.String())
	}

	if input.DiscountApplied.IsNegative() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("discountApplied must not be negative")
	}

	if err := entity.ValidateMoney("discountApplied", input.DiscountApplied); err != nil {
		return nil, err
	}

	load := func(ctx context.Context, repo repository.MembershipRepository) (*entity.Membership, error) {
		return findActiveMembership(ctx, repo, input.UserID)
	}

	apply := func(m *entity.Membership, now time.Time) (*entity.Transaction, error) {
		if err := m.Apply(input.Type, input.Amount, now); err != nil {
			return nil, err
		}

		return entity.NewTransaction(m, input.Type, input.Amount, input.Description, input.DiscountApplied, nil, now), nil
	}

	return srv.applyWithRetry(ctx, input.Type, load, apply)
}

// AdjustBalance applies a staff adjustment. Deductions clamp at zero and record the requested amount.
func (srv *walletService) AdjustBalance(ctx context.Context, input *usecase.AdjustBalanceInput) (*usecase.LedgerOutput, error) {
	txType, err := input.Kind.TransactionType()
	if err != nil {
		return nil, err
	}

	load := func(ctx context.Context, repo repository.MembershipRepository) (*entity.Membership, error) {
		return findMembershipByID(ctx, repo, input.MembershipID)
	}

	staffID := input.StaffID
	apply := func(m *entity.Membership, now time.Time) (*entity.Transaction, error) {
		if _, err := m.Adjust(input.Kind, input.Amount, now); err != nil {
			return nil, err
		}

		return entity.NewTransaction(m, txType, input.Amount, input.Description, decimal.Zero, &staffID, now), nil
	}

	output, err := srv.applyWithRetry(ctx, txType, load, apply)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Balance adjusted by staff",
		slog.String("staffID", staffID),
		slog.String("membershipID", input.MembershipID.String()),
		slog.String("kind", string(input.Kind)),
		slog.String("amount", input.Amount.String()),
		slog.String("balance", output.Membership.Balance.String()),
	)

	return output, nil
}

// ListTransactions lists the user's transactions newest first, clamping the limit to [1, 100].
func (srv *walletService) ListTransactions(ctx context.Context, userID string, limit int) ([]*entity.Transaction, error) {
	if limit <= 0 {
		limit = usecase.DefaultTransactionLimit
	}
	if limit > usecase.MaxTransactionLimit {
		limit = usecase.MaxTransactionLimit
	}

	transactions, err := srv.ledgerRepo.FindByUserID(ctx, userID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list transactions")
	}

	return transactions, nil
}

// applyWithRetry runs load+apply+CAS update+append in one transaction, retrying lost races.
func (srv *walletService) applyWithRetry(ctx context.Context, txType entity.TransactionType, load loader, apply mutation) (*usecase.LedgerOutput, error) {
	var output *usecase.LedgerOutput

	err := retryOnConflict(ctx, srv.maxRetries, srv.metrics, func() error {
		return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
			membershipRepo := repoFactory.NewMembershipRepository()

			membership, err := load(ctx, membershipRepo)
			if err != nil {
				return err
			}

			record, err := apply(membership, time.Now())
			if err != nil {
				return err
			}

			if err := membershipRepo.UpdateWithVersion(ctx, membership); err != nil {
				return err
			}

			if err := repoFactory.NewLedgerRepository().Create(ctx, record); err != nil {
				return errors.Wrap(err, "failed to append transaction")
			}

			output = &usecase.LedgerOutput{Membership: membership, Transaction: record}

			return nil
		})
	})

	srv.observe(txType, err)
	if err != nil {
		return nil, err
	}

	srv.publish(ctx, output)

	return output, nil
}

func (srv *walletService) observe(txType entity.TransactionType, err error) {
	if srv.metrics == nil {
		return
	}

	outcome := outcomeOK
	if err != nil {
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			outcome = appErr.ErrorCode()
		} else {
			outcome = "error"
		}
	}

	srv.metrics.ObserveMutation(txType.String(), outcome)
}

// publish emits the wallet event after commit. Failures never undo the committed mutation.
func (srv *walletService) publish(ctx context.Context, output *usecase.LedgerOutput) {
	if srv.publisher == nil {
		return
	}

	record := output.Transaction
	event := &service.WalletEvent{
		EventID:         uuid.NewString(),
		Type:            service.WalletEventTransactionRecorded,
		RequestID:       deliverycontext.GetRequestIDFromContext(ctx),
		TransactionID:   record.ID.String(),
		MembershipID:    record.MembershipID.String(),
		UserID:          record.UserID,
		TransactionType: record.Type.String(),
		Amount:          record.Amount.String(),
		BalanceAfter:    output.Membership.Balance.String(),
		Currency:        record.Currency,
		OccurredAt:      record.CreatedAt,
	}
	if record.StaffID != nil {
		event.StaffID = *record.StaffID
	}

	if err := srv.publisher.PublishWalletEvent(ctx, event); err != nil {
		if srv.metrics != nil {
			srv.metrics.ObserveEventPublishFailure()
		}
		srv.log(ctx).Error("Failed to publish wallet event",
			slog.String("transactionID", event.TransactionID),
			slog.Any("error", err),
		)
	}
}

func findMembershipByID(ctx context.Context, repo repository.MembershipRepository, id uuid.UUID) (*entity.Membership, error) {
	membership, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMembershipNotFound) {
			return nil, domainerrors.ErrMembershipNotFound
		}

		return nil, errors.Wrap(err, "failed to find membership")
	}

	return membership, nil
}
