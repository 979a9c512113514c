package impl

import (
	"context"
	"log/slog"
	"strings"
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
	"go.uber.org/fx"
)

// Wallet pass presentation constants.
const (
	passTypeIdentifier = "pass.com.luxewellness.membership"
	passOrganization   = "Luxe Wellness"
	passBarcodeFormat  = "PKBarcodeFormatQR"
	passBarcodeCharset = "iso-8859-1"
	passTerms          = "This membership is valid for 12 months from the date of purchase. " +
		"Funds are only usable at Luxe Wellness clinic locations."
)

var passColors = map[entity.Tier]string{
	entity.TierSilver:   "rgb(139, 115, 85)",
	entity.TierGold:     "rgb(212, 175, 55)",
	entity.TierPlatinum: "rgb(26, 26, 26)",
}

type membershipService struct {
	txManager      repository.TransactionManager
	userRepo       repository.UserRepository
	membershipRepo repository.MembershipRepository
	qrcodeService  service.QRCodeService
	metrics        service.LedgerMetrics
	maxRetries     int
	logger         *slog.Logger
}

// MembershipServiceParams holds dependencies for MembershipService, injected by Fx.
type MembershipServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	UserRepo       repository.UserRepository
	MembershipRepo repository.MembershipRepository
	QRCodeService  service.QRCodeService
	Metrics        service.LedgerMetrics `optional:"true"`
	Config         *config.Config
	Logger         *slog.Logger
}

// NewMembershipService creates a new membership service instance
func NewMembershipService(params MembershipServiceParams) usecase.MembershipUsecase {
	return &membershipService{
		txManager:      params.TxManager,
		userRepo:       params.UserRepo,
		membershipRepo: params.MembershipRepo,
		qrcodeService:  params.QRCodeService,
		metrics:        params.Metrics,
		maxRetries:     maxRetriesFrom(params.Config),
		logger:         params.Logger,
	}
}

func (srv *membershipService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListTiers returns the entitlement table in tier order.
func (srv *membershipService) ListTiers(_ context.Context) []entity.Entitlement {
	return entity.Entitlements()
}

// GetActiveMembership returns the user's active membership.
func (srv *membershipService) GetActiveMembership(ctx context.Context, userID string) (*entity.Membership, error) {
	return findActiveMembership(ctx, srv.membershipRepo, userID)
}

// CreateMembership opens the membership and its welcome gifts in one transaction.
func (srv *membershipService) CreateMembership(ctx context.Context, userID string, tier entity.Tier) (*usecase.CreateMembershipOutput, error) {
	now := time.Now()

	membership, err := entity.NewMembership(userID, tier, now)
	if err != nil {
		return nil, err
	}

	gifts, err := entity.NewWelcomeGifts(membership, now)
	if err != nil {
		return nil, err
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		membershipRepo := repoFactory.NewMembershipRepository()

		_, err := membershipRepo.FindActiveByUserID(ctx, userID)
		if err == nil {
			return domainerrors.ErrMembershipAlreadyActive
		}
		if !errors.Is(err, repository.ErrMembershipNotFound) {
			return errors.Wrap(err, "failed to check active membership")
		}

		if err := membershipRepo.Create(ctx, membership); err != nil {
			if errors.Is(err, repository.ErrActiveMembershipExists) {
				return domainerrors.ErrMembershipAlreadyActive
			}

			return errors.Wrap(err, "failed to create membership")
		}

		if err := repoFactory.NewWelcomeGiftRepository().CreateBatch(ctx, gifts); err != nil {
			return errors.Wrap(err, "failed to provision welcome gifts")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Membership created",
		slog.String("userID", userID),
		slog.String("membershipID", membership.ID.String()),
		slog.String("tier", tier.String()),
	)

	return &usecase.CreateMembershipOutput{Membership: membership, WelcomeGifts: gifts}, nil
}

// DeactivateMembership ends a membership. It is the only path that frees the user to buy a new tier.
func (srv *membershipService) DeactivateMembership(ctx context.Context, staffID string, membershipID uuid.UUID) (*entity.Membership, error) {
	var deactivated *entity.Membership

	err := retryOnConflict(ctx, srv.maxRetries, srv.metrics, func() error {
		return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
			membershipRepo := repoFactory.NewMembershipRepository()

			membership, err := findMembershipByID(ctx, membershipRepo, membershipID)
			if err != nil {
				return err
			}

			if err := membership.Deactivate(time.Now()); err != nil {
				return err
			}

			if err := membershipRepo.UpdateWithVersion(ctx, membership); err != nil {
				return err
			}

			deactivated = membership

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Membership deactivated",
		slog.String("membershipID", membershipID.String()),
		slog.String("staffID", staffID),
	)

	return deactivated, nil
}

// GenerateMembershipQR renders the membership card of the user's active membership.
func (srv *membershipService) GenerateMembershipQR(ctx context.Context, userID string) ([]byte, error) {
	membership, err := findActiveMembership(ctx, srv.membershipRepo, userID)
	if err != nil {
		return nil, err
	}

	qrCode, err := srv.qrcodeService.GenerateMembershipQR(membership.ID, userID, time.Now())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate membership QR")
	}

	return qrCode, nil
}

// GetWalletPass builds the store card description of the user's active membership.
func (srv *membershipService) GetWalletPass(ctx context.Context, userID string) (*usecase.WalletPass, error) {
	membership, err := findActiveMembership(ctx, srv.membershipRepo, userID)
	if err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	message, err := srv.qrcodeService.MembershipQRMessage(membership.ID, userID, time.Now())
	if err != nil {
		return nil, errors.Wrap(err, "failed to build barcode message")
	}

	return &usecase.WalletPass{
		FormatVersion:      1,
		PassTypeIdentifier: passTypeIdentifier,
		SerialNumber:       membership.ID,
		OrganizationName:   passOrganization,
		BackgroundColor:    passColors[membership.Tier],
		Description:        tierTitle(membership.Tier) + " Membership",
		MemberName:         user.FullName(),
		Tier:               membership.Tier,
		Balance:            membership.Balance,
		Currency:           membership.Currency,
		DiscountPercentage: membership.DiscountPercentage,
		VipEventsRemaining: membership.VipEventsRemaining,
		UnlimitedVipEvents: membership.HasUnlimitedVipEvents(),
		ExpiresAt:          membership.ExpiresAt,
		Terms:              passTerms,
		Barcode: usecase.WalletBarcode{
			Format:          passBarcodeFormat,
			Message:         message,
			MessageEncoding: passBarcodeCharset,
		},
	}, nil
}

// LookupByQR resolves a scanned card. The card must name the membership's owner and still be active.
func (srv *membershipService) LookupByQR(ctx context.Context, qrData string) (*entity.Membership, error) {
	payload, err := srv.qrcodeService.ParseMembershipQR(qrData)
	if err != nil {
		return nil, domainerrors.ErrInvalidMembershipQR.WithDetails(err.Error())
	}

	membership, err := srv.membershipRepo.FindByID(ctx, payload.MembershipID)
	if err != nil {
		if errors.Is(err, repository.ErrMembershipNotFound) {
			return nil, domainerrors.ErrMembershipNotFound
		}

		return nil, errors.Wrap(err, "failed to find membership")
	}

	if membership.UserID != payload.UserID {
		return nil, domainerrors.ErrInvalidMembershipQR.WithDetails("card does not belong to membership owner")
	}

	if !membership.IsActive {
		return nil, domainerrors.ErrMembershipInactive
	}

	return membership, nil
}

// findActiveMembership maps the repository miss to the API error.
func findActiveMembership(ctx context.Context, repo repository.MembershipRepository, userID string) (*entity.Membership, error) {
	membership, err := repo.FindActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrMembershipNotFound) {
			return nil, domainerrors.ErrMembershipNotFound
		}

		return nil, errors.Wrap(err, "failed to find active membership")
	}

	return membership, nil
}

func tierTitle(t entity.Tier) string {
	s := t.String()
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
