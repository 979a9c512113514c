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
	"go.uber.org/fx"
)

const (
	eventsCachePrefix = "events:"
	eventsCacheAll    = "all"
)

type eventService struct {
	txManager  repository.TransactionManager
	eventRepo  repository.EventRepository
	cache      service.Cache
	cacheTTL   time.Duration
	metrics    service.LedgerMetrics
	maxRetries int
	logger     *slog.Logger
}

// EventServiceParams holds dependencies for EventService, injected by Fx.
type EventServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	EventRepo repository.EventRepository
	Cache     service.Cache
	Metrics   service.LedgerMetrics `optional:"true"`
	Config    *config.Config
	Logger    *slog.Logger
}

// NewEventService creates a new VIP event service instance
func NewEventService(params EventServiceParams) usecase.EventUsecase {
	var ttl time.Duration
	if params.Config != nil && params.Config.Cache != nil {
		ttl = params.Config.Cache.EventsTTL
	}

	return &eventService{
		txManager:  params.TxManager,
		eventRepo:  params.EventRepo,
		cache:      params.Cache,
		cacheTTL:   ttl,
		metrics:    params.Metrics,
		maxRetries: maxRetriesFrom(params.Config),
		logger:     params.Logger,
	}
}

func (srv *eventService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListUpcomingEvents serves the listing from cache when fresh. Entries that started since caching are dropped.
func (srv *eventService) ListUpcomingEvents(ctx context.Context, requiredTier *entity.Tier) ([]*entity.VipEvent, error) {
	now := time.Now()
	key := eventsCacheKey(requiredTier)

	if cached, ok := srv.cache.Get(key); ok {
		if events, ok := cached.([]*entity.VipEvent); ok {
			return openEvents(events, now), nil
		}
	}

	events, err := srv.eventRepo.FindUpcoming(ctx, now, requiredTier)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list upcoming events")
	}

	srv.cache.Set(key, events, srv.cacheTTL)

	return events, nil
}

// CreateEvent schedules an event and invalidates the cached listings.
func (srv *eventService) CreateEvent(ctx context.Context, input *usecase.CreateEventInput) (*entity.VipEvent, error) {
	event, err := entity.NewVipEvent(
		input.Title,
		input.Description,
		input.EventDate,
		input.ImageURL,
		input.RequiredTier,
		input.MaxAttendees,
		time.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err := srv.eventRepo.CreateEvent(ctx, event); err != nil {
		return nil, errors.Wrap(err, "failed to create event")
	}

	srv.cache.DeletePrefix(eventsCachePrefix)

	srv.log(ctx).Info("VIP event created",
		slog.String("eventID", event.ID.String()),
		slog.String("staffID", input.StaffID),
		slog.String("requiredTier", event.RequiredTier.String()),
	)

	return event, nil
}

// Rsvp registers the member. Checks run in order: membership, open event, tier, duplicate,
// capacity, allowance. The event row lock serializes capacity; the membership CAS guards the allowance.
func (srv *eventService) Rsvp(ctx context.Context, userID string, eventID uuid.UUID) (*usecase.RsvpOutput, error) {
	var output *usecase.RsvpOutput

	err := retryOnConflict(ctx, srv.maxRetries, srv.metrics, func() error {
		return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
			membershipRepo := repoFactory.NewMembershipRepository()
			eventRepo := repoFactory.NewEventRepository()
			now := time.Now()

			membership, err := findActiveMembership(ctx, membershipRepo, userID)
			if err != nil {
				return err
			}

			event, err := eventRepo.FindEventForUpdate(ctx, eventID)
			if err != nil {
				if errors.Is(err, repository.ErrEventNotFound) {
					return domainerrors.ErrEventNotFound
				}

				return errors.Wrap(err, "failed to find event")
			}

			if !event.IsOpen(now) {
				return domainerrors.ErrEventNotFound.WithDetails("event is no longer open")
			}

			if !entity.CanAccess(membership, event.RequiredTier) {
				return domainerrors.ErrTierNotEligible.WithDetails(
					"requires " + event.RequiredTier.String() + ", membership is " + membership.Tier.String())
			}

			if registered, err := isRegistered(ctx, eventRepo, userID, eventID); err != nil {
				return err
			} else if registered {
				return domainerrors.ErrAlreadyRegistered
			}

			count, err := eventRepo.CountAttendees(ctx, eventID)
			if err != nil {
				return errors.Wrap(err, "failed to count attendees")
			}

			if !event.HasCapacity(count) {
				return domainerrors.ErrEventFull
			}

			if err := membership.ConsumeVipEvent(now); err != nil {
				return err
			}

			if err := membershipRepo.UpdateWithVersion(ctx, membership); err != nil {
				return err
			}

			attendee := entity.NewEventAttendee(event, membership, now)
			if err := eventRepo.CreateAttendee(ctx, attendee); err != nil {
				if errors.Is(err, repository.ErrDuplicateAttendee) {
					return domainerrors.ErrAlreadyRegistered
				}

				return errors.Wrap(err, "failed to record attendee")
			}

			output = &usecase.RsvpOutput{Attendee: attendee, Membership: membership}

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("RSVP recorded",
		slog.String("userID", userID),
		slog.String("eventID", eventID.String()),
		slog.Int("vipEventsRemaining", output.Membership.VipEventsRemaining),
	)

	return output, nil
}

// ListAttendance lists the user's RSVPs newest first.
func (srv *eventService) ListAttendance(ctx context.Context, userID string) ([]*entity.EventAttendee, error) {
	attendance, err := srv.eventRepo.FindAttendanceByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list attendance")
	}

	return attendance, nil
}

func isRegistered(ctx context.Context, repo repository.EventRepository, userID string, eventID uuid.UUID) (bool, error) {
	attendance, err := repo.FindAttendanceByUser(ctx, userID)
	if err != nil {
		return false, errors.Wrap(err, "failed to check attendance")
	}

	for _, a := range attendance {
		if a.EventID == eventID {
			return true, nil
		}
	}

	return false, nil
}

func eventsCacheKey(tier *entity.Tier) string {
	if tier == nil {
		return eventsCachePrefix + eventsCacheAll
	}

	return eventsCachePrefix + tier.String()
}

func openEvents(events []*entity.VipEvent, now time.Time) []*entity.VipEvent {
	open := make([]*entity.VipEvent, 0, len(events))
	for _, e := range events {
		if e.IsOpen(now) {
			open = append(open, e)
		}
	}

	return open
}
