package postgres

import (
	"context"
	"time"

	"wellness/internal/domain/entity"
	domainerrors "wellness/internal/domain/errors"
	"wellness/internal/domain/repository"
	"wellness/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// eventRepository implements the repository.EventRepository interface.
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository is the constructor for eventRepository.
func NewEventRepository(db *gorm.DB) repository.EventRepository {
	return &eventRepository{
		db: db,
	}
}

// CreateEvent persists a new VIP event.
func (repo *eventRepository) CreateEvent(ctx context.Context, event *entity.VipEvent) error {
	eventM := fromVipEventDomain(event)

	if err := repo.db.WithContext(ctx).Create(eventM).Error; err != nil {
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("event violates a check constraint")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create event")
	}

	return nil
}

// FindEventByID retrieves a single event.
func (repo *eventRepository) FindEventByID(ctx context.Context, id uuid.UUID) (*entity.VipEvent, error) {
	return repo.findEvent(repo.db.WithContext(ctx), id)
}

// FindEventForUpdate takes a row lock so capacity checks serialize per event.
func (repo *eventRepository) FindEventForUpdate(ctx context.Context, id uuid.UUID) (*entity.VipEvent, error) {
	return repo.findEvent(repo.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (repo *eventRepository) findEvent(query *gorm.DB, id uuid.UUID) (*entity.VipEvent, error) {
	var eventM model.VipEventModel

	if err := query.Where("id = ?", id).First(&eventM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrEventNotFound
		}

		return nil, errors.Wrap(err, "failed to find event by id")
	}

	return toVipEventDomain(&eventM), nil
}

// FindUpcoming lists active events dated after now, soonest first.
func (repo *eventRepository) FindUpcoming(ctx context.Context, now time.Time, requiredTier *entity.Tier) ([]*entity.VipEvent, error) {
	var eventModels []*model.VipEventModel

	query := repo.db.WithContext(ctx).
		Where("is_active = ? AND event_date > ?", true, now.UTC())
	if requiredTier != nil {
		query = query.Where("required_tier = ?", requiredTier.String())
	}

	if err := query.Order("event_date ASC").Find(&eventModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list upcoming events")
	}

	events := make([]*entity.VipEvent, 0, len(eventModels))
	for _, eventM := range eventModels {
		events = append(events, toVipEventDomain(eventM))
	}

	return events, nil
}

// CreateAttendee records an RSVP. The (event_id, user_id) unique index rejects duplicates.
func (repo *eventRepository) CreateAttendee(ctx context.Context, attendee *entity.EventAttendee) error {
	attendeeM := fromEventAttendeeDomain(attendee)

	if err := repo.db.WithContext(ctx).Create(attendeeM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateAttendee
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrEventNotFound.WrapMessage("attendee references an unknown event")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create attendee")
	}

	return nil
}

// CountAttendees returns how many RSVPs an event has.
func (repo *eventRepository) CountAttendees(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.EventAttendeeModel{}).
		Where("event_id = ?", eventID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count attendees")
	}

	return count, nil
}

// FindAttendanceByUser lists the user's RSVPs newest first.
func (repo *eventRepository) FindAttendanceByUser(ctx context.Context, userID string) ([]*entity.EventAttendee, error) {
	var attendeeModels []*model.EventAttendeeModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("rsvp_date DESC").
		Find(&attendeeModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list attendance by user")
	}

	attendees := make([]*entity.EventAttendee, 0, len(attendeeModels))
	for _, attendeeM := range attendeeModels {
		attendees = append(attendees, toEventAttendeeDomain(attendeeM))
	}

	return attendees, nil
}

// toVipEventDomain converts a GORM VipEventModel to a domain VipEvent entity.
func toVipEventDomain(data *model.VipEventModel) *entity.VipEvent {
	if data == nil {
		return nil
	}

	return &entity.VipEvent{
		ID:           data.ID,
		Title:        data.Title,
		Description:  data.Description,
		EventDate:    data.EventDate,
		ImageURL:     data.ImageURL,
		RequiredTier: entity.Tier(data.RequiredTier),
		MaxAttendees: data.MaxAttendees,
		IsActive:     data.IsActive,
		CreatedAt:    data.CreatedAt,
	}
}

// fromVipEventDomain converts a domain VipEvent entity to a GORM VipEventModel.
func fromVipEventDomain(data *entity.VipEvent) *model.VipEventModel {
	if data == nil {
		return nil
	}

	return &model.VipEventModel{
		ID:           data.ID,
		Title:        data.Title,
		Description:  data.Description,
		EventDate:    data.EventDate,
		ImageURL:     data.ImageURL,
		RequiredTier: data.RequiredTier.String(),
		MaxAttendees: data.MaxAttendees,
		IsActive:     data.IsActive,
		CreatedAt:    data.CreatedAt,
	}
}

func toEventAttendeeDomain(data *model.EventAttendeeModel) *entity.EventAttendee {
	if data == nil {
		return nil
	}

	return &entity.EventAttendee{
		ID:           data.ID,
		EventID:      data.EventID,
		UserID:       data.UserID,
		MembershipID: data.MembershipID,
		RsvpDate:     data.RsvpDate,
	}
}

func fromEventAttendeeDomain(data *entity.EventAttendee) *model.EventAttendeeModel {
	if data == nil {
		return nil
	}

	return &model.EventAttendeeModel{
		ID:           data.ID,
		EventID:      data.EventID,
		UserID:       data.UserID,
		MembershipID: data.MembershipID,
		RsvpDate:     data.RsvpDate,
	}
}
