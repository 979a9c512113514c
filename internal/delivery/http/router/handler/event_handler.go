package handler

import (
	"log/slog"
	"net/http"
	"time"

	"wellness/internal/delivery/http/middleware"
	"wellness/internal/delivery/http/response"
	"wellness/internal/domain/entity"
	"wellness/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// EventHandlerParams holds dependencies for EventHandler, injected by Fx.
type EventHandlerParams struct {
	fx.In

	EventUC usecase.EventUsecase
	Logger  *slog.Logger
}

// EventHandler serves VIP event listings, RSVPs and staff scheduling.
type EventHandler struct {
	eventUC usecase.EventUsecase
	logger  *slog.Logger
}

// NewEventHandler is the constructor for EventHandler
func NewEventHandler(params EventHandlerParams) *EventHandler {
	return &EventHandler{
		eventUC: params.EventUC,
		logger:  params.Logger,
	}
}

// RsvpRequest names the event the caller wants to attend.
type RsvpRequest struct {
	EventID uuid.UUID `json:"eventId" validate:"required"`
}

// CreateEventRequest schedules a VIP event.
type CreateEventRequest struct {
	Title        string    `json:"title" validate:"required,max=200"`
	Description  string    `json:"description" validate:"max=2000"`
	EventDate    time.Time `json:"eventDate" validate:"required"`
	ImageURL     string    `json:"imageUrl" validate:"omitempty,url"`
	RequiredTier string    `json:"requiredTier" validate:"required,tier"`
	MaxAttendees *int      `json:"maxAttendees" validate:"omitempty,min=1"`
}

// ListEvents returns upcoming events, optionally narrowed to one required tier.
func (h *EventHandler) ListEvents(c echo.Context) error {
	var requiredTier *entity.Tier
	if raw := c.QueryParam("tier"); raw != "" {
		tier, err := entity.ParseTier(raw)
		if err != nil {
			return response.HandleAppError(c, err)
		}
		requiredTier = &tier
	}

	events, err := h.eventUC.ListUpcomingEvents(c.Request().Context(), requiredTier)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, events, "Events retrieved successfully")
}

// ListAttendance returns the caller's RSVPs.
func (h *EventHandler) ListAttendance(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	attendance, err := h.eventUC.ListAttendance(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, attendance, "Attendance retrieved successfully")
}

// Rsvp registers the caller for an event.
func (h *EventHandler) Rsvp(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req RsvpRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid RSVP input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.eventUC.Rsvp(c.Request().Context(), userID, req.EventID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, output.Attendee, "RSVP recorded successfully")
}

// CreateEvent lets staff schedule an event.
func (h *EventHandler) CreateEvent(c echo.Context) error {
	staffID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid event input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	event, err := h.eventUC.CreateEvent(c.Request().Context(), &usecase.CreateEventInput{
		StaffID:      staffID,
		Title:        req.Title,
		Description:  req.Description,
		EventDate:    req.EventDate,
		ImageURL:     req.ImageURL,
		RequiredTier: entity.Tier(req.RequiredTier),
		MaxAttendees: req.MaxAttendees,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, event, "Event created successfully")
}
