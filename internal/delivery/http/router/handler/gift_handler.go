package handler

import (
	"log/slog"
	"net/http"

	"wellness/internal/delivery/http/middleware"
	"wellness/internal/delivery/http/response"
	"wellness/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// GiftHandlerParams holds dependencies for GiftHandler, injected by Fx.
type GiftHandlerParams struct {
	fx.In

	GiftUC usecase.GiftUsecase
	Logger *slog.Logger
}

// GiftHandler serves welcome gifts.
type GiftHandler struct {
	giftUC usecase.GiftUsecase
	logger *slog.Logger
}

// NewGiftHandler is the constructor for GiftHandler
func NewGiftHandler(params GiftHandlerParams) *GiftHandler {
	return &GiftHandler{
		giftUC: params.GiftUC,
		logger: params.Logger,
	}
}

// ListWelcomeGifts returns the gifts of the caller's active membership.
func (h *GiftHandler) ListWelcomeGifts(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	gifts, err := h.giftUC.ListWelcomeGifts(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, gifts, "Welcome gifts retrieved successfully")
}

// RedeemWelcomeGift marks one of the caller's gifts as used.
func (h *GiftHandler) RedeemWelcomeGift(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	giftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid gift ID")
	}

	gift, err := h.giftUC.RedeemWelcomeGift(c.Request().Context(), userID, giftID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, gift, "Welcome gift redeemed successfully")
}
