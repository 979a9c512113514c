package handler

import (
	"log/slog"
	"net/http"

	"wellness/internal/delivery/http/middleware"
	"wellness/internal/delivery/http/response"
	"wellness/internal/domain/entity"
	"wellness/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// MembershipHandlerParams holds dependencies for MembershipHandler, injected by Fx.
type MembershipHandlerParams struct {
	fx.In

	MembershipUC usecase.MembershipUsecase
	Logger       *slog.Logger
}

// MembershipHandler serves tiers, the caller's membership card and staff membership tools.
type MembershipHandler struct {
	membershipUC usecase.MembershipUsecase
	logger       *slog.Logger
}

// NewMembershipHandler is the constructor for MembershipHandler
func NewMembershipHandler(params MembershipHandlerParams) *MembershipHandler {
	return &MembershipHandler{
		membershipUC: params.MembershipUC,
		logger:       params.Logger,
	}
}

// CreateMembershipRequest opens a membership at a tier.
type CreateMembershipRequest struct {
	Tier string `json:"tier" validate:"required"`
}

// LookupMembershipRequest carries the payload scanned from a member's card.
type LookupMembershipRequest struct {
	QRData string `json:"qrData" validate:"required"`
}

// CreateMembershipResponse is the new membership with the gifts it granted.
type CreateMembershipResponse struct {
	*entity.Membership
	WelcomeGifts []*entity.WelcomeGift `json:"welcomeGifts"`
}

// ListTiers returns the entitlement table.
func (h *MembershipHandler) ListTiers(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.membershipUC.ListTiers(c.Request().Context()), "Tiers retrieved successfully")
}

// GetMembership returns the caller's active membership.
func (h *MembershipHandler) GetMembership(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	membership, err := h.membershipUC.GetActiveMembership(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, membership, "Membership retrieved successfully")
}

// CreateMembership opens a membership for the caller.
func (h *MembershipHandler) CreateMembership(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req CreateMembershipRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid membership input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.membershipUC.CreateMembership(c.Request().Context(), userID, entity.Tier(req.Tier))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, &CreateMembershipResponse{
		Membership:   output.Membership,
		WelcomeGifts: output.WelcomeGifts,
	}, "Membership created successfully")
}

// GetMembershipQR returns the caller's membership card as a PNG.
func (h *MembershipHandler) GetMembershipQR(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	png, err := h.membershipUC.GenerateMembershipQR(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")

	return c.Blob(http.StatusOK, "image/png", png)
}

// GetWalletPass returns the caller's wallet pass description.
func (h *MembershipHandler) GetWalletPass(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	pass, err := h.membershipUC.GetWalletPass(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, pass, "Wallet pass generated successfully")
}

// DeactivateMembership lets staff end a membership.
func (h *MembershipHandler) DeactivateMembership(c echo.Context) error {
	staffID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	membershipID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid membership ID")
	}

	membership, err := h.membershipUC.DeactivateMembership(c.Request().Context(), staffID, membershipID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, membership, "Membership deactivated successfully")
}

// LookupMembership resolves a scanned membership card for staff.
func (h *MembershipHandler) LookupMembership(c echo.Context) error {
	var req LookupMembershipRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid lookup input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	membership, err := h.membershipUC.LookupByQR(c.Request().Context(), req.QRData)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, membership, "Membership found")
}
