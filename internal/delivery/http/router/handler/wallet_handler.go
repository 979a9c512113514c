package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"wellness/internal/delivery/http/middleware"
	"wellness/internal/delivery/http/response"
	"wellness/internal/domain/entity"
	"wellness/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// WalletHandlerParams holds dependencies for WalletHandler, injected by Fx.
type WalletHandlerParams struct {
	fx.In

	WalletUC usecase.WalletUsecase
	Logger   *slog.Logger
}

// WalletHandler serves the balance ledger.
type WalletHandler struct {
	walletUC usecase.WalletUsecase
	logger   *slog.Logger
}

// NewWalletHandler is the constructor for WalletHandler
func NewWalletHandler(params WalletHandlerParams) *WalletHandler {
	return &WalletHandler{
		walletUC: params.WalletUC,
		logger:   params.Logger,
	}
}

// RecordTransactionRequest is a member-initiated balance mutation. Amounts accept
// JSON strings or numbers.
type RecordTransactionRequest struct {
	Type            string          `json:"type" validate:"required,oneof=debit credit purchase topup"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description" validate:"max=500"`
	DiscountApplied decimal.Decimal `json:"discountApplied"`
}

// AdjustBalanceRequest is a staff add/deduct on a target membership.
type AdjustBalanceRequest struct {
	MembershipID uuid.UUID       `json:"membershipId" validate:"required"`
	Type         string          `json:"type" validate:"required,oneof=add deduct"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description" validate:"required,max=500"`
}

// TransactionResponse is the recorded transaction and the resulting balance.
type TransactionResponse struct {
	Transaction *entity.Transaction `json:"transaction"`
	NewBalance  decimal.Decimal     `json:"newBalance"`
}

// ListTransactions returns the caller's most recent transactions.
func (h *WalletHandler) ListTransactions(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	limit := usecase.DefaultTransactionLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_LIMIT", "limit must be an integer")
		}
		limit = parsed
	}

	transactions, err := h.walletUC.ListTransactions(c.Request().Context(), userID, limit)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, transactions, "Transactions retrieved successfully")
}

// RecordTransaction applies a transaction to the caller's active membership.
func (h *WalletHandler) RecordTransaction(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req RecordTransactionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid transaction input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.walletUC.RecordTransaction(c.Request().Context(), &usecase.RecordTransactionInput{
		UserID:          userID,
		Type:            entity.TransactionType(req.Type),
		Amount:          req.Amount,
		Description:     req.Description,
		DiscountApplied: req.DiscountApplied,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, &TransactionResponse{
		Transaction: output.Transaction,
		NewBalance:  output.Membership.Balance,
	}, "Transaction recorded successfully")
}

// AdjustBalance lets staff add to or deduct from any membership.
func (h *WalletHandler) AdjustBalance(c echo.Context) error {
	staffID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req AdjustBalanceRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid balance adjustment input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.walletUC.AdjustBalance(c.Request().Context(), &usecase.AdjustBalanceInput{
		StaffID:      staffID,
		MembershipID: req.MembershipID,
		Kind:         entity.AdjustmentKind(req.Type),
		Amount:       req.Amount,
		Description:  req.Description,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, &TransactionResponse{
		Transaction: output.Transaction,
		NewBalance:  output.Membership.Balance,
	}, "Balance updated successfully")
}
