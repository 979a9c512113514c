package handler

import (
	"log/slog"
	"net/http"

	"wellness/internal/delivery/http/middleware"
	"wellness/internal/delivery/http/response"
	"wellness/internal/domain/entity"
	"wellness/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// AuthHandler serves sign-in, token refresh and the caller's profile.
type AuthHandler struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

// GoogleSignInRequest carries the ID token the client obtained from Google Sign-In.
type GoogleSignInRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// RefreshTokenRequest carries a refresh token to exchange for a new pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// UpdateUserRequest changes the caller's preferred language.
type UpdateUserRequest struct {
	Language string `json:"language" validate:"required,language"`
}

// AuthResponse is the issued token pair and the mirrored user.
type AuthResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	TokenType    string       `json:"tokenType"`
	ExpiresIn    int64        `json:"expiresIn"`
	User         *entity.User `json:"user"`
}

func newAuthResponse(output *usecase.AuthOutput) *AuthResponse {
	return &AuthResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    output.ExpiresIn,
		User:         output.User,
	}
}

// SignInWithGoogle exchanges a Google ID token for service tokens.
func (h *AuthHandler) SignInWithGoogle(c echo.Context) error {
	var req GoogleSignInRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sign-in input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.authUC.SignInWithGoogle(c.Request().Context(), &usecase.GoogleSignInInput{IDToken: req.IDToken})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAuthResponse(output), "Signed in successfully")
}

// RefreshToken issues a new token pair from a refresh token.
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var req RefreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid refresh token input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.authUC.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAuthResponse(output), "Token refreshed successfully")
}

// GetUser returns the authenticated user.
func (h *AuthHandler) GetUser(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	user, err := h.authUC.GetUser(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user, "User retrieved successfully")
}

// UpdateUser stores the caller's preferred language.
func (h *AuthHandler) UpdateUser(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	user, err := h.authUC.UpdateLanguage(c.Request().Context(), userID, req.Language)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user, "User updated successfully")
}
