// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"wellness/internal/delivery/http/middleware"
	"wellness/internal/delivery/http/router/handler"
	"wellness/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler       *handler.AuthHandler
	MembershipHandler *handler.MembershipHandler
	WalletHandler     *handler.WalletHandler
	EventHandler      *handler.EventHandler
	GiftHandler       *handler.GiftHandler
	AuthMiddleware    *middleware.AuthMiddleware
	RateLimit         *middleware.RateLimitMiddleware
	Metrics           *metrics.Registry
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler       *handler.AuthHandler
	membershipHandler *handler.MembershipHandler
	walletHandler     *handler.WalletHandler
	eventHandler      *handler.EventHandler
	giftHandler       *handler.GiftHandler
	authMiddleware    *middleware.AuthMiddleware
	rateLimit         *middleware.RateLimitMiddleware
	metrics           *metrics.Registry
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:       params.AuthHandler,
		membershipHandler: params.MembershipHandler,
		walletHandler:     params.WalletHandler,
		eventHandler:      params.EventHandler,
		giftHandler:       params.GiftHandler,
		authMiddleware:    params.AuthMiddleware,
		rateLimit:         params.RateLimit,
		metrics:           params.Metrics,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(r.metrics.Handler()))

	api := e.Group("/api")
	api.Use(r.rateLimit.Handle)

	// Public routes
	api.GET("/tiers", r.membershipHandler.ListTiers)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/google", r.authHandler.SignInWithGoogle)
		authGroup.POST("/refresh", r.authHandler.RefreshToken)
		authGroup.GET("/user", r.authHandler.GetUser, r.authMiddleware.Authenticate)
		authGroup.PATCH("/user", r.authHandler.UpdateUser, r.authMiddleware.Authenticate)
	}

	// Member routes
	member := api.Group("", r.authMiddleware.Authenticate)

	membershipGroup := member.Group("/membership")
	{
		membershipGroup.GET("", r.membershipHandler.GetMembership)
		membershipGroup.POST("", r.membershipHandler.CreateMembership)
		membershipGroup.GET("/qr", r.membershipHandler.GetMembershipQR)
		membershipGroup.GET("/pass", r.membershipHandler.GetWalletPass)
	}

	transactionsGroup := member.Group("/transactions")
	{
		transactionsGroup.GET("", r.walletHandler.ListTransactions)
		transactionsGroup.POST("", r.walletHandler.RecordTransaction)
	}

	eventsGroup := member.Group("/events")
	{
		eventsGroup.GET("", r.eventHandler.ListEvents)
		eventsGroup.GET("/attendance", r.eventHandler.ListAttendance)
		eventsGroup.POST("/rsvp", r.eventHandler.Rsvp)
	}

	giftsGroup := member.Group("/welcome-gifts")
	{
		giftsGroup.GET("", r.giftHandler.ListWelcomeGifts)
		giftsGroup.POST("/:id/redeem", r.giftHandler.RedeemWelcomeGift)
	}

	// Staff routes
	adminGroup := api.Group("/admin", r.authMiddleware.Authenticate, r.authMiddleware.RequireAdmin)
	{
		adminGroup.POST("/balance", r.walletHandler.AdjustBalance)
		adminGroup.POST("/events", r.eventHandler.CreateEvent)
		adminGroup.POST("/memberships/lookup", r.membershipHandler.LookupMembership)
		adminGroup.POST("/memberships/:id/deactivate", r.membershipHandler.DeactivateMembership)
	}
}
