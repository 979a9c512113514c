// Package handler contains the Pub/Sub push handlers of the wallet event worker.
package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"wellness/config"
	deliverycontext "wellness/internal/delivery/context"
	"wellness/internal/domain/constants"
	"wellness/internal/domain/repository"
	"wellness/internal/domain/service"
	"wellness/internal/errors"
	"wellness/internal/infra/metrics"
	"wellness/internal/infra/pubsub"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

const (
	// reconcileWindow is how many recent ledger rows are searched for the event's transaction.
	reconcileWindow = 50
	seenEventTTL    = time.Hour
	seenKeyPrefix   = "wallet-event:"
)

// Outcomes recorded per consumed event.
const (
	outcomeReconciled = "reconciled"
	outcomeMissing    = "missing"
	outcomeDuplicate  = "duplicate"
	outcomeIgnored    = "ignored"
	outcomeInvalid    = "invalid"
	outcomeRetry      = "retry"
)

type validateFunc func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// retryableError wraps an error to indicate it should trigger a Pub/Sub retry
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.err)
}

func (e *retryableError) Unwrap() error {
	return e.err
}

func newRetryableError(err error) error {
	return &retryableError{err: err}
}

func isRetryableError(err error) bool {
	var re *retryableError

	return errors.As(err, &re)
}

// PushHandler consumes wallet events and checks each one against the ledger.
type PushHandler struct {
	verifyPushAuth bool
	pushAudience   string
	validate       validateFunc
	logger         *slog.Logger
	ledgerRepo     repository.LedgerRepository
	seen           service.Cache
	metrics        *metrics.Registry
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config     *config.Config
	Logger     *slog.Logger
	LedgerRepo repository.LedgerRepository
	Cache      service.Cache
	Metrics    *metrics.Registry
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	// Only Google push subscriptions carry an OIDC token.
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop

	var pushAudience string
	if params.Config.PubSub != nil {
		pushAudience = params.Config.PubSub.PushAudience
	}

	return &PushHandler{
		verifyPushAuth: verifyPushAuth,
		pushAudience:   pushAudience,
		validate:       idtoken.Validate,
		logger:         params.Logger,
		ledgerRepo:     params.LedgerRepo,
		seen:           params.Cache,
		metrics:        params.Metrics,
	}
}

// HandlePush handles incoming Pub/Sub push messages. 2xx acks the message, 503 asks for redelivery.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := h.verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg pubsub.PubSubPushMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event service.WalletEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Worker] Failed to parse wallet event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	requestID := h.extractRequestID(ctx, &pushMsg, &event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	outcome, err := h.processEvent(ctx, &event)
	h.metrics.ObserveEventConsumed(event.TransactionType, outcome)
	if err != nil {
		reqLogger.Error("[Worker] Failed to process wallet event",
			slog.String("event_id", event.EventID),
			slog.Any("error", err),
			slog.Bool("retryable", isRetryableError(err)),
		)
		if isRetryableError(err) {
			return c.NoContent(http.StatusServiceUnavailable)
		}

		return c.NoContent(http.StatusOK)
	}

	return c.NoContent(http.StatusOK)
}

func (h *PushHandler) processEvent(ctx context.Context, event *service.WalletEvent) (string, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)

	if event.Type != service.WalletEventTransactionRecorded {
		logger.Info("[Worker] Ignoring unknown event type", slog.String("type", event.Type))

		return outcomeIgnored, nil
	}

	seenKey := seenKeyPrefix + event.EventID
	if _, ok := h.seen.Get(seenKey); ok {
		logger.Debug("[Worker] Duplicate wallet event", slog.String("event_id", event.EventID))

		return outcomeDuplicate, nil
	}

	membershipID, err := uuid.Parse(event.MembershipID)
	if err != nil {
		return outcomeInvalid, errors.Wrap(err, "invalid membership id")
	}

	transactionID, err := uuid.Parse(event.TransactionID)
	if err != nil {
		return outcomeInvalid, errors.Wrap(err, "invalid transaction id")
	}

	transactions, err := h.ledgerRepo.FindByMembershipID(ctx, membershipID, reconcileWindow)
	if err != nil {
		return outcomeRetry, newRetryableError(errors.Wrap(err, "failed to load ledger"))
	}

	h.seen.Set(seenKey, struct{}{}, seenEventTTL)

	for _, tx := range transactions {
		if tx.ID == transactionID {
			logger.Info("[Worker] Wallet event reconciled",
				slog.String("event_id", event.EventID),
				slog.String("membership_id", event.MembershipID),
				slog.String("transaction_type", event.TransactionType),
				slog.String("amount", event.Amount),
				slog.String("balance_after", event.BalanceAfter),
			)

			return outcomeReconciled, nil
		}
	}

	logger.Warn("[Worker] Wallet event has no matching ledger row",
		slog.String("event_id", event.EventID),
		slog.String("membership_id", event.MembershipID),
		slog.String("transaction_id", event.TransactionID),
	)

	return outcomeMissing, nil
}

func (h *PushHandler) extractRequestID(ctx context.Context, pushMsg *pubsub.PubSubPushMessage, event *service.WalletEvent) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

// audienceFor prefers the configured push audience and otherwise rebuilds the endpoint URL,
// honouring X-Forwarded-Proto from a proxy.
func (h *PushHandler) audienceFor(req *http.Request) string {
	if h.pushAudience != "" {
		return h.pushAudience
	}

	scheme := "http"
	if req.TLS != nil {
		scheme = "https"
	}
	if proto := req.Header.Get(echo.HeaderXForwardedProto); proto != "" {
		scheme = proto
	}

	return fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)
}

// verifyPubSubToken checks the OIDC token Pub/Sub attaches to authenticated push requests.
func (h *PushHandler) verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	token, found := strings.CutPrefix(authHeader, "Bearer ")
	if !found {
		return errors.New("invalid authorization header format")
	}

	audience := h.audienceFor(req)

	payload, err := h.validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
