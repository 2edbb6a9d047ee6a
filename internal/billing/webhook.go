package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"bazaar/internal/domain"
	"bazaar/internal/domain/repositories"
	"bazaar/internal/httputil"

	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
)

// Stripe recommends capping webhook payloads well below the default body limit.
const maxWebhookBody = 65536

// WebhookHandler receives Stripe subscription events and keeps the accounts
// table's subscription status in sync. It is mounted outside the auth
// middleware: the Stripe-Signature header is the only accepted credential.
type WebhookHandler struct {
	accountRepo    repositories.AccountRepository
	endpointSecret string
	logger         *slog.Logger
}

// NewWebhookHandler creates a new Stripe webhook handler
func NewWebhookHandler(accountRepo repositories.AccountRepository, endpointSecret string, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		accountRepo:    accountRepo,
		endpointSecret: endpointSecret,
		logger:         logger,
	}
}

// HandleWebhook verifies and dispatches a Stripe event
// POST /api/webhooks/stripe
func (h *WebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBody)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		httputil.RespondError(w, http.StatusServiceUnavailable, "error reading request body")
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		r.Header.Get("Stripe-Signature"),
		h.endpointSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		h.logger.Warn("stripe signature verification failed", "error", err)
		httputil.RespondError(w, http.StatusBadRequest, "signature verification failed")
		return
	}

	switch event.Type {
	case "customer.subscription.created", "customer.subscription.updated", "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "failed to parse subscription")
			return
		}
		if err := h.applySubscription(r.Context(), event.Type, &sub); err != nil {
			// 500 makes Stripe retry; resolvable states return nil instead.
			h.logger.Error("failed to apply subscription event", "event_id", event.ID, "error", err)
			httputil.RespondError(w, http.StatusInternalServerError, "failed to process event")
			return
		}
		httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "received"})

	default:
		// Acknowledge unknown events to avoid retries
		httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
	}
}

// applySubscription writes the normalized status onto the account linked to
// the event's Stripe customer. Deletion clears the stored subscription id.
func (h *WebhookHandler) applySubscription(ctx context.Context, eventType stripe.EventType, sub *stripe.Subscription) error {
	if sub.ID == "" || sub.Customer == nil || sub.Customer.ID == "" {
		// Malformed beyond retry; acknowledge so Stripe stops resending.
		h.logger.Warn("subscription event missing id or customer", "event_type", eventType)
		return nil
	}

	account, err := h.accountRepo.GetByStripeCustomerID(ctx, sub.Customer.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Account deleted on our side; acknowledge to avoid retries.
			h.logger.Warn("no account for stripe customer", "customer_id", sub.Customer.ID)
			return nil
		}
		return fmt.Errorf("lookup account: %w", err)
	}

	status := NormalizeStatus(string(sub.Status))
	subscriptionID := &sub.ID
	if eventType == "customer.subscription.deleted" {
		subscriptionID = nil
	}

	if err := h.accountRepo.UpdateSubscription(ctx, account.ID, status, subscriptionID); err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}

	h.logger.Info("subscription status updated",
		"account_id", account.ID,
		"status", status,
		"event_type", eventType,
	)
	return nil
}
