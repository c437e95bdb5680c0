package stripewebhooks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chitrakalakar-app/internal/domain"
	"chitrakalakar-app/internal/service/payments"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v75/webhook"
	"go.uber.org/zap"
)

const secret = "whsec_test"

type fakeBridge struct {
	calls   []string
	outcome payments.Outcome
	err     error
}

func (f *fakeBridge) Reconcile(_ context.Context, sessionID string) (payments.Outcome, error) {
	f.calls = append(f.calls, sessionID)
	return f.outcome, f.err
}

func send(t *testing.T, h *Handler, body string, sign bool) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/webhook/stripe", h.StripeWebhook)

	req := httptest.NewRequest(http.MethodPost, "/webhook/stripe", strings.NewReader(body))
	if sign {
		signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
			Payload:   []byte(body),
			Secret:    secret,
			Timestamp: time.Now(),
		})
		req.Header.Set("Stripe-Signature", signed.Header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func event(typ, sessionID string) string {
	return fmt.Sprintf(`{"id":"evt_1","object":"event","type":%q,"data":{"object":{"id":%q,"object":"checkout.session"}}}`, typ, sessionID)
}

func TestStripeWebhook_ReconcilesCompletedSessions(t *testing.T) {
	for _, typ := range []string{"checkout.session.completed", "checkout.session.async_payment_succeeded"} {
		t.Run(typ, func(t *testing.T) {
			b := &fakeBridge{outcome: payments.Settled}
			w := send(t, NewHandler(b, secret, zap.NewNop()), event(typ, "cs_1"), true)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), `"outcome":"settled"`)
			assert.Equal(t, []string{"cs_1"}, b.calls)
		})
	}
}

func TestStripeWebhook_RejectsBadSignature(t *testing.T) {
	b := &fakeBridge{}
	w := send(t, NewHandler(b, secret, zap.NewNop()), event("checkout.session.completed", "cs_1"), false)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, b.calls)
}

func TestStripeWebhook_IgnoresOtherEvents(t *testing.T) {
	b := &fakeBridge{}
	w := send(t, NewHandler(b, secret, zap.NewNop()), event("invoice.paid", "in_1"), true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ignored")
	assert.Empty(t, b.calls)
}

func TestStripeWebhook_UnknownSessionIsAcknowledged(t *testing.T) {
	b := &fakeBridge{err: fmt.Errorf("%w: %w", payments.ErrUnknownSession, domain.ErrNotFound)}
	w := send(t, NewHandler(b, secret, zap.NewNop()), event("checkout.session.completed", "cs_x"), true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ignored")
}

func TestStripeWebhook_FailuresAskForRetry(t *testing.T) {
	for name, err := range map[string]error{
		"orphan entity": fmt.Errorf("artwork a1: %w", domain.ErrNotFound),
		"provider down": errors.New("connection refused"),
		"timeout":       domain.ErrTimeout,
	} {
		t.Run(name, func(t *testing.T) {
			b := &fakeBridge{err: err}
			w := send(t, NewHandler(b, secret, zap.NewNop()), event("checkout.session.completed", "cs_1"), true)
			assert.Equal(t, http.StatusInternalServerError, w.Code)
		})
	}
}

func TestStripeWebhook_MissingSecret(t *testing.T) {
	w := send(t, NewHandler(&fakeBridge{}, "", zap.NewNop()), event("checkout.session.completed", "cs_1"), false)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
