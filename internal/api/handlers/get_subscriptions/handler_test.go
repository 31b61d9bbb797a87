package get_subscriptions

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
	"github.com/m04kA/SMC-TrainingPortal/pkg/logger"
)

type stubService struct {
	subs     []domain.Subscription
	degraded bool
}

func (s stubService) Load(context.Context) ([]domain.Subscription, bool) {
	return s.subs, s.degraded
}

func get(t *testing.T, svc SubscriptionService) SubscriptionListResponse {
	t.Helper()
	w := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodGet, "/subscriptions", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp SubscriptionListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandle_Summary(t *testing.T) {
	resp := get(t, stubService{subs: []domain.Subscription{
		{ID: 1, Status: domain.SubscriptionActive, SessionsTotal: 10, SessionsUsed: 7},
		{ID: 2, Status: domain.SubscriptionExpired, SessionsTotal: 5, SessionsUsed: 1},
		{ID: 3, Status: "frozen", SessionsTotal: 5, SessionsUsed: 0},
	}})

	assert.Len(t, resp.Subscriptions, 3)
	assert.Equal(t, 3, resp.Summary.RemainingCredits)
	assert.Equal(t, 1, resp.Summary.Eligible)
	assert.Equal(t, 2, resp.Summary.ByStatus["active"])
	assert.Equal(t, "active", resp.Subscriptions[2].Status)
	assert.False(t, resp.Subscriptions[2].Eligible)
	assert.Empty(t, resp.Notice)
}

func TestHandle_NoCredits(t *testing.T) {
	resp := get(t, stubService{subs: []domain.Subscription{
		{ID: 1, Status: domain.SubscriptionActive, SessionsTotal: 4, SessionsUsed: 4},
	}})

	assert.Equal(t, domain.NoCreditsMessage, resp.Notice)
}

func TestHandle_Degraded(t *testing.T) {
	resp := get(t, stubService{subs: []domain.Subscription{}, degraded: true})

	assert.True(t, resp.Degraded)
	assert.Empty(t, resp.Subscriptions)
	assert.Empty(t, resp.Notice)
}
