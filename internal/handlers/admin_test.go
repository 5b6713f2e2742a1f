package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feednbounce-backend/internal/feedback"
	"feednbounce-backend/internal/middleware"
	"feednbounce-backend/internal/models"
)

func adminGuarded(h http.HandlerFunc) http.Handler {
	return middleware.JWTAuth(testSecret)(middleware.RequireAdmin(h))
}

func seedCorpus(t *testing.T, fx *feedbackFixture) {
	t.Helper()
	for _, body := range []string{
		`{"category":"product","item_name":"Apple iPhone 15","message":"great camera"}`,
		`{"category":"product","item_name":"OnePlus 12","message":"worst battery"}`,
		`{"category":"service","item_name":"Maintenance","message":"it happened"}`,
	} {
		rec := doRequest(http.HandlerFunc(fx.handler.SubmitGuestFeedback),
			http.MethodPost, "/api/feedback/guest", body, "")
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestAdminStats(t *testing.T) {
	fx := newFeedbackFixture(t)
	seedCorpus(t, fx)

	rec := doRequest(adminGuarded(fx.admin.GetStats), http.MethodGet,
		"/api/admin/stats", "", tokenFor(t, models.RoleAdmin))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var stats feedback.Stats
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
	assert.Equal(t, 2, stats.ProductCount)
	assert.Equal(t, 1, stats.ServiceCount)
	assert.Equal(t, int64(0), stats.TotalUsers)
}

func TestAdminSentiments(t *testing.T) {
	fx := newFeedbackFixture(t)
	seedCorpus(t, fx)

	rec := doRequest(adminGuarded(fx.admin.GetSentiments), http.MethodGet,
		"/api/admin/sentiments", "", tokenFor(t, models.RoleAdmin))
	require.Equal(t, http.StatusOK, rec.Code)

	var breakdown feedback.SentimentBreakdown
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&breakdown))
	assert.Equal(t, 1, breakdown.Positive)
	assert.Equal(t, 1, breakdown.Negative)
	assert.Equal(t, 1, breakdown.Neutral)
}

func TestAdminFeedbacks(t *testing.T) {
	fx := newFeedbackFixture(t)
	seedCorpus(t, fx)

	rec := doRequest(adminGuarded(fx.admin.GetFeedbacks), http.MethodGet,
		"/api/admin/feedbacks", "", tokenFor(t, models.RoleAdmin))
	require.Equal(t, http.StatusOK, rec.Code)

	var enriched []models.EnrichedFeedback
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&enriched))
	require.Len(t, enriched, 3)
	for _, e := range enriched {
		assert.Equal(t, "Guest User", e.SubmitterInfo.Name)
		assert.Equal(t, "N/A", e.SubmitterInfo.Email)
	}
}

func TestAdminRoutesForbidNonAdmins(t *testing.T) {
	fx := newFeedbackFixture(t)

	rec := doRequest(adminGuarded(fx.admin.GetStats), http.MethodGet,
		"/api/admin/stats", "", tokenFor(t, models.RoleUser))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(adminGuarded(fx.admin.GetStats), http.MethodGet,
		"/api/admin/stats", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
