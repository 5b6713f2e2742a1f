package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"feednbounce-backend/internal/identity"
	"feednbounce-backend/internal/models"
)

const testSecret = "test-secret"

func issueToken(t *testing.T, role string) string {
	t.Helper()
	token, err := identity.IssueToken(testSecret, &models.User{
		ID:             bson.NewObjectID(),
		ExternalUserID: "USR11111111AAAA",
		Role:           role,
	})
	require.NoError(t, err)
	return token
}

func identityEcho() (http.Handler, *identity.Identity) {
	captured := &identity.Identity{}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ident := GetIdentity(r.Context()); ident != nil {
			*captured = *ident
		}
		w.WriteHeader(http.StatusOK)
	}), captured
}

func TestJWTAuthSeedsIdentity(t *testing.T) {
	next, captured := identityEcho()
	handler := JWTAuth(testSecret)(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, models.RoleUser))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "USR11111111AAAA", captured.ExternalUserID)
	assert.Equal(t, models.RoleUser, captured.Role)
}

func TestJWTAuthMissingToken(t *testing.T) {
	next, _ := identityEcho()
	handler := JWTAuth(testSecret)(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unauthorized")
}

func TestJWTAuthBadToken(t *testing.T) {
	next, _ := identityEcho()
	handler := JWTAuth(testSecret)(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid token")
}

func TestRequireAdmin(t *testing.T) {
	next, _ := identityEcho()
	handler := JWTAuth(testSecret)(RequireAdmin(next))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, models.RoleAdmin))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, models.RoleUser))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Admins only")
}

func TestRequireAdminWithoutAuth(t *testing.T) {
	next, _ := identityEcho()
	handler := RequireAdmin(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
