package identity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"feednbounce-backend/internal/apperr"
	"feednbounce-backend/internal/models"
)

func TestNewGuestID(t *testing.T) {
	id := NewGuestID()
	assert.True(t, strings.HasPrefix(id, GuestPrefix))
	assert.Len(t, id, len(GuestPrefix)+8+4)
	assert.True(t, IsGuestID(id))
}

func TestNewExternalUserID(t *testing.T) {
	id := NewExternalUserID()
	assert.True(t, strings.HasPrefix(id, "USR"))
	assert.False(t, IsGuestID(id))
}

func TestGuestIDsDistinct(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewGuestID()
		_, dup := seen[id]
		require.False(t, dup, "duplicate guest id %s", id)
		seen[id] = struct{}{}
	}
}

func TestNewGuest(t *testing.T) {
	ident := NewGuest()
	assert.Equal(t, models.RoleGuest, ident.Role)
	assert.True(t, IsGuestID(ident.ExternalUserID))
	assert.Empty(t, ident.InternalID)
	assert.False(t, ident.IsAdmin())
}

func TestTokenRoundTrip(t *testing.T) {
	user := &models.User{
		ID:             bson.NewObjectID(),
		ExternalUserID: "USR12345678ABCD",
		Role:           models.RoleAdmin,
	}

	token, err := IssueToken("secret", user)
	require.NoError(t, err)

	ident, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), ident.InternalID)
	assert.Equal(t, user.ExternalUserID, ident.ExternalUserID)
	assert.Equal(t, models.RoleAdmin, ident.Role)
	assert.True(t, ident.IsAdmin())
}

func TestParseTokenRejectsBadSecret(t *testing.T) {
	user := &models.User{ID: bson.NewObjectID(), ExternalUserID: "USR1", Role: models.RoleUser}
	token, err := IssueToken("secret", user)
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err))
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("secret", "not-a-jwt")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err))
}

func TestClassifyID(t *testing.T) {
	tests := []struct {
		id   string
		want RefKind
	}{
		{"64f1c2b3a4d5e6f708192a3b", RefInternal},
		{"64F1C2B3A4D5E6F708192A3B", RefInternal},
		{"USR12345678ABCD", RefExternal},
		{"GST12345678ABCD", RefExternal},
		{"64f1c2b3a4d5e6f708192a3", RefExternal},   // 23 chars
		{"64f1c2b3a4d5e6f708192a3bc", RefExternal}, // 25 chars
		{"zzf1c2b3a4d5e6f708192a3b", RefExternal},  // non-hex
		{"", RefExternal},
	}

	for _, tt := range tests {
		ref := ClassifyID(tt.id)
		assert.Equal(t, tt.want, ref.Kind, "id %q", tt.id)
		assert.Equal(t, tt.id, ref.Value)
	}
}
