package store

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feednbounce-backend/internal/apperr"
	"feednbounce-backend/internal/identity"
	"feednbounce-backend/internal/models"
)

// countingStore records which backend served a call.
type countingStore struct {
	Store
	calls int
}

func (c *countingStore) CountUsers(ctx context.Context) (int64, error) {
	c.calls++
	return c.Store.CountUsers(ctx)
}

type staticHealth struct{ ready bool }

func (h *staticHealth) Ready(context.Context) bool { return h.ready }

func TestFailoverPrefersPrimaryWhenReady(t *testing.T) {
	ctx := context.Background()
	primary := &countingStore{Store: newTestFileStore(t)}
	fallback := &countingStore{Store: newTestFileStore(t)}
	health := &staticHealth{ready: true}

	f := NewFailover(primary, health, fallback, zerolog.Nop())

	_, err := f.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, fallback.calls)
}

func TestFailoverRoutesPerCall(t *testing.T) {
	ctx := context.Background()
	primary := &countingStore{Store: newTestFileStore(t)}
	fallback := &countingStore{Store: newTestFileStore(t)}
	health := &staticHealth{ready: false}

	f := NewFailover(primary, health, fallback, zerolog.Nop())

	_, err := f.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, primary.calls)
	assert.Equal(t, 1, fallback.calls)

	// Primary recovers; next call goes back to it. No sticky selection.
	health.ready = true
	_, err = f.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestFailoverWithoutPrimary(t *testing.T) {
	ctx := context.Background()
	fallback := NewFileStore(t.TempDir() + "/data.json")
	f := NewFailover(nil, nil, fallback, zerolog.Nop())

	user := &models.User{ExternalUserID: "USR1", Name: "Alice", Email: "a@example.com"}
	require.NoError(t, f.CreateUser(ctx, user))

	found, err := f.FindUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)

	users, err := f.FindUsersByRefs(ctx, []identity.UserRef{identity.ClassifyID("USR1")})
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

// brokenStore fails every call the way an unreachable backend does: with
// a raw, unclassified error.
type brokenStore struct {
	Store
}

func (b *brokenStore) CountUsers(ctx context.Context) (int64, error) {
	return 0, context.DeadlineExceeded
}

func (b *brokenStore) CreateFeedback(ctx context.Context, feedback *models.Feedback) error {
	return context.DeadlineExceeded
}

func TestFailoverClassifiesBackendFailures(t *testing.T) {
	ctx := context.Background()
	f := NewFailover(&brokenStore{}, &staticHealth{ready: true}, newTestFileStore(t), zerolog.Nop())

	_, err := f.CountUsers(ctx)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeStorageUnavailable))

	err = f.CreateFeedback(ctx, &models.Feedback{SubmitterID: "USR1"})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeStorageUnavailable))
}

func TestFailoverKeepsClassifiedErrors(t *testing.T) {
	ctx := context.Background()
	f := NewFailover(nil, nil, newTestFileStore(t), zerolog.Nop())

	user := &models.User{ExternalUserID: "USR1", Name: "Alice", Email: "a@example.com"}
	require.NoError(t, f.CreateUser(ctx, user))

	err := f.CreateUser(ctx, &models.User{ExternalUserID: "USR2", Name: "B", Email: "a@example.com"})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeDuplicateEmail))
}
