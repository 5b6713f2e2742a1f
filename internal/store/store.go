// Package store is the persistence boundary: one interface over the Mongo
// primary and the flat-file fallback, plus the failover wrapper that picks
// between them per call.
package store

import (
	"context"

	"feednbounce-backend/internal/identity"
	"feednbounce-backend/internal/models"
)

// Store exposes every persistence operation the application needs. Both
// backends implement it; callers must not assume the two variants see each
// other's writes.
type Store interface {
	// FindUserByEmail returns (nil, nil) when no user matches.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	// CreateUser inserts a user, assigning its internal id. Fails with
	// apperr.CodeDuplicateEmail when the email is already taken.
	CreateUser(ctx context.Context, user *models.User) error
	// FindUsersByRefs resolves a mixed batch of internal-id and
	// external-key references in a single lookup.
	FindUsersByRefs(ctx context.Context, refs []identity.UserRef) ([]models.User, error)
	CountUsers(ctx context.Context) (int64, error)

	// CreateFeedback inserts a feedback record, assigning its internal id.
	CreateFeedback(ctx context.Context, feedback *models.Feedback) error
	// ListFeedbackBySubmitter returns the submitter's records, newest first.
	ListFeedbackBySubmitter(ctx context.Context, submitterID string) ([]models.Feedback, error)
	// ListAllFeedback returns the whole corpus, newest first.
	ListAllFeedback(ctx context.Context) ([]models.Feedback, error)
}
