package store

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"feednbounce-backend/internal/apperr"
	"feednbounce-backend/internal/identity"
	"feednbounce-backend/internal/models"
)

// HealthChecker answers whether the primary backend is reachable right now.
type HealthChecker interface {
	Ready(ctx context.Context) bool
}

// Failover routes every call to the primary when its health check passes
// and to the fallback otherwise. Selection is fresh per call — no sticky
// backend, no circuit breaker — trading strict backend consistency for
// availability.
type Failover struct {
	primary  Store
	health   HealthChecker
	fallback Store
	log      zerolog.Logger
}

// NewFailover wires the two backends. A nil primary means the process runs
// on the fallback alone.
func NewFailover(primary Store, health HealthChecker, fallback Store, log zerolog.Logger) *Failover {
	return &Failover{primary: primary, health: health, fallback: fallback, log: log}
}

func (f *Failover) pick(ctx context.Context) Store {
	if f.primary == nil {
		return f.fallback
	}
	if f.health != nil && !f.health.Ready(ctx) {
		f.log.Warn().Msg("primary store unreachable, using file fallback")
		return f.fallback
	}
	return f.primary
}

// classify surfaces raw backend failures (driver timeouts, broken
// connections, unreadable files) as storage outages. Errors the backend
// already classified, like a duplicate email, pass through untouched.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperr.Wrap(apperr.CodeStorageUnavailable, err, "Storage backend unavailable")
}

func (f *Failover) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := f.pick(ctx).FindUserByEmail(ctx, email)
	return user, classify(err)
}

func (f *Failover) CreateUser(ctx context.Context, user *models.User) error {
	return classify(f.pick(ctx).CreateUser(ctx, user))
}

func (f *Failover) FindUsersByRefs(ctx context.Context, refs []identity.UserRef) ([]models.User, error) {
	users, err := f.pick(ctx).FindUsersByRefs(ctx, refs)
	return users, classify(err)
}

func (f *Failover) CountUsers(ctx context.Context) (int64, error) {
	count, err := f.pick(ctx).CountUsers(ctx)
	return count, classify(err)
}

func (f *Failover) CreateFeedback(ctx context.Context, feedback *models.Feedback) error {
	return classify(f.pick(ctx).CreateFeedback(ctx, feedback))
}

func (f *Failover) ListFeedbackBySubmitter(ctx context.Context, submitterID string) ([]models.Feedback, error) {
	feedbacks, err := f.pick(ctx).ListFeedbackBySubmitter(ctx, submitterID)
	return feedbacks, classify(err)
}

func (f *Failover) ListAllFeedback(ctx context.Context) ([]models.Feedback, error) {
	feedbacks, err := f.pick(ctx).ListAllFeedback(ctx)
	return feedbacks, classify(err)
}
