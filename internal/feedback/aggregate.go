package feedback

import (
	"context"

	"github.com/rs/zerolog"

	"feednbounce-backend/internal/identity"
	"feednbounce-backend/internal/models"
	"feednbounce-backend/internal/sentiment"
	"feednbounce-backend/internal/store"
)

// Aggregator computes admin-facing views over the feedback corpus. It only
// reads; User and Feedback are owned by the store.
type Aggregator struct {
	store store.Store
	log   zerolog.Logger
}

func NewAggregator(st store.Store, log zerolog.Logger) *Aggregator {
	return &Aggregator{store: st, log: log}
}

type Stats struct {
	ProductCount int   `json:"productCount"`
	ServiceCount int   `json:"serviceCount"`
	TotalUsers   int64 `json:"totalUsers"`
}

type SentimentBreakdown struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// Stats counts feedback per category and the registered user total.
func (a *Aggregator) Stats(ctx context.Context) (*Stats, error) {
	feedbacks, err := a.store.ListAllFeedback(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{}
	for i := range feedbacks {
		switch feedbacks[i].Category {
		case models.CategoryProduct:
			stats.ProductCount++
		case models.CategoryService:
			stats.ServiceCount++
		}
	}

	stats.TotalUsers, err = a.store.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// SentimentBreakdown classifies every message independently and tallies.
// Order-independent and idempotent.
func (a *Aggregator) SentimentBreakdown(ctx context.Context) (*SentimentBreakdown, error) {
	feedbacks, err := a.store.ListAllFeedback(ctx)
	if err != nil {
		return nil, err
	}

	breakdown := &SentimentBreakdown{}
	for i := range feedbacks {
		switch sentiment.Classify(feedbacks[i].Message) {
		case sentiment.Positive:
			breakdown.Positive++
		case sentiment.Negative:
			breakdown.Negative++
		default:
			breakdown.Neutral++
		}
	}
	return breakdown, nil
}

// ListEnriched joins each feedback record with its submitter's display
// info, newest first. Guest records get synthesized info; registered
// records resolve through one batched user lookup that handles both
// identifier shapes. Records whose submitter cannot be resolved are
// excluded from the result (and logged, so the condition is observable).
func (a *Aggregator) ListEnriched(ctx context.Context) ([]models.EnrichedFeedback, error) {
	feedbacks, err := a.store.ListAllFeedback(ctx)
	if err != nil {
		return nil, err
	}

	users, err := a.resolveSubmitters(ctx, feedbacks)
	if err != nil {
		return nil, err
	}

	enriched := make([]models.EnrichedFeedback, 0, len(feedbacks))
	for i := range feedbacks {
		f := feedbacks[i]

		if isGuest(f) {
			enriched = append(enriched, models.EnrichedFeedback{
				Feedback: f,
				SubmitterInfo: models.SubmitterInfo{
					Name:      "Guest User",
					DisplayID: trimGuestPrefix(f.SubmitterID),
					Kind:      models.SubmitterGuest,
					Email:     "N/A",
				},
			})
			continue
		}

		user, ok := users[f.SubmitterID]
		if !ok {
			a.log.Warn().
				Str("submitterId", f.SubmitterID).
				Str("feedbackId", f.ID.Hex()).
				Msg("dropping feedback with unresolved submitter")
			continue
		}
		enriched = append(enriched, models.EnrichedFeedback{
			Feedback: f,
			SubmitterInfo: models.SubmitterInfo{
				Name:      user.Name,
				DisplayID: f.SubmitterID,
				Kind:      models.SubmitterRegistered,
				Email:     user.Email,
			},
		})
	}
	return enriched, nil
}

// resolveSubmitters batches every registered submitter id into one lookup
// and returns a table keyed by both internal hex id and external key, so a
// record resolves no matter which form it stored.
func (a *Aggregator) resolveSubmitters(ctx context.Context, feedbacks []models.Feedback) (map[string]models.User, error) {
	seen := make(map[string]struct{})
	var refs []identity.UserRef
	for i := range feedbacks {
		if isGuest(feedbacks[i]) {
			continue
		}
		id := feedbacks[i].SubmitterID
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		refs = append(refs, identity.ClassifyID(id))
	}

	table := make(map[string]models.User)
	if len(refs) == 0 {
		return table, nil
	}

	users, err := a.store.FindUsersByRefs(ctx, refs)
	if err != nil {
		return nil, err
	}
	for i := range users {
		table[users[i].ID.Hex()] = users[i]
		if users[i].ExternalUserID != "" {
			table[users[i].ExternalUserID] = users[i]
		}
	}
	return table, nil
}

func isGuest(f models.Feedback) bool {
	return f.SubmitterKind == models.SubmitterGuest || identity.IsGuestID(f.SubmitterID)
}

func trimGuestPrefix(id string) string {
	if identity.IsGuestID(id) {
		return id[len(identity.GuestPrefix):]
	}
	return id
}
