// Package feedback holds the core pipeline: ingestion of submissions and
// read-time aggregation over the corpus.
package feedback

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"feednbounce-backend/internal/apperr"
	"feednbounce-backend/internal/identity"
	"feednbounce-backend/internal/models"
	"feednbounce-backend/internal/slack"
	"feednbounce-backend/internal/store"
)

// Service normalizes incoming submissions into canonical Feedback records.
type Service struct {
	store    store.Store
	notifier slack.Notifier
	log      zerolog.Logger
}

func NewService(st store.Store, notifier slack.Notifier, log zerolog.Logger) *Service {
	return &Service{store: st, notifier: notifier, log: log}
}

// SubmitInput is the caller-supplied content of a submission.
type SubmitInput struct {
	Category string
	ItemName string
	Message  string
}

// Submit validates and persists a submission. A nil identity means an
// anonymous submitter: a fresh guest id is synthesized for the record.
// CreatedAt is always server-assigned.
func (s *Service) Submit(ctx context.Context, ident *identity.Identity, in SubmitInput) (*models.Feedback, error) {
	category := strings.TrimSpace(in.Category)
	itemName := strings.TrimSpace(in.ItemName)
	message := strings.TrimSpace(in.Message)

	if category == "" || itemName == "" || message == "" {
		return nil, apperr.New(apperr.CodeValidation, "All fields required")
	}
	if category != models.CategoryProduct && category != models.CategoryService {
		return nil, apperr.New(apperr.CodeValidation, "Category must be product or service")
	}

	var submitterID, submitterKind string
	if ident == nil {
		guest := identity.NewGuest()
		submitterID = guest.ExternalUserID
		submitterKind = models.SubmitterGuest
	} else {
		submitterID = ident.ExternalUserID
		submitterKind = models.SubmitterRegistered
	}

	feedback := &models.Feedback{
		SubmitterID:   submitterID,
		SubmitterKind: submitterKind,
		Category:      category,
		ItemName:      itemName,
		Message:       message,
		CreatedAt:     time.Now(),
	}

	if err := s.store.CreateFeedback(ctx, feedback); err != nil {
		return nil, err
	}

	// Fire the notification in a background goroutine (non-blocking)
	if s.notifier != nil {
		go func() {
			msg := formatNotification(feedback)
			if err := s.notifier.Publish(context.Background(), msg); err != nil {
				s.log.Error().Err(err).Msg("publishing feedback notification")
			}
		}()
	}

	return feedback, nil
}

// History returns the identified submitter's feedback, newest first.
func (s *Service) History(ctx context.Context, ident identity.Identity) ([]models.Feedback, error) {
	return s.store.ListFeedbackBySubmitter(ctx, ident.ExternalUserID)
}

func formatNotification(f *models.Feedback) string {
	return fmt.Sprintf("New %s feedback for %q from %s %s: %s",
		f.Category, f.ItemName, f.SubmitterKind, f.SubmitterID, f.Message)
}
