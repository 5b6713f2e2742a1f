package store

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"feednbounce-backend/internal/apperr"
	"feednbounce-backend/internal/identity"
	"feednbounce-backend/internal/models"
)

// Snapshot is the on-disk shape of the fallback store: the complete data
// set as one JSON document.
type Snapshot struct {
	Users     []models.User     `json:"users"`
	Feedbacks []models.Feedback `json:"feedbacks"`
}

// FileStore persists a full Snapshot, rewritten on every mutation. The
// mutex covers in-process callers only; concurrent processes sharing the
// file can still lose writes. Known limitation of the fallback path.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// ReadSnapshot loads a snapshot file without going through a store. A
// missing file reads as an empty data set.
func ReadSnapshot(path string) (*Snapshot, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Snapshot{}, nil
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeStorageUnavailable, err, "reading data file")
	}
	if len(raw) == 0 {
		return &Snapshot{}, nil
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, apperr.Wrap(apperr.CodeStorageUnavailable, err, "decoding data file")
	}
	return &snap, nil
}

func (s *FileStore) read() (*Snapshot, error) {
	return ReadSnapshot(s.path)
}

func (s *FileStore) write(snap *Snapshot) error {
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return apperr.Wrap(apperr.CodeStorageUnavailable, err, "writing data file")
	}
	return nil
}

func (s *FileStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.read()
	if err != nil {
		return nil, err
	}
	for i := range snap.Users {
		if snap.Users[i].Email == email {
			user := snap.Users[i]
			return &user, nil
		}
	}
	return nil, nil
}

func (s *FileStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.read()
	if err != nil {
		return err
	}
	// No unique index here; the pre-check stands in for it.
	for i := range snap.Users {
		if snap.Users[i].Email == user.Email {
			return apperr.New(apperr.CodeDuplicateEmail, "User already exists")
		}
	}
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	snap.Users = append(snap.Users, *user)
	return s.write(snap)
}

func (s *FileStore) FindUsersByRefs(_ context.Context, refs []identity.UserRef) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.read()
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		wanted[ref.Value] = struct{}{}
	}

	var users []models.User
	for i := range snap.Users {
		u := snap.Users[i]
		if _, ok := wanted[u.ID.Hex()]; ok {
			users = append(users, u)
			continue
		}
		if _, ok := wanted[u.ExternalUserID]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (s *FileStore) CountUsers(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.read()
	if err != nil {
		return 0, err
	}
	return int64(len(snap.Users)), nil
}

func (s *FileStore) CreateFeedback(_ context.Context, feedback *models.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.read()
	if err != nil {
		return err
	}
	if feedback.ID.IsZero() {
		feedback.ID = bson.NewObjectID()
	}
	snap.Feedbacks = append(snap.Feedbacks, *feedback)
	return s.write(snap)
}

func (s *FileStore) ListFeedbackBySubmitter(_ context.Context, submitterID string) ([]models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.read()
	if err != nil {
		return nil, err
	}
	var feedbacks []models.Feedback
	for i := range snap.Feedbacks {
		if snap.Feedbacks[i].SubmitterID == submitterID {
			feedbacks = append(feedbacks, snap.Feedbacks[i])
		}
	}
	sortNewestFirst(feedbacks)
	return feedbacks, nil
}

func (s *FileStore) ListAllFeedback(_ context.Context) ([]models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.read()
	if err != nil {
		return nil, err
	}
	feedbacks := make([]models.Feedback, len(snap.Feedbacks))
	copy(feedbacks, snap.Feedbacks)
	sortNewestFirst(feedbacks)
	return feedbacks, nil
}

func sortNewestFirst(feedbacks []models.Feedback) {
	sort.SliceStable(feedbacks, func(i, j int) bool {
		return feedbacks[i].CreatedAt.After(feedbacks[j].CreatedAt)
	})
}
