package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"feednbounce-backend/internal/apperr"
	"feednbounce-backend/internal/database"
	"feednbounce-backend/internal/identity"
	"feednbounce-backend/internal/models"
)

// MongoStore is the primary backend over the users and feedbacks
// collections.
type MongoStore struct {
	users     *mongo.Collection
	feedbacks *mongo.Collection
}

func NewMongoStore(db *database.Mongo) *MongoStore {
	return &MongoStore{
		users:     db.Collection("users"),
		feedbacks: db.Collection("feedbacks"),
	}
}

// EnsureIndexes creates the indexes both collections rely on.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "externalUserId", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	})
	if err != nil {
		return err
	}

	_, err = s.feedbacks.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "submitterId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	})
	return err
}

func (s *MongoStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *MongoStore) CreateUser(ctx context.Context, user *models.User) error {
	result, err := s.users.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Wrap(apperr.CodeDuplicateEmail, err, "User already exists")
		}
		return err
	}
	user.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

// FindUsersByRefs issues one combined query: internal refs match _id,
// external refs match externalUserId. Splitting by shape keeps hex-looking
// business keys from ever being forced into ObjectIDs.
func (s *MongoStore) FindUsersByRefs(ctx context.Context, refs []identity.UserRef) ([]models.User, error) {
	var objectIDs []bson.ObjectID
	var externalKeys []string
	for _, ref := range refs {
		switch ref.Kind {
		case identity.RefInternal:
			oid, err := bson.ObjectIDFromHex(ref.Value)
			if err != nil {
				continue
			}
			objectIDs = append(objectIDs, oid)
		case identity.RefExternal:
			externalKeys = append(externalKeys, ref.Value)
		}
	}

	var or []bson.M
	if len(objectIDs) > 0 {
		or = append(or, bson.M{"_id": bson.M{"$in": objectIDs}})
	}
	if len(externalKeys) > 0 {
		or = append(or, bson.M{"externalUserId": bson.M{"$in": externalKeys}})
	}
	if len(or) == 0 {
		return nil, nil
	}

	cursor, err := s.users.Find(ctx, bson.M{"$or": or})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *MongoStore) CountUsers(ctx context.Context) (int64, error) {
	return s.users.CountDocuments(ctx, bson.M{})
}

func (s *MongoStore) CreateFeedback(ctx context.Context, feedback *models.Feedback) error {
	result, err := s.feedbacks.InsertOne(ctx, feedback)
	if err != nil {
		return err
	}
	feedback.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

func (s *MongoStore) ListFeedbackBySubmitter(ctx context.Context, submitterID string) ([]models.Feedback, error) {
	return s.findFeedback(ctx, bson.M{"submitterId": submitterID})
}

func (s *MongoStore) ListAllFeedback(ctx context.Context) ([]models.Feedback, error) {
	return s.findFeedback(ctx, bson.M{})
}

func (s *MongoStore) findFeedback(ctx context.Context, filter bson.M) ([]models.Feedback, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.feedbacks.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var feedbacks []models.Feedback
	if err := cursor.All(ctx, &feedbacks); err != nil {
		return nil, err
	}
	return feedbacks, nil
}

// HasFeedback reports whether a record with the same submitter, message
// and timestamp already exists. Used by the import tool to skip duplicates.
func (s *MongoStore) HasFeedback(ctx context.Context, submitterID, message string, createdAt time.Time) (bool, error) {
	err := s.feedbacks.FindOne(ctx, bson.M{
		"submitterId": submitterID,
		"message":     message,
		"createdAt":   createdAt,
	}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UpsertUserByEmail inserts or overwrites a user keyed by email. Used by
// the import tool; the serving path only ever calls CreateUser.
func (s *MongoStore) UpsertUserByEmail(ctx context.Context, user *models.User) error {
	_, err := s.users.UpdateOne(ctx, bson.M{"email": user.Email}, bson.M{
		"$set": bson.M{
			"externalUserId": user.ExternalUserID,
			"name":           user.Name,
			"email":          user.Email,
			"passwordHash":   user.PasswordHash,
			"role":           user.Role,
		},
	}, options.UpdateOne().SetUpsert(true))
	return err
}
