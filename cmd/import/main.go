// Command import moves a flat-file snapshot into MongoDB: users are
// upserted by email, feedback is inserted unless an identical record
// (submitter, message, timestamp) already exists.
package main

import (
	"context"
	"time"

	"feednbounce-backend/internal/config"
	"feednbounce-backend/internal/database"
	"feednbounce-backend/internal/logger"
	"feednbounce-backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("feednbounce-import", "info")
		bootLog.Fatal().Err(err).Msg("loading config")
	}

	log := logger.New("feednbounce-import", cfg.LogLevel)

	if cfg.MongoURI == "" {
		log.Fatal().Msg("MONGODB_URI is required for import")
	}

	snap, err := store.ReadSnapshot(cfg.DataFile)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DataFile).Msg("reading snapshot")
	}
	if len(snap.Users) == 0 && len(snap.Feedbacks) == 0 {
		log.Info().Str("path", cfg.DataFile).Msg("nothing to import")
		return
	}

	db, err := database.Connect(cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to MongoDB")
	}
	defer db.Disconnect(context.Background())

	mongoStore := store.NewMongoStore(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := mongoStore.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("creating indexes")
	}

	for i := range snap.Users {
		user := snap.Users[i]
		if err := mongoStore.UpsertUserByEmail(ctx, &user); err != nil {
			log.Fatal().Err(err).Str("email", user.Email).Msg("upserting user")
		}
	}
	log.Info().Int("count", len(snap.Users)).Msg("users imported")

	imported := 0
	for i := range snap.Feedbacks {
		f := snap.Feedbacks[i]
		exists, err := mongoStore.HasFeedback(ctx, f.SubmitterID, f.Message, f.CreatedAt)
		if err != nil {
			log.Fatal().Err(err).Msg("checking feedback")
		}
		if exists {
			continue
		}
		if err := mongoStore.CreateFeedback(ctx, &f); err != nil {
			log.Fatal().Err(err).Msg("inserting feedback")
		}
		imported++
	}
	log.Info().Int("count", imported).Int("skipped", len(snap.Feedbacks)-imported).Msg("feedback imported")

	log.Info().Msg("import complete")
}
