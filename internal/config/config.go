package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config carries all runtime settings. MongoURI may be empty: the server
// then runs on the flat-file fallback store alone.
type Config struct {
	MongoURI     string `envconfig:"MONGODB_URI"`
	DBName       string `envconfig:"DB_NAME" default:"feednbounce"`
	JWTSecret    string `envconfig:"JWT_SECRET" required:"true"`
	Port         string `envconfig:"PORT" default:"5001"`
	DataFile     string `envconfig:"DATA_FILE" default:"data.json"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	ResendAPIKey string `envconfig:"RESEND_API_KEY"`
	FromEmail    string `envconfig:"FROM_EMAIL"`
}

func Load() (*Config, error) {
	// Load .env (ignore error in production — env vars set directly)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}
