package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is everything a seeding run needs from its environment.
type Config struct {
	App   AppConfig
	Mongo MongoConfig
	Seed  SeedConfig
}

type AppConfig struct {
	Env      string // development -> console logs, anything else -> JSON
	LogLevel string
}

type MongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration // deadline for the whole run, connection included
}

type SeedConfig struct {
	PrincipalUser     string
	PrincipalPassword string
	// SkipExistingPrincipal turns a rerun's duplicate login into a warning.
	SkipExistingPrincipal bool
}

// Load reads envFile when present, then the process environment. Env vars
// win over the file. A missing envFile is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !isNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	timeout, err := time.ParseDuration(v.GetString("SEED_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("SEED_TIMEOUT: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		Mongo: MongoConfig{
			URI:      v.GetString("MONGO_URI"),
			Database: v.GetString("SEED_DATABASE"),
			Timeout:  timeout,
		},
		Seed: SeedConfig{
			PrincipalUser:         v.GetString("SEED_DB_USER"),
			PrincipalPassword:     v.GetString("SEED_DB_PASSWORD"),
			SkipExistingPrincipal: v.GetBool("SEED_SKIP_EXISTING_PRINCIPAL"),
		},
	}

	if cfg.Mongo.URI == "" {
		return nil, fmt.Errorf("MONGO_URI is empty")
	}
	if cfg.Mongo.Database == "" {
		return nil, fmt.Errorf("SEED_DATABASE is empty")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("SEED_DATABASE", "retailStore")
	v.SetDefault("SEED_TIMEOUT", "30s")
	v.SetDefault("SEED_DB_USER", "retailStoreUser")
	v.SetDefault("SEED_DB_PASSWORD", "password")
	v.SetDefault("SEED_SKIP_EXISTING_PRINCIPAL", false)
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
