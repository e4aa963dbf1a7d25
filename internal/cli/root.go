package cli

import (
	"context"
	"fmt"

	"github.com/arzan03/RetailStoreSeed/internal/config"
	"github.com/arzan03/RetailStoreSeed/internal/db"
	"github.com/arzan03/RetailStoreSeed/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfg *config.Config
	log zerolog.Logger

	// CLI flags
	envFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "retailseed",
	Short: "Seed the retail store database and provision its login",
	Long: `retailseed prepares a MongoDB deployment for the retail store service.

It creates the users and products collections, fills each one with the
sample data when it is empty, and creates the application login with
readWrite on the target database.

Configuration comes from the environment, optionally preloaded from an
env file:
  MONGO_URI                      mongodb://localhost:27017
  SEED_DATABASE                  retailStore
  SEED_DB_USER / SEED_DB_PASSWORD
  SEED_SKIP_EXISTING_PRINCIPAL   false
  SEED_TIMEOUT                   30s

Examples:
  retailseed            Seed (same as "retailseed seed")
  retailseed status     Report what is already seeded`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load(envFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if logLevel != "" {
			cfg.App.LogLevel = logLevel
		}
		log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "env file loaded before reading the environment")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (trace, debug, info, warn, error)")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(statusCmd)
}

// Execute runs the root command. Errors are logged here so main only has
// to pick the exit code.
func Execute() error {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if cfg == nil {
			fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		} else {
			log.Error().Err(err).Msg("retailseed failed")
		}
		return err
	}
	return nil
}

// openStore connects and returns a store on the configured database. The
// returned context carries the run deadline.
func openStore(parent context.Context) (context.Context, *db.Store, func(), error) {
	ctx, cancel := context.WithTimeout(parent, cfg.Mongo.Timeout)

	client, err := db.ConnectMongoDB(ctx, cfg.Mongo.URI)
	if err != nil {
		cancel()
		return nil, nil, nil, err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	closeFn := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect")
		}
		cancel()
	}
	return ctx, db.NewStore(client.Database(cfg.Mongo.Database)), closeFn, nil
}
