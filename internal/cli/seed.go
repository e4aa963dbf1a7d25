package cli

import (
	"context"

	"github.com/arzan03/RetailStoreSeed/internal/services"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create collections, insert sample data and provision the login",
	Long: `Seed creates the users and products collections, inserts the sample
documents into each collection that is empty, then creates the application
login. A second run leaves the documents alone but fails on the login unless
SEED_SKIP_EXISTING_PRINCIPAL=true.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd.Context())
	},
}

func runSeed(parent context.Context) error {
	ctx, store, closeFn, err := openStore(parent)
	if err != nil {
		return err
	}
	defer closeFn()

	seeder := services.NewSeeder(store, services.SeedOptions{
		PrincipalUser:         cfg.Seed.PrincipalUser,
		PrincipalPassword:     cfg.Seed.PrincipalPassword,
		SkipExistingPrincipal: cfg.Seed.SkipExistingPrincipal,
	}, log)

	summary, err := seeder.Seed(ctx)
	if err != nil {
		return err
	}

	log.Info().
		Str("database", summary.Database).
		Int("users_inserted", summary.UsersInserted).
		Int("products_inserted", summary.ProductsInserted).
		Bool("principal_created", summary.PrincipalCreated).
		Msg("seeding complete")
	return nil
}
