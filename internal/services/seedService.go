package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/arzan03/RetailStoreSeed/internal/models"
	"github.com/rs/zerolog"
)

var (
	// ErrCollectionExists is returned by a Store when the collection is already there.
	ErrCollectionExists = errors.New("collection already exists")
	// ErrPrincipalExists is returned by a Store when the login is already provisioned.
	ErrPrincipalExists = errors.New("principal already exists")
)

// Store is the slice of the target database the seeder writes through.
type Store interface {
	CreateCollection(ctx context.Context, name string) error
	CountDocuments(ctx context.Context, collection string) (int64, error)
	InsertMany(ctx context.Context, collection string, docs []interface{}) error
	CreateUser(ctx context.Context, principal Principal) error
	Name() string
}

// Seeding steps, reported in StepError.
const (
	StepCreateUsers       = "create users collection"
	StepSeedUsers         = "seed users"
	StepCreateProducts    = "create products collection"
	StepSeedProducts      = "seed products"
	StepProvisionDatabase = "provision principal"
)

// StepError names the step a seeding run failed at.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// SeedOptions tunes a Seeder. The zero value reproduces the stock behavior:
// an already provisioned principal fails the run.
type SeedOptions struct {
	PrincipalUser         string
	PrincipalPassword     string
	SkipExistingPrincipal bool
}

// SeedSummary describes what one run changed.
type SeedSummary struct {
	Database         string
	UsersInserted    int
	ProductsInserted int
	UsersSkipped     bool
	ProductsSkipped  bool
	PrincipalCreated bool
}

type Seeder struct {
	store Store
	opts  SeedOptions
	log   zerolog.Logger
}

func NewSeeder(store Store, opts SeedOptions, log zerolog.Logger) *Seeder {
	if opts.PrincipalUser == "" {
		opts.PrincipalUser = DefaultPrincipalUser
	}
	if opts.PrincipalPassword == "" {
		opts.PrincipalPassword = DefaultPrincipalPassword
	}
	return &Seeder{store: store, opts: opts, log: log}
}

// Seed runs the steps in order and stops at the first failure. Each
// collection is guarded on its own, so a run that died half way can be
// repeated.
func (s *Seeder) Seed(ctx context.Context) (SeedSummary, error) {
	summary := SeedSummary{Database: s.store.Name()}

	if err := s.ensureCollection(ctx, models.UsersCollection); err != nil {
		return summary, &StepError{Step: StepCreateUsers, Err: err}
	}
	users := SeedUserDocuments()
	n, err := s.seedIfEmpty(ctx, models.UsersCollection, toDocs(users))
	if err != nil {
		return summary, &StepError{Step: StepSeedUsers, Err: err}
	}
	summary.UsersInserted, summary.UsersSkipped = n, n == 0

	if err := s.ensureCollection(ctx, models.ProductsCollection); err != nil {
		return summary, &StepError{Step: StepCreateProducts, Err: err}
	}
	products := SeedProductDocuments()
	n, err = s.seedIfEmpty(ctx, models.ProductsCollection, toDocs(products))
	if err != nil {
		return summary, &StepError{Step: StepSeedProducts, Err: err}
	}
	summary.ProductsInserted, summary.ProductsSkipped = n, n == 0

	created, err := s.provision(ctx)
	if err != nil {
		return summary, &StepError{Step: StepProvisionDatabase, Err: err}
	}
	summary.PrincipalCreated = created

	return summary, nil
}

func (s *Seeder) ensureCollection(ctx context.Context, name string) error {
	err := s.store.CreateCollection(ctx, name)
	if errors.Is(err, ErrCollectionExists) {
		s.log.Debug().Str("collection", name).Msg("collection already exists")
		return nil
	}
	if err != nil {
		return err
	}
	s.log.Info().Str("collection", name).Msg("created collection")
	return nil
}

// seedIfEmpty inserts docs only when the collection holds nothing. It
// returns how many documents were inserted.
func (s *Seeder) seedIfEmpty(ctx context.Context, collection string, docs []interface{}) (int, error) {
	count, err := s.store.CountDocuments(ctx, collection)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	if count > 0 {
		s.log.Info().
			Str("collection", collection).
			Int64("existing", count).
			Msg("collection not empty, skipping seed")
		return 0, nil
	}
	if err := s.store.InsertMany(ctx, collection, docs); err != nil {
		return 0, fmt.Errorf("insert %s: %w", collection, err)
	}
	s.log.Info().
		Str("collection", collection).
		Int("inserted", len(docs)).
		Msg("seeded collection")
	return len(docs), nil
}

func (s *Seeder) provision(ctx context.Context) (bool, error) {
	principal := AppPrincipal(s.opts.PrincipalUser, s.opts.PrincipalPassword, s.store.Name())
	err := s.store.CreateUser(ctx, principal)
	if errors.Is(err, ErrPrincipalExists) && s.opts.SkipExistingPrincipal {
		s.log.Warn().Str("principal", principal.User).Msg("principal already exists, skipping")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	s.log.Info().
		Str("principal", principal.User).
		Str("role", ReadWriteRole).
		Str("db", s.store.Name()).
		Msg("created principal")
	return true, nil
}

func toDocs[T any](items []T) []interface{} {
	docs := make([]interface{}, len(items))
	for i := range items {
		docs[i] = items[i]
	}
	return docs
}
