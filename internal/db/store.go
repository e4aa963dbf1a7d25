package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arzan03/RetailStoreSeed/internal/models"
	"github.com/arzan03/RetailStoreSeed/internal/services"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Server error codes the store translates.
const (
	codeNamespaceExists = 48
	codeUserExists      = 51003
)

// Store runs seeder and inspector operations against one database.
type Store struct {
	db *mongo.Database
}

func NewStore(database *mongo.Database) *Store {
	return &Store{db: database}
}

func (s *Store) Name() string {
	return s.db.Name()
}

func (s *Store) CreateCollection(ctx context.Context, name string) error {
	err := s.db.CreateCollection(ctx, name)
	if isNamespaceExists(err) {
		return fmt.Errorf("%s.%s: %w", s.db.Name(), name, services.ErrCollectionExists)
	}
	return err
}

// CountDocuments counts every document in collection.
func (s *Store) CountDocuments(ctx context.Context, collection string) (int64, error) {
	return s.db.Collection(collection).CountDocuments(ctx, bson.D{})
}

func (s *Store) InsertMany(ctx context.Context, collection string, docs []interface{}) error {
	_, err := s.db.Collection(collection).InsertMany(ctx, docs)
	return err
}

// CreateUser issues createUser on the store's database, which also becomes
// the principal's authentication database.
func (s *Store) CreateUser(ctx context.Context, principal services.Principal) error {
	err := s.db.RunCommand(ctx, createUserCommand(principal)).Err()
	if isUserExists(err) {
		return fmt.Errorf("%s@%s: %w", principal.User, s.db.Name(), services.ErrPrincipalExists)
	}
	return err
}

func createUserCommand(principal services.Principal) bson.D {
	roles := bson.A{}
	for _, r := range principal.Roles {
		roles = append(roles, bson.D{{Key: "role", Value: r.Role}, {Key: "db", Value: r.DB}})
	}
	return bson.D{
		{Key: "createUser", Value: principal.User},
		{Key: "pwd", Value: principal.Password},
		{Key: "roles", Value: roles},
	}
}

func (s *Store) FindUsers(ctx context.Context, userNames []string) ([]models.User, error) {
	cursor, err := s.db.Collection(models.UsersCollection).Find(ctx, bson.M{"userName": bson.M{"$in": userNames}})
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) FindProducts(ctx context.Context) ([]models.Product, error) {
	cursor, err := s.db.Collection(models.ProductsCollection).Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

type usersInfoResult struct {
	Users []struct {
		User  string          `bson:"user"`
		DB    string          `bson:"db"`
		Roles []services.Role `bson:"roles"`
	} `bson:"users"`
}

func (s *Store) UserRoles(ctx context.Context, user string) ([]services.Role, bool, error) {
	var res usersInfoResult
	err := s.db.RunCommand(ctx, bson.D{{Key: "usersInfo", Value: user}}).Decode(&res)
	if err != nil {
		return nil, false, err
	}
	for _, u := range res.Users {
		if u.User == user {
			return u.Roles, true, nil
		}
	}
	return nil, false, nil
}

func isNamespaceExists(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == codeNamespaceExists || cmdErr.Name == "NamespaceExists"
	}
	return false
}

// Some server versions report a duplicate login with a generic code and
// only the message to go on.
func isUserExists(err error) bool {
	var cmdErr mongo.CommandError
	if !errors.As(err, &cmdErr) {
		return false
	}
	if cmdErr.Code == codeUserExists {
		return true
	}
	return strings.Contains(cmdErr.Message, "already exists")
}
