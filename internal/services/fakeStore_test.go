package services

import (
	"context"
	"fmt"

	"github.com/arzan03/RetailStoreSeed/internal/models"
)

// fakeStore keeps collections and logins in memory and answers the way a
// MongoDB server would for the calls the seeder makes.
type fakeStore struct {
	name        string
	collections map[string][]interface{}
	principals  map[string]Principal

	// failOn makes the named operation return the error once reached.
	failOn map[string]error
	calls  []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		name:        DefaultDatabase,
		collections: map[string][]interface{}{},
		principals:  map[string]Principal{},
		failOn:      map[string]error{},
	}
}

func (f *fakeStore) record(op string) error {
	f.calls = append(f.calls, op)
	return f.failOn[op]
}

func (f *fakeStore) Name() string { return f.name }

func (f *fakeStore) CreateCollection(_ context.Context, name string) error {
	if err := f.record("create:" + name); err != nil {
		return err
	}
	if _, ok := f.collections[name]; ok {
		return fmt.Errorf("%s.%s: %w", f.name, name, ErrCollectionExists)
	}
	f.collections[name] = nil
	return nil
}

func (f *fakeStore) CountDocuments(_ context.Context, collection string) (int64, error) {
	if err := f.record("count:" + collection); err != nil {
		return 0, err
	}
	return int64(len(f.collections[collection])), nil
}

func (f *fakeStore) InsertMany(_ context.Context, collection string, docs []interface{}) error {
	if err := f.record("insert:" + collection); err != nil {
		return err
	}
	f.collections[collection] = append(f.collections[collection], docs...)
	return nil
}

func (f *fakeStore) CreateUser(_ context.Context, p Principal) error {
	if err := f.record("createUser"); err != nil {
		return err
	}
	if _, ok := f.principals[p.User]; ok {
		return fmt.Errorf("%s@%s: %w", p.User, f.name, ErrPrincipalExists)
	}
	f.principals[p.User] = p
	return nil
}

func (f *fakeStore) FindUsers(_ context.Context, names []string) ([]models.User, error) {
	if err := f.record("findUsers"); err != nil {
		return nil, err
	}
	want := map[string]bool{}
	for _, n := range names {
		want[n] = true
	}
	var out []models.User
	for _, d := range f.collections[models.UsersCollection] {
		if u, ok := d.(models.User); ok && want[u.UserName] {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeStore) FindProducts(_ context.Context) ([]models.Product, error) {
	if err := f.record("findProducts"); err != nil {
		return nil, err
	}
	var out []models.Product
	for _, d := range f.collections[models.ProductsCollection] {
		if p, ok := d.(models.Product); ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) UserRoles(_ context.Context, user string) ([]Role, bool, error) {
	if err := f.record("usersInfo"); err != nil {
		return nil, false, err
	}
	p, ok := f.principals[user]
	if !ok {
		return nil, false, nil
	}
	return p.Roles, true, nil
}

func (f *fakeStore) users() []models.User {
	var out []models.User
	for _, d := range f.collections[models.UsersCollection] {
		out = append(out, d.(models.User))
	}
	return out
}

func (f *fakeStore) products() []models.Product {
	var out []models.Product
	for _, d := range f.collections[models.ProductsCollection] {
		out = append(out, d.(models.Product))
	}
	return out
}
