package services

import (
	"context"
	"errors"
	"testing"

	"github.com/arzan03/RetailStoreSeed/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestInspector_EmptyDatabase(t *testing.T) {
	report, err := NewInspector(newFakeStore(), "").Status(context.Background())
	require.NoError(t, err)

	assert.Equal(t, DefaultDatabase, report.Database)
	assert.Equal(t, DefaultPrincipalUser, report.PrincipalUser)
	assert.Zero(t, report.Users)
	assert.Zero(t, report.Products)
	assert.False(t, report.PrincipalExists)
	require.Len(t, report.SeedUsers, 4)
	for _, u := range report.SeedUsers {
		assert.False(t, u.Present, u.UserName)
	}
	assert.False(t, report.Seeded())
}

func TestInspector_AfterSeed(t *testing.T) {
	store := newFakeStore()
	_, err := NewSeeder(store, SeedOptions{}, zerolog.Nop()).Seed(context.Background())
	require.NoError(t, err)

	report, err := NewInspector(store, "").Status(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(4), report.Users)
	assert.Equal(t, int64(10), report.Products)
	assert.True(t, report.PrincipalExists)
	assert.Equal(t, []Role{{Role: ReadWriteRole, DB: DefaultDatabase}}, report.PrincipalRoles)
	for _, u := range report.SeedUsers {
		assert.True(t, u.Present, u.UserName)
		assert.True(t, u.PasswordValid, u.UserName)
	}
	require.Len(t, report.ProductList, 10)
	assert.Equal(t, "Product 10", report.ProductList[9].Name)
	assert.True(t, report.Seeded())
}

func TestInspector_DetectsReplacedPassword(t *testing.T) {
	store := newFakeStore()
	_, err := NewSeeder(store, SeedOptions{}, zerolog.Nop()).Seed(context.Background())
	require.NoError(t, err)

	hash, err := HashPassword("changed")
	require.NoError(t, err)
	docs := store.collections[models.UsersCollection]
	u := docs[0].(models.User)
	u.Password = hash
	docs[0] = u

	report, err := NewInspector(store, "").Status(context.Background())
	require.NoError(t, err)
	assert.False(t, report.SeedUsers[0].PasswordValid)
	assert.True(t, report.SeedUsers[1].PasswordValid)
	assert.False(t, report.Seeded())
}

func TestInspector_PropagatesErrors(t *testing.T) {
	store := newFakeStore()
	boom := errors.New("not authorized")
	store.failOn["usersInfo"] = boom

	_, err := NewInspector(store, "").Status(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestSortProductsByName(t *testing.T) {
	products := []models.Product{
		{ID: primitive.NewObjectID(), Name: "Product 10"},
		{ID: primitive.NewObjectID(), Name: "Product 2"},
		{ID: primitive.NewObjectID(), Name: "Apple"},
		{ID: primitive.NewObjectID(), Name: "Product 1"},
	}
	SortProductsByName(products)

	var names []string
	for _, p := range products {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Apple", "Product 1", "Product 2", "Product 10"}, names)
}
