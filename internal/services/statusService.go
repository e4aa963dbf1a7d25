package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/arzan03/RetailStoreSeed/internal/models"
)

// StatusStore is the read side used to report on a seeded database.
type StatusStore interface {
	CountDocuments(ctx context.Context, collection string) (int64, error)
	FindUsers(ctx context.Context, userNames []string) ([]models.User, error)
	FindProducts(ctx context.Context) ([]models.Product, error)
	// UserRoles returns the roles granted to user, or found=false when the
	// login does not exist on the store's database.
	UserRoles(ctx context.Context, user string) (roles []Role, found bool, err error)
	Name() string
}

type UserStatus struct {
	UserName      string
	UserType      models.UserType
	Present       bool
	PasswordValid bool
}

type StatusReport struct {
	Database        string
	Users           int64
	Products        int64
	SeedUsers       []UserStatus
	ProductList     []models.Product
	PrincipalUser   string
	PrincipalExists bool
	PrincipalRoles  []Role
}

// Seeded reports whether the database looks like a completed seeding run.
func (r StatusReport) Seeded() bool {
	if r.Users == 0 || r.Products == 0 || !r.PrincipalExists {
		return false
	}
	for _, u := range r.SeedUsers {
		if !u.Present || !u.PasswordValid {
			return false
		}
	}
	return true
}

type Inspector struct {
	store     StatusStore
	principal string
}

func NewInspector(store StatusStore, principal string) *Inspector {
	if principal == "" {
		principal = DefaultPrincipalUser
	}
	return &Inspector{store: store, principal: principal}
}

func (i *Inspector) Status(ctx context.Context) (StatusReport, error) {
	report := StatusReport{Database: i.store.Name(), PrincipalUser: i.principal}

	var err error
	if report.Users, err = i.store.CountDocuments(ctx, models.UsersCollection); err != nil {
		return report, fmt.Errorf("count users: %w", err)
	}
	if report.Products, err = i.store.CountDocuments(ctx, models.ProductsCollection); err != nil {
		return report, fmt.Errorf("count products: %w", err)
	}

	names := SeedUserNames()
	found, err := i.store.FindUsers(ctx, names)
	if err != nil {
		return report, fmt.Errorf("find users: %w", err)
	}
	byName := make(map[string]models.User, len(found))
	for _, u := range found {
		byName[u.UserName] = u
	}
	for _, seed := range seedUsers {
		st := UserStatus{UserName: seed.UserName, UserType: seed.UserType}
		if u, ok := byName[seed.UserName]; ok {
			st.Present = true
			st.UserType = u.UserType
			st.PasswordValid = VerifyPassword(SeedPassword, u.Password)
		}
		report.SeedUsers = append(report.SeedUsers, st)
	}

	products, err := i.store.FindProducts(ctx)
	if err != nil {
		return report, fmt.Errorf("find products: %w", err)
	}
	SortProductsByName(products)
	report.ProductList = products

	roles, ok, err := i.store.UserRoles(ctx, i.principal)
	if err != nil {
		return report, fmt.Errorf("lookup principal: %w", err)
	}
	report.PrincipalExists, report.PrincipalRoles = ok, roles

	return report, nil
}

// SortProductsByName orders products by name, comparing a trailing number
// numerically so "Product 10" follows "Product 9".
func SortProductsByName(products []models.Product) {
	sort.SliceStable(products, func(a, b int) bool {
		pa, na := splitTrailingNumber(products[a].Name)
		pb, nb := splitTrailingNumber(products[b].Name)
		if pa != pb {
			return pa < pb
		}
		return na < nb
	})
}

func splitTrailingNumber(s string) (string, int) {
	idx := strings.LastIndexByte(s, ' ')
	if idx < 0 {
		return s, -1
	}
	n, err := strconv.Atoi(s[idx+1:])
	if err != nil {
		return s, -1
	}
	return s[:idx], n
}
