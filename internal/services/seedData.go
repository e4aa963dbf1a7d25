package services

import (
	"fmt"
	"time"

	"github.com/arzan03/RetailStoreSeed/internal/models"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// DefaultDatabase is the database the store application reads from.
	DefaultDatabase = "retailStore"

	// SeedPassword is the plaintext behind SeedPasswordHash.
	SeedPassword = "password"

	// SeedPasswordHash is bcrypt(SeedPassword) at cost 10, shared by every seeded user.
	SeedPasswordHash = "$2a$10$w7698TS6Mds7zFOGHWMiKus0gO/9RU3PIY88gQsHEWglbe51zDov."

	DefaultPrincipalUser     = "retailStoreUser"
	DefaultPrincipalPassword = "password"
	ReadWriteRole            = "readWrite"
)

type seedUser struct {
	UserName         string
	UserType         models.UserType
	RegistrationDate time.Time
}

type seedProduct struct {
	Name  string
	Type  models.ProductType
	Price decimal.Decimal
}

func utcDate(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// The two customers differ in registration date so loyalty rules have
// one account on each side of the two year threshold.
var seedUsers = []seedUser{
	{UserName: "employeeUser", UserType: models.UserTypeEmployee, RegistrationDate: utcDate(2021)},
	{UserName: "affiliateUser", UserType: models.UserTypeAffiliate, RegistrationDate: utcDate(2021)},
	{UserName: "loyalCustomer", UserType: models.UserTypeCustomer, RegistrationDate: utcDate(2019)},
	{UserName: "newCustomer", UserType: models.UserTypeCustomer, RegistrationDate: utcDate(2022)},
}

var seedProductTypes = []models.ProductType{
	models.ProductTypeGrocery,
	models.ProductTypeGrocery,
	models.ProductTypeElectronics,
	models.ProductTypeElectronics,
	models.ProductTypeGrocery,
	models.ProductTypeElectronics,
	models.ProductTypeGrocery,
	models.ProductTypeElectronics,
	models.ProductTypeGrocery,
	models.ProductTypeElectronics,
}

var seedProducts = buildSeedProducts()

func buildSeedProducts() []seedProduct {
	step := decimal.NewFromInt(10)
	products := make([]seedProduct, 0, len(seedProductTypes))
	for i, t := range seedProductTypes {
		products = append(products, seedProduct{
			Name:  fmt.Sprintf("Product %d", i+1),
			Type:  t,
			Price: step.Mul(decimal.NewFromInt(int64(i + 1))),
		})
	}
	return products
}

// SeedUserNames returns the userName of every seeded user, in insert order.
func SeedUserNames() []string {
	names := make([]string, len(seedUsers))
	for i, u := range seedUsers {
		names[i] = u.UserName
	}
	return names
}

// SeedUserDocuments builds the user documents with fresh ObjectIDs.
func SeedUserDocuments() []models.User {
	docs := make([]models.User, len(seedUsers))
	for i, u := range seedUsers {
		docs[i] = models.User{
			ID:               primitive.NewObjectID(),
			UserName:         u.UserName,
			UserType:         u.UserType,
			RegistrationDate: u.RegistrationDate,
			Password:         SeedPasswordHash,
		}
	}
	return docs
}

// SeedProductDocuments builds the product documents with fresh ObjectIDs.
// Prices are written as doubles, which is what the store application reads.
func SeedProductDocuments() []models.Product {
	docs := make([]models.Product, len(seedProducts))
	for i, p := range seedProducts {
		docs[i] = models.Product{
			ID:    primitive.NewObjectID(),
			Name:  p.Name,
			Type:  p.Type,
			Price: p.Price.InexactFloat64(),
		}
	}
	return docs
}

// Role grants a built-in role on a single database.
type Role struct {
	Role string `bson:"role"`
	DB   string `bson:"db"`
}

// Principal is a database login created by the seeder.
type Principal struct {
	User     string
	Password string
	Roles    []Role
}

// AppPrincipal returns the application login with readWrite on database only.
func AppPrincipal(user, password, database string) Principal {
	return Principal{
		User:     user,
		Password: password,
		Roles:    []Role{{Role: ReadWriteRole, DB: database}},
	}
}
