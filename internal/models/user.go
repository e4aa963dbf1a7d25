package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const UsersCollection = "users"

// UserType mirrors the account categories the store application prices against.
type UserType string

const (
	UserTypeEmployee  UserType = "EMPLOYEE"
	UserTypeAffiliate UserType = "AFFILIATE"
	UserTypeCustomer  UserType = "CUSTOMER"
)

// ValidUserTypes lists every UserType in declaration order.
var ValidUserTypes = []UserType{UserTypeEmployee, UserTypeAffiliate, UserTypeCustomer}

type User struct {
	ID               primitive.ObjectID `bson:"_id" json:"id"`
	UserName         string             `bson:"userName" json:"userName"`
	UserType         UserType           `bson:"userType" json:"userType"`
	RegistrationDate time.Time          `bson:"registrationDate" json:"registrationDate"`
	Password         string             `bson:"password" json:"-"`
}
