package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const ProductsCollection = "products"

type ProductType string

const (
	ProductTypeGrocery     ProductType = "GROCERY"
	ProductTypeElectronics ProductType = "ELECTRONICS"
	ProductTypeClothing    ProductType = "CLOTHING" // known to the store, never seeded
)

type Product struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Type  ProductType        `bson:"type" json:"type"`
	Price float64            `bson:"price" json:"price"`
}
