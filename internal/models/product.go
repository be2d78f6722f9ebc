package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Category    string             `json:"category" bson:"category"`
	Description string             `json:"description" bson:"description"`
	ImageURL    string             `json:"imageUrl" bson:"imageUrl"`
	OurPrice    float64            `json:"ourPrice" bson:"ourPrice"`
	MarketPrice float64            `json:"marketPrice" bson:"marketPrice"`
	Stock       int                `json:"stock" bson:"stock"`
	Unit        string             `json:"unit,omitempty" bson:"unit,omitempty"`
	Rating      float64            `json:"rating" bson:"rating"`
	Farmer      primitive.ObjectID `json:"farmer" bson:"farmer"`
	Status      Status             `json:"status" bson:"status"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

var productCategories = []string{"vegetables", "fruits", "dairy", "grains"}

func ValidCategory(c string) bool {
	for _, pc := range productCategories {
		if c == pc {
			return true
		}
	}
	return false
}

// FarmerSummary est la projection du fermier renvoyée avec un produit
// (équivalent d'un populate name/email).
type FarmerSummary struct {
	ID    primitive.ObjectID `json:"_id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
}
