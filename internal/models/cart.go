package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartItem struct {
	Product  primitive.ObjectID `json:"product" bson:"product"`
	Quantity int                `json:"quantity" bson:"quantity"`
}

type Cart struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	User        primitive.ObjectID `json:"user" bson:"user"`
	Items       []CartItem         `json:"items" bson:"items"`
	TotalAmount float64            `json:"totalAmount" bson:"totalAmount"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// AddItem incrémente la quantité si le produit est déjà dans le panier,
// sinon ajoute une nouvelle ligne avec quantité 1.
func (c *Cart) AddItem(productID primitive.ObjectID) {
	for i := range c.Items {
		if c.Items[i].Product == productID {
			c.Items[i].Quantity++
			return
		}
	}
	c.Items = append(c.Items, CartItem{Product: productID, Quantity: 1})
}

// SetQuantity remplace la quantité d'une ligne existante. Retourne false si
// le produit n'est pas dans le panier. La quantité doit rester >= 1, la
// validation est faite côté handler.
func (c *Cart) SetQuantity(productID primitive.ObjectID, quantity int) bool {
	for i := range c.Items {
		if c.Items[i].Product == productID {
			c.Items[i].Quantity = quantity
			return true
		}
	}
	return false
}

// RemoveItem filtre la ligne hors du panier (suppression, pas mise à zéro).
func (c *Cart) RemoveItem(productID primitive.ObjectID) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.Product != productID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
}

// RecomputeTotal recalcule totalAmount = somme(ourPrice × quantité) à partir
// des prix courants. Une ligne dont le produit a disparu compte pour zéro.
func (c *Cart) RecomputeTotal(prices map[primitive.ObjectID]float64) {
	total := 0.0
	for _, item := range c.Items {
		total += prices[item.Product] * float64(item.Quantity)
	}
	c.TotalAmount = total
}
