package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCartAddItem(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	var cart Cart
	cart.AddItem(a)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	// deuxième ajout du même produit : incrément, pas de doublon
	cart.AddItem(a)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	cart.AddItem(b)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, 1, cart.Items[1].Quantity)
}

func TestCartSetQuantity(t *testing.T) {
	a := primitive.NewObjectID()
	cart := Cart{Items: []CartItem{{Product: a, Quantity: 1}}}

	assert.True(t, cart.SetQuantity(a, 7))
	assert.Equal(t, 7, cart.Items[0].Quantity)

	assert.False(t, cart.SetQuantity(primitive.NewObjectID(), 3))
	assert.Equal(t, 7, cart.Items[0].Quantity)
}

func TestCartRemoveItem(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	cart := Cart{Items: []CartItem{
		{Product: a, Quantity: 2},
		{Product: b, Quantity: 1},
	}}

	cart.RemoveItem(a)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, b, cart.Items[0].Product)

	// suppression d'un produit absent : sans effet
	cart.RemoveItem(a)
	assert.Len(t, cart.Items, 1)
}

func TestCartRecomputeTotal(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	gone := primitive.NewObjectID()

	cart := Cart{Items: []CartItem{
		{Product: a, Quantity: 3},
		{Product: b, Quantity: 2},
		{Product: gone, Quantity: 5},
	}}

	cart.RecomputeTotal(map[primitive.ObjectID]float64{
		a: 50,
		b: 12.5,
		// gone absent : le produit a été supprimé, la ligne compte pour zéro
	})

	assert.Equal(t, 175.0, cart.TotalAmount)
}

func TestCartRecomputeTotalEmpty(t *testing.T) {
	cart := Cart{TotalAmount: 99}
	cart.RecomputeTotal(nil)
	assert.Equal(t, 0.0, cart.TotalAmount)
}
