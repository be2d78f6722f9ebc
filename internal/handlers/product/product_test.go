package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validForm() productForm {
	return productForm{
		Name:        "Tomates anciennes",
		Description: "Cagette de tomates de saison",
		Category:    "vegetables",
		OurPrice:    "3.50",
		MarketPrice: "4.20",
		Stock:       "40",
		Unit:        "kg",
	}
}

func TestProductFormValidateOK(t *testing.T) {
	f := validForm()
	assert.Empty(t, f.validate())
	assert.Equal(t, 3.5, f.ourPrice)
	assert.Equal(t, 4.2, f.marketPrice)
	assert.Equal(t, 40, f.stock)
}

func TestProductFormValidateStockOptional(t *testing.T) {
	f := validForm()
	f.Stock = ""
	assert.Empty(t, f.validate())
	assert.Equal(t, 0, f.stock)
}

func TestProductFormValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*productForm)
	}{
		{"nom manquant", func(f *productForm) { f.Name = "" }},
		{"description manquante", func(f *productForm) { f.Description = "" }},
		{"catégorie manquante", func(f *productForm) { f.Category = "" }},
		{"catégorie inconnue", func(f *productForm) { f.Category = "meat" }},
		{"prix non numérique", func(f *productForm) { f.OurPrice = "abc" }},
		{"prix nul", func(f *productForm) { f.OurPrice = "0" }},
		{"prix négatif", func(f *productForm) { f.OurPrice = "-2" }},
		{"prix marché invalide", func(f *productForm) { f.MarketPrice = "gratuit" }},
		{"stock non entier", func(f *productForm) { f.Stock = "1.5" }},
		{"stock négatif", func(f *productForm) { f.Stock = "-3" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)
			assert.NotEmpty(t, f.validate())
		})
	}
}
