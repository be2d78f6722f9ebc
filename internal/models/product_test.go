package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCategory(t *testing.T) {
	for _, c := range []string{"vegetables", "fruits", "dairy", "grains"} {
		assert.True(t, ValidCategory(c), "catégorie %q", c)
	}
	for _, c := range []string{"", "meat", "Fruits", "légumes"} {
		assert.False(t, ValidCategory(c), "catégorie %q", c)
	}
}
