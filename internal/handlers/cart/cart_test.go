package cart

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// contexte pré-authentifié, comme après middleware.AuthRequired
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func TestUpdateCartItemRejectsQuantityBelowOne(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/api/cart/update/:productId", asUser(primitive.NewObjectID().Hex()), UpdateCartItem)

	// la quantité est refusée avant tout accès au panier : la suppression
	// passe par DELETE /remove, jamais par une quantité nulle
	for _, quantity := range []int{0, -1, -42} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut,
			"/api/cart/update/"+primitive.NewObjectID().Hex(),
			strings.NewReader(fmt.Sprintf(`{"quantity":%d}`, quantity)))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "quantité %d", quantity)
		assert.Contains(t, w.Body.String(), "au moins 1")
	}
}

func TestUpdateCartItemRejectsBadProductID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/api/cart/update/:productId", asUser(primitive.NewObjectID().Hex()), UpdateCartItem)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/cart/update/pas-un-oid",
		strings.NewReader(`{"quantity":2}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
