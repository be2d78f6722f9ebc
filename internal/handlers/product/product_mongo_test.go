package product

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"farmfresh_back_end/internal/database"
	"farmfresh_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func asFarmer(farmerID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", farmerID)
		c.Set("role", "farmer")
		c.Next()
	}
}

func productDoc(id, farmerID primitive.ObjectID, name string, status models.Status) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: name},
		{Key: "category", Value: "vegetables"},
		{Key: "ourPrice", Value: 3.5},
		{Key: "marketPrice", Value: 4.2},
		{Key: "status", Value: string(status)},
		{Key: "farmer", Value: farmerID},
	}
}

func TestDeleteProductRejectsNonOwner(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("fermier non propriétaire", func(mt *mtest.T) {
		database.MongoDB = mt.DB
		defer func() { database.MongoDB = nil }()

		owner := primitive.NewObjectID()
		caller := primitive.NewObjectID()
		doc := productDoc(primitive.NewObjectID(), owner, "Tomates", models.StatusApproved)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "farmfresh.products", mtest.FirstBatch, doc))

		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.DELETE("/api/products/:productId", asFarmer(caller.Hex()), DeleteProduct)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete,
			"/api/products/"+primitive.NewObjectID().Hex(), nil)
		r.ServeHTTP(w, req)

		// le produit appartient à un autre vendeur : refus, pas de suppression
		assert.Equal(mt, http.StatusForbidden, w.Code)
		assert.Contains(mt, w.Body.String(), "propriétaire")
	})
}

func TestGetApprovedProductsFiltersOnStatus(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("catalogue public", func(mt *mtest.T) {
		database.MongoDB = mt.DB
		defer func() { database.MongoDB = nil }()

		farmerID := primitive.NewObjectID()
		doc := productDoc(primitive.NewObjectID(), farmerID, "Tomates", models.StatusApproved)
		farmer := bson.D{
			{Key: "_id", Value: farmerID},
			{Key: "name", Value: "Jean"},
			{Key: "email", Value: "jean@ferme.fr"},
			{Key: "role", Value: "farmer"},
			{Key: "status", Value: "approved"},
		}
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "farmfresh.products", mtest.FirstBatch, doc),
			mtest.CreateCursorResponse(0, "farmfresh.users", mtest.FirstBatch, farmer),
		)

		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.GET("/api/products/approved", GetApprovedProducts)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/products/approved", nil)
		r.ServeHTTP(w, req)

		require.Equal(mt, http.StatusOK, w.Code)
		assert.Contains(mt, w.Body.String(), "Tomates")

		// la requête envoyée à MongoDB porte bien le filtre : un produit
		// pending ou rejected ne peut pas apparaître dans le catalogue public
		ev := mt.GetStartedEvent()
		require.NotNil(mt, ev)
		require.Equal(mt, "find", ev.CommandName)
		assert.Equal(mt, string(models.StatusApproved),
			ev.Command.Lookup("filter", "status").StringValue())
	})
}
