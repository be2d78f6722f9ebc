package services

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"farmfresh_back_end/internal/database"
	"farmfresh_back_end/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeElastic branche le client global sur un serveur HTTP local qui rejoue
// une réponse de recherche.
func fakeElastic(t *testing.T, body string) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)

	database.Elastic = client
	t.Cleanup(func() { database.Elastic = nil })
}

func TestSearchProductsDecodesHits(t *testing.T) {
	productID := primitive.NewObjectID()
	farmerID := primitive.NewObjectID()

	fakeElastic(t, fmt.Sprintf(`{
		"hits": {
			"hits": [
				{"_source": {
					"_id": %q,
					"name": "Tomates anciennes",
					"category": "vegetables",
					"ourPrice": 3.5,
					"status": "approved",
					"farmer": %q
				}}
			]
		}
	}`, productID.Hex(), farmerID.Hex()))

	products, err := SearchProducts("tomates")
	require.NoError(t, err)
	require.Len(t, products, 1)

	// la référence fermier doit ressortir en ObjectID, pas en texte brut,
	// pour que la projection fermier s'applique comme sur le chemin MongoDB
	assert.Equal(t, productID, products[0].ID)
	assert.Equal(t, farmerID, products[0].Farmer)
	assert.Equal(t, "Tomates anciennes", products[0].Name)
	assert.Equal(t, models.StatusApproved, products[0].Status)
}

func TestSearchProductsEmptyHits(t *testing.T) {
	fakeElastic(t, `{"hits": {"hits": []}}`)

	products, err := SearchProducts("introuvable")
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestSearchProductsWithoutClient(t *testing.T) {
	database.Elastic = nil

	_, err := SearchProducts("tomates")
	assert.Error(t, err)
}
