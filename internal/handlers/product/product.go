package product

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"farmfresh_back_end/internal/database"
	"farmfresh_back_end/internal/models"
	"farmfresh_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const approvedCacheKey = "products:approved"

// populatedProduct remplace la référence fermier par sa projection
// name/email (équivalent populate).
type populatedProduct struct {
	models.Product
	Farmer models.FarmerSummary `json:"farmer"`
}

// populateFarmers résout les références fermiers d'un lot de produits en une
// seule requête.
func populateFarmers(ctx context.Context, products []models.Product) ([]populatedProduct, error) {
	ids := make([]primitive.ObjectID, 0, len(products))
	seen := make(map[primitive.ObjectID]bool)
	for _, p := range products {
		if !seen[p.Farmer] {
			seen[p.Farmer] = true
			ids = append(ids, p.Farmer)
		}
	}

	farmers := make(map[primitive.ObjectID]models.FarmerSummary)
	if len(ids) > 0 {
		cursor, err := database.Users().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			return nil, err
		}
		var users []models.User
		if err := cursor.All(ctx, &users); err != nil {
			return nil, err
		}
		for _, u := range users {
			farmers[u.ID] = models.FarmerSummary{ID: u.ID, Name: u.Name, Email: u.Email}
		}
	}

	out := make([]populatedProduct, 0, len(products))
	for _, p := range products {
		out = append(out, populatedProduct{Product: p, Farmer: farmers[p.Farmer]})
	}
	return out, nil
}

func listByFilter(c *gin.Context, filter bson.M) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.Products().Find(ctx, filter)
	if err != nil {
		log.Println("❌ Erreur listing produits:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur récupération produits"})
		return
	}

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur récupération produits"})
		return
	}

	populated, err := populateFarmers(ctx, products)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur récupération produits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "products": populated})
}

// ================== CRÉATION (VENDEUR) ==================

// CreateProduct crée une annonce en statut pending. Multipart : champs texte
// + fichier "image" obligatoire.
func CreateProduct(c *gin.Context) {
	farmerID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Non authentifié"})
		return
	}

	input := productForm{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		OurPrice:    c.PostForm("ourPrice"),
		MarketPrice: c.PostForm("marketPrice"),
		Stock:       c.PostForm("stock"),
		Unit:        c.PostForm("unit"),
	}
	if msg := input.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
		return
	}

	image, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Image du produit requise"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	imageURL, err := services.UploadFile(ctx, "products", image)
	if err != nil {
		log.Println("❌ Upload image produit:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur upload image"})
		return
	}

	now := time.Now()
	p := models.Product{
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		ImageURL:    imageURL,
		OurPrice:    input.ourPrice,
		MarketPrice: input.marketPrice,
		Stock:       input.stock,
		Unit:        input.Unit,
		Rating:      5,
		Farmer:      farmerID,
		Status:      models.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := database.Products().InsertOne(ctx, p)
	if err != nil {
		log.Println("❌ Erreur insertion produit:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur création produit"})
		return
	}
	p.ID = res.InsertedID.(primitive.ObjectID)

	go services.IndexProduct(p)
	invalidateCatalogCache()

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Produit ajouté, en attente d'approbation",
		"product": p,
	})
}

// productForm porte les champs texte du multipart, avec leurs valeurs
// numériques décodées par validate.
type productForm struct {
	Name        string
	Description string
	Category    string
	OurPrice    string
	MarketPrice string
	Stock       string
	Unit        string

	ourPrice    float64
	marketPrice float64
	stock       int
}

// validate retourne un message d'erreur client, ou "" si le formulaire est
// complet et cohérent.
func (f *productForm) validate() string {
	if f.Name == "" || f.Description == "" || f.Category == "" || f.OurPrice == "" || f.MarketPrice == "" {
		return "Tous les champs sont requis"
	}
	if !models.ValidCategory(f.Category) {
		return "Catégorie invalide"
	}

	var err error
	if f.ourPrice, err = strconv.ParseFloat(f.OurPrice, 64); err != nil || f.ourPrice <= 0 {
		return "Prix invalide"
	}
	if f.marketPrice, err = strconv.ParseFloat(f.MarketPrice, 64); err != nil || f.marketPrice <= 0 {
		return "Prix du marché invalide"
	}
	if f.Stock != "" {
		if f.stock, err = strconv.Atoi(f.Stock); err != nil || f.stock < 0 {
			return "Stock invalide"
		}
	}
	return ""
}

// ================== LECTURES ==================

// GetApprovedProducts est le catalogue public : uniquement les produits
// approuvés, avec cache Redis invalidé à chaque mutation.
func GetApprovedProducts(c *gin.Context) {
	ctx := context.Background()

	if database.Redis != nil {
		if val, err := database.Redis.Get(ctx, approvedCacheKey).Result(); err == nil && val != "" {
			var cached []populatedProduct
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				c.JSON(http.StatusOK, gin.H{"success": true, "products": cached})
				return
			}
		}
	}

	qctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := database.Products().Find(qctx, bson.M{"status": models.StatusApproved})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur récupération produits"})
		return
	}

	var products []models.Product
	if err := cursor.All(qctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur récupération produits"})
		return
	}

	populated, err := populateFarmers(qctx, products)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur récupération produits"})
		return
	}

	if database.Redis != nil {
		if data, err := json.Marshal(populated); err == nil {
			database.Redis.Set(ctx, approvedCacheKey, data, time.Hour)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "products": populated})
}

// GetAllProducts (admin) : tous statuts confondus.
func GetAllProducts(c *gin.Context) {
	listByFilter(c, bson.M{})
}

// GetPendingProducts (admin) : la file d'approbation.
func GetPendingProducts(c *gin.Context) {
	listByFilter(c, bson.M{"status": models.StatusPending})
}

func GetProductByID(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Identifiant invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var p models.Product
	if err := database.Products().FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Produit introuvable"})
		return
	}

	populated, err := populateFarmers(ctx, []models.Product{p})
	if err != nil || len(populated) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur récupération produit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "product": populated[0]})
}

// SearchProducts interroge Elasticsearch, et retombe sur un filtre regex
// MongoDB quand l'index est indisponible.
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Paramètre 'q' manquant"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Elastic et le fallback MongoDB alimentent la même projection, la
	// réponse garde une forme unique quel que soit le chemin emprunté.
	products, err := services.SearchProducts(query)
	if err != nil {
		filter := bson.M{
			"status": models.StatusApproved,
			"$or": []bson.M{
				{"name": bson.M{"$regex": query, "$options": "i"}},
				{"description": bson.M{"$regex": query, "$options": "i"}},
			},
		}

		cursor, err := database.Products().Find(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur recherche produits"})
			return
		}
		if err := cursor.All(ctx, &products); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur recherche produits"})
			return
		}
	}

	populated, err := populateFarmers(ctx, products)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur recherche produits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "products": populated})
}

// invalidateCatalogCache purge le cache du catalogue public ; appelé après
// chaque mutation de produit.
func invalidateCatalogCache() {
	if database.Redis == nil {
		return
	}
	database.Redis.Del(context.Background(), approvedCacheKey)
}
