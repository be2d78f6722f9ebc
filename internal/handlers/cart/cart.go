package cart

import (
	"context"
	"log"
	"net/http"
	"time"

	"farmfresh_back_end/internal/database"
	"farmfresh_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// populatedItem est la ligne de panier renvoyée au client, avec le détail
// produit résolu.
type populatedItem struct {
	Product  productSummary `json:"product"`
	Quantity int            `json:"quantity"`
}

type productSummary struct {
	ID          primitive.ObjectID `json:"_id"`
	Name        string             `json:"name"`
	ImageURL    string             `json:"imageUrl"`
	OurPrice    float64            `json:"ourPrice"`
	MarketPrice float64            `json:"marketPrice"`
	Category    string             `json:"category"`
	Status      models.Status      `json:"status"`
}

func callerID(c *gin.Context) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Non authentifié"})
		return primitive.NilObjectID, false
	}
	return oid, true
}

// cartProducts charge en une requête les produits référencés par le panier.
func cartProducts(ctx context.Context, cart *models.Cart) (map[primitive.ObjectID]models.Product, error) {
	ids := make([]primitive.ObjectID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.Product)
	}
	found := make(map[primitive.ObjectID]models.Product, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	cursor, err := database.Products().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	for _, p := range products {
		found[p.ID] = p
	}
	return found, nil
}

// saveCart recalcule totalAmount à partir des prix courants puis persiste le
// panier (upsert : le panier est créé paresseusement au premier ajout).
func saveCart(ctx context.Context, cart *models.Cart) (map[primitive.ObjectID]models.Product, error) {
	products, err := cartProducts(ctx, cart)
	if err != nil {
		return nil, err
	}

	prices := make(map[primitive.ObjectID]float64, len(products))
	for id, p := range products {
		prices[id] = p.OurPrice
	}
	cart.RecomputeTotal(prices)

	now := time.Now()
	cart.UpdatedAt = now
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
		cart.CreatedAt = now
	}

	_, err = database.Carts().ReplaceOne(ctx, bson.M{"user": cart.User}, cart,
		options.Replace().SetUpsert(true))
	return products, err
}

func respondWithCart(c *gin.Context, cart *models.Cart, products map[primitive.ObjectID]models.Product, message string) {
	items := make([]populatedItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		p, ok := products[item.Product]
		if !ok {
			// produit supprimé entre-temps : la ligne n'est pas affichée
			continue
		}
		items = append(items, populatedItem{
			Product: productSummary{
				ID:          p.ID,
				Name:        p.Name,
				ImageURL:    p.ImageURL,
				OurPrice:    p.OurPrice,
				MarketPrice: p.MarketPrice,
				Category:    p.Category,
				Status:      p.Status,
			},
			Quantity: item.Quantity,
		})
	}

	resp := gin.H{
		"success": true,
		"cart": gin.H{
			"items":       items,
			"totalAmount": cart.TotalAmount,
		},
	}
	if message != "" {
		resp["message"] = message
	}
	c.JSON(http.StatusOK, resp)
}

func loadCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := database.Carts().FindOne(ctx, bson.M{"user": userID}).Decode(&cart)
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// ================== HANDLERS ==================

// AddToCart ajoute un produit approuvé au panier : la ligne existante est
// incrémentée, sinon une nouvelle ligne démarre à 1. Le panier est créé au
// premier ajout.
func AddToCart(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var input struct {
		ProductID string `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Données invalides"})
		return
	}

	productID, err := primitive.ObjectIDFromHex(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID produit invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// seul un produit approuvé peut entrer dans un panier
	var product models.Product
	err = database.Products().
		FindOne(ctx, bson.M{"_id": productID, "status": models.StatusApproved}).
		Decode(&product)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Produit introuvable ou non approuvé"})
		return
	}

	cart, err := loadCart(ctx, userID)
	if err == mongo.ErrNoDocuments {
		cart = &models.Cart{User: userID, Items: []models.CartItem{}}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur récupération panier"})
		return
	}

	cart.AddItem(productID)

	products, err := saveCart(ctx, cart)
	if err != nil {
		log.Println("❌ Erreur sauvegarde panier:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur sauvegarde panier"})
		return
	}

	respondWithCart(c, cart, products, "Produit ajouté au panier")
}

// GetCart renvoie le panier peuplé, ou la forme vide si l'utilisateur n'en a
// pas encore.
func GetCart(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cart, err := loadCart(ctx, userID)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"cart":    gin.H{"items": []populatedItem{}, "totalAmount": 0},
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur récupération panier"})
		return
	}

	products, err := cartProducts(ctx, cart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur récupération panier"})
		return
	}

	respondWithCart(c, cart, products, "")
}

// UpdateCartItem remplace la quantité d'une ligne. Une quantité < 1 est
// refusée : la suppression passe par DELETE /remove/:productId.
func UpdateCartItem(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID produit invalide"})
		return
	}

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Données invalides"})
		return
	}
	if input.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "La quantité doit être d'au moins 1"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cart, err := loadCart(ctx, userID)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Panier introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur récupération panier"})
		return
	}

	if !cart.SetQuantity(productID, input.Quantity) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Produit absent du panier"})
		return
	}

	products, err := saveCart(ctx, cart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur sauvegarde panier"})
		return
	}

	respondWithCart(c, cart, products, "Panier mis à jour")
}

// RemoveFromCart filtre la ligne hors du panier.
func RemoveFromCart(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID produit invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cart, err := loadCart(ctx, userID)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Panier introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur récupération panier"})
		return
	}

	cart.RemoveItem(productID)

	products, err := saveCart(ctx, cart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur sauvegarde panier"})
		return
	}

	respondWithCart(c, cart, products, "Produit retiré du panier")
}

// ClearCart vide le panier (items := [], total remis à zéro). Le document
// panier lui-même n'est jamais supprimé par cette route.
func ClearCart(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := database.Carts().UpdateOne(ctx,
		bson.M{"user": userID},
		bson.M{"$set": bson.M{"items": []models.CartItem{}, "totalAmount": 0, "updatedAt": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur vidage panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Panier vidé"})
}
