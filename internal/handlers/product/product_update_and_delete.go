package product

import (
	"context"
	"log"
	"net/http"
	"time"

	"farmfresh_back_end/internal/database"
	"farmfresh_back_end/internal/models"
	"farmfresh_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// loadOwnedProduct charge le produit et vérifie que l'appelant en est le
// fermier propriétaire. Écrit la réponse d'erreur et retourne nil sinon.
func loadOwnedProduct(c *gin.Context, ctx context.Context, param string) *models.Product {
	oid, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Identifiant invalide"})
		return nil
	}

	var p models.Product
	if err := database.Products().FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Produit introuvable"})
		return nil
	}

	if p.Farmer.Hex() != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Vous n'êtes pas le propriétaire de ce produit"})
		return nil
	}

	return &p
}

// ================== MISE À JOUR (VENDEUR PROPRIÉTAIRE) ==================

// UpdateProduct modifie le contenu d'une annonce. Multipart, tous les champs
// optionnels ; une nouvelle image remplace l'ancienne.
func UpdateProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	p := loadOwnedProduct(c, ctx, "productId")
	if p == nil {
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

	set := bson.M{"updatedAt": time.Now()}
	if input.Name != "" {
		set["name"] = input.Name
	}
	if input.Description != "" {
		set["description"] = input.Description
	}
	if input.Category != "" {
		if !models.ValidCategory(input.Category) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Catégorie invalide"})
			return
		}
		set["category"] = input.Category
	}
	if input.OurPrice != "" || input.MarketPrice != "" || input.Stock != "" {
		// réutilise la validation de création pour les champs numériques fournis
		probe := productForm{
			Name: "x", Description: "x", Category: p.Category,
			OurPrice: input.OurPrice, MarketPrice: input.MarketPrice, Stock: input.Stock,
		}
		if probe.OurPrice == "" {
			probe.OurPrice = "1"
		}
		if probe.MarketPrice == "" {
			probe.MarketPrice = "1"
		}
		if msg := probe.validate(); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
			return
		}
		if input.OurPrice != "" {
			set["ourPrice"] = probe.ourPrice
		}
		if input.MarketPrice != "" {
			set["marketPrice"] = probe.marketPrice
		}
		if input.Stock != "" {
			set["stock"] = probe.stock
		}
	}
	if input.Unit != "" {
		set["unit"] = input.Unit
	}

	if image, err := c.FormFile("image"); err == nil {
		imageURL, err := services.UploadFile(ctx, "products", image)
		if err != nil {
			log.Println("❌ Upload image produit:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur upload image"})
			return
		}
		set["imageUrl"] = imageURL
	}

	var updated models.Product
	err := database.Products().
		FindOneAndUpdate(ctx, bson.M{"_id": p.ID}, bson.M{"$set": set},
			options.FindOneAndUpdate().SetReturnDocument(options.After)).
		Decode(&updated)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur mise à jour produit"})
		return
	}

	go services.IndexProduct(updated)
	invalidateCatalogCache()

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Produit mis à jour", "product": updated})
}

// DeleteProduct supprime une annonce, son entrée d'index, et la retire des
// paniers où elle figure encore.
func DeleteProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	p := loadOwnedProduct(c, ctx, "productId")
	if p == nil {
		return
	}

	if _, err := database.Products().DeleteOne(ctx, bson.M{"_id": p.ID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur suppression produit"})
		return
	}

	// retire la ligne des paniers existants ; les totaux seront recalculés à
	// la prochaine mutation de chaque panier
	_, _ = database.Carts().UpdateMany(ctx,
		bson.M{"items.product": p.ID},
		bson.M{"$pull": bson.M{"items": bson.M{"product": p.ID}}})

	go services.RemoveProductFromIndex(p.ID.Hex())
	invalidateCatalogCache()

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Produit supprimé"})
}

// ================== APPROBATION (ADMIN) ==================

// UpdateProductStatus écrit le statut demandé. Enum validé, pas de graphe de
// transitions : rejected → approved est accepté.
func UpdateProductStatus(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Identifiant invalide"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	status, err := models.ParseStatus(input.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Statut invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var updated models.Product
	err = database.Products().
		FindOneAndUpdate(ctx, bson.M{"_id": oid},
			bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
			options.FindOneAndUpdate().SetReturnDocument(options.After)).
		Decode(&updated)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Produit introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur mise à jour statut"})
		return
	}

	go services.IndexProduct(updated)
	invalidateCatalogCache()

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Statut du produit mis à jour", "product": updated})
}
