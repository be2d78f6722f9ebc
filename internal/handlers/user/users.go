package user

import (
	"context"
	"log"
	"net/http"
	"time"

	"farmfresh_back_end/internal/database"
	"farmfresh_back_end/internal/models"
	"farmfresh_back_end/internal/services"
	"farmfresh_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetAllUsers liste tous les comptes pour le tableau de bord admin,
// partitionnés en consommateurs et vendeurs. Les admins n'apparaissent pas.
func GetAllUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.Users().Find(ctx, bson.M{})
	if err != nil {
		log.Println("❌ Erreur listing utilisateurs:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur récupération utilisateurs"})
		return
	}

	var all []models.User
	if err := cursor.All(ctx, &all); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur récupération utilisateurs"})
		return
	}

	consumers := []models.User{}
	farmers := []models.User{}
	for _, u := range all {
		switch u.Role {
		case models.RoleUser:
			consumers = append(consumers, u)
		case models.RoleFarmer:
			farmers = append(farmers, u)
		case models.RoleAdmin:
			// jamais exposé dans la liste
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"users": consumers, "farmers": farmers},
	})
}

func GetUserByID(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Identifiant invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var u models.User
	if err := database.Users().FindOne(ctx, bson.M{"_id": oid}).Decode(&u); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Utilisateur introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": u})
}

// UpdateUser met à jour le profil. Champs en liste blanche : ni le mot de
// passe, ni le rôle, ni le statut ne sont assignables par cette route.
func UpdateUser(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Identifiant invalide"})
		return
	}

	var input struct {
		Name    *string `json:"name"`
		Address *string `json:"address"`
		Phone   *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if input.Name != nil {
		set["name"] = *input.Name
	}
	if input.Address != nil {
		set["address"] = *input.Address
	}
	if input.Phone != nil {
		set["phone"] = *input.Phone
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var updated models.User
	err = database.Users().
		FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
			options.FindOneAndUpdate().SetReturnDocument(options.After)).
		Decode(&updated)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Utilisateur introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur mise à jour utilisateur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Utilisateur mis à jour", "user": updated})
}

func DeleteUser(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Identifiant invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := database.Users().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur suppression utilisateur"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Utilisateur introuvable"})
		return
	}

	// le panier suit le compte
	_, _ = database.Carts().DeleteOne(ctx, bson.M{"user": oid})

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Utilisateur supprimé"})
}

// UpdateAvatar téléverse l'image de profil vers le stockage objet et
// enregistre son URL.
func UpdateAvatar(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Identifiant invalide"})
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Aucune image fournie"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	avatarURL, err := services.UploadFile(ctx, "avatars", file)
	if err != nil {
		log.Println("❌ Upload avatar:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur upload image"})
		return
	}

	res, err := database.Users().UpdateOne(ctx, bson.M{"_id": oid},
		bson.M{"$set": bson.M{"avatar": avatarURL, "updatedAt": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur mise à jour avatar"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Utilisateur introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Avatar mis à jour", "avatarUrl": avatarURL})
}

// ================== APPROBATION DES VENDEURS ==================

// UpdateFarmerStatus écrit le statut demandé (enum validé, pas de graphe de
// transitions : un rejet peut être ré-approuvé). approved implique
// isVerified=true.
func UpdateFarmerStatus(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("farmerId"))
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

	var farmer models.User
	err = database.Users().
		FindOneAndUpdate(ctx,
			bson.M{"_id": oid, "role": models.RoleFarmer},
			bson.M{"$set": bson.M{
				"status":     status,
				"isVerified": status == models.StatusApproved,
				"updatedAt":  time.Now(),
			}},
			options.FindOneAndUpdate().SetReturnDocument(options.After)).
		Decode(&farmer)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Vendeur introuvable"})
		return
	}
	if err != nil {
		log.Println("❌ Erreur mise à jour statut vendeur:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur mise à jour statut"})
		return
	}

	go utils.SendFarmerStatusEmail(farmer, status)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Statut du vendeur mis à jour",
		"farmer": gin.H{
			"_id":        farmer.ID.Hex(),
			"name":       farmer.Name,
			"email":      farmer.Email,
			"status":     farmer.Status,
			"isVerified": farmer.IsVerified,
		},
	})
}

// GetFarmerDocument renvoie l'URL de la pièce justificative, accompagnée
// d'une URL signée à durée limitée quand le stockage objet est disponible.
func GetFarmerDocument(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("farmerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Identifiant invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var farmer models.User
	if err := database.Users().FindOne(ctx, bson.M{"_id": oid}).Decode(&farmer); err != nil || farmer.DocumentURL == "" {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Document introuvable"})
		return
	}

	resp := gin.H{"success": true, "documentUrl": farmer.DocumentURL}
	if signed, err := services.GenerateSignedURL(ctx, farmer.DocumentURL, 15*time.Minute); err == nil {
		resp["signedUrl"] = signed
	}

	c.JSON(http.StatusOK, resp)
}
