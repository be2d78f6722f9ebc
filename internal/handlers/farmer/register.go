package farmer

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"farmfresh_back_end/internal/database"
	"farmfresh_back_end/internal/models"
	"farmfresh_back_end/internal/services"
	"farmfresh_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Register crée un compte vendeur en attente d'approbation. Multipart :
// champs name/email/password/address/phone + fichier "document" (pièce
// justificative, obligatoire). Le compte ne peut pas se connecter tant qu'un
// admin ne l'a pas approuvé.
func Register(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	email := strings.ToLower(strings.TrimSpace(c.PostForm("email")))
	password := c.PostForm("password")
	address := strings.TrimSpace(c.PostForm("address"))
	phone := strings.TrimSpace(c.PostForm("phone"))

	if name == "" || email == "" || password == "" || address == "" || phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Tous les champs sont requis"})
		return
	}
	if len(password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Mot de passe trop court (6 caractères minimum)"})
		return
	}

	document, err := c.FormFile("document")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Pièce justificative requise"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var existing models.User
	if err := database.Users().FindOne(ctx, bson.M{"email": email}).Decode(&existing); err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Un compte avec cet email existe déjà"})
		return
	}

	documentURL, err := services.UploadFile(ctx, "farmer_documents", document)
	if err != nil {
		log.Println("❌ Upload document vendeur:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur upload du document"})
		return
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur création du compte"})
		return
	}

	now := time.Now()
	f := models.User{
		Name:        name,
		Email:       email,
		Password:    hashed,
		Role:        models.RoleFarmer,
		Address:     address,
		Phone:       phone,
		DocumentURL: documentURL,
		Status:      models.StatusPending,
		IsVerified:  false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := database.Users().InsertOne(ctx, f); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Un compte avec cet email existe déjà"})
			return
		}
		log.Println("❌ Erreur insertion vendeur:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur création du compte"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Inscription enregistrée. Votre compte sera activé après validation par un administrateur.",
		"farmer": gin.H{
			"name":   f.Name,
			"email":  f.Email,
			"role":   f.Role,
			"status": f.Status,
		},
	})
}
