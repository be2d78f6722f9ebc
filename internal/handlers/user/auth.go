package user

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"farmfresh_back_end/internal/database"
	"farmfresh_back_end/internal/models"
	"farmfresh_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ================== INSCRIPTION ==================

// Register crée un compte consommateur. Les comptes vendeurs passent par
// POST /api/farmers/register (pièce justificative obligatoire).
func Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	email := strings.ToLower(strings.TrimSpace(input.Email))

	// email déjà pris ?
	var existing models.User
	err := database.Users().FindOne(ctx, bson.M{"email": email}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Un compte avec cet email existe déjà"})
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur création utilisateur"})
		return
	}

	now := time.Now()
	u := models.User{
		Name:     input.Name,
		Email:    email,
		Password: hashed,
		Role:     models.RoleUser,
		// Un consommateur est actif immédiatement, pas de file d'approbation.
		Status:     models.StatusApproved,
		IsVerified: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	res, err := database.Users().InsertOne(ctx, u)
	if err != nil {
		// l'index unique couvre la course entre le FindOne et l'insert
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Un compte avec cet email existe déjà"})
			return
		}
		log.Println("❌ Erreur insertion utilisateur:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur création utilisateur"})
		return
	}
	u.ID = res.InsertedID.(primitive.ObjectID)

	token, err := utils.GenerateJWT(u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"token":   token,
		"user": gin.H{
			"_id":   u.ID.Hex(),
			"name":  u.Name,
			"email": u.Email,
			"role":  u.Role,
		},
	})
}

// RegisterAdmin crée un compte administrateur, sans file d'approbation.
func RegisterAdmin(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var existing models.User
	if err := database.Users().FindOne(ctx, bson.M{"email": email}).Decode(&existing); err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Un compte avec cet email existe déjà"})
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur création administrateur"})
		return
	}

	now := time.Now()
	u := models.User{
		Name:       input.Name,
		Email:      email,
		Password:   hashed,
		Role:       models.RoleAdmin,
		Status:     models.StatusApproved,
		IsVerified: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := database.Users().InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Un compte avec cet email existe déjà"})
			return
		}
		log.Println("❌ Erreur insertion admin:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur création administrateur"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Administrateur créé avec succès"})
}

// ================== CONNEXION ==================

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		UserType string `json:"userType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	requestedRole, err := models.ParseRole(input.UserType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Type de compte invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var u models.User
	err = database.Users().
		FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(input.Email))}).
		Decode(&u)
	if err != nil || !utils.VerifyPassword(input.Password, u.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Email ou mot de passe incorrect"})
		return
	}

	if u.Role != requestedRole {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Type de compte invalide"})
		return
	}

	if !u.CanLogin() {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Votre compte est en attente d'approbation par un administrateur"})
		return
	}

	token, err := utils.GenerateJWT(u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user": gin.H{
			"_id":        u.ID.Hex(),
			"name":       u.Name,
			"email":      u.Email,
			"role":       u.Role,
			"status":     u.Status,
			"isVerified": u.IsVerified,
		},
	})
}
