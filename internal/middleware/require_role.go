package middleware

import (
	"net/http"

	"farmfresh_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

// RequireAdmin vérifie que l'utilisateur authentifié a le rôle "admin".
func RequireAdmin(c *gin.Context) {
	if contextRole(c) != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Accès réservé aux administrateurs"})
		c.Abort()
		return
	}
	c.Next()
}

// RequireFarmer vérifie que l'utilisateur authentifié a le rôle "farmer".
func RequireFarmer(c *gin.Context) {
	if contextRole(c) != models.RoleFarmer {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Accès réservé aux vendeurs"})
		c.Abort()
		return
	}
	c.Next()
}

func contextRole(c *gin.Context) models.Role {
	role, err := models.ParseRole(c.GetString("role"))
	if err != nil {
		return ""
	}
	return role
}
