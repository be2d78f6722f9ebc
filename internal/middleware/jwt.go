package middleware

import (
	"net/http"
	"strings"

	"farmfresh_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthRequired extrait le bearer token, vérifie signature et expiration puis
// pose user_id et role dans le contexte Gin. Tout échec coupe la chaîne en 401.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token manquant"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Format Authorization invalide"})
			c.Abort()
			return
		}

		userID, role, err := utils.ParseJWT(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token invalide"})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("role", string(role))
		c.Next()
	}
}
