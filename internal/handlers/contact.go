package handlers

import (
	"log"
	"net/http"

	"farmfresh_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// SendContactMessage relaie le formulaire de contact public vers la boîte
// support par SMTP.
func SendContactMessage(c *gin.Context) {
	var input struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Subject string `json:"subject" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if err := utils.SendContactEmail(input.Name, input.Email, input.Subject, input.Message); err != nil {
		log.Println("❌ Envoi email contact:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Échec de l'envoi du message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Message envoyé avec succès"})
}
