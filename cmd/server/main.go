package main

import (
	"log"
	"os"
	"time"

	"farmfresh_back_end/internal/config"
	"farmfresh_back_end/internal/database"
	"farmfresh_back_end/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()
	config.MustVerify()

	database.ConnectDatabases()
	defer database.CloseMongo()

	r := gin.Default()

	// Les images transitent vers le stockage objet, pas besoin de plus
	r.MaxMultipartMemory = 16 << 20 // 16 MB

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur FarmFresh lancé sur le port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("❌ Erreur serveur HTTP:", err)
	}
}

func allowedOrigins() []string {
	if origin := os.Getenv("CORS_ORIGIN"); origin != "" {
		return []string{origin}
	}
	return []string{"http://localhost:5173", "http://localhost:3000"}
}
