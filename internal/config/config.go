package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
}

// MustVerify arrête le process si une variable indispensable manque.
// Les services optionnels (Redis, MinIO, Elastic, SMTP) se dégradent
// silencieusement, eux.
func MustVerify() {
	required := []string{"MONGO_URI", "JWT_SECRET"}
	for _, key := range required {
		if os.Getenv(key) == "" {
			log.Fatalf("❌ Variable d'environnement requise manquante : %s", key)
		}
	}
}
