package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"farmfresh_back_end/internal/database"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

func bucket() string {
	b := os.Getenv("MINIO_BUCKET")
	if b == "" {
		b = "farmfresh-uploads"
	}
	return b
}

// UploadFile pousse un fichier multipart vers MinIO sous folder/uuid.ext et
// retourne l'URL publique. Le flux est streamé directement, aucun fichier
// temporaire local.
func UploadFile(ctx context.Context, folder string, file *multipart.FileHeader) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	objectName := folder + "/" + uuid.New().String() + path.Ext(file.Filename)

	_, err = database.MinIO.PutObject(ctx, bucket(), objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	scheme := "http"
	if os.Getenv("MINIO_USE_SSL") == "true" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, os.Getenv("MINIO_ENDPOINT"), bucket(), objectName), nil
}

// GenerateSignedURL produit une URL GET présignée pour un objet stocké,
// à partir de son URL publique ou de sa clé relative.
func GenerateSignedURL(ctx context.Context, objectPath string, duration time.Duration) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	key := objectPath
	if i := strings.Index(key, "/"+bucket()+"/"); i >= 0 {
		key = key[i+len(bucket())+2:]
	}

	presignedURL, err := database.MinIO.PresignedGetObject(ctx, bucket(), key, duration, make(url.Values))
	if err != nil {
		return "", err
	}
	return presignedURL.String(), nil
}
