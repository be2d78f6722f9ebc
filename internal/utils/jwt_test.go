package utils

import (
	"testing"
	"time"

	"farmfresh_back_end/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGenerateAndParseJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "clé-de-test")

	user := models.User{ID: primitive.NewObjectID(), Role: models.RoleFarmer}
	token, err := GenerateJWT(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, role, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), userID)
	assert.Equal(t, models.RoleFarmer, role)
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "clé-de-test")
	token, err := GenerateJWT(models.User{ID: primitive.NewObjectID(), Role: models.RoleUser})
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "autre-clé")
	_, _, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	_, _, err := ParseJWT("pas.un.jwt")
	assert.Error(t, err)
}

func TestParseJWTRejectsExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "clé-de-test")

	claims := jwt.MapClaims{
		"user_id": primitive.NewObjectID().Hex(),
		"role":    "user",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("clé-de-test"))
	require.NoError(t, err)

	_, _, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestParseJWTRejectsUnknownRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "clé-de-test")

	claims := jwt.MapClaims{
		"user_id": primitive.NewObjectID().Hex(),
		"role":    "superadmin",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("clé-de-test"))
	require.NoError(t, err)

	_, _, err = ParseJWT(token)
	assert.Error(t, err)
}
