package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rôle utilisateur : variante fermée, toute valeur inconnue est rejetée par ParseRole.
type Role string

const (
	RoleUser   Role = "user"
	RoleFarmer Role = "farmer"
	RoleAdmin  Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleFarmer, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("rôle inconnu: %q", s)
	}
}

// Statut d'approbation, partagé entre comptes fermiers et produits.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(s), nil
	default:
		return "", fmt.Errorf("statut inconnu: %q", s)
	}
}

type User struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Email       string             `json:"email" bson:"email"`
	Password    string             `json:"-" bson:"password"`
	Role        Role               `json:"role" bson:"role"`
	Status      Status             `json:"status" bson:"status"`
	IsVerified  bool               `json:"isVerified" bson:"isVerified"`
	Avatar      string             `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Address     string             `json:"address,omitempty" bson:"address,omitempty"`
	Phone       string             `json:"phone,omitempty" bson:"phone,omitempty"`
	DocumentURL string             `json:"documentUrl,omitempty" bson:"documentUrl,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CanLogin applique la règle d'accès par rôle : un fermier doit avoir été
// approuvé par un admin avant de pouvoir ouvrir une session.
func (u User) CanLogin() bool {
	switch u.Role {
	case RoleFarmer:
		return u.Status == StatusApproved
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}
