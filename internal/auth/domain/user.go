package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user account can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DefaultAvatarPath is assigned when no avatar is uploaded at registration.
const DefaultAvatarPath = "images/default-avatar.png"

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	DisplayName  string             `bson:"display_name" json:"displayName"`
	Role         string             `bson:"role" json:"role"`
	AvatarPath   string             `bson:"avatar" json:"avatar"`
	GoogleID     string             `bson:"google_id,omitempty" json:"googleId,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"-"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"-"`
}

// PublicUser is the only user shape handed to clients. The password hash is
// stripped here explicitly rather than relying on serialization tags alone.
type PublicUser struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
	AvatarPath  string `json:"avatar"`
	GoogleID    string `json:"googleId,omitempty"`
}

// Public projects the user record into its client-visible view.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID.Hex(),
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		AvatarPath:  u.AvatarPath,
		GoogleID:    u.GoogleID,
	}
}

// NormalizeEmail lowercases and trims an email address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// LocalPart returns the part of an email address before the "@". Used as the
// default display name when none is supplied.
func LocalPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
