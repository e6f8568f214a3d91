package models

import "time"

// Client represents a registered salon client.
type Client struct {
	ID           string    `bson:"id" json:"id"`
	FullName     string    `bson:"full_name" json:"fullName"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitzero"`
}

// ClientRegistration is the payload for creating a new client account.
type ClientRegistration struct {
	FullName string `json:"fullName" binding:"required"`
	Phone    string `json:"phone"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// ClientProfileUpdate carries the editable profile fields.
type ClientProfileUpdate struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}
