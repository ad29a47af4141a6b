package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey"     json:"id"`
	Email        string      `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string      `gorm:"not null"                 json:"-"`
	Roles        []Role      `gorm:"many2many:user_roles"     json:"roles"`
	Claims       []UserClaim `gorm:"foreignKey:UserID"        json:"claims"`
	CreatedAt    time.Time   `json:"created_at"`
}

type Role struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;not null"     json:"name"`
}

type UserClaim struct {
	ID     uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Name   string    `gorm:"not null"                 json:"name"`
	Value  string    `gorm:"not null"                 json:"value"`
}

// RefreshToken is redeemable at most once: Used flips false->true exactly once,
// enforced by a compare-and-set update in the repo layer.
type RefreshToken struct {
	ID          uint      `gorm:"primaryKey"               json:"id"`
	Token       string    `gorm:"uniqueIndex;not null"     json:"token"`
	JTI         string    `gorm:"index;not null"           json:"jti"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `gorm:"not null"                 json:"expires_at"`
	Used        bool      `gorm:"default:false"            json:"used"`
	Invalidated bool      `gorm:"default:false"            json:"invalidated"`
}

type Post struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	Name      string    `gorm:"not null"                 json:"name"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	Tags      []PostTag `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"tags"`
}

// PostTag references tags by name: the tag name is the canonical tag identity,
// shared across posts.
type PostTag struct {
	ID      uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID  uuid.UUID `gorm:"type:uuid;index;not null" json:"post_id"`
	TagName string    `gorm:"index;not null"           json:"tag_name"`
}

type Tag struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null"     json:"name"`
	CreatorID uuid.UUID `gorm:"type:uuid;not null"       json:"creator_id"`
	CreatedAt time.Time `json:"created_at"`
}
