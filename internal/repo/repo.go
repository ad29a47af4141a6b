package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrUserExists      = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrTagExists       = errors.New("tag already exists")
	ErrRefreshNotFound = errors.New("refresh token not found")
	ErrAlreadyRedeemed = errors.New("refresh token already redeemed")
)

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}
