package repo

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/postbook/postbook/internal/models"
)

func testRepo(t *testing.T) *GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.UserClaim{},
		&models.RefreshToken{},
		&models.Post{},
		&models.PostTag{},
		&models.Tag{},
	)
	if err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return New(db)
}
