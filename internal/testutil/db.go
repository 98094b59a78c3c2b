package testutil

import (
	"fmt"
	"testing"

	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenTestDB her test için izole bir in-memory sqlite açar ve paket
// genelindeki database.DB'yi ona yönlendirir.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("test veritabanı açılamadı: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB alınamadı: %v", err)
	}
	// In-memory veritabanı tek bağlantı üzerinden yaşamalı.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migration başarısız: %v", err)
	}

	database.DB = db
	return db
}

// SeedUser testlerde işlem yapacak kullanıcıyı oluşturur.
func SeedUser(t *testing.T, db *gorm.DB, role models.UserRole) models.User {
	t.Helper()

	user := models.User{
		Name:         "Test Kullanıcısı",
		Email:        fmt.Sprintf("%s@test.local", uuid.NewString()),
		PasswordHash: "x",
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("test kullanıcısı oluşturulamadı: %v", err)
	}
	return user
}

// SeedSKU testler için SKU kaydı oluşturur.
func SeedSKU(t *testing.T, db *gorm.DB, code string) models.SKU {
	t.Helper()

	sku := models.SKU{
		Code:        code,
		ProductName: "Test Ürünü " + code,
		FabricType:  "Pamuk",
		Category:    "Tişört",
		Size:        "M",
		Color:       "Siyah",
	}
	if err := db.Create(&sku).Error; err != nil {
		t.Fatalf("test SKU oluşturulamadı: %v", err)
	}
	return sku
}
