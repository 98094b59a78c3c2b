package database

import (
	"log"

	"konfeksiyon-backend/internal/config"
	"konfeksiyon-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}

// Migrate şemayı günceller. Testlerde sqlite üzerinde de kullanılır.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.SKU{},
		&models.FabricRecord{},
		&models.CuttingRecord{},
		&models.ProductionRecord{},
		&models.FinishingRecord{},
		&models.WarehouseRecord{},
		&models.SalesRecord{},
		&models.ReturnRecord{},
		&models.ReturnProcessing{},
		&models.WarehouseStock{},
		&models.ActivityLog{},
		&models.ExcelImport{},
	)
}
