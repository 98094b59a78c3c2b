package warehouse

import (
	"errors"
	"testing"
	"time"

	"konfeksiyon-backend/internal/models"
	"konfeksiyon-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func seedFinished(t *testing.T, db *gorm.DB, skuID uint, pieces int) {
	t.Helper()
	if err := db.Create(&models.FinishingRecord{
		SKUID:          skuID,
		FinishedPieces: pieces,
		FinishingDate:  time.Now(),
	}).Error; err != nil {
		t.Fatal(err)
	}
}

func readStock(t *testing.T, db *gorm.DB, skuID uint) models.WarehouseStock {
	t.Helper()
	var stock models.WarehouseStock
	if err := db.Where("sku_id = ?", skuID).First(&stock).Error; err != nil {
		t.Fatalf("stok satırı okunamadı: %v", err)
	}
	return stock
}

func TestCreateRecordFinishedBalance(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.SeedUser(t, db, models.RoleWarehouseHead)
	sku := testutil.SeedSKU(t, db, "ETK-001")

	seedFinished(t, db, sku.ID, 40)

	_, err := CreateRecord(user, CreateInput{
		SKUID:            sku.ID,
		QuantityReceived: 50,
		StorageLocation:  "Raf A1",
		ReceivedDate:     time.Now(),
	})
	var fe *fiber.Error
	if !errors.As(err, &fe) || fe.Code != fiber.StatusUnprocessableEntity {
		t.Fatalf("bakiye aşımı için beklenen 422, gelen: %v", err)
	}

	if _, err := CreateRecord(user, CreateInput{
		SKUID:            sku.ID,
		QuantityReceived: 30,
		StorageLocation:  "Raf A1",
		ReceivedDate:     time.Now(),
	}); err != nil {
		t.Fatalf("geçerli giriş reddedildi: %v", err)
	}

	stock := readStock(t, db, sku.ID)
	if stock.AvailableQuantity != 30 {
		t.Fatalf("stok 30 olmalı, gelen: %d", stock.AvailableQuantity)
	}
	if stock.StorageLocation != "Raf A1" {
		t.Fatalf("konum 'Raf A1' olmalı, gelen: %q", stock.StorageLocation)
	}
}

func TestRecalcStockMergesLocations(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.SeedUser(t, db, models.RoleWarehouseHead)
	sku := testutil.SeedSKU(t, db, "ETK-002")

	seedFinished(t, db, sku.ID, 100)

	for _, loc := range []string{"Raf A1", "Raf B2", "Raf A1"} {
		if _, err := CreateRecord(user, CreateInput{
			SKUID:            sku.ID,
			QuantityReceived: 10,
			StorageLocation:  loc,
			ReceivedDate:     time.Now(),
		}); err != nil {
			t.Fatal(err)
		}
	}

	stock := readStock(t, db, sku.ID)
	if stock.AvailableQuantity != 30 {
		t.Fatalf("stok 30 olmalı, gelen: %d", stock.AvailableQuantity)
	}
	if stock.StorageLocation != "Raf A1, Raf B2" {
		t.Fatalf("konumlar tekrarsız birleşmeli, gelen: %q", stock.StorageLocation)
	}
}

func TestDeleteRecordRecalculatesStock(t *testing.T) {
	db := testutil.OpenTestDB(t)
	admin := testutil.SeedUser(t, db, models.RoleAdmin)
	sku := testutil.SeedSKU(t, db, "ETK-003")

	seedFinished(t, db, sku.ID, 50)

	rec, err := CreateRecord(admin, CreateInput{
		SKUID:            sku.ID,
		QuantityReceived: 20,
		StorageLocation:  "Raf C3",
		ReceivedDate:     time.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := DeleteRecord(admin, rec.ID); err != nil {
		t.Fatalf("silme reddedildi: %v", err)
	}

	stock := readStock(t, db, sku.ID)
	if stock.AvailableQuantity != 0 {
		t.Fatalf("silme sonrası stok 0 olmalı, gelen: %d", stock.AvailableQuantity)
	}
}
