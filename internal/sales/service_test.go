package sales

import (
	"errors"
	"testing"
	"time"

	"konfeksiyon-backend/internal/models"
	"konfeksiyon-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func seedWarehoused(t *testing.T, db *gorm.DB, skuID uint, qty int) {
	t.Helper()
	if err := db.Create(&models.FinishingRecord{
		SKUID:          skuID,
		FinishedPieces: qty,
		FinishingDate:  time.Now(),
	}).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&models.WarehouseRecord{
		SKUID:            skuID,
		QuantityReceived: qty,
		StorageLocation:  "Raf A1",
		ReceivedDate:     time.Now(),
	}).Error; err != nil {
		t.Fatal(err)
	}
}

func TestCreateRecordWarehouseBalance(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.SeedUser(t, db, models.RoleSalesTeam)
	sku := testutil.SeedSKU(t, db, "SAT-001")

	seedWarehoused(t, db, sku.ID, 50)

	_, err := CreateRecord(user, CreateInput{
		SKUID:        sku.ID,
		QuantitySold: 60,
		PlatformName: "Trendyol",
		SaleDate:     time.Now(),
	})
	var fe *fiber.Error
	if !errors.As(err, &fe) || fe.Code != fiber.StatusUnprocessableEntity {
		t.Fatalf("bakiye aşımı için beklenen 422, gelen: %v", err)
	}

	if _, err := CreateRecord(user, CreateInput{
		SKUID:        sku.ID,
		QuantitySold: 50,
		PlatformName: "Trendyol",
		SaleDate:     time.Now(),
	}); err != nil {
		t.Fatalf("geçerli satış reddedildi: %v", err)
	}

	// Satış sonrası stok önbelleği sıfıra düşer.
	var stock models.WarehouseStock
	if err := db.Where("sku_id = ?", sku.ID).First(&stock).Error; err != nil {
		t.Fatal(err)
	}
	if stock.AvailableQuantity != 0 {
		t.Fatalf("stok 0 olmalı, gelen: %d", stock.AvailableQuantity)
	}

	// Depo boşaldıktan sonra yeni satış kabul edilmez.
	_, err = CreateRecord(user, CreateInput{
		SKUID:        sku.ID,
		QuantitySold: 1,
		PlatformName: "Trendyol",
		SaleDate:     time.Now(),
	})
	if !errors.As(err, &fe) || fe.Code != fiber.StatusUnprocessableEntity {
		t.Fatalf("boş depo için beklenen 422, gelen: %v", err)
	}
}

func TestCreateRecordComputesTotalAmount(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.SeedUser(t, db, models.RoleSalesTeam)
	sku := testutil.SeedSKU(t, db, "SAT-002")

	seedWarehoused(t, db, sku.ID, 10)

	rec, err := CreateRecord(user, CreateInput{
		SKUID:        sku.ID,
		QuantitySold: 4,
		PlatformName: "Hepsiburada",
		UnitPrice:    decimal.RequireFromString("149.90"),
		SaleDate:     time.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}

	want := decimal.RequireFromString("599.60")
	if !rec.TotalAmount.Equal(want) {
		t.Fatalf("toplam tutar %s olmalı, gelen: %s", want, rec.TotalAmount)
	}
}

func TestConfirmImportPartialSuccess(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.SeedUser(t, db, models.RoleSalesTeam)
	sku := testutil.SeedSKU(t, db, "SAT-003")

	seedWarehoused(t, db, sku.ID, 5)

	rows := []ImportRow{
		{SKUID: sku.ID, SKUCode: sku.Code, QuantitySold: 3, PlatformName: "Trendyol", SaleDate: "2026-08-10"},
		// Kalan bakiyeyi aşar, reddedilmeli.
		{SKUID: sku.ID, SKUCode: sku.Code, QuantitySold: 4, PlatformName: "Trendyol", SaleDate: "2026-08-11"},
		{SKUID: sku.ID, SKUCode: sku.Code, QuantitySold: 2, PlatformName: "Trendyol", SaleDate: "2026-08-12"},
	}

	result, err := ConfirmImport(user, "satislar.xlsx", rows)
	if err != nil {
		t.Fatal(err)
	}
	if result.Total != 3 || result.Success != 2 || result.Failed != 1 {
		t.Fatalf("beklenen 3/2/1, gelen: %d/%d/%d", result.Total, result.Success, result.Failed)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("tek hata mesajı beklenirdi, gelen: %v", result.Errors)
	}

	// Yükleme geçmişine tek satır düşer.
	var imp models.ExcelImport
	if err := db.Where("batch_id = ?", result.BatchID).First(&imp).Error; err != nil {
		t.Fatal(err)
	}
	if imp.ImportType != "sales" || imp.SuccessfulRecords != 2 || imp.FailedRecords != 1 {
		t.Fatalf("geçmiş satırı tutarsız: %+v", imp)
	}
}
