package cutting

import (
	"errors"
	"testing"
	"time"

	"konfeksiyon-backend/internal/ledger"
	"konfeksiyon-backend/internal/models"
	"konfeksiyon-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
)

func TestCreateRecordRequiresFabric(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.SeedUser(t, db, models.RoleCuttingMaster)
	sku := testutil.SeedSKU(t, db, "TSH-001")

	_, err := CreateRecord(user, CreateInput{
		SKUID:           sku.ID,
		TotalFabricUsed: 10,
		TotalPiecesCut:  5,
		CuttingDate:     time.Now(),
	})
	if err == nil {
		t.Fatal("kumaş girişi yokken kesim kabul edildi")
	}
	var fe *fiber.Error
	if !errors.As(err, &fe) || fe.Code != fiber.StatusUnprocessableEntity {
		t.Fatalf("beklenen 422, gelen: %v", err)
	}
}

func TestCreateRecordFabricBalance(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.SeedUser(t, db, models.RoleCuttingMaster)
	sku := testutil.SeedSKU(t, db, "TSH-002")

	if err := db.Create(&models.FabricRecord{
		SKUID:          sku.ID,
		FabricType:     "Pamuk",
		MetersReceived: 100,
		Date:           time.Now(),
	}).Error; err != nil {
		t.Fatal(err)
	}

	// Bakiyenin üstü reddedilir.
	_, err := CreateRecord(user, CreateInput{
		SKUID:           sku.ID,
		TotalFabricUsed: 150,
		TotalPiecesCut:  60,
		CuttingDate:     time.Now(),
	})
	var fe *fiber.Error
	if !errors.As(err, &fe) || fe.Code != fiber.StatusUnprocessableEntity {
		t.Fatalf("bakiye aşımı için beklenen 422, gelen: %v", err)
	}

	// Bakiye içi kabul edilir.
	rec, err := CreateRecord(user, CreateInput{
		SKUID:           sku.ID,
		TotalFabricUsed: 80,
		TotalPiecesCut:  40,
		CuttingDate:     time.Now(),
	})
	if err != nil {
		t.Fatalf("geçerli kesim reddedildi: %v", err)
	}
	if rec.ID == 0 {
		t.Fatal("kayıt ID atanmadı")
	}

	available, err := ledger.AvailableFabric(db, sku.ID)
	if err != nil {
		t.Fatal(err)
	}
	if available != 20 {
		t.Fatalf("kalan kumaş 20 olmalı, gelen: %.2f", available)
	}

	// İkinci kesim kalan bakiyeyi de aşamaz.
	_, err = CreateRecord(user, CreateInput{
		SKUID:           sku.ID,
		TotalFabricUsed: 25,
		TotalPiecesCut:  10,
		CuttingDate:     time.Now(),
	})
	if !errors.As(err, &fe) || fe.Code != fiber.StatusUnprocessableEntity {
		t.Fatalf("kalan bakiye aşımı için beklenen 422, gelen: %v", err)
	}
}

func TestUpdateRecordAdminOnly(t *testing.T) {
	db := testutil.OpenTestDB(t)
	staff := testutil.SeedUser(t, db, models.RoleCuttingMaster)
	admin := testutil.SeedUser(t, db, models.RoleAdmin)
	sku := testutil.SeedSKU(t, db, "TSH-003")

	if err := db.Create(&models.FabricRecord{
		SKUID:          sku.ID,
		FabricType:     "Pamuk",
		MetersReceived: 50,
		Date:           time.Now(),
	}).Error; err != nil {
		t.Fatal(err)
	}

	rec, err := CreateRecord(staff, CreateInput{
		SKUID:           sku.ID,
		TotalFabricUsed: 30,
		TotalPiecesCut:  15,
		CuttingDate:     time.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}

	newUsed := 40.0
	_, err = UpdateRecord(staff, rec.ID, UpdateInput{TotalFabricUsed: &newUsed})
	var fe *fiber.Error
	if !errors.As(err, &fe) || fe.Code != fiber.StatusForbidden {
		t.Fatalf("admin olmayan güncelleme için beklenen 403, gelen: %v", err)
	}

	// Admin güncellemesinde satırın eski tüketimi bakiyeye iade edilir:
	// 50 - 30 + 30 = 50 tavan, 40 kabul.
	updated, err := UpdateRecord(admin, rec.ID, UpdateInput{TotalFabricUsed: &newUsed})
	if err != nil {
		t.Fatalf("admin güncellemesi reddedildi: %v", err)
	}
	if updated.TotalFabricUsed != 40 {
		t.Fatalf("güncellenen tüketim 40 olmalı, gelen: %.2f", updated.TotalFabricUsed)
	}

	// Tavanın üstü yine reddedilir.
	tooMuch := 60.0
	_, err = UpdateRecord(admin, rec.ID, UpdateInput{TotalFabricUsed: &tooMuch})
	if !errors.As(err, &fe) || fe.Code != fiber.StatusUnprocessableEntity {
		t.Fatalf("tavan aşımı için beklenen 422, gelen: %v", err)
	}
}

func TestDeleteRecordAdminOnly(t *testing.T) {
	db := testutil.OpenTestDB(t)
	staff := testutil.SeedUser(t, db, models.RoleCuttingMaster)
	admin := testutil.SeedUser(t, db, models.RoleAdmin)
	sku := testutil.SeedSKU(t, db, "TSH-004")

	if err := db.Create(&models.FabricRecord{
		SKUID:          sku.ID,
		FabricType:     "Pamuk",
		MetersReceived: 50,
		Date:           time.Now(),
	}).Error; err != nil {
		t.Fatal(err)
	}

	rec, err := CreateRecord(staff, CreateInput{
		SKUID:           sku.ID,
		TotalFabricUsed: 30,
		TotalPiecesCut:  15,
		CuttingDate:     time.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}

	var fe *fiber.Error
	if err := DeleteRecord(staff, rec.ID); !errors.As(err, &fe) || fe.Code != fiber.StatusForbidden {
		t.Fatalf("admin olmayan silme için beklenen 403, gelen: %v", err)
	}

	if err := DeleteRecord(admin, rec.ID); err != nil {
		t.Fatalf("admin silmesi reddedildi: %v", err)
	}

	// Silme sonrası kumaş bakiyesi geri gelir.
	available, err := ledger.AvailableFabric(db, sku.ID)
	if err != nil {
		t.Fatal(err)
	}
	if available != 50 {
		t.Fatalf("silme sonrası bakiye 50 olmalı, gelen: %.2f", available)
	}
}
