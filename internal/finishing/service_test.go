package finishing

import (
	"errors"
	"testing"
	"time"

	"konfeksiyon-backend/internal/ledger"
	"konfeksiyon-backend/internal/models"
	"konfeksiyon-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
)

func TestCreateRecordConsumesStitchedBalance(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.SeedUser(t, db, models.RoleFinishingHead)
	sku := testutil.SeedSKU(t, db, "GML-001")

	if err := db.Create(&models.ProductionRecord{
		SKUID:          sku.ID,
		TotalStitched:  30,
		ProductionDate: time.Now(),
	}).Error; err != nil {
		t.Fatal(err)
	}

	// Sağlam + hurda toplamı bakiyeyi aşamaz.
	_, err := CreateRecord(user, CreateInput{
		SKUID:          sku.ID,
		FinishedPieces: 25,
		RejectedPieces: 10,
		FinishingDate:  time.Now(),
	})
	var fe *fiber.Error
	if !errors.As(err, &fe) || fe.Code != fiber.StatusUnprocessableEntity {
		t.Fatalf("bakiye aşımı için beklenen 422, gelen: %v", err)
	}

	if _, err := CreateRecord(user, CreateInput{
		SKUID:          sku.ID,
		FinishedPieces: 25,
		RejectedPieces: 5,
		FinishingDate:  time.Now(),
	}); err != nil {
		t.Fatalf("geçerli kayıt reddedildi: %v", err)
	}

	// Bakiye tamamen tüketildi; hurda da düşümde sayılır.
	available, err := ledger.AvailableForFinishing(db, sku.ID)
	if err != nil {
		t.Fatal(err)
	}
	if available != 0 {
		t.Fatalf("kalan dikilmiş parça 0 olmalı, gelen: %d", available)
	}

	// Depo tavanını yalnızca sağlam parçalar belirler.
	forWarehouse, err := ledger.AvailableForWarehouse(db, sku.ID)
	if err != nil {
		t.Fatal(err)
	}
	if forWarehouse != 25 {
		t.Fatalf("depoya uygun 25 olmalı, gelen: %d", forWarehouse)
	}
}

func TestCreateRecordRejectsEmptyCounts(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.SeedUser(t, db, models.RoleFinishingHead)
	sku := testutil.SeedSKU(t, db, "GML-002")

	_, err := CreateRecord(user, CreateInput{
		SKUID:         sku.ID,
		FinishingDate: time.Now(),
	})
	var fe *fiber.Error
	if !errors.As(err, &fe) || fe.Code != fiber.StatusBadRequest {
		t.Fatalf("boş sayılar için beklenen 400, gelen: %v", err)
	}
}

func TestDeleteRecordUnlinksReturnProcessing(t *testing.T) {
	db := testutil.OpenTestDB(t)
	admin := testutil.SeedUser(t, db, models.RoleAdmin)
	sku := testutil.SeedSKU(t, db, "GML-003")

	rec := models.FinishingRecord{
		SKUID:          sku.ID,
		FinishedPieces: 5,
		FinishingDate:  time.Now(),
		Source:         models.FinishingSourceReturn,
		Tag:            "Refinished",
	}
	if err := db.Create(&rec).Error; err != nil {
		t.Fatal(err)
	}
	ret := models.ReturnRecord{
		SKUID:             sku.ID,
		OrderID:           "ORD-GML-003",
		Quantity:          5,
		ReturnCondition:   models.ReturnConditionRefinishing,
		ReturnSourcePanel: "Trendyol",
		ReturnDate:        time.Now(),
	}
	if err := db.Create(&ret).Error; err != nil {
		t.Fatal(err)
	}
	proc := models.ReturnProcessing{
		ReturnID:          ret.ID,
		Status:            models.ReturnProcessingRefinished,
		FinishingRecordID: &rec.ID,
	}
	if err := db.Create(&proc).Error; err != nil {
		t.Fatal(err)
	}

	if err := DeleteRecord(admin, rec.ID); err != nil {
		t.Fatalf("silme reddedildi: %v", err)
	}

	var got models.ReturnProcessing
	if err := db.First(&got, proc.ID).Error; err != nil {
		t.Fatal(err)
	}
	if got.FinishingRecordID != nil {
		t.Fatal("silinen finishing kaydının referansı temizlenmedi")
	}
}
