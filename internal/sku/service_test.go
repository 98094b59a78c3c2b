package sku

import (
	"errors"
	"testing"
	"time"

	"konfeksiyon-backend/internal/models"
	"konfeksiyon-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
)

func TestCreateNormalizesAndRejectsDuplicates(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.SeedUser(t, db, models.RoleAdmin)

	created, err := Create(user, CreateInput{
		Code:        "  tsh-100 ",
		ProductName: "Basic Tişört",
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.Code != "TSH-100" {
		t.Fatalf("kod büyük harfe çevrilmeli, gelen: %q", created.Code)
	}

	// Aynı kod farklı harf düzeniyle de reddedilir.
	_, err = Create(user, CreateInput{
		Code:        "Tsh-100",
		ProductName: "Başka Ürün",
	})
	var fe *fiber.Error
	if !errors.As(err, &fe) || fe.Code != fiber.StatusConflict {
		t.Fatalf("mükerrer kod için beklenen 409, gelen: %v", err)
	}
}

func TestCreateRejectsDuplicateBarcode(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.SeedUser(t, db, models.RoleAdmin)

	if _, err := Create(user, CreateInput{
		Code:        "TSH-101",
		ProductName: "Tişört",
		Barcode:     "8690000000017",
	}); err != nil {
		t.Fatal(err)
	}

	_, err := Create(user, CreateInput{
		Code:        "TSH-102",
		ProductName: "Tişört",
		Barcode:     "8690000000017",
	})
	var fe *fiber.Error
	if !errors.As(err, &fe) || fe.Code != fiber.StatusConflict {
		t.Fatalf("mükerrer barkod için beklenen 409, gelen: %v", err)
	}
}

func TestBulkCreatePartialSuccess(t *testing.T) {
	db := testutil.OpenTestDB(t)
	admin := testutil.SeedUser(t, db, models.RoleAdmin)
	staff := testutil.SeedUser(t, db, models.RoleFabricStaff)

	// Mevcut bir SKU ile çakıştıralım.
	testutil.SeedSKU(t, db, "TSH-200")

	rows := []BulkRow{
		{SKUCode: "TSH-201", SKUName: "Tişört Siyah", Price: "99.90"},
		{SKUCode: "TSH-200", SKUName: "Çakışan"},          // kayıtlı kod
		{SKUCode: "", SKUName: "Kodsuz"},                  // kod yok
		{SKUCode: "TSH-202", SKUName: "Tişört Beyaz"},     // geçerli
		{SKUCode: "TSH-202", SKUName: "Tekrarlanan satır"}, // yükleme içi tekrar
	}

	// Admin olmayan toplu yükleyemez.
	_, err := BulkCreate(staff, "skus.xlsx", rows)
	var fe *fiber.Error
	if !errors.As(err, &fe) || fe.Code != fiber.StatusForbidden {
		t.Fatalf("admin olmayan yükleme için beklenen 403, gelen: %v", err)
	}

	result, err := BulkCreate(admin, "skus.xlsx", rows)
	if err != nil {
		t.Fatal(err)
	}
	if result.TotalRows != 5 {
		t.Fatalf("toplam 5 satır olmalı, gelen: %d", result.TotalRows)
	}
	if result.SuccessCount != 2 {
		t.Fatalf("TSH-201 ve ilk TSH-202 başarılı olmalı, gelen: %d", result.SuccessCount)
	}
	if result.ErrorCount != 3 {
		t.Fatalf("3 hatalı satır beklenirdi, gelen: %d", result.ErrorCount)
	}
	// Tekrar eden kodun yalnızca ikinci satırı hata alır.
	errRows := make(map[int]bool, len(result.Errors))
	for _, e := range result.Errors {
		errRows[e.Row] = true
	}
	for _, want := range []int{2, 3, 5} {
		if !errRows[want] {
			t.Fatalf("satır %d hatalı olmalı, hatalar: %+v", want, result.Errors)
		}
	}
	if errRows[4] {
		t.Fatalf("ilk TSH-202 satırı hata almamalı, hatalar: %+v", result.Errors)
	}

	var count int64
	db.Model(&models.SKU{}).Where("code = ?", "TSH-201").Count(&count)
	if count != 1 {
		t.Fatal("geçerli satır veritabanına yazılmalı")
	}
	db.Model(&models.SKU{}).Where("code = ?", "TSH-202").Count(&count)
	if count != 1 {
		t.Fatal("tekrar eden kodun ilk satırı veritabanına yazılmalı")
	}

	// Yükleme geçmişine satır düşer.
	var imp models.ExcelImport
	if err := db.Where("batch_id = ?", result.BatchID).First(&imp).Error; err != nil {
		t.Fatal(err)
	}
	if imp.ImportType != "sku" {
		t.Fatalf("aktarım tipi 'sku' olmalı, gelen: %q", imp.ImportType)
	}
}

func TestDeleteCascadesStageHistory(t *testing.T) {
	db := testutil.OpenTestDB(t)
	admin := testutil.SeedUser(t, db, models.RoleAdmin)
	sku := testutil.SeedSKU(t, db, "TSH-300")

	if err := db.Create(&models.FabricRecord{
		SKUID:          sku.ID,
		FabricType:     "Pamuk",
		MetersReceived: 10,
		Date:           time.Now(),
	}).Error; err != nil {
		t.Fatal(err)
	}
	ret := models.ReturnRecord{
		SKUID:             sku.ID,
		OrderID:           "ORD-300",
		Quantity:          1,
		ReturnCondition:   models.ReturnConditionRefinishing,
		ReturnSourcePanel: "Trendyol",
		ReturnDate:        time.Now(),
	}
	if err := db.Create(&ret).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&models.ReturnProcessing{
		ReturnID: ret.ID,
		Status:   models.ReturnProcessingPending,
	}).Error; err != nil {
		t.Fatal(err)
	}
	sid := sku.ID
	if err := db.Create(&models.ActivityLog{
		SKUID:  &sid,
		Module: "fabric",
		Action: models.ActivityActionCreate,
	}).Error; err != nil {
		t.Fatal(err)
	}

	if err := Delete(admin, sku.ID); err != nil {
		t.Fatal(err)
	}

	var count int64
	db.Model(&models.FabricRecord{}).Where("sku_id = ?", sku.ID).Count(&count)
	if count != 0 {
		t.Fatal("kumaş geçmişi silinmeli")
	}
	db.Model(&models.ReturnProcessing{}).Count(&count)
	if count != 0 {
		t.Fatal("işleme kuyruğu silinmeli")
	}
	db.Model(&models.SKU{}).Where("id = ?", sku.ID).Count(&count)
	if count != 0 {
		t.Fatal("SKU silinmeli")
	}

	// Eski loglar kalır ama SKU referansı NULL'a çekilir.
	var logs []models.ActivityLog
	if err := db.Where("module = ?", "fabric").Find(&logs).Error; err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 || logs[0].SKUID != nil {
		t.Fatalf("eski log SKU'suz kalmalı: %+v", logs)
	}
}
