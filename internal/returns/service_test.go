package returns

import (
	"errors"
	"testing"
	"time"

	"konfeksiyon-backend/internal/models"
	"konfeksiyon-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
)

func TestCreateSaleableReturnRestocksWarehouse(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.SeedUser(t, db, models.RoleSalesTeam)
	sku := testutil.SeedSKU(t, db, "IAD-001")

	ret, err := CreateRecord(user, CreateInput{
		SKUID:             sku.ID,
		OrderID:           "ORD-1001",
		Quantity:          3,
		ReturnType:        models.ReturnTypeECommerce,
		ReturnCondition:   models.ReturnConditionSaleable,
		ReturnSourcePanel: "Trendyol",
		ReturnDate:        time.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}

	// Depoya iade kaynaklı bir giriş satırı düşer.
	var wrec models.WarehouseRecord
	if err := db.Where("return_id = ?", ret.ID).First(&wrec).Error; err != nil {
		t.Fatalf("iadeye bağlı depo satırı bulunamadı: %v", err)
	}
	if wrec.QuantityReceived != 3 {
		t.Fatalf("depo girişi 3 olmalı, gelen: %d", wrec.QuantityReceived)
	}
	if wrec.StorageLocation != "İade - Trendyol" {
		t.Fatalf("konum 'İade - Trendyol' olmalı, gelen: %q", wrec.StorageLocation)
	}

	// Stok önbelleği güncellenir.
	var stock models.WarehouseStock
	if err := db.Where("sku_id = ?", sku.ID).First(&stock).Error; err != nil {
		t.Fatal(err)
	}
	if stock.AvailableQuantity != 3 {
		t.Fatalf("stok 3 olmalı, gelen: %d", stock.AvailableQuantity)
	}
}

func TestCreateReturnDuplicateOrderID(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.SeedUser(t, db, models.RoleSalesTeam)
	sku := testutil.SeedSKU(t, db, "IAD-002")

	in := CreateInput{
		SKUID:             sku.ID,
		OrderID:           "ORD-2001",
		Quantity:          1,
		ReturnCondition:   models.ReturnConditionRejected,
		ReturnSourcePanel: "Hepsiburada",
		ReturnDate:        time.Now(),
	}
	if _, err := CreateRecord(user, in); err != nil {
		t.Fatal(err)
	}

	_, err := CreateRecord(user, in)
	var fe *fiber.Error
	if !errors.As(err, &fe) || fe.Code != fiber.StatusConflict {
		t.Fatalf("mükerrer sipariş için beklenen 409, gelen: %v", err)
	}

	exists, err := OrderIDExists("ORD-2001")
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Fatal("sipariş numarası kayıtlı görünmeli")
	}
	exists, err = OrderIDExists("ORD-YOK")
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Fatal("olmayan sipariş numarası kayıtlı görünmemeli")
	}
}

func TestRefinishingFlow(t *testing.T) {
	db := testutil.OpenTestDB(t)
	qc := testutil.SeedUser(t, db, models.RoleQCTeam)
	staff := testutil.SeedUser(t, db, models.RoleSalesTeam)
	sku := testutil.SeedSKU(t, db, "IAD-003")

	ret, err := CreateRecord(staff, CreateInput{
		SKUID:             sku.ID,
		OrderID:           "ORD-3001",
		Quantity:          4,
		ReturnCondition:   models.ReturnConditionRefinishing,
		ReturnSourcePanel: "Trendyol",
		ReturnDate:        time.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}

	// Kuyruğa pending satır düşer, stok hareketi olmaz.
	pending, err := PendingRefinishing()
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || pending[0].ReturnID != ret.ID {
		t.Fatalf("bekleyen iade listesi tutarsız: %+v", pending)
	}
	var stockCount int64
	db.Model(&models.WarehouseRecord{}).Where("sku_id = ?", sku.ID).Count(&stockCount)
	if stockCount != 0 {
		t.Fatal("yeniden işlem bekleyen iade depo hareketi doğurmamalı")
	}

	// Yetkisiz rol işleyemez.
	_, err = MarkRefinished(staff, ret.ID, "")
	var fe *fiber.Error
	if !errors.As(err, &fe) || fe.Code != fiber.StatusForbidden {
		t.Fatalf("yetkisiz rol için beklenen 403, gelen: %v", err)
	}

	proc, err := MarkRefinished(qc, ret.ID, "tamir edildi")
	if err != nil {
		t.Fatal(err)
	}
	if proc.Status != models.ReturnProcessingRefinished {
		t.Fatalf("durum refinished olmalı, gelen: %s", proc.Status)
	}
	if proc.FinishingRecordID == nil {
		t.Fatal("finishing kaydı referansı boş")
	}

	// Tam olarak bir adet "Return" kaynaklı finishing kaydı oluşur.
	var fins []models.FinishingRecord
	if err := db.Where("sku_id = ? AND source = ?", sku.ID, models.FinishingSourceReturn).Find(&fins).Error; err != nil {
		t.Fatal(err)
	}
	if len(fins) != 1 {
		t.Fatalf("tek finishing kaydı beklenirdi, gelen: %d", len(fins))
	}
	if fins[0].FinishedPieces != 4 || fins[0].Tag != "Refinished" {
		t.Fatalf("finishing kaydı tutarsız: %+v", fins[0])
	}

	// İkinci işleme denemesi 409 döner.
	_, err = MarkRefinished(qc, ret.ID, "")
	if !errors.As(err, &fe) || fe.Code != fiber.StatusConflict {
		t.Fatalf("ikinci işleme için beklenen 409, gelen: %v", err)
	}
	_, err = RejectProcessing(qc, ret.ID, "")
	if !errors.As(err, &fe) || fe.Code != fiber.StatusConflict {
		t.Fatalf("işlenmiş iadenin reddi için beklenen 409, gelen: %v", err)
	}
}

func TestRejectProcessing(t *testing.T) {
	db := testutil.OpenTestDB(t)
	admin := testutil.SeedUser(t, db, models.RoleAdmin)
	sku := testutil.SeedSKU(t, db, "IAD-004")

	ret, err := CreateRecord(admin, CreateInput{
		SKUID:             sku.ID,
		OrderID:           "ORD-4001",
		Quantity:          2,
		ReturnCondition:   models.ReturnConditionRefinishing,
		ReturnSourcePanel: "Hepsiburada",
		ReturnDate:        time.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}

	proc, err := RejectProcessing(admin, ret.ID, "onarılamaz")
	if err != nil {
		t.Fatal(err)
	}
	if proc.Status != models.ReturnProcessingRejected {
		t.Fatalf("durum rejected olmalı, gelen: %s", proc.Status)
	}

	// Hurdaya ayrılan iade finishing kaydı oluşturmaz.
	var count int64
	db.Model(&models.FinishingRecord{}).Where("sku_id = ?", sku.ID).Count(&count)
	if count != 0 {
		t.Fatal("hurdaya ayrılan iade finishing kaydı doğurmamalı")
	}
}

func TestUpdateReturnPropagatesQuantity(t *testing.T) {
	db := testutil.OpenTestDB(t)
	admin := testutil.SeedUser(t, db, models.RoleAdmin)
	sku := testutil.SeedSKU(t, db, "IAD-005")

	ret, err := CreateRecord(admin, CreateInput{
		SKUID:             sku.ID,
		OrderID:           "ORD-5001",
		Quantity:          2,
		ReturnCondition:   models.ReturnConditionSaleable,
		ReturnSourcePanel: "Trendyol",
		ReturnDate:        time.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}

	newQty := 5
	if _, err := UpdateRecord(admin, ret.ID, UpdateInput{Quantity: &newQty}); err != nil {
		t.Fatal(err)
	}

	var wrec models.WarehouseRecord
	if err := db.Where("return_id = ?", ret.ID).First(&wrec).Error; err != nil {
		t.Fatal(err)
	}
	if wrec.QuantityReceived != 5 {
		t.Fatalf("bağlı depo satırı 5'e güncellenmeli, gelen: %d", wrec.QuantityReceived)
	}

	var stock models.WarehouseStock
	if err := db.Where("sku_id = ?", sku.ID).First(&stock).Error; err != nil {
		t.Fatal(err)
	}
	if stock.AvailableQuantity != 5 {
		t.Fatalf("stok 5 olmalı, gelen: %d", stock.AvailableQuantity)
	}
}

func TestDeleteReturnKeepsWarehouseRow(t *testing.T) {
	db := testutil.OpenTestDB(t)
	admin := testutil.SeedUser(t, db, models.RoleAdmin)
	sku := testutil.SeedSKU(t, db, "IAD-006")

	ret, err := CreateRecord(admin, CreateInput{
		SKUID:             sku.ID,
		OrderID:           "ORD-6001",
		Quantity:          2,
		ReturnCondition:   models.ReturnConditionSaleable,
		ReturnSourcePanel: "Trendyol",
		ReturnDate:        time.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := DeleteRecord(admin, ret.ID); err != nil {
		t.Fatal(err)
	}

	// Depo satırı kalır ama iade referansı koparılır.
	var wrec models.WarehouseRecord
	if err := db.Where("sku_id = ?", sku.ID).First(&wrec).Error; err != nil {
		t.Fatal(err)
	}
	if wrec.ReturnID != nil {
		t.Fatal("silinen iadenin depo referansı temizlenmeli")
	}
}

func TestSummaryAdminOnly(t *testing.T) {
	db := testutil.OpenTestDB(t)
	admin := testutil.SeedUser(t, db, models.RoleAdmin)
	staff := testutil.SeedUser(t, db, models.RoleSalesTeam)
	sku := testutil.SeedSKU(t, db, "IAD-007")

	if _, err := CreateRecord(admin, CreateInput{
		SKUID:             sku.ID,
		OrderID:           "ORD-7001",
		Quantity:          4,
		ReturnCondition:   models.ReturnConditionRejected,
		ReturnSourcePanel: "Trendyol",
		ReturnDate:        time.Now(),
	}); err != nil {
		t.Fatal(err)
	}

	_, err := Summary(staff)
	var fe *fiber.Error
	if !errors.As(err, &fe) || fe.Code != fiber.StatusForbidden {
		t.Fatalf("admin olmayan için beklenen 403, gelen: %v", err)
	}

	stats, err := Summary(admin)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalReturns != 1 || stats.TotalQuantity != 4 {
		t.Fatalf("beklenen 1 iade / 4 adet, gelen: %d / %d", stats.TotalReturns, stats.TotalQuantity)
	}
	if stats.ByCondition[string(models.ReturnConditionRejected)] != 1 {
		t.Fatalf("durum kırılımı hatalı: %+v", stats.ByCondition)
	}
}
