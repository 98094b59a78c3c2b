package report

import (
	"testing"
	"time"

	"konfeksiyon-backend/internal/models"
	"konfeksiyon-backend/internal/testutil"

	"gorm.io/gorm"
)

type pipelineSeed struct {
	fabric     float64
	used       float64
	cut        int
	stitched   int
	finished   int
	warehoused int
	sold       int
}

func seedPipeline(t *testing.T, db *gorm.DB, skuID uint, s pipelineSeed) {
	t.Helper()
	now := time.Now()

	if s.fabric > 0 {
		if err := db.Create(&models.FabricRecord{
			SKUID: skuID, FabricType: "Pamuk", MetersReceived: s.fabric, Date: now,
		}).Error; err != nil {
			t.Fatal(err)
		}
	}
	if s.cut > 0 {
		if err := db.Create(&models.CuttingRecord{
			SKUID: skuID, TotalFabricUsed: s.used, TotalPiecesCut: s.cut, CuttingDate: now,
		}).Error; err != nil {
			t.Fatal(err)
		}
	}
	if s.stitched > 0 {
		if err := db.Create(&models.ProductionRecord{
			SKUID: skuID, TotalStitched: s.stitched, ProductionDate: now,
		}).Error; err != nil {
			t.Fatal(err)
		}
	}
	if s.finished > 0 {
		if err := db.Create(&models.FinishingRecord{
			SKUID: skuID, FinishedPieces: s.finished, FinishingDate: now,
		}).Error; err != nil {
			t.Fatal(err)
		}
	}
	if s.warehoused > 0 {
		if err := db.Create(&models.WarehouseRecord{
			SKUID: skuID, QuantityReceived: s.warehoused, StorageLocation: "Raf A1", ReceivedDate: now,
		}).Error; err != nil {
			t.Fatal(err)
		}
	}
	if s.sold > 0 {
		if err := db.Create(&models.SalesRecord{
			SKUID: skuID, QuantitySold: s.sold, PlatformName: "Trendyol", SaleDate: now,
		}).Error; err != nil {
			t.Fatal(err)
		}
	}
}

func TestWipTrackerStageDerivation(t *testing.T) {
	db := testutil.OpenTestDB(t)

	cases := []struct {
		code string
		seed pipelineSeed
		want Stage
	}{
		{"WIP-FAB", pipelineSeed{fabric: 100}, StageFabric},
		{"WIP-CUT", pipelineSeed{fabric: 100, used: 50, cut: 25}, StageCutting},
		{"WIP-PRD", pipelineSeed{fabric: 100, used: 50, cut: 25, stitched: 25}, StageProduction},
		{"WIP-FIN", pipelineSeed{fabric: 100, used: 50, cut: 25, stitched: 25, finished: 25}, StageFinishing},
		{"WIP-WHS", pipelineSeed{fabric: 100, used: 50, cut: 25, stitched: 25, finished: 25, warehoused: 25}, StageWarehouse},
		{"WIP-CMP", pipelineSeed{fabric: 100, used: 50, cut: 25, stitched: 25, finished: 25, warehoused: 25, sold: 25}, StageCompleted},
	}

	for _, c := range cases {
		s := testutil.SeedSKU(t, db, c.code)
		seedPipeline(t, db, s.ID, c.seed)
	}
	// Hareketsiz SKU listeye girmemeli.
	testutil.SeedSKU(t, db, "WIP-BOS")

	rows, err := WipTracker()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != len(cases) {
		t.Fatalf("%d satır beklenirdi, gelen: %d", len(cases), len(rows))
	}

	byCode := make(map[string]WipRow, len(rows))
	for _, r := range rows {
		byCode[r.SKUCode] = r
	}
	for _, c := range cases {
		got, ok := byCode[c.code]
		if !ok {
			t.Fatalf("%s listede yok", c.code)
		}
		if got.CurrentStage != c.want {
			t.Errorf("%s için aşama %s beklenirdi, gelen: %s", c.code, c.want, got.CurrentStage)
		}
	}

	// Geçiş bayrakları bakiyelerden türetilir.
	cutRow := byCode["WIP-CUT"]
	if !cutRow.CanProceedToCutting || !cutRow.CanProceedToProduction {
		t.Errorf("WIP-CUT kesime ve dikime devam edebilmeli: %+v", cutRow)
	}
	if cutRow.CanProceedToFinishing || cutRow.CanProceedToWarehouse || cutRow.CanProceedToSales {
		t.Errorf("WIP-CUT ileri aşamalara geçememeli: %+v", cutRow)
	}
}

func TestInventorySummaryStatusAndReturns(t *testing.T) {
	db := testutil.OpenTestDB(t)

	full := testutil.SeedSKU(t, db, "INV-FULL")
	seedPipeline(t, db, full.ID, pipelineSeed{
		fabric: 100, used: 60, cut: 30, stitched: 30, finished: 30, warehoused: 30, sold: 5,
	})

	low := testutil.SeedSKU(t, db, "INV-LOW")
	seedPipeline(t, db, low.ID, pipelineSeed{
		fabric: 20, used: 10, cut: 5, stitched: 5, finished: 5, warehoused: 5,
	})

	out := testutil.SeedSKU(t, db, "INV-OUT")
	seedPipeline(t, db, out.ID, pipelineSeed{
		fabric: 20, used: 10, cut: 5, stitched: 5, finished: 5, warehoused: 5, sold: 5,
	})

	// İade kaynaklı depo girişi toplamı şişirmemeli: iade kaydı ve
	// ona bağlı depo satırı birlikte tek kez sayılır.
	ret := models.ReturnRecord{
		SKUID:             out.ID,
		OrderID:           "ORD-INV-1",
		Quantity:          2,
		ReturnCondition:   models.ReturnConditionSaleable,
		ReturnSourcePanel: "Trendyol",
		ReturnDate:        time.Now(),
	}
	if err := db.Create(&ret).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&models.WarehouseRecord{
		SKUID:            out.ID,
		QuantityReceived: 2,
		StorageLocation:  "İade - Trendyol",
		ReceivedDate:     time.Now(),
		ReturnID:         &ret.ID,
	}).Error; err != nil {
		t.Fatal(err)
	}

	rows, err := InventorySummary()
	if err != nil {
		t.Fatal(err)
	}
	byCode := make(map[string]InventoryRow, len(rows))
	for _, r := range rows {
		byCode[r.SKUCode] = r
	}

	if got := byCode["INV-FULL"]; got.AvailableStock != 25 || got.Status != "in_stock" {
		t.Errorf("INV-FULL 25/in_stock beklenirdi: %+v", got)
	}
	if got := byCode["INV-LOW"]; got.AvailableStock != 5 || got.Status != "low_stock" {
		t.Errorf("INV-LOW 5/low_stock beklenirdi: %+v", got)
	}
	got := byCode["INV-OUT"]
	if got.SaleableReturns != 2 {
		t.Errorf("INV-OUT iade adedi 2 olmalı: %+v", got)
	}
	if got.AvailableStock != 2 || got.Status != "low_stock" {
		t.Errorf("INV-OUT iadeyle birlikte 2/low_stock beklenirdi: %+v", got)
	}
}

func TestOverviewCountsTodaysSales(t *testing.T) {
	db := testutil.OpenTestDB(t)
	sku := testutil.SeedSKU(t, db, "OVR-001")

	seedPipeline(t, db, sku.ID, pipelineSeed{
		fabric: 50, used: 30, cut: 15, stitched: 15, finished: 10, warehoused: 10,
	})

	now := time.Now()
	if err := db.Create(&models.SalesRecord{
		SKUID: sku.ID, QuantitySold: 3, PlatformName: "Trendyol", SaleDate: now,
	}).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&models.SalesRecord{
		SKUID: sku.ID, QuantitySold: 4, PlatformName: "Trendyol", SaleDate: now.AddDate(0, 0, -3),
	}).Error; err != nil {
		t.Fatal(err)
	}

	stats, err := Overview()
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalSKUs != 1 {
		t.Errorf("toplam SKU 1 olmalı, gelen: %d", stats.TotalSKUs)
	}
	if stats.InProduction != 5 {
		t.Errorf("üretimde 5 parça olmalı, gelen: %d", stats.InProduction)
	}
	if stats.ReadyStock != 3 {
		t.Errorf("hazır stok 3 olmalı, gelen: %d", stats.ReadyStock)
	}
	if stats.TodaysSales != 3 {
		t.Errorf("bugünkü satış 3 olmalı, gelen: %d", stats.TodaysSales)
	}
}
