// Package report defterlerden türetilen özet görünümleri üretir:
// aşama takibi (WIP), envanter özeti ve genel bakış sayıları.
package report

import (
	"time"

	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Stage string

const (
	StageFabric     Stage = "fabric"
	StageCutting    Stage = "cutting"
	StageProduction Stage = "production"
	StageFinishing  Stage = "finishing"
	StageWarehouse  Stage = "warehouse"
	StageCompleted  Stage = "completed"
)

type WipRow struct {
	SKUID          uint    `json:"sku_id"`
	SKUCode        string  `json:"sku"`
	ProductName    string  `json:"product_name"`
	Barcode        *string `json:"barcode"`
	FabricInStock  float64 `json:"fabric_in_stock"`
	FabricUsed     float64 `json:"fabric_used"`
	PiecesCut      int     `json:"pieces_cut"`
	PiecesStitched int     `json:"pieces_stitched"`
	PiecesFinished int     `json:"pieces_finished"`
	WarehouseStock int     `json:"warehouse_stock"`
	PiecesSold     int     `json:"pieces_sold"`
	CurrentStage   Stage   `json:"current_stage"`

	CanProceedToCutting    bool `json:"can_proceed_to_cutting"`
	CanProceedToProduction bool `json:"can_proceed_to_production"`
	CanProceedToFinishing  bool `json:"can_proceed_to_finishing"`
	CanProceedToWarehouse  bool `json:"can_proceed_to_warehouse"`
	CanProceedToSales      bool `json:"can_proceed_to_sales"`
}

type InventoryRow struct {
	SKUID           uint    `json:"sku_id"`
	SKUCode         string  `json:"sku"`
	ProductName     string  `json:"product_name"`
	Barcode         *string `json:"barcode"`
	FabricMeters    float64 `json:"fabric_meters"`
	PiecesCut       int     `json:"pieces_cut"`
	PiecesStitched  int     `json:"pieces_stitched"`
	PiecesFinished  int     `json:"pieces_finished"`
	WarehouseStock  int     `json:"warehouse_stock"`
	PiecesSold      int     `json:"pieces_sold"`
	SaleableReturns int     `json:"saleable_returns"`
	AvailableStock  int     `json:"available_stock"`
	Status          string  `json:"status"` // in_stock / low_stock / out_of_stock
}

type OverviewStats struct {
	TotalSKUs    int64 `json:"total_skus"`
	InProduction int   `json:"in_production"`
	ReadyStock   int   `json:"ready_stock"`
	TodaysSales  int   `json:"todays_sales"`
}

func sumFloatBySKU(db *gorm.DB, model any, column string) (map[uint]float64, error) {
	type row struct {
		SKUID uint `gorm:"column:sku_id"`
		Total float64
	}
	var rows []row
	if err := db.Model(model).
		Select("sku_id, COALESCE(SUM(" + column + "), 0) AS total").
		Group("sku_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]float64, len(rows))
	for _, r := range rows {
		out[r.SKUID] = r.Total
	}
	return out, nil
}

func sumIntBySKU(db *gorm.DB, model any, column string) (map[uint]int, error) {
	type row struct {
		SKUID uint `gorm:"column:sku_id"`
		Total int
	}
	var rows []row
	if err := db.Model(model).
		Select("sku_id, COALESCE(SUM(" + column + "), 0) AS total").
		Group("sku_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]int, len(rows))
	for _, r := range rows {
		out[r.SKUID] = r.Total
	}
	return out, nil
}

type ledgerTotals struct {
	fabricReceived map[uint]float64
	fabricTotal    map[uint]float64
	fabricUsed     map[uint]float64
	piecesCut      map[uint]int
	piecesStitched map[uint]int
	piecesFinished map[uint]int

	// warehoused iade kaynaklı girişleri de kapsar;
	// warehousedFromReturns o girişlerin tek başına toplamıdır.
	warehoused            map[uint]int
	warehousedFromReturns map[uint]int

	sold            map[uint]int
	saleableReturns map[uint]int
}

// Her tablo kendi başına toplanır; çoklu join'in satır çoğaltma
// tuzağına girmeden doğru toplamlar elde edilir.
func collectTotals(db *gorm.DB) (*ledgerTotals, error) {
	t := &ledgerTotals{}
	var err error

	if t.fabricReceived, err = sumFloatBySKU(db, &models.FabricRecord{}, "meters_received"); err != nil {
		return nil, err
	}
	if t.fabricTotal, err = sumFloatBySKU(db, &models.FabricRecord{}, "total_meters"); err != nil {
		return nil, err
	}
	if t.fabricUsed, err = sumFloatBySKU(db, &models.CuttingRecord{}, "total_fabric_used"); err != nil {
		return nil, err
	}
	if t.piecesCut, err = sumIntBySKU(db, &models.CuttingRecord{}, "total_pieces_cut"); err != nil {
		return nil, err
	}
	if t.piecesStitched, err = sumIntBySKU(db, &models.ProductionRecord{}, "total_stitched"); err != nil {
		return nil, err
	}
	if t.piecesFinished, err = sumIntBySKU(db, &models.FinishingRecord{}, "finished_pieces"); err != nil {
		return nil, err
	}
	if t.warehoused, err = sumIntBySKU(db, &models.WarehouseRecord{}, "quantity_received"); err != nil {
		return nil, err
	}
	if t.sold, err = sumIntBySKU(db, &models.SalesRecord{}, "quantity_sold"); err != nil {
		return nil, err
	}

	type row struct {
		SKUID uint `gorm:"column:sku_id"`
		Total int
	}

	var wrows []row
	if err := db.Model(&models.WarehouseRecord{}).
		Select("sku_id, COALESCE(SUM(quantity_received), 0) AS total").
		Where("return_id IS NOT NULL").
		Group("sku_id").
		Scan(&wrows).Error; err != nil {
		return nil, err
	}
	t.warehousedFromReturns = make(map[uint]int, len(wrows))
	for _, r := range wrows {
		t.warehousedFromReturns[r.SKUID] = r.Total
	}

	var rows []row
	if err := db.Model(&models.ReturnRecord{}).
		Select("sku_id, COALESCE(SUM(quantity), 0) AS total").
		Where("return_condition = ?", models.ReturnConditionSaleable).
		Group("sku_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	t.saleableReturns = make(map[uint]int, len(rows))
	for _, r := range rows {
		t.saleableReturns[r.SKUID] = r.Total
	}

	return t, nil
}

// WipTracker her SKU'nun hangi aşamada olduğunu çıkarır. Hiç hareket
// görmemiş SKU'lar listeye girmez.
func WipTracker() ([]WipRow, error) {
	db := database.DB

	totals, err := collectTotals(db)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "WIP verisi hesaplanamadı")
	}

	var skus []models.SKU
	if err := db.Order("code").Find(&skus).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "SKU listesi alınamadı")
	}

	rows := make([]WipRow, 0, len(skus))
	for _, s := range skus {
		received := totals.fabricReceived[s.ID]
		used := totals.fabricUsed[s.ID]
		cut := totals.piecesCut[s.ID]
		stitched := totals.piecesStitched[s.ID]
		finished := totals.piecesFinished[s.ID]
		warehoused := totals.warehoused[s.ID]
		sold := totals.sold[s.ID]

		// Hareketsiz SKU takip listesinde görünmez.
		if received == 0 && cut == 0 && stitched == 0 && finished == 0 && warehoused == 0 {
			continue
		}

		fabricAvailable := received - used
		warehouseStock := warehoused - sold
		if warehouseStock < 0 {
			warehouseStock = 0
		}

		cuttingInProgress := max(0, cut-stitched)
		productionInProgress := max(0, stitched-finished)
		finishingInProgress := max(0, finished-warehoused)

		stage := StageFabric
		switch {
		case sold > 0 && warehouseStock == 0:
			stage = StageCompleted
		case warehouseStock > 0:
			stage = StageWarehouse
		case finishingInProgress > 0:
			stage = StageFinishing
		case productionInProgress > 0:
			stage = StageProduction
		case cuttingInProgress > 0:
			stage = StageCutting
		}

		rows = append(rows, WipRow{
			SKUID:          s.ID,
			SKUCode:        s.Code,
			ProductName:    s.ProductName,
			Barcode:        s.Barcode,
			FabricInStock:  fabricAvailable,
			FabricUsed:     used,
			PiecesCut:      cut,
			PiecesStitched: stitched,
			PiecesFinished: finished,
			WarehouseStock: warehouseStock,
			PiecesSold:     sold,
			CurrentStage:   stage,

			CanProceedToCutting:    fabricAvailable > 0,
			CanProceedToProduction: cut-stitched > 0,
			CanProceedToFinishing:  stitched-finished > 0,
			CanProceedToWarehouse:  finished-warehoused > 0,
			CanProceedToSales:      warehouseStock > 0,
		})
	}

	return rows, nil
}

// InventorySummary bütün SKU'ların stok durumunu döner. Satılabilir
// stok deposal bakiye + satılabilir iadelerdir; 10 adedin altı düşük
// stok sayılır.
func InventorySummary() ([]InventoryRow, error) {
	db := database.DB

	totals, err := collectTotals(db)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Envanter özeti hesaplanamadı")
	}

	var skus []models.SKU
	if err := db.Order("code").Find(&skus).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "SKU listesi alınamadı")
	}

	rows := make([]InventoryRow, 0, len(skus))
	for _, s := range skus {
		// İade kaynaklı girişler ayrı kolonda raporlanır; toplamın
		// içinde ikinci kez sayılmazlar.
		warehoused := totals.warehoused[s.ID] - totals.warehousedFromReturns[s.ID]
		sold := totals.sold[s.ID]
		saleableReturns := totals.saleableReturns[s.ID]

		available := warehoused - sold + saleableReturns

		status := "in_stock"
		switch {
		case available <= 0:
			status = "out_of_stock"
		case available < 10:
			status = "low_stock"
		}

		rows = append(rows, InventoryRow{
			SKUID:           s.ID,
			SKUCode:         s.Code,
			ProductName:     s.ProductName,
			Barcode:         s.Barcode,
			FabricMeters:    totals.fabricTotal[s.ID],
			PiecesCut:       totals.piecesCut[s.ID],
			PiecesStitched:  totals.piecesStitched[s.ID],
			PiecesFinished:  totals.piecesFinished[s.ID],
			WarehouseStock:  warehoused,
			PiecesSold:      sold,
			SaleableReturns: saleableReturns,
			AvailableStock:  available,
			Status:          status,
		})
	}

	return rows, nil
}

// Overview gösterge paneli sayıları.
func Overview() (*OverviewStats, error) {
	db := database.DB

	var stats OverviewStats
	if err := db.Model(&models.SKU{}).Count(&stats.TotalSKUs).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Genel bakış hesaplanamadı")
	}

	rows, err := InventorySummary()
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		stats.InProduction += r.PiecesStitched - r.PiecesFinished
		stats.ReadyStock += r.AvailableStock
	}

	today := time.Now().Format("2006-01-02")
	var todaysSales int
	if err := db.Model(&models.SalesRecord{}).
		Select("COALESCE(SUM(quantity_sold), 0)").
		Where("DATE(sale_date) = ?", today).
		Scan(&todaysSales).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Genel bakış hesaplanamadı")
	}
	stats.TodaysSales = todaysSales

	return &stats, nil
}
