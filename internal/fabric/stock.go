package fabric

import (
	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type StockRow struct {
	SKUID           uint    `json:"sku_id"`
	SKUCode         string  `json:"sku"`
	ProductName     string  `json:"product_name"`
	FabricType      string  `json:"fabric_type"`
	TotalReceived   float64 `json:"total_received"`
	TotalUsed       float64 `json:"total_used"`
	AvailableMeters float64 `json:"available_meters"`
}

// StockList kumaş stoğunu defterlerden anlık hesaplar. Depo stoğunun
// aksine önbellek tablosu yoktur.
func StockList() ([]StockRow, error) {
	type agg struct {
		SKUID uint `gorm:"column:sku_id"`
		Total float64
	}

	var received []agg
	if err := database.DB.Model(&models.FabricRecord{}).
		Select("sku_id, COALESCE(SUM(meters_received), 0) AS total").
		Group("sku_id").
		Scan(&received).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Kumaş stoğu hesaplanamadı")
	}

	var used []agg
	if err := database.DB.Model(&models.CuttingRecord{}).
		Select("sku_id, COALESCE(SUM(total_fabric_used), 0) AS total").
		Group("sku_id").
		Scan(&used).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Kumaş stoğu hesaplanamadı")
	}

	usedBySKU := make(map[uint]float64, len(used))
	for _, u := range used {
		usedBySKU[u.SKUID] = u.Total
	}

	skuIDs := make([]uint, 0, len(received))
	for _, r := range received {
		skuIDs = append(skuIDs, r.SKUID)
	}

	skuByID := make(map[uint]models.SKU, len(skuIDs))
	if len(skuIDs) > 0 {
		var skus []models.SKU
		if err := database.DB.Where("id IN ?", skuIDs).Find(&skus).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "SKU bilgileri okunamadı")
		}
		for _, s := range skus {
			skuByID[s.ID] = s
		}
	}

	rows := make([]StockRow, 0, len(received))
	for _, r := range received {
		sku := skuByID[r.SKUID]
		rows = append(rows, StockRow{
			SKUID:           r.SKUID,
			SKUCode:         sku.Code,
			ProductName:     sku.ProductName,
			FabricType:      sku.FabricType,
			TotalReceived:   r.Total,
			TotalUsed:       usedBySKU[r.SKUID],
			AvailableMeters: r.Total - usedBySKU[r.SKUID],
		})
	}

	return rows, nil
}
