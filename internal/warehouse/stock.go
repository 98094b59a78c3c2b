package warehouse

import (
	"errors"
	"strings"

	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/ledger"
	"konfeksiyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RecalcStock SKU'nun depo stoğunu defterlerden baştan hesaplayıp
// warehouse_stocks önbellek tablosuna yazar. Depo girişi, satış ve
// iade hareketlerinden sonra çağrılır; verilen tx içinde çalışır.
func RecalcStock(tx *gorm.DB, skuID uint) error {
	available, err := ledger.AvailableForSale(tx, skuID)
	if err != nil {
		return err
	}
	if available < 0 {
		available = 0
	}

	// Girişlerde görülen konumların tekrarsız birleşimi. STRING_AGG
	// yerine Go tarafında birleştiriyoruz; sqlite testlerinde de
	// aynı yol çalışır.
	var locations []string
	if err := tx.Model(&models.WarehouseRecord{}).
		Where("sku_id = ? AND storage_location <> ''", skuID).
		Distinct("storage_location").
		Order("storage_location").
		Pluck("storage_location", &locations).Error; err != nil {
		return err
	}
	locationStr := strings.Join(locations, ", ")

	var stock models.WarehouseStock
	err = tx.Where("sku_id = ?", skuID).First(&stock).Error
	switch {
	case err == nil:
		stock.AvailableQuantity = available
		stock.StorageLocation = locationStr
		return tx.Save(&stock).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		stock = models.WarehouseStock{
			SKUID:             skuID,
			AvailableQuantity: available,
			StorageLocation:   locationStr,
		}
		return tx.Create(&stock).Error
	default:
		return err
	}
}

// StockList güncel depo stoğunu önbellek tablosundan okur.
func StockList() ([]models.WarehouseStock, error) {
	var stocks []models.WarehouseStock
	if err := database.DB.Preload("SKU").Order("sku_id").Find(&stocks).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Depo stoğu listelenemedi")
	}
	return stocks, nil
}
