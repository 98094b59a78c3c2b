// Package ledger defter tablolarından koşan bakiyeleri hesaplar.
// Bütün fonksiyonlar verilen *gorm.DB üzerinden çalışır; kapasite
// kontrolü yapan servisler bunları transaction içinden çağırır.
package ledger

import (
	"konfeksiyon-backend/internal/models"

	"gorm.io/gorm"
)

func sumFloat(db *gorm.DB, model any, column string, skuID uint) (float64, error) {
	var total float64
	err := db.Model(model).
		Where("sku_id = ?", skuID).
		Select("COALESCE(SUM(" + column + "), 0)").
		Scan(&total).Error
	return total, err
}

func sumInt(db *gorm.DB, model any, column string, skuID uint) (int, error) {
	var total int
	err := db.Model(model).
		Where("sku_id = ?", skuID).
		Select("COALESCE(SUM(" + column + "), 0)").
		Scan(&total).Error
	return total, err
}

// FabricReceived toplam kumaş girişi (metre).
func FabricReceived(db *gorm.DB, skuID uint) (float64, error) {
	return sumFloat(db, &models.FabricRecord{}, "meters_received", skuID)
}

// FabricUsed kesimde tüketilen toplam kumaş (metre).
func FabricUsed(db *gorm.DB, skuID uint) (float64, error) {
	return sumFloat(db, &models.CuttingRecord{}, "total_fabric_used", skuID)
}

// AvailableFabric kesim için kullanılabilir kumaş bakiyesi.
func AvailableFabric(db *gorm.DB, skuID uint) (float64, error) {
	received, err := FabricReceived(db, skuID)
	if err != nil {
		return 0, err
	}
	used, err := FabricUsed(db, skuID)
	if err != nil {
		return 0, err
	}
	return received - used, nil
}

// PiecesCut kesilen toplam parça.
func PiecesCut(db *gorm.DB, skuID uint) (int, error) {
	return sumInt(db, &models.CuttingRecord{}, "total_pieces_cut", skuID)
}

// PiecesStitched dikilen toplam parça.
func PiecesStitched(db *gorm.DB, skuID uint) (int, error) {
	return sumInt(db, &models.ProductionRecord{}, "total_stitched", skuID)
}

// AvailableForProduction dikim için bekleyen kesilmiş parça bakiyesi.
func AvailableForProduction(db *gorm.DB, skuID uint) (int, error) {
	cut, err := PiecesCut(db, skuID)
	if err != nil {
		return 0, err
	}
	stitched, err := PiecesStitched(db, skuID)
	if err != nil {
		return 0, err
	}
	return cut - stitched, nil
}

// PiecesFinished son işlemden geçen sağlam parça.
func PiecesFinished(db *gorm.DB, skuID uint) (int, error) {
	return sumInt(db, &models.FinishingRecord{}, "finished_pieces", skuID)
}

// PiecesProcessedInFinishing son işlemde ele alınan toplam parça
// (sağlam + hurda). Dikim bakiyesini bu toplam tüketir.
func PiecesProcessedInFinishing(db *gorm.DB, skuID uint) (int, error) {
	var total int
	err := db.Model(&models.FinishingRecord{}).
		Where("sku_id = ?", skuID).
		Select("COALESCE(SUM(finished_pieces + rejected_pieces), 0)").
		Scan(&total).Error
	return total, err
}

// AvailableForFinishing son işlem bekleyen dikilmiş parça bakiyesi.
func AvailableForFinishing(db *gorm.DB, skuID uint) (int, error) {
	stitched, err := PiecesStitched(db, skuID)
	if err != nil {
		return 0, err
	}
	processed, err := PiecesProcessedInFinishing(db, skuID)
	if err != nil {
		return 0, err
	}
	return stitched - processed, nil
}

// QuantityWarehoused depoya alınan toplam adet.
func QuantityWarehoused(db *gorm.DB, skuID uint) (int, error) {
	return sumInt(db, &models.WarehouseRecord{}, "quantity_received", skuID)
}

// AvailableForWarehouse depoya girişi bekleyen bitmiş parça bakiyesi.
// İade kaynaklı depo girişleri de düşümde sayılır; refinish akışı
// finishing tarafına karşılık yazarak bakiyeyi dengeler.
func AvailableForWarehouse(db *gorm.DB, skuID uint) (int, error) {
	finished, err := PiecesFinished(db, skuID)
	if err != nil {
		return 0, err
	}
	warehoused, err := QuantityWarehoused(db, skuID)
	if err != nil {
		return 0, err
	}
	return finished - warehoused, nil
}

// QuantitySold satılan toplam adet.
func QuantitySold(db *gorm.DB, skuID uint) (int, error) {
	return sumInt(db, &models.SalesRecord{}, "quantity_sold", skuID)
}

// AvailableForSale satışa hazır depo bakiyesi.
func AvailableForSale(db *gorm.DB, skuID uint) (int, error) {
	warehoused, err := QuantityWarehoused(db, skuID)
	if err != nil {
		return 0, err
	}
	sold, err := QuantitySold(db, skuID)
	if err != nil {
		return 0, err
	}
	return warehoused - sold, nil
}
