package models

import "time"

// CuttingRecord kesim defteri satırı. TotalFabricUsed kumaş bakiyesini
// düşer, TotalPiecesCut dikim aşamasının tavanını oluşturur.
type CuttingRecord struct {
	ID    uint `gorm:"primaryKey" json:"id"`
	SKUID uint `gorm:"column:sku_id;index;not null" json:"sku_id"`
	SKU   SKU  `json:"sku"`

	TotalFabricUsed   float64 `gorm:"not null" json:"total_fabric_used"` // metre
	AvgFabricPerPiece float64 `json:"avg_fabric_per_piece"`
	WastagePercentage float64 `json:"wastage_percentage"`
	// Fire dahil parça başı gerçek tüketim; istemci hesaplar, biz
	// olduğu gibi saklarız.
	ActualFabricPerPiece float64 `json:"actual_fabric_per_piece"`

	TotalPiecesCut int     `gorm:"not null" json:"total_pieces_cut"`
	RejectedFabric float64 `json:"rejected_fabric"` // metre

	CuttingDate time.Time `gorm:"index;not null" json:"cutting_date"`

	CreatedBy uint      `gorm:"index" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
