package models

import "time"

// ProductionRecord dikim defteri satırı. TotalStitched kesilmiş parça
// bakiyesini tüketir.
type ProductionRecord struct {
	ID    uint `gorm:"primaryKey" json:"id"`
	SKUID uint `gorm:"column:sku_id;index;not null" json:"sku_id"`
	SKU   SKU  `json:"sku"`

	TotalStitched  int `gorm:"not null" json:"total_stitched"`
	RejectedPieces int `json:"rejected_pieces"` // dikim esnasında hurdaya ayrılan

	ProductionDate time.Time `gorm:"index;not null" json:"production_date"`

	CreatedBy uint      `gorm:"index" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
