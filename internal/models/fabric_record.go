package models

import "time"

// FabricRecord kumaş giriş defteri satırı. Defter ekleme ağırlıklıdır;
// güncelleme ve silme sadece admin düzeltmeleri içindir.
type FabricRecord struct {
	ID    uint `gorm:"primaryKey" json:"id"`
	SKUID uint `gorm:"column:sku_id;index;not null" json:"sku_id"`
	SKU   SKU  `json:"sku"`

	FabricType  string  `gorm:"size:100;not null" json:"fabric_type"`
	FabricName  string  `gorm:"size:150" json:"fabric_name"`
	FabricWidth float64 `json:"fabric_width"` // cm

	// MetersReceived bakiye hesabına giren alan; TotalMeters top
	// üzerindeki etikete göre beyan edilen toplamdır.
	TotalMeters    float64 `json:"total_meters"`
	MetersReceived float64 `gorm:"not null" json:"meters_received"`

	Date    time.Time `gorm:"index;not null" json:"date"`
	Remarks string    `gorm:"size:500" json:"remarks"`

	CreatedBy uint      `gorm:"index" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
