package models

import "time"

// WarehouseRecord depo giriş defteri satırı. ReturnID doluysa satır
// satılabilir bir iadenin depoya geri alınmasından doğmuştur.
type WarehouseRecord struct {
	ID    uint `gorm:"primaryKey" json:"id"`
	SKUID uint `gorm:"column:sku_id;index;not null" json:"sku_id"`
	SKU   SKU  `json:"sku"`

	QuantityReceived int    `gorm:"not null" json:"quantity_received"`
	StorageLocation  string `gorm:"size:100" json:"storage_location"`

	ReceivedDate time.Time `gorm:"index;not null" json:"received_date"`

	ReturnID *uint `gorm:"index" json:"return_id"`

	CreatedBy uint      `gorm:"index" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
