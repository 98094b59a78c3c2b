package models

import "time"

// WarehouseStock SKU başına güncel depo stoğu. Defterlerden türetilen
// bir önbellektir; her depo girişi, satış ve iade hareketi sonrasında
// baştan hesaplanır.
type WarehouseStock struct {
	ID    uint `gorm:"primaryKey" json:"id"`
	SKUID uint `gorm:"column:sku_id;uniqueIndex;not null" json:"sku_id"`
	SKU   SKU  `json:"sku"`

	AvailableQuantity int `gorm:"not null;default:0" json:"available_quantity"`

	// Girişlerde görülen depo konumlarının virgülle birleşimi.
	StorageLocation string `gorm:"size:255" json:"storage_location"`

	UpdatedAt time.Time `json:"updated_at"`
}
