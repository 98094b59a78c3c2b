package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SKU üretim takibinin merkezindeki ürün tanımı. Bütün aşama
// kayıtları bu tabloya bağlanır.
type SKU struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Code        string `gorm:"size:50;uniqueIndex;not null" json:"sku"` // her zaman büyük harf saklanır
	ProductName string `gorm:"size:200;not null" json:"product_name"`
	FabricType  string `gorm:"size:100" json:"fabric_type"`
	Category    string `gorm:"size:100" json:"category"`
	Size        string `gorm:"size:30" json:"size"`
	Color       string `gorm:"size:50" json:"color"`

	Price decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"price"`

	// Barkod opsiyonel ama doluysa tekil olmalı.
	Barcode *string `gorm:"size:50;uniqueIndex" json:"barcode"`

	// Parça başına ortalama kumaş tüketimi (metre). Kesim ekranında
	// öneri olarak gösterilir.
	AvgConsumption float64 `json:"avg_consumption"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
