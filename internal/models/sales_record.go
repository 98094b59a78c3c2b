package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesRecord satış defteri satırı. QuantitySold depo bakiyesini düşer.
type SalesRecord struct {
	ID    uint `gorm:"primaryKey" json:"id"`
	SKUID uint `gorm:"column:sku_id;index;not null" json:"sku_id"`
	SKU   SKU  `json:"sku"`

	QuantitySold int    `gorm:"not null" json:"quantity_sold"`
	PlatformName string `gorm:"size:100;not null" json:"platform_name"` // Trendyol, Hepsiburada vs.
	OrderID      string `gorm:"size:100;index" json:"order_id"`

	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"unit_price"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"total_amount"`

	SaleDate time.Time `gorm:"index;not null" json:"sale_date"`

	CreatedBy uint      `gorm:"index" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
