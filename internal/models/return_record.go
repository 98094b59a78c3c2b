package models

import "time"

type ReturnCondition string

const (
	// Ürün tekrar satılabilir durumda: doğrudan depoya geri alınır.
	ReturnConditionSaleable ReturnCondition = "saleable"
	// Ürün yeniden son işlem gerektiriyor: işleme kuyruğuna düşer.
	ReturnConditionRefinishing ReturnCondition = "refinishing_required"
	// Ürün hurda: stok hareketi doğurmaz.
	ReturnConditionRejected ReturnCondition = "rejected"
)

type ReturnType string

const (
	ReturnTypeECommerce ReturnType = "e-commerce"
	ReturnTypeOffline   ReturnType = "offline"
)

// ReturnRecord müşteri iadesi. OrderID tekildir; aynı sipariş için
// ikinci iade açılamaz.
type ReturnRecord struct {
	ID    uint `gorm:"primaryKey" json:"id"`
	SKUID uint `gorm:"column:sku_id;index;not null" json:"sku_id"`
	SKU   SKU  `json:"sku"`

	OrderID  string `gorm:"size:100;uniqueIndex;not null" json:"order_id"`
	Quantity int    `gorm:"not null" json:"quantity"`

	ReturnType       ReturnType `gorm:"size:20" json:"return_type"`
	ECommerceSubtype string     `gorm:"size:50" json:"e_commerce_subtype"` // ör: "customer_return", "courier_return"

	ReturnCondition   ReturnCondition `gorm:"size:30;not null" json:"return_condition"`
	ReturnSourcePanel string          `gorm:"size:100;not null" json:"return_source_panel"`
	ReturnReason      string          `gorm:"size:500" json:"return_reason"`

	ReturnDate time.Time `gorm:"index;not null" json:"return_date"`

	CreatedBy uint      `gorm:"index" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ReturnProcessingStatus string

const (
	ReturnProcessingPending    ReturnProcessingStatus = "pending"
	ReturnProcessingRefinished ReturnProcessingStatus = "refinished"
	ReturnProcessingRejected   ReturnProcessingStatus = "rejected"
)

// ReturnProcessing yeniden işleme kuyruğu satırı. pending'den
// refinished veya rejected'a tek yönlü geçer.
type ReturnProcessing struct {
	ID       uint         `gorm:"primaryKey" json:"id"`
	ReturnID uint         `gorm:"index;not null" json:"return_id"`
	Return   ReturnRecord `gorm:"foreignKey:ReturnID" json:"return"`

	Status ReturnProcessingStatus `gorm:"size:20;not null;default:pending" json:"status"`

	ProcessedBy   *uint      `json:"processed_by"`
	ProcessedDate *time.Time `json:"processed_date"`
	Notes         string     `gorm:"size:500" json:"notes"`

	// Refinished geçişinde oluşturulan finishing kaydının referansı.
	FinishingRecordID *uint `json:"finishing_record_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
