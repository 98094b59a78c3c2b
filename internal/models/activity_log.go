package models

import "time"

type ActivityAction string

const (
	ActivityActionCreate     ActivityAction = "create"
	ActivityActionUpdate     ActivityAction = "update"
	ActivityActionDelete     ActivityAction = "delete"
	ActivityActionImport     ActivityAction = "import"
	ActivityActionRefinished ActivityAction = "refinished"
	ActivityActionRejected   ActivityAction = "rejected"
)

// ActivityLog her yazma işleminden sonra düşülen iz kaydı. Log yazımı
// asıl işlemi asla geri alamaz; hata olursa sadece loglanır.
type ActivityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// SKU silindiğinde geriye kalan loglarda NULL'a çekilir.
	SKUID *uint `gorm:"column:sku_id;index" json:"sku_id"`

	// Hangi modül? (ör: "fabric", "cutting", "returns")
	Module string `gorm:"size:50;index" json:"module"`

	Action      ActivityAction `gorm:"size:20" json:"action"`
	Description string         `gorm:"size:500" json:"description"`

	// Önceki ve sonraki hal (JSON)
	OldValues string `gorm:"type:jsonb" json:"old_values"`
	NewValues string `gorm:"type:jsonb" json:"new_values"`

	UserID   uint   `json:"user_id"`
	UserName string `gorm:"size:100" json:"user_name"` // denormalize
}
