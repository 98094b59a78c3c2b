package models

import "time"

// Finishing kaydının kaynağı: boş ise normal üretim akışı,
// "Return" ise iade yeniden işleme akışından gelmiştir.
const FinishingSourceReturn = "Return"

// FinishingRecord kalite kontrol / son işlem defteri satırı.
// FinishedPieces + RejectedPieces birlikte dikilmiş parça bakiyesini
// tüketir; depo tavanını yalnızca FinishedPieces belirler.
type FinishingRecord struct {
	ID    uint `gorm:"primaryKey" json:"id"`
	SKUID uint `gorm:"column:sku_id;index;not null" json:"sku_id"`
	SKU   SKU  `json:"sku"`

	FinishedPieces int `gorm:"not null" json:"finished_pieces"`
	RejectedPieces int `json:"rejected_pieces"`

	FinishingDate time.Time `gorm:"index;not null" json:"finishing_date"`

	Source string `gorm:"size:20" json:"source"`
	Tag    string `gorm:"size:50" json:"tag"` // ör: "Refinished"

	CreatedBy uint      `gorm:"index" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
