package models

import "time"

// ExcelImport toplu yükleme geçmişi. Her yükleme tek satırdır;
// başarı/hata sayıları kısmi sonuçları da kapsar.
type ExcelImport struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BatchID  string `gorm:"size:36;uniqueIndex;not null" json:"batch_id"`
	FileName string `gorm:"size:255;not null" json:"file_name"`

	// Hangi veri tipi yüklendi? (ör: "sku", "sales")
	ImportType string `gorm:"size:30;not null" json:"import_type"`

	TotalRecords      int `json:"total_records"`
	SuccessfulRecords int `json:"successful_records"`
	FailedRecords     int `json:"failed_records"`

	CreatedBy uint      `gorm:"index" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
