package sku

import (
	"fmt"
	"strings"

	"konfeksiyon-backend/internal/activity"
	"konfeksiyon-backend/internal/config"
	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/models"
	"konfeksiyon-backend/internal/tabular"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BulkRow struct {
	SKUCode        string `json:"sku_code"`
	SKUName        string `json:"sku_name"`
	FabricType     string `json:"fabric_type"`
	Category       string `json:"category"`
	Size           string `json:"size"`
	Color          string `json:"color"`
	Price          string `json:"price"`
	AvgConsumption string `json:"avg_consumption"`
}

type BulkRowError struct {
	Row    int      `json:"row"`
	Errors []string `json:"errors"`
	Data   BulkRow  `json:"data"`
}

type BulkResult struct {
	BatchID       string         `json:"batch_id"`
	TotalRows     int            `json:"total_rows"`
	SuccessCount  int            `json:"success_count"`
	ErrorCount    int            `json:"error_count"`
	Errors        []BulkRowError `json:"errors"`
	DuplicateSKUs []string       `json:"duplicate_skus"`
}

// BulkCreate toplu SKU yükler. Kısmi başarı esastır: geçersiz satırlar
// atlanır, geçerli satırlar tek tek eklenir ve sonuç satır bazında
// raporlanır. Barkod toplu yüklemede boş bırakılır.
func BulkCreate(user models.User, fileName string, rows []BulkRow) (*BulkResult, error) {
	if !user.IsAdmin() {
		return nil, fiber.NewError(fiber.StatusForbidden, "Bu işlem için admin yetkisi gerekli")
	}
	if len(rows) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Yüklenecek SKU verisi yok")
	}

	result := BulkResult{
		BatchID:   uuid.NewString(),
		TotalRows: len(rows),
		Errors:    []BulkRowError{},
	}

	// Yükleme içi tekrarları bul. Tekrar eden bir kodun yalnızca ilk
	// satırı işlenir, sonrakiler hata alır.
	seen := make(map[string]int)
	for _, r := range rows {
		code := NormalizeCode(r.SKUCode)
		if code != "" {
			seen[code]++
		}
	}
	dupSet := make(map[string]bool)
	for code, n := range seen {
		if n > 1 {
			dupSet[code] = true
		}
	}

	// Veritabanında zaten kayıtlı kodları bul.
	codes := make([]string, 0, len(rows))
	for code := range seen {
		codes = append(codes, code)
	}
	existing, err := ExistingCodes(codes)
	if err != nil {
		return nil, err
	}
	existingSet := make(map[string]bool, len(existing))
	for _, code := range existing {
		existingSet[code] = true
		dupSet[code] = true
	}

	claimed := make(map[string]bool, len(seen))
	for i, r := range rows {
		rowNum := i + 1
		var rowErrs []string

		code := NormalizeCode(r.SKUCode)
		name := strings.TrimSpace(r.SKUName)

		if code == "" {
			rowErrs = append(rowErrs, "SKU kodu zorunlu")
		}
		if name == "" {
			rowErrs = append(rowErrs, "Ürün adı zorunlu")
		}
		if code != "" {
			if claimed[code] {
				rowErrs = append(rowErrs, "SKU kodu yükleme içinde tekrar ediyor")
			}
			claimed[code] = true
		}
		if code != "" && existingSet[code] {
			rowErrs = append(rowErrs, "SKU kodu zaten kayıtlı")
		}

		price := decimal.Zero
		if strings.TrimSpace(r.Price) != "" {
			p, err := decimal.NewFromString(strings.TrimSpace(r.Price))
			if err != nil {
				rowErrs = append(rowErrs, "Fiyat sayı olmalı")
			} else {
				price = p
			}
		}

		var avgConsumption float64
		if strings.TrimSpace(r.AvgConsumption) != "" {
			if _, err := fmt.Sscan(strings.TrimSpace(r.AvgConsumption), &avgConsumption); err != nil {
				rowErrs = append(rowErrs, "Ortalama tüketim sayı olmalı")
			}
		}

		if len(rowErrs) > 0 {
			result.Errors = append(result.Errors, BulkRowError{Row: rowNum, Errors: rowErrs, Data: r})
			continue
		}

		s := models.SKU{
			Code:           code,
			ProductName:    name,
			FabricType:     strings.TrimSpace(r.FabricType),
			Category:       strings.TrimSpace(r.Category),
			Size:           strings.TrimSpace(r.Size),
			Color:          strings.TrimSpace(r.Color),
			Price:          price,
			AvgConsumption: avgConsumption,
		}
		if err := database.DB.Create(&s).Error; err != nil {
			result.Errors = append(result.Errors, BulkRowError{
				Row:    rowNum,
				Errors: []string{"SKU oluşturulamadı"},
				Data:   r,
			})
			continue
		}
		result.SuccessCount++
	}

	result.ErrorCount = len(result.Errors)
	for code := range dupSet {
		result.DuplicateSKUs = append(result.DuplicateSKUs, code)
	}

	imp := models.ExcelImport{
		BatchID:           result.BatchID,
		FileName:          fileName,
		ImportType:        "sku",
		TotalRecords:      result.TotalRows,
		SuccessfulRecords: result.SuccessCount,
		FailedRecords:     result.ErrorCount,
		CreatedBy:         user.ID,
	}
	if err := database.DB.Create(&imp).Error; err != nil {
		config.Logger().WithError(err).Warn("yükleme geçmişi kaydedilemedi")
	}

	_ = activity.Record(activity.LogOptions{
		UserID:      user.ID,
		UserName:    user.Name,
		Module:      "sku",
		Action:      models.ActivityActionImport,
		Description: fmt.Sprintf("Toplu yükleme: %d satırdan %d SKU eklendi", result.TotalRows, result.SuccessCount),
		NewValues:   fiber.Map{"batch_id": result.BatchID, "total_rows": result.TotalRows, "success_count": result.SuccessCount, "error_count": result.ErrorCount},
	})

	config.Logger().WithFields(map[string]interface{}{
		"batch_id": result.BatchID,
		"total":    result.TotalRows,
		"success":  result.SuccessCount,
		"failed":   result.ErrorCount,
	}).Info("toplu SKU yüklemesi tamamlandı")

	return &result, nil
}

var templateHeaders = []string{
	"SKU Code", "SKU Name", "Category", "Fabric Type", "Size", "Color", "Price", "Avg Consumption",
}

// Template örnek satırlı yükleme şablonunu üretir.
func Template() ([]byte, error) {
	rows := [][]string{
		{"ORNEK001", "Örnek Ürün 1", "Tişört", "Pamuk", "M", "Mavi", "299.90", "0.5"},
		{"ORNEK002", "Örnek Ürün 2", "Elbise", "Viskon", "L", "Kırmızı", "459.50", "1.2"},
	}
	return tabular.WriteSheet("SKU Template", templateHeaders, rows)
}

// RowsFromSheet xlsx satırlarını toplu yükleme satırlarına çevirir.
// Başlıklar şablondakiyle aynıdır.
func RowsFromSheet(data []map[string]string) []BulkRow {
	rows := make([]BulkRow, 0, len(data))
	for _, entry := range data {
		rows = append(rows, BulkRow{
			SKUCode:        entry["SKU Code"],
			SKUName:        entry["SKU Name"],
			Category:       entry["Category"],
			FabricType:     entry["Fabric Type"],
			Size:           entry["Size"],
			Color:          entry["Color"],
			Price:          entry["Price"],
			AvgConsumption: entry["Avg Consumption"],
		})
	}
	return rows
}
