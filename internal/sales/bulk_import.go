package sales

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"konfeksiyon-backend/internal/activity"
	"konfeksiyon-backend/internal/config"
	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/ledger"
	"konfeksiyon-backend/internal/models"
	"konfeksiyon-backend/internal/sku"
	"konfeksiyon-backend/internal/tabular"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ImportRow struct {
	SKUID        uint            `json:"sku_id"`
	SKUCode      string          `json:"sku"`
	QuantitySold int             `json:"quantity_sold"`
	PlatformName string          `json:"platform_name"`
	OrderID      string          `json:"order_id"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	SaleDate     string          `json:"sale_date"` // "2006-01-02"
}

type ImportPreview struct {
	Headers          []string    `json:"headers"`
	Data             []ImportRow `json:"data"`
	ValidationErrors []string    `json:"validation_errors"`
}

type ImportResult struct {
	BatchID string   `json:"batch_id"`
	Total   int      `json:"total"`
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

// PreviewImport xlsx satış dosyasını doğrular ama hiçbir şey yazmaz.
// Beklenen başlıklar: SKU, Quantity, Sale Date ve opsiyonel Unit
// Price, Sale Channel / Platform, Order ID.
func PreviewImport(r io.Reader) (*ImportPreview, error) {
	headers, data, err := tabular.ReadSheet(r)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Excel dosyası okunamadı")
	}

	preview := ImportPreview{Headers: headers, Data: []ImportRow{}, ValidationErrors: []string{}}

	for i, row := range data {
		rowNum := i + 2 // başlık satırı sayılır

		code := sku.NormalizeCode(row["SKU"])
		qtyStr := strings.TrimSpace(row["Quantity"])
		dateStr := strings.TrimSpace(row["Sale Date"])

		if code == "" || qtyStr == "" || dateStr == "" {
			preview.ValidationErrors = append(preview.ValidationErrors,
				fmt.Sprintf("Satır %d: SKU, Quantity ve Sale Date zorunlu", rowNum))
			continue
		}

		var s models.SKU
		if err := database.DB.Where("code = ?", code).First(&s).Error; err != nil {
			preview.ValidationErrors = append(preview.ValidationErrors,
				fmt.Sprintf("Satır %d: SKU '%s' kayıtlı değil", rowNum, code))
			continue
		}

		qty, err := strconv.Atoi(qtyStr)
		if err != nil || qty <= 0 {
			preview.ValidationErrors = append(preview.ValidationErrors,
				fmt.Sprintf("Satır %d: Quantity pozitif tam sayı olmalı", rowNum))
			continue
		}

		available, err := ledger.AvailableForSale(database.DB, s.ID)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Depo bakiyesi hesaplanamadı")
		}
		if qty > available {
			preview.ValidationErrors = append(preview.ValidationErrors,
				fmt.Sprintf("Satır %d: '%s' için yetersiz depo stoğu. Mevcut: %d, istenen: %d", rowNum, code, available, qty))
			continue
		}

		d, err := tabular.ParseDate(dateStr)
		if err != nil {
			preview.ValidationErrors = append(preview.ValidationErrors,
				fmt.Sprintf("Satır %d: Tarih çözümlenemedi. YYYY-MM-DD, DD/MM/YYYY veya DD-MM-YYYY kullanın", rowNum))
			continue
		}

		unitPrice := decimal.Zero
		if p := strings.TrimSpace(row["Unit Price"]); p != "" {
			unitPrice, err = decimal.NewFromString(p)
			if err != nil {
				preview.ValidationErrors = append(preview.ValidationErrors,
					fmt.Sprintf("Satır %d: Unit Price sayı olmalı", rowNum))
				continue
			}
		}

		platform := strings.TrimSpace(row["Sale Channel"])
		if platform == "" {
			platform = strings.TrimSpace(row["Platform"])
		}
		if platform == "" {
			platform = "Toplu Yükleme"
		}

		orderID := strings.TrimSpace(row["Order ID"])
		if orderID == "" {
			orderID = strings.TrimSpace(row["Invoice Number"])
		}

		preview.Data = append(preview.Data, ImportRow{
			SKUID:        s.ID,
			SKUCode:      s.Code,
			QuantitySold: qty,
			PlatformName: platform,
			OrderID:      orderID,
			UnitPrice:    unitPrice,
			TotalAmount:  unitPrice.Mul(decimal.NewFromInt(int64(qty))),
			SaleDate:     d.Format("2006-01-02"),
		})
	}

	return &preview, nil
}

// ConfirmImport önizlemeden dönen satırları kaydeder. Her satır normal
// satış akışından geçer; bakiye kontrolleri burada da işler ve kısmi
// başarı raporlanır.
func ConfirmImport(user models.User, fileName string, rows []ImportRow) (*ImportResult, error) {
	if len(rows) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Aktarılacak satır yok")
	}

	result := ImportResult{
		BatchID: uuid.NewString(),
		Total:   len(rows),
		Errors:  []string{},
	}

	for i, row := range rows {
		d, err := time.Parse("2006-01-02", row.SaleDate)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("Satır %d: tarih çözümlenemedi", i+1))
			continue
		}

		_, err = CreateRecord(user, CreateInput{
			SKUID:        row.SKUID,
			QuantitySold: row.QuantitySold,
			PlatformName: row.PlatformName,
			OrderID:      row.OrderID,
			UnitPrice:    row.UnitPrice,
			TotalAmount:  row.TotalAmount,
			SaleDate:     d,
		})
		if err != nil {
			result.Failed++
			var fe *fiber.Error
			msg := "kayıt oluşturulamadı"
			if errors.As(err, &fe) {
				msg = fe.Message
			}
			result.Errors = append(result.Errors, fmt.Sprintf("Satır %d: %s", i+1, msg))
			continue
		}
		result.Success++
	}

	imp := models.ExcelImport{
		BatchID:           result.BatchID,
		FileName:          fileName,
		ImportType:        "sales",
		TotalRecords:      result.Total,
		SuccessfulRecords: result.Success,
		FailedRecords:     result.Failed,
		CreatedBy:         user.ID,
	}
	if err := database.DB.Create(&imp).Error; err != nil {
		config.Logger().WithError(err).Warn("yükleme geçmişi kaydedilemedi")
	}

	_ = activity.Record(activity.LogOptions{
		UserID:      user.ID,
		UserName:    user.Name,
		Module:      "sales",
		Action:      models.ActivityActionImport,
		Description: fmt.Sprintf("Toplu satış aktarımı: %d satırdan %d kayıt", result.Total, result.Success),
		NewValues:   fiber.Map{"batch_id": result.BatchID, "total": result.Total, "success": result.Success, "failed": result.Failed},
	})

	return &result, nil
}
