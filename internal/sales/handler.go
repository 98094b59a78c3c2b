package sales

import (
	"time"

	"konfeksiyon-backend/internal/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateSalesRecordRequest struct {
	SKUID        uint            `json:"sku_id"`
	QuantitySold int             `json:"quantity_sold"`
	PlatformName string          `json:"platform_name"`
	OrderID      string          `json:"order_id"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	SaleDate     string          `json:"sale_date"`
}

type UpdateSalesRecordRequest struct {
	QuantitySold *int             `json:"quantity_sold"`
	PlatformName *string          `json:"platform_name"`
	OrderID      *string          `json:"order_id"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	TotalAmount  *decimal.Decimal `json:"total_amount"`
	SaleDate     *string          `json:"sale_date"`
}

// GET /api/sales-records
func ListSalesRecordsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		recs, err := ListRecords()
		if err != nil {
			return err
		}
		return c.JSON(recs)
	}
}

// POST /api/sales-records
func CreateSalesRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body CreateSalesRecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		d, err := time.Parse("2006-01-02", body.SaleDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		rec, err := CreateRecord(user, CreateInput{
			SKUID:        body.SKUID,
			QuantitySold: body.QuantitySold,
			PlatformName: body.PlatformName,
			OrderID:      body.OrderID,
			UnitPrice:    body.UnitPrice,
			TotalAmount:  body.TotalAmount,
			SaleDate:     d,
		})
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}

// PUT /api/sales-records/:id
func UpdateSalesRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kayıt ID")
		}

		var body UpdateSalesRecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		in := UpdateInput{
			QuantitySold: body.QuantitySold,
			PlatformName: body.PlatformName,
			OrderID:      body.OrderID,
			UnitPrice:    body.UnitPrice,
			TotalAmount:  body.TotalAmount,
		}
		if body.SaleDate != nil {
			d, err := time.Parse("2006-01-02", *body.SaleDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			in.SaleDate = &d
		}

		rec, err := UpdateRecord(user, uint(id), in)
		if err != nil {
			return err
		}

		return c.JSON(rec)
	}
}

type ConfirmImportRequest struct {
	ImportType string      `json:"import_type"`
	Data       []ImportRow `json:"data"`
}

// POST /api/bulk-import/preview
// Multipart 'file' alanındaki xlsx doğrulanır, veritabanına yazılmaz.
func PreviewImportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := auth.CurrentUser(c); err != nil {
			return err
		}

		if c.FormValue("import_type", "sales-import") != "sales-import" {
			return fiber.NewError(fiber.StatusBadRequest, "Desteklenmeyen aktarım türü")
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyası gerekli ('file' alanı)")
		}

		f, err := fh.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya açılamadı")
		}
		defer f.Close()

		preview, err := PreviewImport(f)
		if err != nil {
			return err
		}
		return c.JSON(preview)
	}
}

// POST /api/bulk-import/confirm
func ConfirmImportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body ConfirmImportRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.ImportType != "" && body.ImportType != "sales-import" {
			return fiber.NewError(fiber.StatusBadRequest, "Desteklenmeyen aktarım türü")
		}

		result, err := ConfirmImport(user, "bulk-import.xlsx", body.Data)
		if err != nil {
			return err
		}
		return c.JSON(result)
	}
}

// DELETE /api/sales-records/:id
func DeleteSalesRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kayıt ID")
		}

		if err := DeleteRecord(user, uint(id)); err != nil {
			return err
		}

		return c.JSON(fiber.Map{"message": "Satış kaydı silindi"})
	}
}
