package sku

import (
	"konfeksiyon-backend/internal/auth"
	"konfeksiyon-backend/internal/tabular"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateSKURequest struct {
	Code           string          `json:"sku"`
	ProductName    string          `json:"product_name"`
	FabricType     string          `json:"fabric_type"`
	Category       string          `json:"category"`
	Size           string          `json:"size"`
	Color          string          `json:"color"`
	Price          decimal.Decimal `json:"price"`
	Barcode        string          `json:"barcode"`
	AvgConsumption float64         `json:"avg_consumption"`
}

type UpdateSKURequest struct {
	Code           *string          `json:"sku"`
	ProductName    *string          `json:"product_name"`
	FabricType     *string          `json:"fabric_type"`
	Category       *string          `json:"category"`
	Size           *string          `json:"size"`
	Color          *string          `json:"color"`
	Price          *decimal.Decimal `json:"price"`
	Barcode        *string          `json:"barcode"`
	AvgConsumption *float64         `json:"avg_consumption"`
}

type BulkUploadRequest struct {
	SKUs []BulkRow `json:"skus"`
}

// GET /api/skus
func ListSKUsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		skus, err := List()
		if err != nil {
			return err
		}
		return c.JSON(skus)
	}
}

// GET /api/skus/:id
func GetSKUHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz SKU ID")
		}

		s, err := Get(uint(id))
		if err != nil {
			return err
		}
		return c.JSON(s)
	}
}

// POST /api/skus
func CreateSKUHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body CreateSKURequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		s, err := Create(user, CreateInput{
			Code:           body.Code,
			ProductName:    body.ProductName,
			FabricType:     body.FabricType,
			Category:       body.Category,
			Size:           body.Size,
			Color:          body.Color,
			Price:          body.Price,
			Barcode:        body.Barcode,
			AvgConsumption: body.AvgConsumption,
		})
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(s)
	}
}

// PUT /api/skus/:id
func UpdateSKUHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz SKU ID")
		}

		var body UpdateSKURequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		s, err := Update(user, uint(id), UpdateInput{
			Code:           body.Code,
			ProductName:    body.ProductName,
			FabricType:     body.FabricType,
			Category:       body.Category,
			Size:           body.Size,
			Color:          body.Color,
			Price:          body.Price,
			Barcode:        body.Barcode,
			AvgConsumption: body.AvgConsumption,
		})
		if err != nil {
			return err
		}

		return c.JSON(s)
	}
}

// DELETE /api/skus/:id
func DeleteSKUHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz SKU ID")
		}

		if err := Delete(user, uint(id)); err != nil {
			return err
		}

		return c.JSON(fiber.Map{"message": "SKU ve bütün aşama kayıtları silindi"})
	}
}

// POST /api/skus/bulk-upload
// JSON gövde ({"skus": [...]}) veya multipart xlsx dosyası kabul eder.
func BulkUploadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		fileName := "manual"
		var rows []BulkRow

		if fh, err := c.FormFile("file"); err == nil && fh != nil {
			f, err := fh.Open()
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Dosya açılamadı")
			}
			defer f.Close()

			_, data, err := tabular.ReadSheet(f)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Excel dosyası okunamadı")
			}
			fileName = fh.Filename
			rows = RowsFromSheet(data)
		} else {
			var body BulkUploadRequest
			if err := c.BodyParser(&body); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
			}
			rows = body.SKUs
		}

		result, err := BulkCreate(user, fileName, rows)
		if err != nil {
			return err
		}

		return c.JSON(result)
	}
}

// GET /api/skus/sample-template
func SampleTemplateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		buf, err := Template()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şablon oluşturulamadı")
		}

		c.Set(fiber.HeaderContentDisposition, `attachment; filename=sku-template.xlsx`)
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		return c.Send(buf)
	}
}
