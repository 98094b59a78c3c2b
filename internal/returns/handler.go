package returns

import (
	"time"

	"konfeksiyon-backend/internal/auth"
	"konfeksiyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateReturnRecordRequest struct {
	SKUID             uint   `json:"sku_id"`
	OrderID           string `json:"order_id"`
	Quantity          int    `json:"quantity"`
	ReturnType        string `json:"return_type"`
	ECommerceSubtype  string `json:"e_commerce_subtype"`
	ReturnCondition   string `json:"return_condition"`
	ReturnSourcePanel string `json:"return_source_panel"`
	ReturnReason      string `json:"return_reason"`
	ReturnDate        string `json:"return_date"`
}

type UpdateReturnRecordRequest struct {
	Quantity          *int    `json:"quantity"`
	ReturnType        *string `json:"return_type"`
	ECommerceSubtype  *string `json:"e_commerce_subtype"`
	ReturnSourcePanel *string `json:"return_source_panel"`
	ReturnReason      *string `json:"return_reason"`
	ReturnDate        *string `json:"return_date"`
}

type ProcessReturnRequest struct {
	ReturnID uint   `json:"return_id"`
	Notes    string `json:"notes"`
}

// GET /api/return-records
func ListReturnRecordsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		recs, err := ListRecords()
		if err != nil {
			return err
		}
		return c.JSON(recs)
	}
}

// POST /api/return-records
func CreateReturnRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body CreateReturnRecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		d, err := time.Parse("2006-01-02", body.ReturnDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		ret, err := CreateRecord(user, CreateInput{
			SKUID:             body.SKUID,
			OrderID:           body.OrderID,
			Quantity:          body.Quantity,
			ReturnType:        models.ReturnType(body.ReturnType),
			ECommerceSubtype:  body.ECommerceSubtype,
			ReturnCondition:   models.ReturnCondition(body.ReturnCondition),
			ReturnSourcePanel: body.ReturnSourcePanel,
			ReturnReason:      body.ReturnReason,
			ReturnDate:        d,
		})
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(ret)
	}
}

// PUT /api/return-records/:id
func UpdateReturnRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kayıt ID")
		}

		var body UpdateReturnRecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		in := UpdateInput{
			Quantity:          body.Quantity,
			ECommerceSubtype:  body.ECommerceSubtype,
			ReturnSourcePanel: body.ReturnSourcePanel,
			ReturnReason:      body.ReturnReason,
		}
		if body.ReturnType != nil {
			rt := models.ReturnType(*body.ReturnType)
			in.ReturnType = &rt
		}
		if body.ReturnDate != nil {
			d, err := time.Parse("2006-01-02", *body.ReturnDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			in.ReturnDate = &d
		}

		ret, err := UpdateRecord(user, uint(id), in)
		if err != nil {
			return err
		}

		return c.JSON(ret)
	}
}

// DELETE /api/return-records/:id
func DeleteReturnRecordHandler() fiber.Handler {
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

		return c.JSON(fiber.Map{"message": "İade kaydı silindi"})
	}
}

// GET /api/return-processing
func ListReturnProcessingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		procs, err := ListProcessing()
		if err != nil {
			return err
		}
		return c.JSON(procs)
	}
}

// GET /api/pending-returns-refinishing
func PendingRefinishingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		procs, err := PendingRefinishing()
		if err != nil {
			return err
		}
		return c.JSON(procs)
	}
}

// POST /api/return-processing/mark-refinished
func MarkRefinishedHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body ProcessReturnRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.ReturnID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "return_id zorunlu")
		}

		proc, err := MarkRefinished(user, body.ReturnID, body.Notes)
		if err != nil {
			return err
		}

		return c.JSON(proc)
	}
}

// POST /api/return-processing/reject
func RejectProcessingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body ProcessReturnRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.ReturnID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "return_id zorunlu")
		}

		proc, err := RejectProcessing(user, body.ReturnID, body.Notes)
		if err != nil {
			return err
		}

		return c.JSON(proc)
	}
}

// GET /api/return-analytics
func ReturnAnalyticsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		stats, err := Summary(user)
		if err != nil {
			return err
		}
		return c.JSON(stats)
	}
}

// GET /api/check-order-id/:orderId
func CheckOrderIDHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orderID := c.Params("orderId")
		if orderID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Sipariş numarası zorunlu")
		}

		exists, err := OrderIDExists(orderID)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{"exists": exists})
	}
}
