package warehouse

import (
	"time"

	"konfeksiyon-backend/internal/auth"

	"github.com/gofiber/fiber/v2"
)

type CreateWarehouseRecordRequest struct {
	SKUID            uint   `json:"sku_id"`
	QuantityReceived int    `json:"quantity_received"`
	StorageLocation  string `json:"storage_location"`
	ReceivedDate     string `json:"received_date"`
}

type UpdateWarehouseRecordRequest struct {
	QuantityReceived *int    `json:"quantity_received"`
	StorageLocation  *string `json:"storage_location"`
	ReceivedDate     *string `json:"received_date"`
}

// GET /api/warehouse-records
func ListWarehouseRecordsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		recs, err := ListRecords()
		if err != nil {
			return err
		}
		return c.JSON(recs)
	}
}

// POST /api/warehouse-records
func CreateWarehouseRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body CreateWarehouseRecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		d, err := time.Parse("2006-01-02", body.ReceivedDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		rec, err := CreateRecord(user, CreateInput{
			SKUID:            body.SKUID,
			QuantityReceived: body.QuantityReceived,
			StorageLocation:  body.StorageLocation,
			ReceivedDate:     d,
		})
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}

// PUT /api/warehouse-records/:id
func UpdateWarehouseRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kayıt ID")
		}

		var body UpdateWarehouseRecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		in := UpdateInput{
			QuantityReceived: body.QuantityReceived,
			StorageLocation:  body.StorageLocation,
		}
		if body.ReceivedDate != nil {
			d, err := time.Parse("2006-01-02", *body.ReceivedDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			in.ReceivedDate = &d
		}

		rec, err := UpdateRecord(user, uint(id), in)
		if err != nil {
			return err
		}

		return c.JSON(rec)
	}
}

// DELETE /api/warehouse-records/:id
func DeleteWarehouseRecordHandler() fiber.Handler {
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

		return c.JSON(fiber.Map{"message": "Depo kaydı silindi"})
	}
}

// GET /api/warehouse-stock
func WarehouseStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stocks, err := StockList()
		if err != nil {
			return err
		}
		return c.JSON(stocks)
	}
}
