package fabric

import (
	"time"

	"konfeksiyon-backend/internal/auth"

	"github.com/gofiber/fiber/v2"
)

type CreateFabricRecordRequest struct {
	SKUID          uint    `json:"sku_id"`
	FabricType     string  `json:"fabric_type"`
	FabricName     string  `json:"fabric_name"`
	FabricWidth    float64 `json:"fabric_width"`
	TotalMeters    float64 `json:"total_meters"`
	MetersReceived float64 `json:"meters_received"`
	Date           string  `json:"date"` // "2025-12-09"
	Remarks        string  `json:"remarks"`
}

type UpdateFabricRecordRequest struct {
	FabricType     *string  `json:"fabric_type"`
	FabricName     *string  `json:"fabric_name"`
	FabricWidth    *float64 `json:"fabric_width"`
	TotalMeters    *float64 `json:"total_meters"`
	MetersReceived *float64 `json:"meters_received"`
	Date           *string  `json:"date"`
	Remarks        *string  `json:"remarks"`
}

// GET /api/fabric-records
func ListFabricRecordsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		recs, err := ListRecords()
		if err != nil {
			return err
		}
		return c.JSON(recs)
	}
}

// POST /api/fabric-records
func CreateFabricRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body CreateFabricRecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		d, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		rec, err := CreateRecord(user, CreateInput{
			SKUID:          body.SKUID,
			FabricType:     body.FabricType,
			FabricName:     body.FabricName,
			FabricWidth:    body.FabricWidth,
			TotalMeters:    body.TotalMeters,
			MetersReceived: body.MetersReceived,
			Date:           d,
			Remarks:        body.Remarks,
		})
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}

// PUT /api/fabric-records/:id
func UpdateFabricRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kayıt ID")
		}

		var body UpdateFabricRecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		in := UpdateInput{
			FabricType:     body.FabricType,
			FabricName:     body.FabricName,
			FabricWidth:    body.FabricWidth,
			TotalMeters:    body.TotalMeters,
			MetersReceived: body.MetersReceived,
			Remarks:        body.Remarks,
		}
		if body.Date != nil {
			d, err := time.Parse("2006-01-02", *body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			in.Date = &d
		}

		rec, err := UpdateRecord(user, uint(id), in)
		if err != nil {
			return err
		}

		return c.JSON(rec)
	}
}

// DELETE /api/fabric-records/:id
func DeleteFabricRecordHandler() fiber.Handler {
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

		return c.JSON(fiber.Map{"message": "Kumaş kaydı silindi"})
	}
}

// GET /api/fabric-stock
func FabricStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := StockList()
		if err != nil {
			return err
		}
		return c.JSON(rows)
	}
}
