package production

import (
	"time"

	"konfeksiyon-backend/internal/auth"

	"github.com/gofiber/fiber/v2"
)

type CreateProductionRecordRequest struct {
	SKUID          uint   `json:"sku_id"`
	TotalStitched  int    `json:"total_stitched"`
	RejectedPieces int    `json:"rejected_pieces"`
	ProductionDate string `json:"production_date"`
}

type UpdateProductionRecordRequest struct {
	TotalStitched  *int    `json:"total_stitched"`
	RejectedPieces *int    `json:"rejected_pieces"`
	ProductionDate *string `json:"production_date"`
}

// GET /api/production-records
func ListProductionRecordsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		recs, err := ListRecords()
		if err != nil {
			return err
		}
		return c.JSON(recs)
	}
}

// POST /api/production-records
func CreateProductionRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body CreateProductionRecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		d, err := time.Parse("2006-01-02", body.ProductionDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		rec, err := CreateRecord(user, CreateInput{
			SKUID:          body.SKUID,
			TotalStitched:  body.TotalStitched,
			RejectedPieces: body.RejectedPieces,
			ProductionDate: d,
		})
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}

// PUT /api/production-records/:id
func UpdateProductionRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kayıt ID")
		}

		var body UpdateProductionRecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		in := UpdateInput{
			TotalStitched:  body.TotalStitched,
			RejectedPieces: body.RejectedPieces,
		}
		if body.ProductionDate != nil {
			d, err := time.Parse("2006-01-02", *body.ProductionDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			in.ProductionDate = &d
		}

		rec, err := UpdateRecord(user, uint(id), in)
		if err != nil {
			return err
		}

		return c.JSON(rec)
	}
}

// DELETE /api/production-records/:id
func DeleteProductionRecordHandler() fiber.Handler {
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

		return c.JSON(fiber.Map{"message": "Dikim kaydı silindi"})
	}
}
