package finishing

import (
	"time"

	"konfeksiyon-backend/internal/auth"

	"github.com/gofiber/fiber/v2"
)

type CreateFinishingRecordRequest struct {
	SKUID          uint   `json:"sku_id"`
	FinishedPieces int    `json:"finished_pieces"`
	RejectedPieces int    `json:"rejected_pieces"`
	FinishingDate  string `json:"finishing_date"`
}

type UpdateFinishingRecordRequest struct {
	FinishedPieces *int    `json:"finished_pieces"`
	RejectedPieces *int    `json:"rejected_pieces"`
	FinishingDate  *string `json:"finishing_date"`
}

// GET /api/finishing-records
func ListFinishingRecordsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		recs, err := ListRecords()
		if err != nil {
			return err
		}
		return c.JSON(recs)
	}
}

// POST /api/finishing-records
func CreateFinishingRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body CreateFinishingRecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		d, err := time.Parse("2006-01-02", body.FinishingDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		rec, err := CreateRecord(user, CreateInput{
			SKUID:          body.SKUID,
			FinishedPieces: body.FinishedPieces,
			RejectedPieces: body.RejectedPieces,
			FinishingDate:  d,
		})
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}

// PUT /api/finishing-records/:id
func UpdateFinishingRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kayıt ID")
		}

		var body UpdateFinishingRecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		in := UpdateInput{
			FinishedPieces: body.FinishedPieces,
			RejectedPieces: body.RejectedPieces,
		}
		if body.FinishingDate != nil {
			d, err := time.Parse("2006-01-02", *body.FinishingDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			in.FinishingDate = &d
		}

		rec, err := UpdateRecord(user, uint(id), in)
		if err != nil {
			return err
		}

		return c.JSON(rec)
	}
}

// DELETE /api/finishing-records/:id
func DeleteFinishingRecordHandler() fiber.Handler {
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

		return c.JSON(fiber.Map{"message": "Son işlem kaydı silindi"})
	}
}
