package cutting

import (
	"time"

	"konfeksiyon-backend/internal/auth"

	"github.com/gofiber/fiber/v2"
)

type CreateCuttingRecordRequest struct {
	SKUID                uint    `json:"sku_id"`
	TotalFabricUsed      float64 `json:"total_fabric_used"`
	AvgFabricPerPiece    float64 `json:"avg_fabric_per_piece"`
	WastagePercentage    float64 `json:"wastage_percentage"`
	ActualFabricPerPiece float64 `json:"actual_fabric_per_piece"`
	TotalPiecesCut       int     `json:"total_pieces_cut"`
	RejectedFabric       float64 `json:"rejected_fabric"`
	CuttingDate          string  `json:"cutting_date"`
}

type UpdateCuttingRecordRequest struct {
	TotalFabricUsed      *float64 `json:"total_fabric_used"`
	AvgFabricPerPiece    *float64 `json:"avg_fabric_per_piece"`
	WastagePercentage    *float64 `json:"wastage_percentage"`
	ActualFabricPerPiece *float64 `json:"actual_fabric_per_piece"`
	TotalPiecesCut       *int     `json:"total_pieces_cut"`
	RejectedFabric       *float64 `json:"rejected_fabric"`
	CuttingDate          *string  `json:"cutting_date"`
}

// GET /api/cutting-records
func ListCuttingRecordsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		recs, err := ListRecords()
		if err != nil {
			return err
		}
		return c.JSON(recs)
	}
}

// POST /api/cutting-records
func CreateCuttingRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body CreateCuttingRecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		d, err := time.Parse("2006-01-02", body.CuttingDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		rec, err := CreateRecord(user, CreateInput{
			SKUID:                body.SKUID,
			TotalFabricUsed:      body.TotalFabricUsed,
			AvgFabricPerPiece:    body.AvgFabricPerPiece,
			WastagePercentage:    body.WastagePercentage,
			ActualFabricPerPiece: body.ActualFabricPerPiece,
			TotalPiecesCut:       body.TotalPiecesCut,
			RejectedFabric:       body.RejectedFabric,
			CuttingDate:          d,
		})
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}

// PUT /api/cutting-records/:id
func UpdateCuttingRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kayıt ID")
		}

		var body UpdateCuttingRecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		in := UpdateInput{
			TotalFabricUsed:      body.TotalFabricUsed,
			AvgFabricPerPiece:    body.AvgFabricPerPiece,
			WastagePercentage:    body.WastagePercentage,
			ActualFabricPerPiece: body.ActualFabricPerPiece,
			TotalPiecesCut:       body.TotalPiecesCut,
			RejectedFabric:       body.RejectedFabric,
		}
		if body.CuttingDate != nil {
			d, err := time.Parse("2006-01-02", *body.CuttingDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			in.CuttingDate = &d
		}

		rec, err := UpdateRecord(user, uint(id), in)
		if err != nil {
			return err
		}

		return c.JSON(rec)
	}
}

// DELETE /api/cutting-records/:id
func DeleteCuttingRecordHandler() fiber.Handler {
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

		return c.JSON(fiber.Map{"message": "Kesim kaydı silindi"})
	}
}
