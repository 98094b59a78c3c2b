package cutting

import (
	"errors"
	"fmt"
	"time"

	"konfeksiyon-backend/internal/activity"
	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/ledger"
	"konfeksiyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateInput struct {
	SKUID                uint
	TotalFabricUsed      float64
	AvgFabricPerPiece    float64
	WastagePercentage    float64
	ActualFabricPerPiece float64
	TotalPiecesCut       int
	RejectedFabric       float64
	CuttingDate          time.Time
}

type UpdateInput struct {
	TotalFabricUsed      *float64
	AvgFabricPerPiece    *float64
	WastagePercentage    *float64
	ActualFabricPerPiece *float64
	TotalPiecesCut       *int
	RejectedFabric       *float64
	CuttingDate          *time.Time
}

// CreateRecord kesim kaydı ekler. Kumaş bakiyesi kontrolü ve insert
// aynı transaction içinde yapılır; bakiye tüm kumaş/kesim geçmişinden
// hesaplanır.
func CreateRecord(user models.User, in CreateInput) (*models.CuttingRecord, error) {
	var sku models.SKU
	if err := database.DB.First(&sku, in.SKUID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "SKU bulunamadı")
	}

	if in.TotalFabricUsed <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Kullanılan kumaş pozitif olmalı")
	}
	if in.TotalPiecesCut <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Kesilen parça sayısı pozitif olmalı")
	}
	if in.CuttingDate.IsZero() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Kesim tarihi zorunlu")
	}

	rec := models.CuttingRecord{
		SKUID:                in.SKUID,
		TotalFabricUsed:      in.TotalFabricUsed,
		AvgFabricPerPiece:    in.AvgFabricPerPiece,
		WastagePercentage:    in.WastagePercentage,
		ActualFabricPerPiece: in.ActualFabricPerPiece,
		TotalPiecesCut:       in.TotalPiecesCut,
		RejectedFabric:       in.RejectedFabric,
		CuttingDate:          in.CuttingDate,
		CreatedBy:            user.ID,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		available, err := ledger.AvailableFabric(tx, in.SKUID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kumaş bakiyesi hesaplanamadı")
		}
		if available <= 0 {
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				fmt.Sprintf("%s için kumaş stoğu yok. Önce kumaş girişi yapılmalı.", sku.Code))
		}
		if in.TotalFabricUsed > available {
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				fmt.Sprintf("Yetersiz kumaş: mevcut %.2f m, istenen %.2f m", available, in.TotalFabricUsed))
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return nil, fe
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Kesim kaydı oluşturulamadı")
	}

	_ = activity.Record(activity.LogOptions{
		SKUID:       &rec.SKUID,
		UserID:      user.ID,
		UserName:    user.Name,
		Module:      "cutting",
		Action:      models.ActivityActionCreate,
		Description: fmt.Sprintf("%s için %d parça kesildi (%.2f m kumaş)", sku.Code, rec.TotalPiecesCut, rec.TotalFabricUsed),
		NewValues:   rec,
	})

	return &rec, nil
}

// UpdateRecord admin düzeltmesi. Kumaş bakiyesi, güncellenen satırın
// eski tüketimi düşülerek yeniden kontrol edilir.
func UpdateRecord(user models.User, id uint, in UpdateInput) (*models.CuttingRecord, error) {
	if !user.IsAdmin() {
		return nil, fiber.NewError(fiber.StatusForbidden, "Bu işlem için admin yetkisi gerekli")
	}

	var rec models.CuttingRecord
	if err := database.DB.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Kesim kaydı bulunamadı")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Kesim kaydı okunamadı")
	}

	old := rec

	if in.TotalFabricUsed != nil {
		if *in.TotalFabricUsed <= 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Kullanılan kumaş pozitif olmalı")
		}
		rec.TotalFabricUsed = *in.TotalFabricUsed
	}
	if in.AvgFabricPerPiece != nil {
		rec.AvgFabricPerPiece = *in.AvgFabricPerPiece
	}
	if in.WastagePercentage != nil {
		rec.WastagePercentage = *in.WastagePercentage
	}
	if in.ActualFabricPerPiece != nil {
		rec.ActualFabricPerPiece = *in.ActualFabricPerPiece
	}
	if in.TotalPiecesCut != nil {
		if *in.TotalPiecesCut <= 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Kesilen parça sayısı pozitif olmalı")
		}
		rec.TotalPiecesCut = *in.TotalPiecesCut
	}
	if in.RejectedFabric != nil {
		rec.RejectedFabric = *in.RejectedFabric
	}
	if in.CuttingDate != nil {
		rec.CuttingDate = *in.CuttingDate
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		available, err := ledger.AvailableFabric(tx, rec.SKUID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kumaş bakiyesi hesaplanamadı")
		}
		// Satırın eski tüketimi bakiyeye geri eklenir.
		available += old.TotalFabricUsed
		if rec.TotalFabricUsed > available {
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				fmt.Sprintf("Yetersiz kumaş: mevcut %.2f m, istenen %.2f m", available, rec.TotalFabricUsed))
		}
		return tx.Save(&rec).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return nil, fe
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Kesim kaydı güncellenemedi")
	}

	_ = activity.Record(activity.LogOptions{
		SKUID:       &rec.SKUID,
		UserID:      user.ID,
		UserName:    user.Name,
		Module:      "cutting",
		Action:      models.ActivityActionUpdate,
		Description: fmt.Sprintf("Kesim kaydı #%d güncellendi", rec.ID),
		OldValues:   old,
		NewValues:   rec,
	})

	return &rec, nil
}

func DeleteRecord(user models.User, id uint) error {
	if !user.IsAdmin() {
		return fiber.NewError(fiber.StatusForbidden, "Bu işlem için admin yetkisi gerekli")
	}

	var rec models.CuttingRecord
	if err := database.DB.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Kesim kaydı bulunamadı")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Kesim kaydı okunamadı")
	}

	if err := database.DB.Delete(&rec).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Kesim kaydı silinemedi")
	}

	_ = activity.Record(activity.LogOptions{
		SKUID:       &rec.SKUID,
		UserID:      user.ID,
		UserName:    user.Name,
		Module:      "cutting",
		Action:      models.ActivityActionDelete,
		Description: fmt.Sprintf("Kesim kaydı #%d silindi", rec.ID),
		OldValues:   rec,
	})

	return nil
}

func ListRecords() ([]models.CuttingRecord, error) {
	var recs []models.CuttingRecord
	if err := database.DB.Preload("SKU").Order("created_at DESC").Find(&recs).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Kesim kayıtları listelenemedi")
	}
	return recs, nil
}
