package production

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
	SKUID          uint
	TotalStitched  int
	RejectedPieces int
	ProductionDate time.Time
}

type UpdateInput struct {
	TotalStitched  *int
	RejectedPieces *int
	ProductionDate *time.Time
}

// CreateRecord dikim kaydı ekler. Kesilmiş parça bakiyesi aşılamaz.
func CreateRecord(user models.User, in CreateInput) (*models.ProductionRecord, error) {
	var sku models.SKU
	if err := database.DB.First(&sku, in.SKUID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "SKU bulunamadı")
	}

	if in.TotalStitched <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Dikilen parça sayısı pozitif olmalı")
	}
	if in.RejectedPieces < 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Hurda parça sayısı negatif olamaz")
	}
	if in.ProductionDate.IsZero() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Üretim tarihi zorunlu")
	}

	rec := models.ProductionRecord{
		SKUID:          in.SKUID,
		TotalStitched:  in.TotalStitched,
		RejectedPieces: in.RejectedPieces,
		ProductionDate: in.ProductionDate,
		CreatedBy:      user.ID,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		available, err := ledger.AvailableForProduction(tx, in.SKUID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Parça bakiyesi hesaplanamadı")
		}
		if available <= 0 {
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				fmt.Sprintf("%s için dikime hazır kesilmiş parça yok. Önce kesim yapılmalı.", sku.Code))
		}
		if in.TotalStitched > available {
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				fmt.Sprintf("Yetersiz kesilmiş parça: mevcut %d, istenen %d", available, in.TotalStitched))
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return nil, fe
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Dikim kaydı oluşturulamadı")
	}

	_ = activity.Record(activity.LogOptions{
		SKUID:       &rec.SKUID,
		UserID:      user.ID,
		UserName:    user.Name,
		Module:      "production",
		Action:      models.ActivityActionCreate,
		Description: fmt.Sprintf("%s için %d parça dikildi", sku.Code, rec.TotalStitched),
		NewValues:   rec,
	})

	return &rec, nil
}

func UpdateRecord(user models.User, id uint, in UpdateInput) (*models.ProductionRecord, error) {
	if !user.IsAdmin() {
		return nil, fiber.NewError(fiber.StatusForbidden, "Bu işlem için admin yetkisi gerekli")
	}

	var rec models.ProductionRecord
	if err := database.DB.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Dikim kaydı bulunamadı")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Dikim kaydı okunamadı")
	}

	old := rec

	if in.TotalStitched != nil {
		if *in.TotalStitched <= 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Dikilen parça sayısı pozitif olmalı")
		}
		rec.TotalStitched = *in.TotalStitched
	}
	if in.RejectedPieces != nil {
		if *in.RejectedPieces < 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Hurda parça sayısı negatif olamaz")
		}
		rec.RejectedPieces = *in.RejectedPieces
	}
	if in.ProductionDate != nil {
		rec.ProductionDate = *in.ProductionDate
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		available, err := ledger.AvailableForProduction(tx, rec.SKUID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Parça bakiyesi hesaplanamadı")
		}
		available += old.TotalStitched
		if rec.TotalStitched > available {
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				fmt.Sprintf("Yetersiz kesilmiş parça: mevcut %d, istenen %d", available, rec.TotalStitched))
		}
		return tx.Save(&rec).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return nil, fe
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Dikim kaydı güncellenemedi")
	}

	_ = activity.Record(activity.LogOptions{
		SKUID:       &rec.SKUID,
		UserID:      user.ID,
		UserName:    user.Name,
		Module:      "production",
		Action:      models.ActivityActionUpdate,
		Description: fmt.Sprintf("Dikim kaydı #%d güncellendi", rec.ID),
		OldValues:   old,
		NewValues:   rec,
	})

	return &rec, nil
}

func DeleteRecord(user models.User, id uint) error {
	if !user.IsAdmin() {
		return fiber.NewError(fiber.StatusForbidden, "Bu işlem için admin yetkisi gerekli")
	}

	var rec models.ProductionRecord
	if err := database.DB.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Dikim kaydı bulunamadı")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Dikim kaydı okunamadı")
	}

	if err := database.DB.Delete(&rec).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Dikim kaydı silinemedi")
	}

	_ = activity.Record(activity.LogOptions{
		SKUID:       &rec.SKUID,
		UserID:      user.ID,
		UserName:    user.Name,
		Module:      "production",
		Action:      models.ActivityActionDelete,
		Description: fmt.Sprintf("Dikim kaydı #%d silindi", rec.ID),
		OldValues:   rec,
	})

	return nil
}

func ListRecords() ([]models.ProductionRecord, error) {
	var recs []models.ProductionRecord
	if err := database.DB.Preload("SKU").Order("created_at DESC").Find(&recs).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Dikim kayıtları listelenemedi")
	}
	return recs, nil
}
