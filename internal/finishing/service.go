package finishing

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
	FinishedPieces int
	RejectedPieces int
	FinishingDate  time.Time
}

type UpdateInput struct {
	FinishedPieces *int
	RejectedPieces *int
	FinishingDate  *time.Time
}

// CreateRecord son işlem kaydı ekler. Sağlam + hurda toplamı dikilmiş
// parça bakiyesini aşamaz.
func CreateRecord(user models.User, in CreateInput) (*models.FinishingRecord, error) {
	var sku models.SKU
	if err := database.DB.First(&sku, in.SKUID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "SKU bulunamadı")
	}

	if in.FinishedPieces < 0 || in.RejectedPieces < 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Parça sayıları negatif olamaz")
	}
	requested := in.FinishedPieces + in.RejectedPieces
	if requested <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Sağlam veya hurda parça sayısı girilmeli")
	}
	if in.FinishingDate.IsZero() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Son işlem tarihi zorunlu")
	}

	rec := models.FinishingRecord{
		SKUID:          in.SKUID,
		FinishedPieces: in.FinishedPieces,
		RejectedPieces: in.RejectedPieces,
		FinishingDate:  in.FinishingDate,
		CreatedBy:      user.ID,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		available, err := ledger.AvailableForFinishing(tx, in.SKUID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Parça bakiyesi hesaplanamadı")
		}
		if available <= 0 {
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				fmt.Sprintf("%s için son işlem bekleyen dikilmiş parça yok. Önce dikim yapılmalı.", sku.Code))
		}
		if requested > available {
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				fmt.Sprintf("Yetersiz dikilmiş parça: mevcut %d, istenen %d", available, requested))
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return nil, fe
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Son işlem kaydı oluşturulamadı")
	}

	_ = activity.Record(activity.LogOptions{
		SKUID:       &rec.SKUID,
		UserID:      user.ID,
		UserName:    user.Name,
		Module:      "finishing",
		Action:      models.ActivityActionCreate,
		Description: fmt.Sprintf("%s için son işlem: %d sağlam, %d hurda", sku.Code, rec.FinishedPieces, rec.RejectedPieces),
		NewValues:   rec,
	})

	return &rec, nil
}

func UpdateRecord(user models.User, id uint, in UpdateInput) (*models.FinishingRecord, error) {
	if !user.IsAdmin() {
		return nil, fiber.NewError(fiber.StatusForbidden, "Bu işlem için admin yetkisi gerekli")
	}

	var rec models.FinishingRecord
	if err := database.DB.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Son işlem kaydı bulunamadı")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Son işlem kaydı okunamadı")
	}

	old := rec

	if in.FinishedPieces != nil {
		if *in.FinishedPieces < 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Parça sayıları negatif olamaz")
		}
		rec.FinishedPieces = *in.FinishedPieces
	}
	if in.RejectedPieces != nil {
		if *in.RejectedPieces < 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Parça sayıları negatif olamaz")
		}
		rec.RejectedPieces = *in.RejectedPieces
	}
	if in.FinishingDate != nil {
		rec.FinishingDate = *in.FinishingDate
	}

	requested := rec.FinishedPieces + rec.RejectedPieces
	if requested <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Sağlam veya hurda parça sayısı girilmeli")
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		available, err := ledger.AvailableForFinishing(tx, rec.SKUID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Parça bakiyesi hesaplanamadı")
		}
		available += old.FinishedPieces + old.RejectedPieces
		if requested > available {
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				fmt.Sprintf("Yetersiz dikilmiş parça: mevcut %d, istenen %d", available, requested))
		}
		return tx.Save(&rec).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return nil, fe
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Son işlem kaydı güncellenemedi")
	}

	_ = activity.Record(activity.LogOptions{
		SKUID:       &rec.SKUID,
		UserID:      user.ID,
		UserName:    user.Name,
		Module:      "finishing",
		Action:      models.ActivityActionUpdate,
		Description: fmt.Sprintf("Son işlem kaydı #%d güncellendi", rec.ID),
		OldValues:   old,
		NewValues:   rec,
	})

	return &rec, nil
}

// DeleteRecord kaydı siler. İade akışından doğmuş bir kayıtsa önce
// işleme satırındaki referans koparılır.
func DeleteRecord(user models.User, id uint) error {
	if !user.IsAdmin() {
		return fiber.NewError(fiber.StatusForbidden, "Bu işlem için admin yetkisi gerekli")
	}

	var rec models.FinishingRecord
	if err := database.DB.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Son işlem kaydı bulunamadı")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Son işlem kaydı okunamadı")
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ReturnProcessing{}).
			Where("finishing_record_id = ?", rec.ID).
			Update("finishing_record_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&rec).Error
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Son işlem kaydı silinemedi")
	}

	_ = activity.Record(activity.LogOptions{
		SKUID:       &rec.SKUID,
		UserID:      user.ID,
		UserName:    user.Name,
		Module:      "finishing",
		Action:      models.ActivityActionDelete,
		Description: fmt.Sprintf("Son işlem kaydı #%d silindi", rec.ID),
		OldValues:   rec,
	})

	return nil
}

func ListRecords() ([]models.FinishingRecord, error) {
	var recs []models.FinishingRecord
	if err := database.DB.Preload("SKU").Order("created_at DESC").Find(&recs).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Son işlem kayıtları listelenemedi")
	}
	return recs, nil
}
