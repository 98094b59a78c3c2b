package returns

import (
	"errors"
	"fmt"
	"time"

	"konfeksiyon-backend/internal/activity"
	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func canProcess(user models.User) bool {
	return user.Role == models.RoleAdmin || user.Role == models.RoleQCTeam
}

// MarkRefinished bekleyen iadeyi işlenmiş sayar ve parçaları "Return"
// kaynaklı bir finishing kaydıyla üretim hattına geri verir. Geçiş tek
// yönlüdür; işlenmiş bir iade tekrar işlenemez.
func MarkRefinished(user models.User, returnID uint, notes string) (*models.ReturnProcessing, error) {
	if !canProcess(user) {
		return nil, fiber.NewError(fiber.StatusForbidden, "Bu işlem için admin veya kalite kontrol yetkisi gerekli")
	}

	var ret models.ReturnRecord
	if err := database.DB.First(&ret, returnID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "İade kaydı bulunamadı")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "İade kaydı okunamadı")
	}

	var proc models.ReturnProcessing
	now := time.Now()

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// Durum kontrolü transaction içinde yapılır; eşzamanlı iki
		// istekten yalnızca biri geçebilir.
		err := tx.Where("return_id = ?", returnID).First(&proc).Error
		switch {
		case err == nil:
			if proc.Status != models.ReturnProcessingPending {
				return fiber.NewError(fiber.StatusConflict, "Bu iade zaten işlenmiş")
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			proc = models.ReturnProcessing{
				ReturnID: returnID,
				Status:   models.ReturnProcessingPending,
			}
			if err := tx.Create(&proc).Error; err != nil {
				return err
			}
		default:
			return err
		}

		fin := models.FinishingRecord{
			SKUID:          ret.SKUID,
			FinishedPieces: ret.Quantity,
			FinishingDate:  now,
			Source:         models.FinishingSourceReturn,
			Tag:            "Refinished",
			CreatedBy:      user.ID,
		}
		if err := tx.Create(&fin).Error; err != nil {
			return err
		}

		proc.Status = models.ReturnProcessingRefinished
		proc.ProcessedBy = &user.ID
		proc.ProcessedDate = &now
		proc.Notes = notes
		proc.FinishingRecordID = &fin.ID
		return tx.Save(&proc).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return nil, fe
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "İade işlenemedi")
	}

	_ = activity.Record(activity.LogOptions{
		SKUID:       &ret.SKUID,
		UserID:      user.ID,
		UserName:    user.Name,
		Module:      "returns",
		Action:      models.ActivityActionRefinished,
		Description: fmt.Sprintf("İade #%d yeniden işlendi, %d parça son işleme döndü", ret.ID, ret.Quantity),
		NewValues:   proc,
	})

	return &proc, nil
}

// RejectProcessing bekleyen iadeyi hurdaya ayırır. Stok hareketi
// doğurmaz.
func RejectProcessing(user models.User, returnID uint, notes string) (*models.ReturnProcessing, error) {
	if !canProcess(user) {
		return nil, fiber.NewError(fiber.StatusForbidden, "Bu işlem için admin veya kalite kontrol yetkisi gerekli")
	}

	var ret models.ReturnRecord
	if err := database.DB.First(&ret, returnID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "İade kaydı bulunamadı")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "İade kaydı okunamadı")
	}

	var proc models.ReturnProcessing
	now := time.Now()

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("return_id = ?", returnID).First(&proc).Error
		switch {
		case err == nil:
			if proc.Status != models.ReturnProcessingPending {
				return fiber.NewError(fiber.StatusConflict, "Bu iade zaten işlenmiş")
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			proc = models.ReturnProcessing{
				ReturnID: returnID,
				Status:   models.ReturnProcessingPending,
			}
			if err := tx.Create(&proc).Error; err != nil {
				return err
			}
		default:
			return err
		}

		proc.Status = models.ReturnProcessingRejected
		proc.ProcessedBy = &user.ID
		proc.ProcessedDate = &now
		proc.Notes = notes
		return tx.Save(&proc).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return nil, fe
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "İade işlenemedi")
	}

	_ = activity.Record(activity.LogOptions{
		SKUID:       &ret.SKUID,
		UserID:      user.ID,
		UserName:    user.Name,
		Module:      "returns",
		Action:      models.ActivityActionRejected,
		Description: fmt.Sprintf("İade #%d hurdaya ayrıldı", ret.ID),
		NewValues:   proc,
	})

	return &proc, nil
}

// ListProcessing bütün işleme satırlarını döner.
func ListProcessing() ([]models.ReturnProcessing, error) {
	var procs []models.ReturnProcessing
	if err := database.DB.Preload("Return").Preload("Return.SKU").
		Order("created_at DESC").Find(&procs).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "İşleme kayıtları listelenemedi")
	}
	return procs, nil
}

// PendingRefinishing yeniden işlem bekleyen iadeleri döner.
func PendingRefinishing() ([]models.ReturnProcessing, error) {
	var procs []models.ReturnProcessing
	if err := database.DB.Preload("Return").Preload("Return.SKU").
		Where("status = ?", models.ReturnProcessingPending).
		Order("created_at ASC").Find(&procs).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Bekleyen iadeler listelenemedi")
	}
	return procs, nil
}
