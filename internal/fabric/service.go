package fabric

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

type CreateInput struct {
	SKUID          uint
	FabricType     string
	FabricName     string
	FabricWidth    float64
	TotalMeters    float64
	MetersReceived float64
	Date           time.Time
	Remarks        string
}

type UpdateInput struct {
	FabricType     *string
	FabricName     *string
	FabricWidth    *float64
	TotalMeters    *float64
	MetersReceived *float64
	Date           *time.Time
	Remarks        *string
}

// CreateRecord kumaş girişi ekler. Zincirin ilk halkası olduğu için
// kapasite kontrolü yoktur.
func CreateRecord(user models.User, in CreateInput) (*models.FabricRecord, error) {
	var sku models.SKU
	if err := database.DB.First(&sku, in.SKUID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "SKU bulunamadı")
	}

	if in.FabricType == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Kumaş tipi zorunlu")
	}
	if in.MetersReceived <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Gelen metraj pozitif olmalı")
	}
	if in.Date.IsZero() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Tarih zorunlu")
	}

	rec := models.FabricRecord{
		SKUID:          in.SKUID,
		FabricType:     in.FabricType,
		FabricName:     in.FabricName,
		FabricWidth:    in.FabricWidth,
		TotalMeters:    in.TotalMeters,
		MetersReceived: in.MetersReceived,
		Date:           in.Date,
		Remarks:        in.Remarks,
		CreatedBy:      user.ID,
	}

	if err := database.DB.Create(&rec).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Kumaş kaydı oluşturulamadı")
	}

	_ = activity.Record(activity.LogOptions{
		SKUID:       &rec.SKUID,
		UserID:      user.ID,
		UserName:    user.Name,
		Module:      "fabric",
		Action:      models.ActivityActionCreate,
		Description: fmt.Sprintf("%s için %.2f m kumaş girişi", sku.Code, rec.MetersReceived),
		NewValues:   rec,
	})

	return &rec, nil
}

// UpdateRecord sadece admin düzeltmeleri içindir.
func UpdateRecord(user models.User, id uint, in UpdateInput) (*models.FabricRecord, error) {
	if !user.IsAdmin() {
		return nil, fiber.NewError(fiber.StatusForbidden, "Bu işlem için admin yetkisi gerekli")
	}

	var rec models.FabricRecord
	if err := database.DB.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Kumaş kaydı bulunamadı")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Kumaş kaydı okunamadı")
	}

	old := rec

	if in.FabricType != nil {
		rec.FabricType = *in.FabricType
	}
	if in.FabricName != nil {
		rec.FabricName = *in.FabricName
	}
	if in.FabricWidth != nil {
		rec.FabricWidth = *in.FabricWidth
	}
	if in.TotalMeters != nil {
		rec.TotalMeters = *in.TotalMeters
	}
	if in.MetersReceived != nil {
		if *in.MetersReceived <= 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Gelen metraj pozitif olmalı")
		}
		rec.MetersReceived = *in.MetersReceived
	}
	if in.Date != nil {
		rec.Date = *in.Date
	}
	if in.Remarks != nil {
		rec.Remarks = *in.Remarks
	}

	if err := database.DB.Save(&rec).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Kumaş kaydı güncellenemedi")
	}

	_ = activity.Record(activity.LogOptions{
		SKUID:       &rec.SKUID,
		UserID:      user.ID,
		UserName:    user.Name,
		Module:      "fabric",
		Action:      models.ActivityActionUpdate,
		Description: fmt.Sprintf("Kumaş kaydı #%d güncellendi", rec.ID),
		OldValues:   old,
		NewValues:   rec,
	})

	return &rec, nil
}

func DeleteRecord(user models.User, id uint) error {
	if !user.IsAdmin() {
		return fiber.NewError(fiber.StatusForbidden, "Bu işlem için admin yetkisi gerekli")
	}

	var rec models.FabricRecord
	if err := database.DB.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Kumaş kaydı bulunamadı")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Kumaş kaydı okunamadı")
	}

	if err := database.DB.Delete(&rec).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Kumaş kaydı silinemedi")
	}

	_ = activity.Record(activity.LogOptions{
		SKUID:       &rec.SKUID,
		UserID:      user.ID,
		UserName:    user.Name,
		Module:      "fabric",
		Action:      models.ActivityActionDelete,
		Description: fmt.Sprintf("Kumaş kaydı #%d silindi", rec.ID),
		OldValues:   rec,
	})

	return nil
}

func ListRecords() ([]models.FabricRecord, error) {
	var recs []models.FabricRecord
	if err := database.DB.Preload("SKU").Order("created_at DESC").Find(&recs).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Kumaş kayıtları listelenemedi")
	}
	return recs, nil
}
