package warehouse

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
	SKUID            uint
	QuantityReceived int
	StorageLocation  string
	ReceivedDate     time.Time
}

type UpdateInput struct {
	QuantityReceived *int
	StorageLocation  *string
	ReceivedDate     *time.Time
}

// CreateRecord depo girişi ekler. Bitmiş parça bakiyesi aşılamaz;
// giriş sonrası stok önbelleği aynı transaction içinde güncellenir.
func CreateRecord(user models.User, in CreateInput) (*models.WarehouseRecord, error) {
	var sku models.SKU
	if err := database.DB.First(&sku, in.SKUID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "SKU bulunamadı")
	}

	if in.QuantityReceived <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Giriş adedi pozitif olmalı")
	}
	if in.ReceivedDate.IsZero() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Giriş tarihi zorunlu")
	}

	rec := models.WarehouseRecord{
		SKUID:            in.SKUID,
		QuantityReceived: in.QuantityReceived,
		StorageLocation:  in.StorageLocation,
		ReceivedDate:     in.ReceivedDate,
		CreatedBy:        user.ID,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		available, err := ledger.AvailableForWarehouse(tx, in.SKUID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Parça bakiyesi hesaplanamadı")
		}
		if available <= 0 {
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				fmt.Sprintf("%s için depoya alınacak bitmiş parça yok. Önce son işlem yapılmalı.", sku.Code))
		}
		if in.QuantityReceived > available {
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				fmt.Sprintf("Yetersiz bitmiş parça: mevcut %d, istenen %d", available, in.QuantityReceived))
		}
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		return RecalcStock(tx, in.SKUID)
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return nil, fe
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Depo kaydı oluşturulamadı")
	}

	_ = activity.Record(activity.LogOptions{
		SKUID:       &rec.SKUID,
		UserID:      user.ID,
		UserName:    user.Name,
		Module:      "warehouse",
		Action:      models.ActivityActionCreate,
		Description: fmt.Sprintf("%s için %d adet depoya alındı (%s)", sku.Code, rec.QuantityReceived, rec.StorageLocation),
		NewValues:   rec,
	})

	return &rec, nil
}

func UpdateRecord(user models.User, id uint, in UpdateInput) (*models.WarehouseRecord, error) {
	if !user.IsAdmin() {
		return nil, fiber.NewError(fiber.StatusForbidden, "Bu işlem için admin yetkisi gerekli")
	}

	var rec models.WarehouseRecord
	if err := database.DB.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Depo kaydı bulunamadı")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Depo kaydı okunamadı")
	}

	old := rec

	if in.QuantityReceived != nil {
		if *in.QuantityReceived <= 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Giriş adedi pozitif olmalı")
		}
		rec.QuantityReceived = *in.QuantityReceived
	}
	if in.StorageLocation != nil {
		rec.StorageLocation = *in.StorageLocation
	}
	if in.ReceivedDate != nil {
		rec.ReceivedDate = *in.ReceivedDate
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		available, err := ledger.AvailableForWarehouse(tx, rec.SKUID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Parça bakiyesi hesaplanamadı")
		}
		available += old.QuantityReceived
		if rec.QuantityReceived > available {
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				fmt.Sprintf("Yetersiz bitmiş parça: mevcut %d, istenen %d", available, rec.QuantityReceived))
		}
		if err := tx.Save(&rec).Error; err != nil {
			return err
		}
		return RecalcStock(tx, rec.SKUID)
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return nil, fe
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Depo kaydı güncellenemedi")
	}

	_ = activity.Record(activity.LogOptions{
		SKUID:       &rec.SKUID,
		UserID:      user.ID,
		UserName:    user.Name,
		Module:      "warehouse",
		Action:      models.ActivityActionUpdate,
		Description: fmt.Sprintf("Depo kaydı #%d güncellendi", rec.ID),
		OldValues:   old,
		NewValues:   rec,
	})

	return &rec, nil
}

func DeleteRecord(user models.User, id uint) error {
	if !user.IsAdmin() {
		return fiber.NewError(fiber.StatusForbidden, "Bu işlem için admin yetkisi gerekli")
	}

	var rec models.WarehouseRecord
	if err := database.DB.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Depo kaydı bulunamadı")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Depo kaydı okunamadı")
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&rec).Error; err != nil {
			return err
		}
		return RecalcStock(tx, rec.SKUID)
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Depo kaydı silinemedi")
	}

	_ = activity.Record(activity.LogOptions{
		SKUID:       &rec.SKUID,
		UserID:      user.ID,
		UserName:    user.Name,
		Module:      "warehouse",
		Action:      models.ActivityActionDelete,
		Description: fmt.Sprintf("Depo kaydı #%d silindi", rec.ID),
		OldValues:   rec,
	})

	return nil
}

func ListRecords() ([]models.WarehouseRecord, error) {
	var recs []models.WarehouseRecord
	if err := database.DB.Preload("SKU").Order("created_at DESC").Find(&recs).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Depo kayıtları listelenemedi")
	}
	return recs, nil
}
