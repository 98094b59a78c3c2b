package sales

import (
	"errors"
	"fmt"
	"time"

	"konfeksiyon-backend/internal/activity"
	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/ledger"
	"konfeksiyon-backend/internal/models"
	"konfeksiyon-backend/internal/warehouse"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateInput struct {
	SKUID        uint
	QuantitySold int
	PlatformName string
	OrderID      string
	UnitPrice    decimal.Decimal
	TotalAmount  decimal.Decimal
	SaleDate     time.Time
}

type UpdateInput struct {
	QuantitySold *int
	PlatformName *string
	OrderID      *string
	UnitPrice    *decimal.Decimal
	TotalAmount  *decimal.Decimal
	SaleDate     *time.Time
}

// CreateRecord satış ekler. Depo bakiyesi aşılamaz; satış sonrası
// stok önbelleği aynı transaction içinde güncellenir.
func CreateRecord(user models.User, in CreateInput) (*models.SalesRecord, error) {
	var sku models.SKU
	if err := database.DB.First(&sku, in.SKUID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "SKU bulunamadı")
	}

	if in.QuantitySold <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Satış adedi pozitif olmalı")
	}
	if in.PlatformName == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Platform adı zorunlu")
	}
	if in.SaleDate.IsZero() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Satış tarihi zorunlu")
	}

	total := in.TotalAmount
	if total.IsZero() && !in.UnitPrice.IsZero() {
		total = in.UnitPrice.Mul(decimal.NewFromInt(int64(in.QuantitySold)))
	}

	rec := models.SalesRecord{
		SKUID:        in.SKUID,
		QuantitySold: in.QuantitySold,
		PlatformName: in.PlatformName,
		OrderID:      in.OrderID,
		UnitPrice:    in.UnitPrice,
		TotalAmount:  total,
		SaleDate:     in.SaleDate,
		CreatedBy:    user.ID,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		available, err := ledger.AvailableForSale(tx, in.SKUID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Depo bakiyesi hesaplanamadı")
		}
		if available <= 0 {
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				fmt.Sprintf("%s için depoda satılacak ürün yok.", sku.Code))
		}
		if in.QuantitySold > available {
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				fmt.Sprintf("Yetersiz depo stoğu: mevcut %d, istenen %d", available, in.QuantitySold))
		}
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		return warehouse.RecalcStock(tx, in.SKUID)
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return nil, fe
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Satış kaydı oluşturulamadı")
	}

	_ = activity.Record(activity.LogOptions{
		SKUID:       &rec.SKUID,
		UserID:      user.ID,
		UserName:    user.Name,
		Module:      "sales",
		Action:      models.ActivityActionCreate,
		Description: fmt.Sprintf("%s için %d adet satış (%s)", sku.Code, rec.QuantitySold, rec.PlatformName),
		NewValues:   rec,
	})

	return &rec, nil
}

func UpdateRecord(user models.User, id uint, in UpdateInput) (*models.SalesRecord, error) {
	if !user.IsAdmin() {
		return nil, fiber.NewError(fiber.StatusForbidden, "Bu işlem için admin yetkisi gerekli")
	}

	var rec models.SalesRecord
	if err := database.DB.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Satış kaydı bulunamadı")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Satış kaydı okunamadı")
	}

	old := rec

	if in.QuantitySold != nil {
		if *in.QuantitySold <= 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Satış adedi pozitif olmalı")
		}
		rec.QuantitySold = *in.QuantitySold
	}
	if in.PlatformName != nil {
		rec.PlatformName = *in.PlatformName
	}
	if in.OrderID != nil {
		rec.OrderID = *in.OrderID
	}
	if in.UnitPrice != nil {
		rec.UnitPrice = *in.UnitPrice
	}
	if in.TotalAmount != nil {
		rec.TotalAmount = *in.TotalAmount
	}
	if in.SaleDate != nil {
		rec.SaleDate = *in.SaleDate
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		available, err := ledger.AvailableForSale(tx, rec.SKUID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Depo bakiyesi hesaplanamadı")
		}
		available += old.QuantitySold
		if rec.QuantitySold > available {
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				fmt.Sprintf("Yetersiz depo stoğu: mevcut %d, istenen %d", available, rec.QuantitySold))
		}
		if err := tx.Save(&rec).Error; err != nil {
			return err
		}
		return warehouse.RecalcStock(tx, rec.SKUID)
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return nil, fe
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Satış kaydı güncellenemedi")
	}

	_ = activity.Record(activity.LogOptions{
		SKUID:       &rec.SKUID,
		UserID:      user.ID,
		UserName:    user.Name,
		Module:      "sales",
		Action:      models.ActivityActionUpdate,
		Description: fmt.Sprintf("Satış kaydı #%d güncellendi", rec.ID),
		OldValues:   old,
		NewValues:   rec,
	})

	return &rec, nil
}

func DeleteRecord(user models.User, id uint) error {
	if !user.IsAdmin() {
		return fiber.NewError(fiber.StatusForbidden, "Bu işlem için admin yetkisi gerekli")
	}

	var rec models.SalesRecord
	if err := database.DB.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Satış kaydı bulunamadı")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Satış kaydı okunamadı")
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&rec).Error; err != nil {
			return err
		}
		return warehouse.RecalcStock(tx, rec.SKUID)
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Satış kaydı silinemedi")
	}

	_ = activity.Record(activity.LogOptions{
		SKUID:       &rec.SKUID,
		UserID:      user.ID,
		UserName:    user.Name,
		Module:      "sales",
		Action:      models.ActivityActionDelete,
		Description: fmt.Sprintf("Satış kaydı #%d silindi", rec.ID),
		OldValues:   rec,
	})

	return nil
}

func ListRecords() ([]models.SalesRecord, error) {
	var recs []models.SalesRecord
	if err := database.DB.Preload("SKU").Order("created_at DESC").Find(&recs).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Satış kayıtları listelenemedi")
	}
	return recs, nil
}
