package sku

import (
	"errors"
	"fmt"
	"strings"

	"konfeksiyon-backend/internal/activity"
	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateInput struct {
	Code           string
	ProductName    string
	FabricType     string
	Category       string
	Size           string
	Color          string
	Price          decimal.Decimal
	Barcode        string
	AvgConsumption float64
}

type UpdateInput struct {
	Code           *string
	ProductName    *string
	FabricType     *string
	Category       *string
	Size           *string
	Color          *string
	Price          *decimal.Decimal
	Barcode        *string
	AvgConsumption *float64
}

// NormalizeCode SKU kodunu saklama biçimine çevirir: boşluksuz ve
// büyük harf. Tekillik bu biçim üzerinden kontrol edilir.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func List() ([]models.SKU, error) {
	var skus []models.SKU
	if err := database.DB.Order("created_at DESC").Find(&skus).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "SKU listesi alınamadı")
	}
	return skus, nil
}

func Get(id uint) (*models.SKU, error) {
	var sku models.SKU
	if err := database.DB.First(&sku, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "SKU bulunamadı")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "SKU okunamadı")
	}
	return &sku, nil
}

// Create yeni SKU açar. Kod ve barkod tekilliği büyük/küçük harf
// duyarsız kontrol edilir; çakışmada hangi alanın çakıştığı döner.
func Create(user models.User, in CreateInput) (*models.SKU, error) {
	code := NormalizeCode(in.Code)
	if code == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "SKU kodu zorunlu")
	}
	if strings.TrimSpace(in.ProductName) == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Ürün adı zorunlu")
	}

	var count int64
	database.DB.Model(&models.SKU{}).Where("code = ?", code).Count(&count)
	if count > 0 {
		return nil, fiber.NewError(fiber.StatusConflict,
			fmt.Sprintf("Bu SKU kodu zaten kayıtlı: %s", code))
	}

	var barcode *string
	if b := NormalizeCode(in.Barcode); b != "" {
		database.DB.Model(&models.SKU{}).Where("barcode = ?", b).Count(&count)
		if count > 0 {
			return nil, fiber.NewError(fiber.StatusConflict,
				fmt.Sprintf("Bu barkod zaten kayıtlı: %s", b))
		}
		barcode = &b
	}

	sku := models.SKU{
		Code:           code,
		ProductName:    strings.TrimSpace(in.ProductName),
		FabricType:     strings.TrimSpace(in.FabricType),
		Category:       strings.TrimSpace(in.Category),
		Size:           strings.TrimSpace(in.Size),
		Color:          strings.TrimSpace(in.Color),
		Price:          in.Price,
		Barcode:        barcode,
		AvgConsumption: in.AvgConsumption,
	}

	if err := database.DB.Create(&sku).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "SKU oluşturulamadı")
	}

	_ = activity.Record(activity.LogOptions{
		SKUID:       &sku.ID,
		UserID:      user.ID,
		UserName:    user.Name,
		Module:      "sku",
		Action:      models.ActivityActionCreate,
		Description: fmt.Sprintf("SKU oluşturuldu: %s (%s)", sku.Code, sku.ProductName),
		NewValues:   sku,
	})

	return &sku, nil
}

func Update(user models.User, id uint, in UpdateInput) (*models.SKU, error) {
	if !user.IsAdmin() {
		return nil, fiber.NewError(fiber.StatusForbidden, "Bu işlem için admin yetkisi gerekli")
	}

	sku, err := Get(id)
	if err != nil {
		return nil, err
	}

	old := *sku

	if in.Code != nil {
		code := NormalizeCode(*in.Code)
		if code == "" {
			return nil, fiber.NewError(fiber.StatusBadRequest, "SKU kodu zorunlu")
		}
		var count int64
		database.DB.Model(&models.SKU{}).
			Where("code = ? AND id <> ?", code, id).Count(&count)
		if count > 0 {
			return nil, fiber.NewError(fiber.StatusConflict,
				fmt.Sprintf("Bu SKU kodu zaten kayıtlı: %s", code))
		}
		sku.Code = code
	}
	if in.ProductName != nil {
		if strings.TrimSpace(*in.ProductName) == "" {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Ürün adı zorunlu")
		}
		sku.ProductName = strings.TrimSpace(*in.ProductName)
	}
	if in.FabricType != nil {
		sku.FabricType = strings.TrimSpace(*in.FabricType)
	}
	if in.Category != nil {
		sku.Category = strings.TrimSpace(*in.Category)
	}
	if in.Size != nil {
		sku.Size = strings.TrimSpace(*in.Size)
	}
	if in.Color != nil {
		sku.Color = strings.TrimSpace(*in.Color)
	}
	if in.Price != nil {
		sku.Price = *in.Price
	}
	if in.Barcode != nil {
		if b := NormalizeCode(*in.Barcode); b != "" {
			var count int64
			database.DB.Model(&models.SKU{}).
				Where("barcode = ? AND id <> ?", b, id).Count(&count)
			if count > 0 {
				return nil, fiber.NewError(fiber.StatusConflict,
					fmt.Sprintf("Bu barkod zaten kayıtlı: %s", b))
			}
			sku.Barcode = &b
		} else {
			sku.Barcode = nil
		}
	}
	if in.AvgConsumption != nil {
		sku.AvgConsumption = *in.AvgConsumption
	}

	if err := database.DB.Save(sku).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "SKU güncellenemedi")
	}

	_ = activity.Record(activity.LogOptions{
		SKUID:       &sku.ID,
		UserID:      user.ID,
		UserName:    user.Name,
		Module:      "sku",
		Action:      models.ActivityActionUpdate,
		Description: fmt.Sprintf("SKU güncellendi: %s", sku.Code),
		OldValues:   old,
		NewValues:   sku,
	})

	return sku, nil
}

// Delete SKU'yu bütün aşama geçmişiyle birlikte siler. Silme sırası
// bağımlılık zincirini izler; kalan aktivite loglarının SKU referansı
// NULL'a çekilir ve silme izi SKU'suz bir log olarak düşülür.
func Delete(user models.User, id uint) error {
	if !user.IsAdmin() {
		return fiber.NewError(fiber.StatusForbidden, "Bu işlem için admin yetkisi gerekli")
	}

	sku, err := Get(id)
	if err != nil {
		return err
	}

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ActivityLog{}).
			Where("sku_id = ?", id).
			Update("sku_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("sku_id = ?", id).Delete(&models.FabricRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sku_id = ?", id).Delete(&models.CuttingRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sku_id = ?", id).Delete(&models.ProductionRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sku_id = ?", id).Delete(&models.FinishingRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sku_id = ?", id).Delete(&models.WarehouseRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sku_id = ?", id).Delete(&models.SalesRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("return_id IN (?)",
			tx.Model(&models.ReturnRecord{}).Select("id").Where("sku_id = ?", id),
		).Delete(&models.ReturnProcessing{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sku_id = ?", id).Delete(&models.ReturnRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sku_id = ?", id).Delete(&models.WarehouseStock{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.SKU{}, id).Error
	})
	if txErr != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "SKU silinemedi")
	}

	_ = activity.Record(activity.LogOptions{
		SKUID:       nil,
		UserID:      user.ID,
		UserName:    user.Name,
		Module:      "sku",
		Action:      models.ActivityActionDelete,
		Description: fmt.Sprintf("SKU silindi: %s (%s), bütün aşama kayıtlarıyla birlikte", sku.Code, sku.ProductName),
		OldValues:   sku,
	})

	return nil
}

// ExistingCodes verilen kodlardan veritabanında kayıtlı olanları döner.
func ExistingCodes(codes []string) ([]string, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	var existing []string
	if err := database.DB.Model(&models.SKU{}).
		Where("code IN ?", codes).
		Pluck("code", &existing).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "SKU kodları kontrol edilemedi")
	}
	return existing, nil
}
