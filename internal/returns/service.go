package returns

import (
	"errors"
	"fmt"
	"time"

	"konfeksiyon-backend/internal/activity"
	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/models"
	"konfeksiyon-backend/internal/warehouse"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateInput struct {
	SKUID             uint
	OrderID           string
	Quantity          int
	ReturnType        models.ReturnType
	ECommerceSubtype  string
	ReturnCondition   models.ReturnCondition
	ReturnSourcePanel string
	ReturnReason      string
	ReturnDate        time.Time
}

type UpdateInput struct {
	Quantity          *int
	ReturnType        *models.ReturnType
	ECommerceSubtype  *string
	ReturnSourcePanel *string
	ReturnReason      *string
	ReturnDate        *time.Time
}

func validCondition(c models.ReturnCondition) bool {
	switch c {
	case models.ReturnConditionSaleable, models.ReturnConditionRefinishing, models.ReturnConditionRejected:
		return true
	}
	return false
}

// CreateRecord iade açar. Duruma göre yan etkiler aynı transaction
// içinde işlenir: satılabilir iade depoya döner, yeniden işlem
// gerektiren iade kuyruğa düşer, hurda iade sadece kayıt olur.
func CreateRecord(user models.User, in CreateInput) (*models.ReturnRecord, error) {
	var sku models.SKU
	if err := database.DB.First(&sku, in.SKUID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "SKU bulunamadı")
	}

	if in.OrderID == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Sipariş numarası zorunlu")
	}
	if in.Quantity <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "İade adedi pozitif olmalı")
	}
	if !validCondition(in.ReturnCondition) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Geçersiz iade durumu")
	}
	if in.ReturnSourcePanel == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "İade kaynağı (panel) zorunlu")
	}
	if in.ReturnDate.IsZero() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "İade tarihi zorunlu")
	}

	var count int64
	database.DB.Model(&models.ReturnRecord{}).
		Where("order_id = ?", in.OrderID).
		Count(&count)
	if count > 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "Bu sipariş numarası ile daha önce iade oluşturulmuş")
	}

	ret := models.ReturnRecord{
		SKUID:             in.SKUID,
		OrderID:           in.OrderID,
		Quantity:          in.Quantity,
		ReturnType:        in.ReturnType,
		ECommerceSubtype:  in.ECommerceSubtype,
		ReturnCondition:   in.ReturnCondition,
		ReturnSourcePanel: in.ReturnSourcePanel,
		ReturnReason:      in.ReturnReason,
		ReturnDate:        in.ReturnDate,
		CreatedBy:         user.ID,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ret).Error; err != nil {
			return err
		}

		switch ret.ReturnCondition {
		case models.ReturnConditionSaleable:
			wrec := models.WarehouseRecord{
				SKUID:            ret.SKUID,
				QuantityReceived: ret.Quantity,
				StorageLocation:  fmt.Sprintf("İade - %s", ret.ReturnSourcePanel),
				ReceivedDate:     ret.ReturnDate,
				ReturnID:         &ret.ID,
				CreatedBy:        user.ID,
			}
			if err := tx.Create(&wrec).Error; err != nil {
				return err
			}
			return warehouse.RecalcStock(tx, ret.SKUID)

		case models.ReturnConditionRefinishing:
			proc := models.ReturnProcessing{
				ReturnID: ret.ID,
				Status:   models.ReturnProcessingPending,
			}
			return tx.Create(&proc).Error
		}

		return nil
	})
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "İade kaydı oluşturulamadı")
	}

	_ = activity.Record(activity.LogOptions{
		SKUID:       &ret.SKUID,
		UserID:      user.ID,
		UserName:    user.Name,
		Module:      "returns",
		Action:      models.ActivityActionCreate,
		Description: fmt.Sprintf("%s için %d adet iade (%s, %s)", sku.Code, ret.Quantity, ret.ReturnSourcePanel, ret.ReturnCondition),
		NewValues:   ret,
	})

	return &ret, nil
}

// UpdateRecord admin düzeltmesi. İade durumu (condition) yan etkileri
// kesinleşmiş olduğu için değiştirilemez; kayıt silinip yeniden
// açılmalıdır. Adet değişirse bağlı depo satırı da güncellenir.
func UpdateRecord(user models.User, id uint, in UpdateInput) (*models.ReturnRecord, error) {
	if !user.IsAdmin() {
		return nil, fiber.NewError(fiber.StatusForbidden, "Bu işlem için admin yetkisi gerekli")
	}

	var ret models.ReturnRecord
	if err := database.DB.First(&ret, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "İade kaydı bulunamadı")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "İade kaydı okunamadı")
	}

	old := ret

	if in.Quantity != nil {
		if *in.Quantity <= 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "İade adedi pozitif olmalı")
		}
		ret.Quantity = *in.Quantity
	}
	if in.ReturnType != nil {
		ret.ReturnType = *in.ReturnType
	}
	if in.ECommerceSubtype != nil {
		ret.ECommerceSubtype = *in.ECommerceSubtype
	}
	if in.ReturnSourcePanel != nil {
		ret.ReturnSourcePanel = *in.ReturnSourcePanel
	}
	if in.ReturnReason != nil {
		ret.ReturnReason = *in.ReturnReason
	}
	if in.ReturnDate != nil {
		ret.ReturnDate = *in.ReturnDate
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&ret).Error; err != nil {
			return err
		}

		// Satılabilir iadede bağlı depo satırı adede eşlenir.
		if ret.ReturnCondition == models.ReturnConditionSaleable && ret.Quantity != old.Quantity {
			if err := tx.Model(&models.WarehouseRecord{}).
				Where("return_id = ?", ret.ID).
				Update("quantity_received", ret.Quantity).Error; err != nil {
				return err
			}
			return warehouse.RecalcStock(tx, ret.SKUID)
		}
		return nil
	})
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "İade kaydı güncellenemedi")
	}

	_ = activity.Record(activity.LogOptions{
		SKUID:       &ret.SKUID,
		UserID:      user.ID,
		UserName:    user.Name,
		Module:      "returns",
		Action:      models.ActivityActionUpdate,
		Description: fmt.Sprintf("İade kaydı #%d güncellendi", ret.ID),
		OldValues:   old,
		NewValues:   ret,
	})

	return &ret, nil
}

// DeleteRecord iadeyi ve işleme satırlarını siler. İadeden doğmuş
// depo satırları silinmez, sadece referansları koparılır.
func DeleteRecord(user models.User, id uint) error {
	if !user.IsAdmin() {
		return fiber.NewError(fiber.StatusForbidden, "Bu işlem için admin yetkisi gerekli")
	}

	var ret models.ReturnRecord
	if err := database.DB.First(&ret, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "İade kaydı bulunamadı")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "İade kaydı okunamadı")
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.WarehouseRecord{}).
			Where("return_id = ?", ret.ID).
			Update("return_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("return_id = ?", ret.ID).
			Delete(&models.ReturnProcessing{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ret).Error
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "İade kaydı silinemedi")
	}

	_ = activity.Record(activity.LogOptions{
		SKUID:       &ret.SKUID,
		UserID:      user.ID,
		UserName:    user.Name,
		Module:      "returns",
		Action:      models.ActivityActionDelete,
		Description: fmt.Sprintf("İade kaydı #%d silindi", ret.ID),
		OldValues:   ret,
	})

	return nil
}

func ListRecords() ([]models.ReturnRecord, error) {
	var recs []models.ReturnRecord
	if err := database.DB.Preload("SKU").Order("created_at DESC").Find(&recs).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "İade kayıtları listelenemedi")
	}
	return recs, nil
}

// OrderIDExists sipariş numarasının daha önce iade edilip edilmediğini
// söyler. Form tarafındaki anlık kontrol için kullanılır.
func OrderIDExists(orderID string) (bool, error) {
	var count int64
	if err := database.DB.Model(&models.ReturnRecord{}).
		Where("order_id = ?", orderID).
		Count(&count).Error; err != nil {
		return false, fiber.NewError(fiber.StatusInternalServerError, "Sipariş numarası kontrol edilemedi")
	}
	return count > 0, nil
}
