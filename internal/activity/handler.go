package activity

import (
	"fmt"

	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ActivityLogResponse struct {
	ID          uint                  `json:"id"`
	CreatedAt   string                `json:"created_at"`
	SKUID       *uint                 `json:"sku_id"`
	Module      string                `json:"module"`
	Action      models.ActivityAction `json:"action"`
	Description string                `json:"description"`
	UserID      uint                  `json:"user_id"`
	UserName    string                `json:"user_name"`
}

// GET /api/activity-logs?sku_id=1&module=fabric
func ListActivityLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		skuIDStr := c.Query("sku_id")
		module := c.Query("module")

		dbq := database.DB.Model(&models.ActivityLog{})

		filtered := false
		if skuIDStr != "" {
			var sid uint
			if _, err := fmt.Sscan(skuIDStr, &sid); err == nil && sid > 0 {
				dbq = dbq.Where("sku_id = ?", sid)
				filtered = true
			}
		}
		if module != "" {
			dbq = dbq.Where("module = ?", module)
			filtered = true
		}

		dbq = dbq.Order("created_at DESC")
		// Filtresiz listede son 100 kayıtla sınırlıyoruz.
		if !filtered {
			dbq = dbq.Limit(100)
		}

		var logs []models.ActivityLog
		if err := dbq.Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Loglar listelenemedi")
		}

		resp := make([]ActivityLogResponse, 0, len(logs))
		for _, entry := range logs {
			resp = append(resp, ActivityLogResponse{
				ID:          entry.ID,
				CreatedAt:   entry.CreatedAt.Format("2006-01-02 15:04:05"),
				SKUID:       entry.SKUID,
				Module:      entry.Module,
				Action:      entry.Action,
				Description: entry.Description,
				UserID:      entry.UserID,
				UserName:    entry.UserName,
			})
		}

		return c.JSON(resp)
	}
}

// GET /api/excel-imports
// SKU ve satış aktarımlarının geçmişi, en yeniden eskiye.
func ListExcelImportsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var imports []models.ExcelImport
		if err := database.DB.Order("created_at DESC").Limit(100).Find(&imports).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Aktarım geçmişi listelenemedi")
		}
		return c.JSON(imports)
	}
}
