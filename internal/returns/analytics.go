package returns

import (
	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type PanelStat struct {
	Panel         string `json:"panel"`
	TotalReturns  int64  `json:"total_returns"`
	TotalQuantity int    `json:"total_quantity"`
}

type Analytics struct {
	TotalReturns  int64            `json:"total_returns"`
	TotalQuantity int              `json:"total_quantity"`
	ByCondition   map[string]int64 `json:"by_condition"`
	ByPanel       []PanelStat      `json:"by_panel"`
}

// Summary iade istatistiklerini derler: toplamlar, durum kırılımı ve
// panel kırılımı. Yalnızca admin görebilir.
func Summary(user models.User) (*Analytics, error) {
	if !user.IsAdmin() {
		return nil, fiber.NewError(fiber.StatusForbidden, "Bu rapor için admin yetkisi gerekli")
	}

	out := Analytics{ByCondition: make(map[string]int64)}

	if err := database.DB.Model(&models.ReturnRecord{}).
		Count(&out.TotalReturns).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "İade istatistikleri hesaplanamadı")
	}

	var totalQty int
	if err := database.DB.Model(&models.ReturnRecord{}).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&totalQty).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "İade istatistikleri hesaplanamadı")
	}
	out.TotalQuantity = totalQty

	type condRow struct {
		ReturnCondition string
		Cnt             int64
	}
	var conds []condRow
	if err := database.DB.Model(&models.ReturnRecord{}).
		Select("return_condition, COUNT(*) AS cnt").
		Group("return_condition").
		Scan(&conds).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "İade istatistikleri hesaplanamadı")
	}
	for _, c := range conds {
		out.ByCondition[c.ReturnCondition] = c.Cnt
	}

	type panelRow struct {
		ReturnSourcePanel string
		Cnt               int64
		Qty               int
	}
	var panels []panelRow
	if err := database.DB.Model(&models.ReturnRecord{}).
		Select("return_source_panel, COUNT(*) AS cnt, COALESCE(SUM(quantity), 0) AS qty").
		Group("return_source_panel").
		Order("cnt DESC").
		Scan(&panels).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "İade istatistikleri hesaplanamadı")
	}
	for _, p := range panels {
		out.ByPanel = append(out.ByPanel, PanelStat{
			Panel:         p.ReturnSourcePanel,
			TotalReturns:  p.Cnt,
			TotalQuantity: p.Qty,
		})
	}

	return &out, nil
}
