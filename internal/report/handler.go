package report

import (
	"github.com/gofiber/fiber/v2"
)

// GET /api/wip-tracker
func WipTrackerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := WipTracker()
		if err != nil {
			return err
		}
		return c.JSON(rows)
	}
}

// GET /api/skus-with-status
// WIP verisinin SKU odaklı görünümü; akış ekranları bunu kullanır.
func SKUsWithStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := WipTracker()
		if err != nil {
			return err
		}
		return c.JSON(rows)
	}
}

// GET /api/inventory-summary
func InventorySummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := InventorySummary()
		if err != nil {
			return err
		}
		return c.JSON(rows)
	}
}

// GET /api/overview-stats
func OverviewStatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := Overview()
		if err != nil {
			return err
		}
		return c.JSON(stats)
	}
}
