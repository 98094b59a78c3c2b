package main

import (
	"log"
	"strings"

	"konfeksiyon-backend/internal/activity"
	"konfeksiyon-backend/internal/auth"
	"konfeksiyon-backend/internal/config"
	"konfeksiyon-backend/internal/cutting"
	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/fabric"
	"konfeksiyon-backend/internal/finishing"
	"konfeksiyon-backend/internal/models"
	"konfeksiyon-backend/internal/production"
	"konfeksiyon-backend/internal/report"
	"konfeksiyon-backend/internal/returns"
	"konfeksiyon-backend/internal/sales"
	"konfeksiyon-backend/internal/sku"
	"konfeksiyon-backend/internal/users"
	"konfeksiyon-backend/internal/warehouse"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // Excel yüklemeleri için
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			config.Logger().WithError(err).Error("beklenmeyen hata")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den temizle
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Admin: kullanıcı yönetimi
	adminRoutes := protected.Group("/users")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))
	adminRoutes.Get("/", users.ListUsersHandler())
	adminRoutes.Post("/", users.CreateUserHandler())
	adminRoutes.Put("/:id", users.UpdateUserHandler())
	adminRoutes.Delete("/:id", users.DeleteUserHandler())

	// SKU yönetimi
	protected.Get("/skus", sku.ListSKUsHandler())
	protected.Get("/skus/sample-template", sku.SampleTemplateHandler())
	protected.Get("/skus/:id", sku.GetSKUHandler())
	protected.Post("/skus", sku.CreateSKUHandler())
	protected.Put("/skus/:id", sku.UpdateSKUHandler())
	protected.Delete("/skus/:id", sku.DeleteSKUHandler())
	protected.Post("/skus/bulk-upload", sku.BulkUploadHandler())

	// Kumaş girişleri
	protected.Get("/fabric-records", fabric.ListFabricRecordsHandler())
	protected.Post("/fabric-records", fabric.CreateFabricRecordHandler())
	protected.Put("/fabric-records/:id", fabric.UpdateFabricRecordHandler())
	protected.Delete("/fabric-records/:id", fabric.DeleteFabricRecordHandler())
	protected.Get("/fabric-stock", fabric.FabricStockHandler())

	// Kesim
	protected.Get("/cutting-records", cutting.ListCuttingRecordsHandler())
	protected.Post("/cutting-records", cutting.CreateCuttingRecordHandler())
	protected.Put("/cutting-records/:id", cutting.UpdateCuttingRecordHandler())
	protected.Delete("/cutting-records/:id", cutting.DeleteCuttingRecordHandler())

	// Dikim
	protected.Get("/production-records", production.ListProductionRecordsHandler())
	protected.Post("/production-records", production.CreateProductionRecordHandler())
	protected.Put("/production-records/:id", production.UpdateProductionRecordHandler())
	protected.Delete("/production-records/:id", production.DeleteProductionRecordHandler())

	// Son işlem (finishing)
	protected.Get("/finishing-records", finishing.ListFinishingRecordsHandler())
	protected.Post("/finishing-records", finishing.CreateFinishingRecordHandler())
	protected.Put("/finishing-records/:id", finishing.UpdateFinishingRecordHandler())
	protected.Delete("/finishing-records/:id", finishing.DeleteFinishingRecordHandler())

	// Depo
	protected.Get("/warehouse-records", warehouse.ListWarehouseRecordsHandler())
	protected.Post("/warehouse-records", warehouse.CreateWarehouseRecordHandler())
	protected.Put("/warehouse-records/:id", warehouse.UpdateWarehouseRecordHandler())
	protected.Delete("/warehouse-records/:id", warehouse.DeleteWarehouseRecordHandler())
	protected.Get("/warehouse-stock", warehouse.WarehouseStockHandler())

	// Satış
	protected.Get("/sales-records", sales.ListSalesRecordsHandler())
	protected.Post("/sales-records", sales.CreateSalesRecordHandler())
	protected.Put("/sales-records/:id", sales.UpdateSalesRecordHandler())
	protected.Delete("/sales-records/:id", sales.DeleteSalesRecordHandler())

	// Toplu satış aktarımı
	protected.Post("/bulk-import/preview", sales.PreviewImportHandler())
	protected.Post("/bulk-import/confirm", sales.ConfirmImportHandler())

	// İadeler
	protected.Get("/return-records", returns.ListReturnRecordsHandler())
	protected.Post("/return-records", returns.CreateReturnRecordHandler())
	protected.Put("/return-records/:id", returns.UpdateReturnRecordHandler())
	protected.Delete("/return-records/:id", returns.DeleteReturnRecordHandler())
	protected.Get("/return-processing", returns.ListReturnProcessingHandler())
	protected.Get("/pending-returns-refinishing", returns.PendingRefinishingHandler())
	protected.Post("/return-processing/mark-refinished", returns.MarkRefinishedHandler())
	protected.Post("/return-processing/reject", returns.RejectProcessingHandler())
	protected.Get("/return-analytics", returns.ReturnAnalyticsHandler())
	protected.Get("/check-order-id/:orderId", returns.CheckOrderIDHandler())

	// Raporlar
	protected.Get("/wip-tracker", report.WipTrackerHandler())
	protected.Get("/skus-with-status", report.SKUsWithStatusHandler())
	protected.Get("/inventory-summary", report.InventorySummaryHandler())
	protected.Get("/overview-stats", report.OverviewStatsHandler())

	// Aktivite & aktarım geçmişi
	protected.Get("/activity-logs", activity.ListActivityLogsHandler())
	protected.Get("/excel-imports", activity.ListExcelImportsHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
