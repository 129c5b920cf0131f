package routes

import (
	dashboard_handlers "uyetakip.app/handlers/dashboard"

	"github.com/gofiber/fiber/v2"
)

// registerDashboardRoutes /dashboard altındaki raporlama rotalarını tanımlar.
func registerDashboardRoutes(app *fiber.App) {
	reportHandler := dashboard_handlers.NewDashboardReportHandler()

	dashboardGroup := app.Group("/dashboard")

	dashboardGroup.Get("/reports/monthly", reportHandler.MonthlyStats) // GET /dashboard/reports/monthly?year=&month=
	dashboardGroup.Post("/recompute", reportHandler.RecomputeAll)      // POST /dashboard/recompute
}
