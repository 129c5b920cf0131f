package handlers // handlers/dashboard paketi

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"uyetakip.app/configs/configslog"
	"uyetakip.app/services"
)

// DashboardReportHandler raporlama ve operasyonel onarım uçları.
type DashboardReportHandler struct {
	reports    services.IReportService
	aggregates services.IAggregateService
}

// NewDashboardReportHandler yeni bir DashboardReportHandler örneği oluşturur.
func NewDashboardReportHandler() *DashboardReportHandler {
	return &DashboardReportHandler{
		reports:    services.NewReportService(),
		aggregates: services.NewAggregateService(),
	}
}

// MonthlyStats verilen ayın katılım istatistiklerini döndürür.
// Yıl/ay verilmezse içinde bulunulan ay kullanılır.
func (h *DashboardReportHandler) MonthlyStats(c *fiber.Ctx) error {
	now := time.Now()
	year := c.QueryInt("year", now.Year())
	month := c.QueryInt("month", int(now.Month()))

	stats, err := h.reports.GetMonthlyAttendanceStats(c.UserContext(), year, month)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("Dashboard - MonthlyStats Error",
			zap.Int("year", year), zap.Int("month", month), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(stats)
}

// RecomputeAll tüm türetilmiş sayaçları defterden yeniden hesaplar.
func (h *DashboardReportHandler) RecomputeAll(c *fiber.Ctx) error {
	if err := h.aggregates.RecomputeAll(c.UserContext()); err != nil {
		configslog.Log.Error("Dashboard - RecomputeAll Error", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Tüm türetilmiş sayaçlar yeniden hesaplandı."})
}
