package routes

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"

	"uyetakip.app/models"
)

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
func SetupRoutes(app *fiber.App) {
	// --- Genel Middleware'ler ---
	app.Use(recoverMiddleware.New()) // Panic yakalama
	app.Use(logger.New())            // İstek loglama
	app.Use(actingUserMiddleware)    // Audit kolonları için işlemi yapan kullanıcı

	// --- Rota Grupları ---
	registerPanelRoutes(app)     // /panel rotaları (kayıt ve defter yönetimi)
	registerDashboardRoutes(app) // /dashboard rotaları (raporlama)

	// --- Sağlık Kontrolü ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// --- 404 Handler ---
	// En sonda, eşleşmeyen tüm rotaları yakalar.
	app.Use(notFoundHandler)
}

// actingUserMiddleware X-User-ID başlığındaki kimliği context'e taşır;
// BaseModel hook'ları created_by/updated_by kolonlarını bu değerle doldurur.
func actingUserMiddleware(c *fiber.Ctx) error {
	if raw := c.Get("X-User-ID"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil && id != 0 {
			c.SetUserContext(models.ContextWithUserID(c.UserContext(), uint(id)))
		}
	}
	return c.Next()
}

func notFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Kaynak bulunamadı"})
}
