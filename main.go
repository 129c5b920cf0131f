package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"uyetakip.app/configs/configsdatabase"
	"uyetakip.app/configs/configslog"
	"uyetakip.app/routes"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	app := fiber.New(fiber.Config{
		AppName:      "uyetakip",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	routes.SetupRoutes(app)

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	// Graceful shutdown: sinyal gelince yeni istek kabulü durur, süren
	// istekler tamamlanır, sonra bağlantılar kapanır.
	shutdownDone := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh

		configslog.SLog.Infof("Kapatma sinyali alındı (%s), sunucu durduruluyor...", sig)
		if err := app.ShutdownWithTimeout(15 * time.Second); err != nil {
			configslog.Log.Error("Sunucu düzgün kapatılamadı", zap.Error(err))
		}
		close(shutdownDone)
	}()

	configslog.SLog.Infof("Sunucu %s portunda dinliyor", port)
	if err := app.Listen(":" + port); err != nil {
		configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
	}

	<-shutdownDone
	configslog.SLog.Info("Sunucu kapatıldı.")
}
