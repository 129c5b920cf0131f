package configsdatabase

import (
	"fmt"
	"os"
	"time"

	"uyetakip.app/configs/configslog"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDB .env dosyasını yükler ve PostgreSQL bağlantısını açar.
// Bağlantı kurulamazsa uygulama başlayamaz (Fatal).
func InitDB() {
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Warn(".env dosyası bulunamadı, ortam değişkenleri kullanılacak")
	}

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		envOrDefault("DB_HOST", "localhost"),
		envOrDefault("DB_PORT", "5432"),
		envOrDefault("DB_USER", "postgres"),
		os.Getenv("DB_PASSWORD"),
		envOrDefault("DB_NAME", "uyetakip"),
		envOrDefault("DB_SSLMODE", "disable"),
	)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		configslog.Log.Fatal("Veritabanı bağlantısı kurulamadı", zap.Error(err))
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		configslog.Log.Fatal("Veritabanı havuzuna erişilemedi", zap.Error(err))
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	db = gormDB
	configslog.SLog.Info("Veritabanı bağlantısı kuruldu")
}

// GetDB aktif GORM bağlantısını döndürür.
func GetDB() *gorm.DB {
	if db == nil {
		configslog.Log.Fatal("GetDB çağrıldı ama InitDB henüz çalıştırılmadı")
	}
	return db
}

// SetDB bağlantıyı dışarıdan atamak için kullanılır (testlerde in-memory sqlite).
func SetDB(conn *gorm.DB) {
	db = conn
}

// CloseDB veritabanı bağlantısını kapatır. main içinde defer ile çağrılır.
func CloseDB() {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Error("Bağlantı kapatılırken havuza erişilemedi", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Error("Veritabanı bağlantısı kapatılamadı", zap.Error(err))
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
