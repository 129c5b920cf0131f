package configslog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log yapılandırılmış (structured) global logger.
// SLog aynı logger'ın sugared hali (formatlı mesajlar için).
var (
	Log  *zap.Logger
	SLog *zap.SugaredLogger
)

// Paketler logger'a InitLogger çağrılmadan erişebilir (testler gibi),
// bu yüzden varsayılan olarak no-op logger atanır.
func init() {
	Log = zap.NewNop()
	SLog = Log.Sugar()
}

// InitLogger global logger'ları başlatır.
// APP_ENV=production ise JSON formatında, aksi halde renkli development formatında loglar.
func InitLogger() {
	var cfg zap.Config
	if os.Getenv("APP_ENV") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := cfg.Build()
	if err != nil {
		panic("logger başlatılamadı: " + err.Error())
	}

	Log = logger
	SLog = logger.Sugar()
}

// SyncLogger buffer'da bekleyen logları flush eder. main içinde defer ile çağrılır.
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
