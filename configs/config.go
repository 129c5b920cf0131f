package configs

import (
	"uyetakip.app/configs/configsdatabase"

	"gorm.io/gorm"
)

// GetDB servis ve repository katmanının kullandığı GORM bağlantısını döndürür.
func GetDB() *gorm.DB {
	return configsdatabase.GetDB()
}
