package migrations

import (
	"uyetakip.app/configs/configslog"
	"uyetakip.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateMeetingTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating meetings & attendance_records tables...")
	err := db.AutoMigrate(&models.Meeting{}, &models.AttendanceRecord{})
	if err != nil {
		configslog.Log.Error("Failed to migrate meetings & attendance_records tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Meetings & attendance_records tables migrated successfully")
	return nil
}
