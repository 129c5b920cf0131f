package migrations

import (
	"uyetakip.app/configs/configslog"
	"uyetakip.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateCharityTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating charity_events & charity_participants tables...")
	err := db.AutoMigrate(&models.CharityEvent{}, &models.CharityParticipant{})
	if err != nil {
		configslog.Log.Error("Failed to migrate charity tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Charity tables migrated successfully")
	return nil
}
