package migrations

import (
	"uyetakip.app/configs/configslog"
	"uyetakip.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateMembershipTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating members, guests & pipeliners tables...")
	err := db.AutoMigrate(&models.Member{}, &models.Guest{}, &models.Pipeliner{})
	if err != nil {
		configslog.Log.Error("Failed to migrate membership tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Membership tables migrated successfully")
	return nil
}
