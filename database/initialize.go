package database

import (
	"uyetakip.app/configs/configslog"
	"uyetakip.app/database/migrations"
	"uyetakip.app/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Initialize(db *gorm.DB, migrate bool, seed bool) {
	if !migrate && !seed {
		configslog.SLog.Info("Migrate veya seed bayrağı belirtilmedi, işlem yapılmayacak.")
		return
	}

	tx := db.Begin()
	if tx.Error != nil {
		configslog.Log.Fatal("Veritabanı transaction başlatılamadı", zap.Error(tx.Error))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			configslog.Log.Fatal("Üye takip şeması hazırlığı başarısız oldu (panic)", zap.Any("panic_info", r))
		} else if err := tx.Error; err != nil && err != gorm.ErrInvalidTransaction {
			configslog.SLog.Warn("Başlatma sırasında hata oluştuğu için işlem geri alınıyor.", zap.Error(err))
			rbErr := tx.Rollback().Error
			if rbErr != nil && rbErr != gorm.ErrInvalidTransaction {
				configslog.Log.Error("Rollback sırasında ek hata oluştu", zap.Error(rbErr))
			}
		}
	}()

	configslog.SLog.Info("Üye takip şeması hazırlanıyor...")

	if migrate {
		configslog.SLog.Info("Migrasyonlar çalıştırılıyor...")
		if err := RunMigrationsInOrder(tx); err != nil {
			configslog.Log.Error("Migrasyon başarısız oldu", zap.Error(err))
			return
		}
		configslog.SLog.Info("Migrasyonlar tamamlandı.")
	} else {
		configslog.SLog.Info("Migrate bayrağı belirtilmedi, migrasyon adımı atlanıyor.")
	}

	if seed {
		configslog.SLog.Info("Seeder'lar çalıştırılıyor...")
		if err := CheckAndRunSeeders(tx); err != nil {
			configslog.Log.Error("Seeding başarısız oldu", zap.Error(err))
			return
		}
		configslog.SLog.Info("Seeder'lar tamamlandı.")
	} else {
		configslog.SLog.Info("Seed bayrağı belirtilmedi, seeder adımı atlanıyor.")
	}

	configslog.SLog.Info("İşlem commit ediliyor...")
	if err := tx.Commit().Error; err != nil {
		tx.Error = err
		configslog.Log.Error("Commit başarısız oldu", zap.Error(err))
		return
	}

	configslog.SLog.Info("Üye takip şeması hazırlığı başarıyla tamamlandı")
}

func RunMigrationsInOrder(db *gorm.DB) error {
	configslog.SLog.Info("Migrasyonlar sırayla çalıştırılıyor...")

	// Üyelik tabloları önce gelir; defter tabloları onlara zayıf referans taşır.
	configslog.SLog.Info(" -> Üyelik migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateMembershipTables(db); err != nil {
		configslog.Log.Error("Üyelik tabloları migrasyonu başarısız oldu", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> Üyelik migrasyonları tamamlandı.")

	configslog.SLog.Info(" -> Toplantı migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateMeetingTables(db); err != nil {
		configslog.Log.Error("Toplantı tabloları migrasyonu başarısız oldu", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> Toplantı migrasyonları tamamlandı.")

	configslog.SLog.Info(" -> Yardım etkinliği migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateCharityTables(db); err != nil {
		configslog.Log.Error("Yardım etkinliği tabloları migrasyonu başarısız oldu", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> Yardım etkinliği migrasyonları tamamlandı.")

	configslog.SLog.Info("Tüm migrasyonlar başarıyla çalıştırıldı.")
	return nil
}

func CheckAndRunSeeders(db *gorm.DB) error {
	configslog.SLog.Info(" -> Kurucu üye seeder çalıştırılıyor...")
	if err := seeders.SeedFoundingMembers(db); err != nil {
		configslog.Log.Error("Kurucu üyeler seed edilemedi", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> Kurucu üye seeder tamamlandı.")

	configslog.SLog.Info("Tüm seeder'lar başarıyla kontrol edildi/çalıştırıldı.")
	return nil
}
