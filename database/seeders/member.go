package seeders

import (
	"errors"
	"time"

	"uyetakip.app/configs/configslog"
	"uyetakip.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedFoundingMembers kurucu üyeleri oluşturur. Mevcut üye numaraları atlanır;
// seeder tekrar çalıştırıldığında çift kayıt oluşmaz.
func SeedFoundingMembers(db *gorm.DB) error {
	joinDate := time.Date(2020, time.January, 15, 0, 0, 0, 0, time.UTC)

	membersToSeed := []models.Member{
		{FirstName: "Kemal", LastName: "Arslan", Email: "kemal.arslan@kulup.org", MemberNumber: "RT-001", JoinDate: joinDate, Status: models.MemberStatusActive, Notes: "Kurucu üye"},
		{FirstName: "Nilgün", LastName: "Demirtaş", Email: "nilgun.demirtas@kulup.org", MemberNumber: "RT-002", JoinDate: joinDate, Status: models.MemberStatusActive, Notes: "Kurucu üye"},
		{FirstName: "Serkan", LastName: "Öztürk", Email: "serkan.ozturk@kulup.org", MemberNumber: "RT-003", JoinDate: joinDate, Status: models.MemberStatusActive, Notes: "Kurucu üye"},
	}

	var createdCount int64
	var errorOccurred bool

	configslog.SLog.Info("Kurucu üyeler seed işlemi başlıyor...")

	for _, memberToSeed := range membersToSeed {
		var existingMember models.Member
		result := db.Where("member_number = ?", memberToSeed.MemberNumber).First(&existingMember)

		if result.Error == nil {
			configslog.SLog.Debugf("Üye '%s' zaten mevcut, oluşturma atlanıyor.", memberToSeed.MemberNumber)
			continue
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			configslog.Log.Error("Üye kontrol edilirken veritabanı hatası",
				zap.String("member_number", memberToSeed.MemberNumber),
				zap.Error(result.Error),
			)
			errorOccurred = true
			continue
		}

		configslog.SLog.Infof("Üye '%s' oluşturuluyor...", memberToSeed.MemberNumber)

		if err := db.Create(&memberToSeed).Error; err != nil {
			configslog.Log.Error("Üye oluşturulamadı",
				zap.String("member_number", memberToSeed.MemberNumber),
				zap.Error(err),
			)
			errorOccurred = true
			continue
		}

		configslog.SLog.Infof("Üye '%s' başarıyla oluşturuldu (ID: %d).", memberToSeed.MemberNumber, memberToSeed.ID)
		createdCount++
	}

	if createdCount > 0 {
		configslog.SLog.Infof("%d adet kurucu üye başarıyla seed edildi.", createdCount)
	} else if !errorOccurred {
		configslog.SLog.Info("Tüm kurucu üyeler zaten mevcut, yeni ekleme yapılmadı.")
	}

	if errorOccurred {
		return errors.New("kurucu üyeler seed edilirken en az bir hata oluştu")
	}

	configslog.SLog.Info("Kurucu üyeler seed işlemi başarıyla tamamlandı.")
	return nil
}
