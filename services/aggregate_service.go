package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"uyetakip.app/configs"
	"uyetakip.app/configs/configslog"
	"uyetakip.app/models"
	"uyetakip.app/pkg/eligibility"
	"uyetakip.app/repositories"
)

// IAggregateService türetilmiş sayaçların defter gerçeğinden sapmamasını garanti eder.
type IAggregateService interface {
	RecomputeSubject(ctx context.Context, tx *gorm.DB, subject models.Subject) error
	RecomputeSubjects(ctx context.Context, tx *gorm.DB, subjects []models.Subject) error
	RecomputeAll(ctx context.Context) error
	GuestProgress(ctx context.Context, tx *gorm.DB, guestID uint) (eligibility.Progress, error)
	PipelinerProgress(ctx context.Context, tx *gorm.DB, pipelinerID uint) (eligibility.Progress, error)
}

// AggregateService IAggregateService arayüzünü uygular.
//
// Sayaçlar her zaman defterden sıfırdan yeniden hesaplanır, artımlı +1/-1
// uygulanmaz: özne referansı değişen UPDATE'lerde delta yaklaşımı kısmi hata
// veya sıralama bozulması altında çift sayar ya da eksik sayar. Yeniden
// hesaplama tetikleyen defter yazımıyla AYNI transaction içinde çalışır;
// hesaplama başarısız olursa defter yazımı da geri alınır.
type AggregateService struct {
	db *gorm.DB
}

// NewAggregateService yeni bir AggregateService örneği oluşturur.
func NewAggregateService() IAggregateService {
	return NewAggregateServiceWithDB(configs.GetDB())
}

// NewAggregateServiceWithDB verilen bağlantı ile AggregateService oluşturur.
func NewAggregateServiceWithDB(db *gorm.DB) IAggregateService {
	return &AggregateService{db: db}
}

// RecomputeSubject verilen öznenin tüm türetilmiş alanlarını tx içinde
// defterden yeniden hesaplayıp özne satırına yazar. Özne satırı silinmişse
// sessizce atlanır (kaskat silme sırasında normaldir).
func (s *AggregateService) RecomputeSubject(ctx context.Context, tx *gorm.DB, subject models.Subject) error {
	if !subject.Valid() {
		return ErrInvalidSubject
	}
	switch subject.Kind {
	case models.SubjectKindGuest:
		return s.recomputeGuest(ctx, tx, subject.ID)
	case models.SubjectKindPipeliner:
		return s.recomputePipeliner(ctx, tx, subject.ID)
	case models.SubjectKindMember:
		// Üyeler için türetilmiş sayaç tutulmuyor; katılımları yalnızca
		// raporlamada okunur.
		return nil
	}
	return ErrInvalidSubject
}

// RecomputeSubjects birden fazla özneyi tek tek yeniden hesaplar.
func (s *AggregateService) RecomputeSubjects(ctx context.Context, tx *gorm.DB, subjects []models.Subject) error {
	for _, subject := range dedupeSubjects(subjects) {
		if err := s.RecomputeSubject(ctx, tx, subject); err != nil {
			return err
		}
	}
	return nil
}

func (s *AggregateService) recomputeGuest(ctx context.Context, tx *gorm.DB, guestID uint) error {
	attendanceRepo := repositories.NewAttendanceRepositoryTx(tx)
	subject := models.Subject{Kind: models.SubjectKindGuest, ID: guestID}

	// Özne satırı sayaçlar okunmadan ÖNCE kilitlenir: aynı özneye eşzamanlı
	// iki defter yazımı sayaç hesabını serileştirmek zorundadır, yoksa ikisi
	// de birbirinin satırını görmeden aynı bayat sayacı yazar.
	var guest models.Guest
	if err := lockForUpdate(tx.WithContext(ctx)).First(&guest, guestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Özne bu transaction içinde silinmiş olabilir.
			configslog.SLog.Debugf("RecomputeSubject: misafir %d bulunamadı, atlanıyor", guestID)
			return nil
		}
		return err
	}

	presentCount, err := attendanceRepo.CountPresentBySubject(ctx, subject)
	if err != nil {
		return fmt.Errorf("misafir sayaçları hesaplanamadı: %w", err)
	}
	firstAttendance, err := attendanceRepo.FirstPresentDate(ctx, subject)
	if err != nil {
		return fmt.Errorf("misafir ilk katılım tarihi hesaplanamadı: %w", err)
	}

	result := tx.WithContext(ctx).Model(&models.Guest{}).
		Where("id = ?", guestID).
		Updates(map[string]interface{}{
			"total_meetings":   presentCount,
			"first_attendance": firstAttendance,
		})
	if result.Error != nil {
		return fmt.Errorf("misafir sayaçları yazılamadı: %w", result.Error)
	}
	return nil
}

func (s *AggregateService) recomputePipeliner(ctx context.Context, tx *gorm.DB, pipelinerID uint) error {
	attendanceRepo := repositories.NewAttendanceRepositoryTx(tx)
	charityRepo := repositories.NewCharityEventRepositoryTx(tx)
	subject := models.Subject{Kind: models.SubjectKindPipeliner, ID: pipelinerID}

	// Sayaçlar okunmadan önce özne satırı kilitlenir (bkz. recomputeGuest).
	var pipeliner models.Pipeliner
	if err := lockForUpdate(tx.WithContext(ctx)).First(&pipeliner, pipelinerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			configslog.SLog.Debugf("RecomputeSubject: pipeliner %d bulunamadı, atlanıyor", pipelinerID)
			return nil
		}
		return err
	}

	businessCount, err := attendanceRepo.CountPresentBusinessBySubject(ctx, subject)
	if err != nil {
		return fmt.Errorf("pipeliner toplantı sayacı hesaplanamadı: %w", err)
	}
	charityCount, err := charityRepo.CountEventsBySubject(ctx, subject)
	if err != nil {
		return fmt.Errorf("pipeliner etkinlik sayacı hesaplanamadı: %w", err)
	}

	// Önbellek bayrağı kapı fonksiyonunun kendisiyle hesaplanır; üye olmuş
	// pipeliner'da üyelik durumu kazanır, bayrak düşürülür.
	eligible := eligibility.PipelinerEligibleForMembership(int(businessCount), int(charityCount))
	if pipeliner.Status == models.PipelinerStatusBecameMember {
		eligible = false
	}

	result := tx.WithContext(ctx).Model(&models.Pipeliner{}).
		Where("id = ?", pipelinerID).
		Updates(map[string]interface{}{
			"business_meetings_count":    businessCount,
			"charity_events_count":       charityCount,
			"is_eligible_for_membership": eligible,
		})
	if result.Error != nil {
		return fmt.Errorf("pipeliner sayaçları yazılamadı: %w", result.Error)
	}
	return nil
}

// RecomputeAll tüm misafir ve pipeliner sayaçlarını tek transaction içinde
// yeniden hesaplar (operasyonel onarım; değişmemiş defterde idempotenttir).
func (s *AggregateService) RecomputeAll(ctx context.Context) error {
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		var guestIDs []uint
		if err := tx.WithContext(ctx).Model(&models.Guest{}).Pluck("id", &guestIDs).Error; err != nil {
			return err
		}
		for _, id := range guestIDs {
			if err := s.recomputeGuest(ctx, tx, id); err != nil {
				return err
			}
		}

		var pipelinerIDs []uint
		if err := tx.WithContext(ctx).Model(&models.Pipeliner{}).Pluck("id", &pipelinerIDs).Error; err != nil {
			return err
		}
		for _, id := range pipelinerIDs {
			if err := s.recomputePipeliner(ctx, tx, id); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		configslog.Log.Error("RecomputeAll transaction failed", zap.Error(txErr))
		return wrapTxError(txErr)
	}
	configslog.SLog.Info("Tüm türetilmiş sayaçlar yeniden hesaplandı")
	return nil
}

// GuestProgress misafirin güncel sayaçlarını defterden okuyup uygunluk
// durumunu döndürür. Terfi kapısı ve okuma uçları aynı fonksiyonu kullanır.
func (s *AggregateService) GuestProgress(ctx context.Context, tx *gorm.DB, guestID uint) (eligibility.Progress, error) {
	attendanceRepo := repositories.NewAttendanceRepositoryTx(tx)
	charityRepo := repositories.NewCharityEventRepositoryTx(tx)
	subject := models.Subject{Kind: models.SubjectKindGuest, ID: guestID}

	presentCount, err := attendanceRepo.CountPresentBySubject(ctx, subject)
	if err != nil {
		return eligibility.Progress{}, err
	}
	charityCount, err := charityRepo.CountEventsBySubject(ctx, subject)
	if err != nil {
		return eligibility.Progress{}, err
	}
	return eligibility.Evaluate(int(presentCount), int(charityCount)), nil
}

// PipelinerProgress pipeliner'ın güncel sayaçlarını defterden okuyup uygunluk
// durumunu döndürür.
func (s *AggregateService) PipelinerProgress(ctx context.Context, tx *gorm.DB, pipelinerID uint) (eligibility.Progress, error) {
	attendanceRepo := repositories.NewAttendanceRepositoryTx(tx)
	charityRepo := repositories.NewCharityEventRepositoryTx(tx)
	subject := models.Subject{Kind: models.SubjectKindPipeliner, ID: pipelinerID}

	businessCount, err := attendanceRepo.CountPresentBusinessBySubject(ctx, subject)
	if err != nil {
		return eligibility.Progress{}, err
	}
	charityCount, err := charityRepo.CountEventsBySubject(ctx, subject)
	if err != nil {
		return eligibility.Progress{}, err
	}
	return eligibility.Evaluate(int(businessCount), int(charityCount)), nil
}

var _ IAggregateService = (*AggregateService)(nil)
