package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"uyetakip.app/configs"
	"uyetakip.app/configs/configslog"
	"uyetakip.app/models"
	"uyetakip.app/pkg/eligibility"
	"uyetakip.app/repositories"
)

// IPromotionService üyelik ilerleme geçişleri için arayüz.
type IPromotionService interface {
	PromoteGuestToPipeliner(ctx context.Context, guestID, sponsorMemberID uint, notes string, override bool) (*models.Pipeliner, error)
	PromoteToMember(ctx context.Context, pipelinerID uint, memberNumber string, joinDate time.Time) (*models.Member, error)
	GetGuestEligibility(ctx context.Context, guestID uint) (eligibility.Progress, error)
	GetPipelinerEligibility(ctx context.Context, pipelinerID uint) (eligibility.Progress, error)
}

// PromotionService IPromotionService arayüzünü uygular.
//
// Her iki geçiş de tek transaction içinde yürütülür: ikinci adım başarısız
// olursa ilk adımın insert'i rollback ile geri alınır, elle telafi silmesine
// gerek kalmaz. Özne satırı FOR UPDATE ile kilitlenir; aynı özne için iki
// eşzamanlı terfi denemesinden ikincisi, ilkinin durum değişikliğini görüp
// ErrSubjectAlreadyPromoted ile reddedilir. Kapı kontrolü önbellek bayrağına
// değil, transaction başında defterden yeniden hesaplanan sayaçlara bakar.
type PromotionService struct {
	db         *gorm.DB
	aggregates IAggregateService
}

// NewPromotionService yeni bir PromotionService örneği oluşturur.
func NewPromotionService() IPromotionService {
	return NewPromotionServiceWithDB(configs.GetDB())
}

// NewPromotionServiceWithDB verilen bağlantı ile PromotionService oluşturur.
func NewPromotionServiceWithDB(db *gorm.DB) IPromotionService {
	return &PromotionService{
		db:         db,
		aggregates: NewAggregateServiceWithDB(db),
	}
}

// PromoteGuestToPipeliner aktif bir misafiri pipeline'a alır.
// override true ise uygunluk kapısı atlanır (yetkili idari işlem); durum
// makinesi kontrolleri override ile atlanamaz.
func (s *PromotionService) PromoteGuestToPipeliner(ctx context.Context, guestID, sponsorMemberID uint, notes string, override bool) (*models.Pipeliner, error) {
	if guestID == 0 || sponsorMemberID == 0 {
		return nil, fmt.Errorf("%w: misafir ve sponsor üye ID zorunludur", ErrInvalidInput)
	}

	var created *models.Pipeliner
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		memberRepo := repositories.NewMemberRepositoryTx(tx)
		pipelinerRepo := repositories.NewPipelinerRepositoryTx(tx)
		guestRepo := repositories.NewGuestRepositoryTx(tx)

		var guest models.Guest
		if err := lockForUpdate(tx.WithContext(ctx)).First(&guest, guestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGuestNotFound
			}
			return err
		}

		switch guest.Status {
		case models.GuestStatusActive:
			// devam
		case models.GuestStatusBecamePipeliner:
			return ErrSubjectAlreadyPromoted
		default:
			return ErrGuestNotActive
		}

		sponsorExists, err := memberRepo.Exists(ctx, sponsorMemberID)
		if err != nil {
			return err
		}
		if !sponsorExists {
			return ErrMemberNotFound
		}

		// Kapı, bayat önbellek yerine transaction başında defterden okunan
		// sayaçlarla değerlendirilir.
		progress, err := s.aggregates.GuestProgress(ctx, tx, guestID)
		if err != nil {
			return err
		}
		if !progress.Eligible && !override {
			return notEligibleError(progress)
		}

		sponsorID := sponsorMemberID
		pipeliner := &models.Pipeliner{
			FirstName:           guest.FirstName,
			LastName:            guest.LastName,
			Email:               guest.Email,
			Phone:               guest.Phone,
			Status:              models.PipelinerStatusActive,
			Notes:               notes,
			SponsoredByMemberID: &sponsorID,
			// Misafirlik dönemi katılımı mühürlenir; eşik altında override ile
			// terfi edilmişse bile asgari eşik yazılır.
			GuestMeetingsCount:      maxInt(progress.PresentCount, eligibility.MinPresentMeetings),
			BusinessMeetingsCount:   progress.PresentCount,
			CharityEventsCount:      0,
			IsEligibleForMembership: false,
		}
		if err := pipelinerRepo.Create(ctx, pipeliner); err != nil {
			return err
		}

		guest.Status = models.GuestStatusBecamePipeliner
		guest.TotalMeetings = maxInt(guest.TotalMeetings, progress.PresentCount)
		if err := guestRepo.Update(ctx, &guest); err != nil {
			// Rollback pipeliner insert'ini de geri alır; yarım terfi kalamaz.
			return err
		}

		created = pipeliner
		return nil
	})
	if txErr != nil {
		configslog.Log.Error("PromoteGuestToPipeliner transaction failed",
			zap.Uint("guestID", guestID), zap.Uint("sponsorMemberID", sponsorMemberID), zap.Error(txErr))
		return nil, wrapTxError(txErr)
	}

	configslog.SLog.Infof("Misafir pipeline'a alındı: misafir %d -> pipeliner %d (sponsor: %d)",
		guestID, created.ID, sponsorMemberID)
	return created, nil
}

// PromoteToMember uygun bir pipeliner'ı tam üyeliğe geçirir.
func (s *PromotionService) PromoteToMember(ctx context.Context, pipelinerID uint, memberNumber string, joinDate time.Time) (*models.Member, error) {
	if pipelinerID == 0 {
		return nil, fmt.Errorf("%w: pipeliner ID boş", ErrInvalidInput)
	}
	if strings.TrimSpace(memberNumber) == "" {
		return nil, fmt.Errorf("%w: üye numarası", ErrMissingRequiredField)
	}
	if joinDate.IsZero() {
		return nil, fmt.Errorf("%w: katılım tarihi", ErrMissingRequiredField)
	}

	var created *models.Member
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		memberRepo := repositories.NewMemberRepositoryTx(tx)
		pipelinerRepo := repositories.NewPipelinerRepositoryTx(tx)

		var pipeliner models.Pipeliner
		if err := lockForUpdate(tx.WithContext(ctx)).First(&pipeliner, pipelinerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPipelinerNotFound
			}
			return err
		}

		if pipeliner.Status == models.PipelinerStatusBecameMember {
			return ErrSubjectAlreadyPromoted
		}
		if pipeliner.Email == "" {
			return fmt.Errorf("%w: e-posta adresi", ErrMissingRequiredField)
		}

		taken, err := memberRepo.MemberNumberExists(ctx, memberNumber)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateIdentifier
		}

		progress, err := s.aggregates.PipelinerProgress(ctx, tx, pipelinerID)
		if err != nil {
			return err
		}
		if !progress.Eligible {
			return notEligibleError(progress)
		}
		// Önbellek bayrağı aynı kapı fonksiyonundan türediği için burada defterle
		// aynı fikirde olmak zorundadır; sapma recompute-on-write sözleşmesinin
		// ihlalidir ve transaction abort ile yüzeye çıkar.
		if !pipeliner.IsEligibleForMembership {
			return fmt.Errorf("%w: is_eligible_for_membership bayrağı defterle çelişiyor (pipeliner %d)",
				ErrConsistencyViolation, pipelinerID)
		}

		member := &models.Member{
			FirstName:    pipeliner.FirstName,
			LastName:     pipeliner.LastName,
			Email:        pipeliner.Email,
			Phone:        pipeliner.Phone,
			MemberNumber: strings.TrimSpace(memberNumber),
			JoinDate:     joinDate,
			Status:       models.MemberStatusActive,
		}
		if err := memberRepo.Create(ctx, member); err != nil {
			return err
		}

		// Üyelik durumu kazanır: artık "uygun ama üye değil" sayılmaz.
		pipeliner.Status = models.PipelinerStatusBecameMember
		pipeliner.IsEligibleForMembership = false
		if err := pipelinerRepo.Update(ctx, &pipeliner); err != nil {
			// Rollback member insert'ini de geri alır.
			return err
		}

		created = member
		return nil
	})
	if txErr != nil {
		configslog.Log.Error("PromoteToMember transaction failed",
			zap.Uint("pipelinerID", pipelinerID), zap.String("memberNumber", memberNumber), zap.Error(txErr))
		return nil, wrapTxError(txErr)
	}

	configslog.SLog.Infof("Pipeliner üyeliğe geçirildi: pipeliner %d -> üye %d (%s)",
		pipelinerID, created.ID, created.MemberNumber)
	return created, nil
}

// GetGuestEligibility misafirin güncel sayaçlarını ve uygunluk durumunu döndürür.
func (s *PromotionService) GetGuestEligibility(ctx context.Context, guestID uint) (eligibility.Progress, error) {
	if guestID == 0 {
		return eligibility.Progress{}, fmt.Errorf("%w: misafir ID boş", ErrInvalidInput)
	}
	exists, err := repositories.NewGuestRepositoryTx(s.db).Exists(ctx, guestID)
	if err != nil {
		return eligibility.Progress{}, err
	}
	if !exists {
		return eligibility.Progress{}, ErrGuestNotFound
	}
	return s.aggregates.GuestProgress(ctx, s.db, guestID)
}

// GetPipelinerEligibility pipeliner'ın güncel sayaçlarını ve uygunluk durumunu döndürür.
func (s *PromotionService) GetPipelinerEligibility(ctx context.Context, pipelinerID uint) (eligibility.Progress, error) {
	if pipelinerID == 0 {
		return eligibility.Progress{}, fmt.Errorf("%w: pipeliner ID boş", ErrInvalidInput)
	}
	exists, err := repositories.NewPipelinerRepositoryTx(s.db).Exists(ctx, pipelinerID)
	if err != nil {
		return eligibility.Progress{}, err
	}
	if !exists {
		return eligibility.Progress{}, ErrPipelinerNotFound
	}
	return s.aggregates.PipelinerProgress(ctx, s.db, pipelinerID)
}

// notEligibleError eksik koşulları kapının kullandığı sayaçlardan üretir;
// çağıran genel bir hata yerine tam olarak neyin eksik olduğunu görür.
func notEligibleError(progress eligibility.Progress) error {
	return fmt.Errorf("%w: %s", ErrNotEligible, strings.Join(progress.Missing, ", "))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

var _ IPromotionService = (*PromotionService)(nil)
