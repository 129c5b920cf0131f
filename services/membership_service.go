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
	"uyetakip.app/pkg/queryparams"
	"uyetakip.app/repositories"
)

// GuestInput misafir oluşturma/güncelleme girdisi.
type GuestInput struct {
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Notes             string `json:"notes"`
	InvitedByMemberID *uint  `json:"invited_by_member_id"`
}

// PipelinerInput idari pipeliner kaydı girdisi (terfi dışı yol).
type PipelinerInput struct {
	FirstName           string `json:"first_name"`
	LastName            string `json:"last_name"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	Notes               string `json:"notes"`
	SponsoredByMemberID *uint  `json:"sponsored_by_member_id"`
	GuestMeetingsCount  int    `json:"guest_meetings_count"`
}

// MemberInput doğrudan üye kaydı girdisi (kurucu üyeler, transfer vb.).
type MemberInput struct {
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	MemberNumber string    `json:"member_number"`
	JoinDate     time.Time `json:"join_date"`
	Notes        string    `json:"notes"`
}

// IMembershipService misafir, pipeliner ve üye kayıtlarının idari yönetimi
// için arayüz. Terfi geçişleri burada değil PromotionService'tedir.
type IMembershipService interface {
	CreateGuest(ctx context.Context, input GuestInput) (*models.Guest, error)
	GetGuestByID(ctx context.Context, id uint) (*models.Guest, error)
	ListGuests(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateGuest(ctx context.Context, id uint, input GuestInput) (*models.Guest, error)
	DeactivateGuest(ctx context.Context, id uint) error

	CreatePipeliner(ctx context.Context, input PipelinerInput) (*models.Pipeliner, error)
	GetPipelinerByID(ctx context.Context, id uint) (*models.Pipeliner, error)
	ListPipeliners(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)

	CreateMember(ctx context.Context, input MemberInput) (*models.Member, error)
	GetMemberByID(ctx context.Context, id uint) (*models.Member, error)
	ListMembers(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
}

// MembershipService IMembershipService arayüzünü uygular.
type MembershipService struct {
	db *gorm.DB
}

// NewMembershipService yeni bir MembershipService örneği oluşturur.
func NewMembershipService() IMembershipService {
	return NewMembershipServiceWithDB(configs.GetDB())
}

// NewMembershipServiceWithDB verilen bağlantı ile MembershipService oluşturur.
func NewMembershipServiceWithDB(db *gorm.DB) IMembershipService {
	return &MembershipService{db: db}
}

// CreateGuest yeni bir misafir kaydı açar.
func (s *MembershipService) CreateGuest(ctx context.Context, input GuestInput) (*models.Guest, error) {
	if strings.TrimSpace(input.FirstName) == "" {
		return nil, fmt.Errorf("%w: ad", ErrMissingRequiredField)
	}

	guest := &models.Guest{
		FirstName:         strings.TrimSpace(input.FirstName),
		LastName:          strings.TrimSpace(input.LastName),
		Email:             strings.TrimSpace(input.Email),
		Phone:             strings.TrimSpace(input.Phone),
		Status:            models.GuestStatusActive,
		Notes:             input.Notes,
		InvitedByMemberID: input.InvitedByMemberID,
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if input.InvitedByMemberID != nil {
			exists, err := repositories.NewMemberRepositoryTx(tx).Exists(ctx, *input.InvitedByMemberID)
			if err != nil {
				return err
			}
			if !exists {
				return ErrMemberNotFound
			}
		}
		return repositories.NewGuestRepositoryTx(tx).Create(ctx, guest)
	})
	if txErr != nil {
		configslog.Log.Error("CreateGuest failed", zap.String("name", guest.FullName()), zap.Error(txErr))
		return nil, wrapTxError(txErr)
	}

	configslog.SLog.Infof("Misafir oluşturuldu: ID %d (%s)", guest.ID, guest.FullName())
	return guest, nil
}

// GetGuestByID misafiri getirir.
func (s *MembershipService) GetGuestByID(ctx context.Context, id uint) (*models.Guest, error) {
	guest, err := repositories.NewGuestRepositoryTx(s.db).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return guest, nil
}

// ListGuests misafirleri sayfalayarak getirir.
func (s *MembershipService) ListGuests(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	guests, totalCount, err := repositories.NewGuestRepositoryTx(s.db).FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return paginated(guests, params, totalCount), nil
}

// UpdateGuest misafirin iletişim bilgilerini günceller. Durum ve türetilmiş
// alanlar burada değişmez.
func (s *MembershipService) UpdateGuest(ctx context.Context, id uint, input GuestInput) (*models.Guest, error) {
	if id == 0 {
		return nil, fmt.Errorf("%w: misafir ID boş", ErrInvalidInput)
	}
	if strings.TrimSpace(input.FirstName) == "" {
		return nil, fmt.Errorf("%w: ad", ErrMissingRequiredField)
	}

	var updated *models.Guest
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		guestRepo := repositories.NewGuestRepositoryTx(tx)

		guest, err := guestRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrGuestNotFound
			}
			return err
		}

		if input.InvitedByMemberID != nil {
			exists, err := repositories.NewMemberRepositoryTx(tx).Exists(ctx, *input.InvitedByMemberID)
			if err != nil {
				return err
			}
			if !exists {
				return ErrMemberNotFound
			}
		}

		guest.FirstName = strings.TrimSpace(input.FirstName)
		guest.LastName = strings.TrimSpace(input.LastName)
		guest.Email = strings.TrimSpace(input.Email)
		guest.Phone = strings.TrimSpace(input.Phone)
		guest.Notes = input.Notes
		guest.InvitedByMemberID = input.InvitedByMemberID
		if err := guestRepo.Update(ctx, guest); err != nil {
			return err
		}
		updated = guest
		return nil
	})
	if txErr != nil {
		configslog.Log.Error("UpdateGuest failed", zap.Uint("id", id), zap.Error(txErr))
		return nil, wrapTxError(txErr)
	}
	return updated, nil
}

// DeactivateGuest misafiri pasife alır. Defter kayıtlarına dokunulmaz.
func (s *MembershipService) DeactivateGuest(ctx context.Context, id uint) error {
	if id == 0 {
		return fmt.Errorf("%w: misafir ID boş", ErrInvalidInput)
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		guestRepo := repositories.NewGuestRepositoryTx(tx)

		var guest models.Guest
		if err := lockForUpdate(tx.WithContext(ctx)).First(&guest, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGuestNotFound
			}
			return err
		}
		if guest.Status == models.GuestStatusBecamePipeliner {
			return ErrSubjectAlreadyPromoted
		}

		return guestRepo.UpdateColumns(ctx, id, map[string]interface{}{
			"status": models.GuestStatusInactive,
		})
	})
	if txErr != nil {
		configslog.Log.Error("DeactivateGuest failed", zap.Uint("id", id), zap.Error(txErr))
		return wrapTxError(txErr)
	}

	configslog.SLog.Infof("Misafir pasife alındı: ID %d", id)
	return nil
}

// CreatePipeliner terfi akışını atlayarak doğrudan pipeliner kaydı açar
// (başka kulüpten transfer gibi idari durumlar). Türetilmiş sayaçlar sıfırdan
// başlar ve ilk defter yazımında yeniden hesaplanır.
func (s *MembershipService) CreatePipeliner(ctx context.Context, input PipelinerInput) (*models.Pipeliner, error) {
	if strings.TrimSpace(input.FirstName) == "" {
		return nil, fmt.Errorf("%w: ad", ErrMissingRequiredField)
	}
	if input.GuestMeetingsCount < 0 {
		return nil, fmt.Errorf("%w: misafirlik katılım sayısı negatif olamaz", ErrInvalidInput)
	}

	pipeliner := &models.Pipeliner{
		FirstName:           strings.TrimSpace(input.FirstName),
		LastName:            strings.TrimSpace(input.LastName),
		Email:               strings.TrimSpace(input.Email),
		Phone:               strings.TrimSpace(input.Phone),
		Status:              models.PipelinerStatusActive,
		Notes:               input.Notes,
		SponsoredByMemberID: input.SponsoredByMemberID,
		GuestMeetingsCount:  input.GuestMeetingsCount,
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if input.SponsoredByMemberID != nil {
			exists, err := repositories.NewMemberRepositoryTx(tx).Exists(ctx, *input.SponsoredByMemberID)
			if err != nil {
				return err
			}
			if !exists {
				return ErrMemberNotFound
			}
		}
		return repositories.NewPipelinerRepositoryTx(tx).Create(ctx, pipeliner)
	})
	if txErr != nil {
		configslog.Log.Error("CreatePipeliner failed", zap.String("name", pipeliner.FullName()), zap.Error(txErr))
		return nil, wrapTxError(txErr)
	}

	configslog.SLog.Infof("Pipeliner oluşturuldu (idari): ID %d (%s)", pipeliner.ID, pipeliner.FullName())
	return pipeliner, nil
}

// GetPipelinerByID pipeliner'ı getirir.
func (s *MembershipService) GetPipelinerByID(ctx context.Context, id uint) (*models.Pipeliner, error) {
	pipeliner, err := repositories.NewPipelinerRepositoryTx(s.db).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPipelinerNotFound
		}
		return nil, err
	}
	return pipeliner, nil
}

// ListPipeliners pipeliner'ları sayfalayarak getirir.
func (s *MembershipService) ListPipeliners(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	pipeliners, totalCount, err := repositories.NewPipelinerRepositoryTx(s.db).FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return paginated(pipeliners, params, totalCount), nil
}

// CreateMember doğrudan üye kaydı açar (kurucu üyeler, transferler).
func (s *MembershipService) CreateMember(ctx context.Context, input MemberInput) (*models.Member, error) {
	if strings.TrimSpace(input.FirstName) == "" {
		return nil, fmt.Errorf("%w: ad", ErrMissingRequiredField)
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, fmt.Errorf("%w: e-posta adresi", ErrMissingRequiredField)
	}
	if strings.TrimSpace(input.MemberNumber) == "" {
		return nil, fmt.Errorf("%w: üye numarası", ErrMissingRequiredField)
	}
	if input.JoinDate.IsZero() {
		return nil, fmt.Errorf("%w: katılım tarihi", ErrMissingRequiredField)
	}

	member := &models.Member{
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        strings.TrimSpace(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		MemberNumber: strings.TrimSpace(input.MemberNumber),
		JoinDate:     input.JoinDate,
		Status:       models.MemberStatusActive,
		Notes:        input.Notes,
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		memberRepo := repositories.NewMemberRepositoryTx(tx)

		taken, err := memberRepo.MemberNumberExists(ctx, member.MemberNumber)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateIdentifier
		}
		return memberRepo.Create(ctx, member)
	})
	if txErr != nil {
		configslog.Log.Error("CreateMember failed",
			zap.String("memberNumber", member.MemberNumber), zap.Error(txErr))
		return nil, wrapTxError(txErr)
	}

	configslog.SLog.Infof("Üye oluşturuldu (idari): ID %d (%s)", member.ID, member.MemberNumber)
	return member, nil
}

// GetMemberByID üyeyi getirir.
func (s *MembershipService) GetMemberByID(ctx context.Context, id uint) (*models.Member, error) {
	member, err := repositories.NewMemberRepositoryTx(s.db).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// ListMembers üyeleri sayfalayarak getirir.
func (s *MembershipService) ListMembers(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	members, totalCount, err := repositories.NewMemberRepositoryTx(s.db).FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return paginated(members, params, totalCount), nil
}

// paginated sayfalama meta bilgisiyle sonucu sarar.
func paginated(data interface{}, params queryparams.ListParams, totalCount int64) *queryparams.PaginatedResult {
	return &queryparams.PaginatedResult{
		Data: data,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}
}

var _ IMembershipService = (*MembershipService)(nil)
