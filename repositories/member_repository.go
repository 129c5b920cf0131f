package repositories

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"uyetakip.app/configs"
	"uyetakip.app/configs/configslog"
	"uyetakip.app/models"
	"uyetakip.app/pkg/queryparams"
)

// IMemberRepository üye veritabanı işlemleri için arayüz.
type IMemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	FindByID(ctx context.Context, id uint) (*models.Member, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Member, int64, error)
	MemberNumberExists(ctx context.Context, memberNumber string) (bool, error)
	Update(ctx context.Context, member *models.Member) error
	Exists(ctx context.Context, id uint) (bool, error)
	CountActive(ctx context.Context) (int64, error)
	Delete(ctx context.Context, member *models.Member, deletedByUserID uint) error
}

// MemberRepository IMemberRepository arayüzünü uygular.
type MemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository yeni bir MemberRepository örneği oluşturur.
func NewMemberRepository() IMemberRepository {
	return &MemberRepository{db: configs.GetDB()}
}

// NewMemberRepositoryTx transaction'a bağlı repository oluşturur.
func NewMemberRepositoryTx(tx *gorm.DB) IMemberRepository {
	return &MemberRepository{db: tx}
}

func (r *MemberRepository) getDB(ctx context.Context) *gorm.DB {
	return getDB(ctx, r.db)
}

// Create yeni bir üye kaydı oluşturur.
func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	if member == nil {
		return errors.New("oluşturulacak üye nil olamaz")
	}
	return r.getDB(ctx).Create(member).Error
}

// FindByID ID ile bir üye kaydını bulur.
func (r *MemberRepository) FindByID(ctx context.Context, id uint) (*models.Member, error) {
	if id == 0 {
		return nil, errors.New("geçersiz üye ID")
	}
	var member models.Member
	err := r.getDB(ctx).First(&member, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("MemberRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &member, nil
}

// FindAllPaginated üyeleri sayfalayarak getirir.
func (r *MemberRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Member, int64, error) {
	db := r.getDB(ctx).Model(&models.Member{})
	if params.Status != "" {
		db = db.Where("status = ?", params.Status)
	}
	if params.Name != "" {
		db = db.Where("first_name LIKE ? OR last_name LIKE ?", "%"+params.Name+"%", "%"+params.Name+"%")
	}

	var totalCount int64
	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var members []models.Member
	err := db.Order("member_number " + params.OrderBy).
		Limit(params.PerPage).
		Offset(params.Offset()).
		Find(&members).Error
	if err != nil {
		configslog.Log.Error("MemberRepository.FindAllPaginated: DB error", zap.Error(err))
		return nil, 0, err
	}
	return members, totalCount, nil
}

// MemberNumberExists üye numarasının kullanımda olup olmadığını kontrol eder.
func (r *MemberRepository) MemberNumberExists(ctx context.Context, memberNumber string) (bool, error) {
	if memberNumber == "" {
		return false, errors.New("kontrol edilecek üye numarası boş olamaz")
	}
	var count int64
	err := r.getDB(ctx).Model(&models.Member{}).
		Where("member_number = ?", memberNumber).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update üye kaydını kaydeder.
func (r *MemberRepository) Update(ctx context.Context, member *models.Member) error {
	if member == nil || member.ID == 0 {
		return errors.New("güncellenecek üye geçerli değil")
	}
	return r.getDB(ctx).Save(member).Error
}

// Exists üye kaydının varlığını kontrol eder.
func (r *MemberRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Member{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountActive aktif üye sayısını döndürür.
func (r *MemberRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Member{}).
		Where("status = ?", models.MemberStatusActive).
		Count(&count).Error
	return count, err
}

// Delete üye kaydını siler (soft delete, idari işlem).
func (r *MemberRepository) Delete(ctx context.Context, member *models.Member, deletedByUserID uint) error {
	if member == nil || member.ID == 0 {
		return errors.New("silinecek üye geçerli değil")
	}
	db := r.getDB(ctx)
	if deletedByUserID != 0 {
		if err := db.Model(member).UpdateColumn("deleted_by", &deletedByUserID).Error; err != nil {
			return err
		}
	}
	result := db.Delete(member)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var _ IMemberRepository = (*MemberRepository)(nil)
