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

// IGuestRepository misafir veritabanı işlemleri için arayüz.
type IGuestRepository interface {
	Create(ctx context.Context, guest *models.Guest) error
	FindByID(ctx context.Context, id uint) (*models.Guest, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Guest, int64, error)
	Update(ctx context.Context, guest *models.Guest) error
	UpdateColumns(ctx context.Context, id uint, data map[string]interface{}) error
	Exists(ctx context.Context, id uint) (bool, error)
	Delete(ctx context.Context, guest *models.Guest, deletedByUserID uint) error
}

// GuestRepository IGuestRepository arayüzünü uygular.
type GuestRepository struct {
	db *gorm.DB
}

// NewGuestRepository yeni bir GuestRepository örneği oluşturur.
func NewGuestRepository() IGuestRepository {
	return &GuestRepository{db: configs.GetDB()}
}

// NewGuestRepositoryTx transaction'a bağlı repository oluşturur.
func NewGuestRepositoryTx(tx *gorm.DB) IGuestRepository {
	return &GuestRepository{db: tx}
}

func (r *GuestRepository) getDB(ctx context.Context) *gorm.DB {
	return getDB(ctx, r.db)
}

// Create yeni bir misafir kaydı oluşturur.
func (r *GuestRepository) Create(ctx context.Context, guest *models.Guest) error {
	if guest == nil {
		return errors.New("oluşturulacak misafir nil olamaz")
	}
	return r.getDB(ctx).Create(guest).Error
}

// FindByID ID ile bir misafir kaydını bulur.
func (r *GuestRepository) FindByID(ctx context.Context, id uint) (*models.Guest, error) {
	if id == 0 {
		return nil, errors.New("geçersiz misafir ID")
	}
	var guest models.Guest
	err := r.getDB(ctx).First(&guest, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("GuestRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &guest, nil
}

// FindAllPaginated misafirleri sayfalayarak getirir.
func (r *GuestRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Guest, int64, error) {
	db := r.getDB(ctx).Model(&models.Guest{})
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

	var guests []models.Guest
	err := db.Order("first_name " + params.OrderBy).
		Limit(params.PerPage).
		Offset(params.Offset()).
		Find(&guests).Error
	if err != nil {
		configslog.Log.Error("GuestRepository.FindAllPaginated: DB error", zap.Error(err))
		return nil, 0, err
	}
	return guests, totalCount, nil
}

// Update misafir kaydını kaydeder.
func (r *GuestRepository) Update(ctx context.Context, guest *models.Guest) error {
	if guest == nil || guest.ID == 0 {
		return errors.New("güncellenecek misafir geçerli değil")
	}
	return r.getDB(ctx).Save(guest).Error
}

// UpdateColumns belirli kolonları map ile günceller (türetilmiş alan yazımı için).
func (r *GuestRepository) UpdateColumns(ctx context.Context, id uint, data map[string]interface{}) error {
	if id == 0 {
		return errors.New("güncellenecek misafir ID'si geçersiz")
	}
	if len(data) == 0 {
		return errors.New("güncellenecek veri boş olamaz")
	}
	return r.getDB(ctx).Model(&models.Guest{}).Where("id = ?", id).Updates(data).Error
}

// Exists misafir kaydının varlığını kontrol eder.
func (r *GuestRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Guest{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete misafir kaydını siler (soft delete).
func (r *GuestRepository) Delete(ctx context.Context, guest *models.Guest, deletedByUserID uint) error {
	if guest == nil || guest.ID == 0 {
		return errors.New("silinecek misafir geçerli değil")
	}
	db := r.getDB(ctx)
	if deletedByUserID != 0 {
		if err := db.Model(guest).UpdateColumn("deleted_by", &deletedByUserID).Error; err != nil {
			return err
		}
	}
	result := db.Delete(guest)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var _ IGuestRepository = (*GuestRepository)(nil)
