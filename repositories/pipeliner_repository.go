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

// IPipelinerRepository pipeliner veritabanı işlemleri için arayüz.
type IPipelinerRepository interface {
	Create(ctx context.Context, pipeliner *models.Pipeliner) error
	FindByID(ctx context.Context, id uint) (*models.Pipeliner, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Pipeliner, int64, error)
	Update(ctx context.Context, pipeliner *models.Pipeliner) error
	Exists(ctx context.Context, id uint) (bool, error)
	CountActive(ctx context.Context) (int64, error)
}

// PipelinerRepository IPipelinerRepository arayüzünü uygular.
type PipelinerRepository struct {
	db *gorm.DB
}

// NewPipelinerRepository yeni bir PipelinerRepository örneği oluşturur.
func NewPipelinerRepository() IPipelinerRepository {
	return &PipelinerRepository{db: configs.GetDB()}
}

// NewPipelinerRepositoryTx transaction'a bağlı repository oluşturur.
func NewPipelinerRepositoryTx(tx *gorm.DB) IPipelinerRepository {
	return &PipelinerRepository{db: tx}
}

func (r *PipelinerRepository) getDB(ctx context.Context) *gorm.DB {
	return getDB(ctx, r.db)
}

// Create yeni bir pipeliner kaydı oluşturur.
func (r *PipelinerRepository) Create(ctx context.Context, pipeliner *models.Pipeliner) error {
	if pipeliner == nil {
		return errors.New("oluşturulacak pipeliner nil olamaz")
	}
	return r.getDB(ctx).Create(pipeliner).Error
}

// FindByID ID ile bir pipeliner kaydını bulur.
func (r *PipelinerRepository) FindByID(ctx context.Context, id uint) (*models.Pipeliner, error) {
	if id == 0 {
		return nil, errors.New("geçersiz pipeliner ID")
	}
	var pipeliner models.Pipeliner
	err := r.getDB(ctx).First(&pipeliner, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("PipelinerRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &pipeliner, nil
}

// FindAllPaginated pipeliner'ları sayfalayarak getirir.
func (r *PipelinerRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Pipeliner, int64, error) {
	db := r.getDB(ctx).Model(&models.Pipeliner{})
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

	var pipeliners []models.Pipeliner
	err := db.Order("first_name " + params.OrderBy).
		Limit(params.PerPage).
		Offset(params.Offset()).
		Find(&pipeliners).Error
	if err != nil {
		configslog.Log.Error("PipelinerRepository.FindAllPaginated: DB error", zap.Error(err))
		return nil, 0, err
	}
	return pipeliners, totalCount, nil
}

// Update pipeliner kaydını kaydeder.
func (r *PipelinerRepository) Update(ctx context.Context, pipeliner *models.Pipeliner) error {
	if pipeliner == nil || pipeliner.ID == 0 {
		return errors.New("güncellenecek pipeliner geçerli değil")
	}
	return r.getDB(ctx).Save(pipeliner).Error
}

// Exists pipeliner kaydının varlığını kontrol eder.
func (r *PipelinerRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Pipeliner{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountActive aktif pipeliner sayısını döndürür.
func (r *PipelinerRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Pipeliner{}).
		Where("status = ?", models.PipelinerStatusActive).
		Count(&count).Error
	return count, err
}

var _ IPipelinerRepository = (*PipelinerRepository)(nil)
