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

// IMeetingRepository toplantı veritabanı işlemleri için arayüz.
type IMeetingRepository interface {
	Create(ctx context.Context, meeting *models.Meeting) error
	FindByID(ctx context.Context, id uint) (*models.Meeting, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Meeting, int64, error)
	Update(ctx context.Context, meeting *models.Meeting) error
	Delete(ctx context.Context, meeting *models.Meeting, deletedByUserID uint) error
}

// MeetingRepository IMeetingRepository arayüzünü uygular.
type MeetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository yeni bir MeetingRepository örneği oluşturur.
func NewMeetingRepository() IMeetingRepository {
	return &MeetingRepository{db: configs.GetDB()}
}

// NewMeetingRepositoryTx transaction'a bağlı repository oluşturur.
func NewMeetingRepositoryTx(tx *gorm.DB) IMeetingRepository {
	return &MeetingRepository{db: tx}
}

func (r *MeetingRepository) getDB(ctx context.Context) *gorm.DB {
	return getDB(ctx, r.db)
}

// Create yeni bir toplantı kaydı oluşturur.
func (r *MeetingRepository) Create(ctx context.Context, meeting *models.Meeting) error {
	if meeting == nil {
		return errors.New("oluşturulacak toplantı nil olamaz")
	}
	return r.getDB(ctx).Create(meeting).Error
}

// FindByID ID ile bir toplantı kaydını bulur.
func (r *MeetingRepository) FindByID(ctx context.Context, id uint) (*models.Meeting, error) {
	if id == 0 {
		return nil, errors.New("geçersiz toplantı ID")
	}
	var meeting models.Meeting
	err := r.getDB(ctx).First(&meeting, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("MeetingRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &meeting, nil
}

// FindAllPaginated toplantıları tarih sırasıyla sayfalayarak getirir.
func (r *MeetingRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Meeting, int64, error) {
	db := r.getDB(ctx).Model(&models.Meeting{})
	if params.Status != "" {
		db = db.Where("type = ?", params.Status)
	}

	var totalCount int64
	if err := db.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("MeetingRepository.FindAllPaginated: count error", zap.Error(err))
		return nil, 0, err
	}

	var meetings []models.Meeting
	err := db.Order("date " + params.OrderBy).
		Limit(params.PerPage).
		Offset(params.Offset()).
		Find(&meetings).Error
	if err != nil {
		configslog.Log.Error("MeetingRepository.FindAllPaginated: find error", zap.Error(err))
		return nil, 0, err
	}
	return meetings, totalCount, nil
}

// Update toplantı metadata'sını günceller (yoklama kayıtlarına dokunmaz).
func (r *MeetingRepository) Update(ctx context.Context, meeting *models.Meeting) error {
	if meeting == nil || meeting.ID == 0 {
		return errors.New("güncellenecek toplantı geçerli değil")
	}
	return r.getDB(ctx).Save(meeting).Error
}

// Delete bir toplantıyı siler (soft delete). Yoklama kayıtlarının kaldırılması
// ve etkilenen öznelerin yeniden hesaplanması servis katmanının sorumluluğudur.
func (r *MeetingRepository) Delete(ctx context.Context, meeting *models.Meeting, deletedByUserID uint) error {
	if meeting == nil || meeting.ID == 0 {
		return errors.New("silinecek toplantı geçerli değil")
	}
	db := r.getDB(ctx)
	if deletedByUserID != 0 {
		if err := db.Model(meeting).UpdateColumn("deleted_by", &deletedByUserID).Error; err != nil {
			return err
		}
	}
	result := db.Delete(meeting)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var _ IMeetingRepository = (*MeetingRepository)(nil)
