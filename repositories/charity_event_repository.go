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

// ICharityEventRepository yardım etkinliği defteri işlemleri için arayüz.
type ICharityEventRepository interface {
	Create(ctx context.Context, event *models.CharityEvent) error
	FindByID(ctx context.Context, id uint) (*models.CharityEvent, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.CharityEvent, int64, error)
	Update(ctx context.Context, event *models.CharityEvent) error
	Delete(ctx context.Context, event *models.CharityEvent, deletedByUserID uint) error

	AddParticipant(ctx context.Context, participant *models.CharityParticipant) error
	RemoveParticipant(ctx context.Context, eventID uint, subject models.Subject) error
	RemoveAllParticipants(ctx context.Context, eventID uint) error
	FindParticipants(ctx context.Context, eventID uint) ([]models.CharityParticipant, error)
	ParticipantExists(ctx context.Context, eventID uint, subject models.Subject) (bool, error)
	CountEventsBySubject(ctx context.Context, subject models.Subject) (int64, error)
}

// CharityEventRepository ICharityEventRepository arayüzünü uygular.
type CharityEventRepository struct {
	db *gorm.DB
}

// NewCharityEventRepository yeni bir CharityEventRepository örneği oluşturur.
func NewCharityEventRepository() ICharityEventRepository {
	return &CharityEventRepository{db: configs.GetDB()}
}

// NewCharityEventRepositoryTx transaction'a bağlı repository oluşturur.
func NewCharityEventRepositoryTx(tx *gorm.DB) ICharityEventRepository {
	return &CharityEventRepository{db: tx}
}

func (r *CharityEventRepository) getDB(ctx context.Context) *gorm.DB {
	return getDB(ctx, r.db)
}

// Create yeni bir yardım etkinliği oluşturur (katılımcılarıyla birlikte).
func (r *CharityEventRepository) Create(ctx context.Context, event *models.CharityEvent) error {
	if event == nil {
		return errors.New("oluşturulacak etkinlik nil olamaz")
	}
	return r.getDB(ctx).Create(event).Error
}

// FindByID ID ile bir etkinliği katılımcılarıyla birlikte bulur.
func (r *CharityEventRepository) FindByID(ctx context.Context, id uint) (*models.CharityEvent, error) {
	if id == 0 {
		return nil, errors.New("geçersiz etkinlik ID")
	}
	var event models.CharityEvent
	err := r.getDB(ctx).Preload("Participants").First(&event, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("CharityEventRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &event, nil
}

// FindAllPaginated etkinlikleri tarih sırasıyla sayfalayarak getirir.
func (r *CharityEventRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.CharityEvent, int64, error) {
	db := r.getDB(ctx).Model(&models.CharityEvent{})
	if params.Name != "" {
		db = db.Where("name LIKE ?", "%"+params.Name+"%")
	}

	var totalCount int64
	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var events []models.CharityEvent
	err := db.Order("date " + params.OrderBy).
		Limit(params.PerPage).
		Offset(params.Offset()).
		Find(&events).Error
	if err != nil {
		configslog.Log.Error("CharityEventRepository.FindAllPaginated: DB error", zap.Error(err))
		return nil, 0, err
	}
	return events, totalCount, nil
}

// Update etkinlik metadata'sını günceller.
func (r *CharityEventRepository) Update(ctx context.Context, event *models.CharityEvent) error {
	if event == nil || event.ID == 0 {
		return errors.New("güncellenecek etkinlik geçerli değil")
	}
	return r.getDB(ctx).Omit("Participants").Save(event).Error
}

// Delete etkinliği siler (soft delete). Katılımcı satırlarının kaldırılması ve
// yeniden hesaplama servis katmanında yapılır.
func (r *CharityEventRepository) Delete(ctx context.Context, event *models.CharityEvent, deletedByUserID uint) error {
	if event == nil || event.ID == 0 {
		return errors.New("silinecek etkinlik geçerli değil")
	}
	db := r.getDB(ctx)
	if deletedByUserID != 0 {
		if err := db.Model(event).UpdateColumn("deleted_by", &deletedByUserID).Error; err != nil {
			return err
		}
	}
	result := db.Delete(event)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AddParticipant etkinliğe bir katılımcı satırı ekler.
func (r *CharityEventRepository) AddParticipant(ctx context.Context, participant *models.CharityParticipant) error {
	if participant == nil || participant.CharityEventID == 0 {
		return errors.New("geçersiz katılımcı verisi")
	}
	return r.getDB(ctx).Create(participant).Error
}

// RemoveParticipant (etkinlik, özne) çiftine ait katılımcı satırını kalıcı siler.
func (r *CharityEventRepository) RemoveParticipant(ctx context.Context, eventID uint, subject models.Subject) error {
	col, err := subjectColumn(subject.Kind)
	if err != nil {
		return err
	}
	result := r.getDB(ctx).Unscoped().
		Where("charity_event_id = ? AND "+col+" = ?", eventID, subject.ID).
		Delete(&models.CharityParticipant{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RemoveAllParticipants etkinliğin tüm katılımcı satırlarını kalıcı siler.
func (r *CharityEventRepository) RemoveAllParticipants(ctx context.Context, eventID uint) error {
	if eventID == 0 {
		return errors.New("geçersiz etkinlik ID")
	}
	return r.getDB(ctx).Unscoped().
		Where("charity_event_id = ?", eventID).
		Delete(&models.CharityParticipant{}).Error
}

// FindParticipants etkinliğin katılımcı satırlarını getirir.
func (r *CharityEventRepository) FindParticipants(ctx context.Context, eventID uint) ([]models.CharityParticipant, error) {
	if eventID == 0 {
		return nil, errors.New("geçersiz etkinlik ID")
	}
	var participants []models.CharityParticipant
	err := r.getDB(ctx).Where("charity_event_id = ?", eventID).Find(&participants).Error
	if err != nil {
		configslog.Log.Error("CharityEventRepository.FindParticipants: DB error", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, err
	}
	return participants, nil
}

// ParticipantExists (etkinlik, özne) çifti için katılımcı satırı var mı kontrol eder.
func (r *CharityEventRepository) ParticipantExists(ctx context.Context, eventID uint, subject models.Subject) (bool, error) {
	col, err := subjectColumn(subject.Kind)
	if err != nil {
		return false, err
	}
	var count int64
	err = r.getDB(ctx).Model(&models.CharityParticipant{}).
		Where("charity_event_id = ? AND "+col+" = ?", eventID, subject.ID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountEventsBySubject öznenin katıldığı (silinmemiş) etkinlik sayısını döndürür.
func (r *CharityEventRepository) CountEventsBySubject(ctx context.Context, subject models.Subject) (int64, error) {
	col, err := subjectColumn(subject.Kind)
	if err != nil {
		return 0, err
	}
	var count int64
	err = r.getDB(ctx).Model(&models.CharityParticipant{}).
		Joins("JOIN charity_events ON charity_events.id = charity_participants.charity_event_id AND charity_events.deleted_at IS NULL").
		Where("charity_participants."+col+" = ?", subject.ID).
		Count(&count).Error
	if err != nil {
		configslog.Log.Error("CharityEventRepository.CountEventsBySubject: DB error",
			zap.String("kind", string(subject.Kind)), zap.Uint("id", subject.ID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

var _ ICharityEventRepository = (*CharityEventRepository)(nil)
