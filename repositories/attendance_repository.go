package repositories

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"uyetakip.app/configs"
	"uyetakip.app/configs/configslog"
	"uyetakip.app/models"
)

// IAttendanceRepository yoklama defteri veritabanı işlemleri için arayüz.
type IAttendanceRepository interface {
	Create(ctx context.Context, record *models.AttendanceRecord) error
	FindByID(ctx context.Context, id uint) (*models.AttendanceRecord, error)
	FindByMeetingID(ctx context.Context, meetingID uint) ([]models.AttendanceRecord, error)
	ExistsForMeetingAndSubject(ctx context.Context, meetingID uint, subject models.Subject) (bool, error)
	Update(ctx context.Context, record *models.AttendanceRecord) error
	HardDelete(ctx context.Context, record *models.AttendanceRecord) error
	HardDeleteByMeetingID(ctx context.Context, meetingID uint) error

	// Sayaç sorguları — AggregateService'in yeniden hesaplama kaynağı.
	CountPresentBySubject(ctx context.Context, subject models.Subject) (int64, error)
	CountPresentBusinessBySubject(ctx context.Context, subject models.Subject) (int64, error)
	FirstPresentDate(ctx context.Context, subject models.Subject) (*time.Time, error)
}

// AttendanceRepository IAttendanceRepository arayüzünü uygular.
type AttendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository yeni bir AttendanceRepository örneği oluşturur.
func NewAttendanceRepository() IAttendanceRepository {
	return &AttendanceRepository{db: configs.GetDB()}
}

// NewAttendanceRepositoryTx transaction'a bağlı repository oluşturur.
func NewAttendanceRepositoryTx(tx *gorm.DB) IAttendanceRepository {
	return &AttendanceRepository{db: tx}
}

func (r *AttendanceRepository) getDB(ctx context.Context) *gorm.DB {
	return getDB(ctx, r.db)
}

// Create yeni bir yoklama kaydı oluşturur.
// Tam-olarak-bir-özne değişmezi modelin BeforeSave hook'unda doğrulanır.
func (r *AttendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	if record == nil {
		return errors.New("oluşturulacak yoklama kaydı nil olamaz")
	}
	return r.getDB(ctx).Create(record).Error
}

// FindByID ID ile bir yoklama kaydını bulur.
func (r *AttendanceRepository) FindByID(ctx context.Context, id uint) (*models.AttendanceRecord, error) {
	if id == 0 {
		return nil, errors.New("geçersiz yoklama kaydı ID")
	}
	var record models.AttendanceRecord
	err := r.getDB(ctx).First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("AttendanceRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &record, nil
}

// FindByMeetingID belirli bir toplantının tüm yoklama kayıtlarını getirir.
func (r *AttendanceRepository) FindByMeetingID(ctx context.Context, meetingID uint) ([]models.AttendanceRecord, error) {
	if meetingID == 0 {
		return nil, errors.New("geçersiz toplantı ID")
	}
	var records []models.AttendanceRecord
	err := r.getDB(ctx).Where("meeting_id = ?", meetingID).
		Order("created_at asc").
		Find(&records).Error
	if err != nil {
		configslog.Log.Error("AttendanceRepository.FindByMeetingID: DB error", zap.Uint("meetingID", meetingID), zap.Error(err))
		return nil, err
	}
	return records, nil
}

// ExistsForMeetingAndSubject (toplantı, özne) çifti için kayıt var mı kontrol eder.
func (r *AttendanceRepository) ExistsForMeetingAndSubject(ctx context.Context, meetingID uint, subject models.Subject) (bool, error) {
	col, err := subjectColumn(subject.Kind)
	if err != nil {
		return false, err
	}
	var count int64
	err = r.getDB(ctx).Model(&models.AttendanceRecord{}).
		Where("meeting_id = ? AND "+col+" = ?", meetingID, subject.ID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update mevcut bir yoklama kaydını kaydeder.
func (r *AttendanceRepository) Update(ctx context.Context, record *models.AttendanceRecord) error {
	if record == nil || record.ID == 0 {
		return errors.New("güncellenecek yoklama kaydı geçerli değil")
	}
	return r.getDB(ctx).Save(record).Error
}

// HardDelete yoklama kaydını kalıcı olarak siler.
// Defter satırları soft delete yerine kalıcı silinir; aksi halde silinen satırın
// unique index'i aynı özne için yeni kayıt açılmasını engellerdi.
func (r *AttendanceRepository) HardDelete(ctx context.Context, record *models.AttendanceRecord) error {
	if record == nil || record.ID == 0 {
		return errors.New("silinecek yoklama kaydı geçerli değil")
	}
	result := r.getDB(ctx).Unscoped().Delete(record)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// HardDeleteByMeetingID toplantıya ait tüm yoklama kayıtlarını kalıcı siler.
func (r *AttendanceRepository) HardDeleteByMeetingID(ctx context.Context, meetingID uint) error {
	if meetingID == 0 {
		return errors.New("geçersiz toplantı ID")
	}
	return r.getDB(ctx).Unscoped().
		Where("meeting_id = ?", meetingID).
		Delete(&models.AttendanceRecord{}).Error
}

// CountPresentBySubject öznenin present durumundaki yoklama kayıtlarını sayar.
func (r *AttendanceRepository) CountPresentBySubject(ctx context.Context, subject models.Subject) (int64, error) {
	col, err := subjectColumn(subject.Kind)
	if err != nil {
		return 0, err
	}
	var count int64
	err = r.getDB(ctx).Model(&models.AttendanceRecord{}).
		Where(col+" = ? AND status = ?", subject.ID, models.AttendancePresent).
		Count(&count).Error
	if err != nil {
		configslog.Log.Error("AttendanceRepository.CountPresentBySubject: DB error",
			zap.String("kind", string(subject.Kind)), zap.Uint("id", subject.ID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

// CountPresentBusinessBySubject öznenin yalnızca iş toplantılarındaki
// present kayıtlarını sayar (pipeliner uygunluk sayacı).
func (r *AttendanceRepository) CountPresentBusinessBySubject(ctx context.Context, subject models.Subject) (int64, error) {
	col, err := subjectColumn(subject.Kind)
	if err != nil {
		return 0, err
	}
	var count int64
	err = r.getDB(ctx).Model(&models.AttendanceRecord{}).
		Joins("JOIN meetings ON meetings.id = attendance_records.meeting_id AND meetings.deleted_at IS NULL").
		Where("attendance_records."+col+" = ?", subject.ID).
		Where("attendance_records.status = ?", models.AttendancePresent).
		Where("meetings.type = ?", models.MeetingTypeBusiness).
		Count(&count).Error
	if err != nil {
		configslog.Log.Error("AttendanceRepository.CountPresentBusinessBySubject: DB error",
			zap.String("kind", string(subject.Kind)), zap.Uint("id", subject.ID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

// FirstPresentDate öznenin ilk present olduğu toplantının tarihini döndürür.
// Hiç present kaydı yoksa nil döner.
func (r *AttendanceRepository) FirstPresentDate(ctx context.Context, subject models.Subject) (*time.Time, error) {
	col, err := subjectColumn(subject.Kind)
	if err != nil {
		return nil, err
	}
	var meeting models.Meeting
	err = r.getDB(ctx).Model(&models.Meeting{}).
		Joins("JOIN attendance_records ar ON ar.meeting_id = meetings.id AND ar.deleted_at IS NULL").
		Where("ar."+col+" = ? AND ar.status = ?", subject.ID, models.AttendancePresent).
		Order("meetings.date asc").
		First(&meeting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		configslog.Log.Error("AttendanceRepository.FirstPresentDate: DB error",
			zap.String("kind", string(subject.Kind)), zap.Uint("id", subject.ID), zap.Error(err))
		return nil, err
	}
	date := meeting.Date
	return &date, nil
}

var _ IAttendanceRepository = (*AttendanceRepository)(nil)
