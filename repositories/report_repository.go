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

// IReportRepository zaman pencereli rapor sorguları için arayüz.
// Sorgular anlık hesaplanır, sonuçlar hiçbir yerde kalıcılaştırılmaz.
type IReportRepository interface {
	CountBusinessMeetingsInRange(ctx context.Context, start, end time.Time) (int64, error)
	CountPresentByKindInRange(ctx context.Context, kind models.SubjectKind, start, end time.Time) (int64, error)
}

// ReportRepository IReportRepository arayüzünü uygular.
type ReportRepository struct {
	db *gorm.DB
}

// NewReportRepository yeni bir ReportRepository örneği oluşturur.
func NewReportRepository() IReportRepository {
	return &ReportRepository{db: configs.GetDB()}
}

// NewReportRepositoryTx transaction'a bağlı repository oluşturur.
func NewReportRepositoryTx(tx *gorm.DB) IReportRepository {
	return &ReportRepository{db: tx}
}

func (r *ReportRepository) getDB(ctx context.Context) *gorm.DB {
	return getDB(ctx, r.db)
}

// CountBusinessMeetingsInRange [start, end) aralığındaki iş toplantılarını sayar.
// Tarih aralığı filtresi SQL tarih fonksiyonları yerine parametreyle verilir,
// böylece sorgu postgres ve sqlite üzerinde aynı şekilde çalışır.
func (r *ReportRepository) CountBusinessMeetingsInRange(ctx context.Context, start, end time.Time) (int64, error) {
	if !start.Before(end) {
		return 0, errors.New("geçersiz tarih aralığı")
	}
	var count int64
	err := r.getDB(ctx).Model(&models.Meeting{}).
		Where("type = ? AND date >= ? AND date < ?", models.MeetingTypeBusiness, start, end).
		Count(&count).Error
	if err != nil {
		configslog.Log.Error("ReportRepository.CountBusinessMeetingsInRange: DB error", zap.Error(err))
		return 0, err
	}
	return count, nil
}

// CountPresentByKindInRange [start, end) aralığındaki iş toplantılarında
// verilen özne türünün present kayıtlarını sayar.
func (r *ReportRepository) CountPresentByKindInRange(ctx context.Context, kind models.SubjectKind, start, end time.Time) (int64, error) {
	col, err := subjectColumn(kind)
	if err != nil {
		return 0, err
	}
	if !start.Before(end) {
		return 0, errors.New("geçersiz tarih aralığı")
	}
	var count int64
	err = r.getDB(ctx).Model(&models.AttendanceRecord{}).
		Joins("JOIN meetings ON meetings.id = attendance_records.meeting_id AND meetings.deleted_at IS NULL").
		Where("attendance_records."+col+" IS NOT NULL").
		Where("attendance_records.status = ?", models.AttendancePresent).
		Where("meetings.type = ? AND meetings.date >= ? AND meetings.date < ?", models.MeetingTypeBusiness, start, end).
		Count(&count).Error
	if err != nil {
		configslog.Log.Error("ReportRepository.CountPresentByKindInRange: DB error",
			zap.String("kind", string(kind)), zap.Error(err))
		return 0, err
	}
	return count, nil
}

var _ IReportRepository = (*ReportRepository)(nil)
