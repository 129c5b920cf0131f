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
	"uyetakip.app/repositories"
)

// IAttendanceService yoklama defteri işlemleri için arayüz.
type IAttendanceService interface {
	RecordAttendance(ctx context.Context, meetingID uint, subject models.Subject, status models.AttendanceStatus, notes string) (*models.AttendanceRecord, error)
	UpdateAttendance(ctx context.Context, recordID uint, subject models.Subject, status models.AttendanceStatus, notes string) (*models.AttendanceRecord, error)
	DeleteAttendance(ctx context.Context, recordID uint) error
	ListByMeeting(ctx context.Context, meetingID uint) ([]models.AttendanceRecord, error)
}

// AttendanceService IAttendanceService arayüzünü uygular.
//
// Her mutasyon, etkilenen öznelerin sayaçlarının yeniden hesaplanmasıyla aynı
// transaction içinde yürütülür: başarılı dönen bir yoklama yazımı asla bayat
// sayaç bırakamaz.
type AttendanceService struct {
	db         *gorm.DB
	aggregates IAggregateService
}

// NewAttendanceService yeni bir AttendanceService örneği oluşturur.
func NewAttendanceService() IAttendanceService {
	return NewAttendanceServiceWithDB(configs.GetDB())
}

// NewAttendanceServiceWithDB verilen bağlantı ile AttendanceService oluşturur.
func NewAttendanceServiceWithDB(db *gorm.DB) IAttendanceService {
	return &AttendanceService{
		db:         db,
		aggregates: NewAggregateServiceWithDB(db),
	}
}

// RecordAttendance bir toplantı için özneye yoklama kaydı açar.
func (s *AttendanceService) RecordAttendance(ctx context.Context, meetingID uint, subject models.Subject, status models.AttendanceStatus, notes string) (*models.AttendanceRecord, error) {
	// Doğrulama transaction açılmadan yapılır.
	if meetingID == 0 {
		return nil, fmt.Errorf("%w: toplantı ID boş", ErrInvalidInput)
	}
	if !subject.Valid() {
		return nil, ErrInvalidSubject
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: bilinmeyen yoklama durumu %q", ErrInvalidInput, status)
	}

	var created *models.AttendanceRecord
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		meetingRepo := repositories.NewMeetingRepositoryTx(tx)
		attendanceRepo := repositories.NewAttendanceRepositoryTx(tx)

		if _, err := meetingRepo.FindByID(ctx, meetingID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrMeetingNotFound
			}
			return err
		}

		exists, err := subjectExists(ctx, tx, subject)
		if err != nil {
			return err
		}
		if !exists {
			return ErrInvalidSubject
		}

		dup, err := attendanceRepo.ExistsForMeetingAndSubject(ctx, meetingID, subject)
		if err != nil {
			return err
		}
		if dup {
			return ErrDuplicateAttendance
		}

		record := &models.AttendanceRecord{
			MeetingID: meetingID,
			Status:    status,
			Notes:     notes,
		}
		if err := record.SetSubject(subject); err != nil {
			return ErrInvalidSubject
		}
		if err := attendanceRepo.Create(ctx, record); err != nil {
			return err
		}

		if err := s.aggregates.RecomputeSubject(ctx, tx, subject); err != nil {
			return err
		}

		created = record
		return nil
	})
	if txErr != nil {
		configslog.Log.Error("RecordAttendance transaction failed",
			zap.Uint("meetingID", meetingID), zap.String("kind", string(subject.Kind)),
			zap.Uint("subjectID", subject.ID), zap.Error(txErr))
		return nil, wrapTxError(txErr)
	}

	configslog.SLog.Infof("Yoklama kaydedildi: toplantı %d, %s %d, durum %s",
		meetingID, subject.Kind, subject.ID, status)
	return created, nil
}

// UpdateAttendance mevcut kaydın durumunu ve/veya öznesini değiştirir.
// Özne değişiyorsa hem eski hem yeni öznenin sayaçları yeniden hesaplanır.
func (s *AttendanceService) UpdateAttendance(ctx context.Context, recordID uint, subject models.Subject, status models.AttendanceStatus, notes string) (*models.AttendanceRecord, error) {
	if recordID == 0 {
		return nil, fmt.Errorf("%w: kayıt ID boş", ErrInvalidInput)
	}
	if !subject.Valid() {
		return nil, ErrInvalidSubject
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: bilinmeyen yoklama durumu %q", ErrInvalidInput, status)
	}

	var updated *models.AttendanceRecord
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		attendanceRepo := repositories.NewAttendanceRepositoryTx(tx)

		var record models.AttendanceRecord
		if err := lockForUpdate(tx.WithContext(ctx)).First(&record, recordID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAttendanceNotFound
			}
			return err
		}

		oldSubject, err := record.Subject()
		if err != nil {
			return ErrConsistencyViolation
		}

		if subject != oldSubject {
			exists, err := subjectExists(ctx, tx, subject)
			if err != nil {
				return err
			}
			if !exists {
				return ErrInvalidSubject
			}
			dup, err := attendanceRepo.ExistsForMeetingAndSubject(ctx, record.MeetingID, subject)
			if err != nil {
				return err
			}
			if dup {
				return ErrDuplicateAttendance
			}
			if err := record.SetSubject(subject); err != nil {
				return ErrInvalidSubject
			}
		}
		record.Status = status
		record.Notes = notes

		if err := attendanceRepo.Update(ctx, &record); err != nil {
			return err
		}

		// Özne değiştiyse eski öznenin sayaçları da düşmek zorunda.
		if err := s.aggregates.RecomputeSubject(ctx, tx, oldSubject); err != nil {
			return err
		}
		if subject != oldSubject {
			if err := s.aggregates.RecomputeSubject(ctx, tx, subject); err != nil {
				return err
			}
		}

		updated = &record
		return nil
	})
	if txErr != nil {
		configslog.Log.Error("UpdateAttendance transaction failed",
			zap.Uint("recordID", recordID), zap.Error(txErr))
		return nil, wrapTxError(txErr)
	}

	configslog.SLog.Infof("Yoklama güncellendi: kayıt %d, durum %s", recordID, status)
	return updated, nil
}

// DeleteAttendance kaydı kalıcı siler ve öznenin sayaçlarını düşürür.
func (s *AttendanceService) DeleteAttendance(ctx context.Context, recordID uint) error {
	if recordID == 0 {
		return fmt.Errorf("%w: kayıt ID boş", ErrInvalidInput)
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		attendanceRepo := repositories.NewAttendanceRepositoryTx(tx)

		var record models.AttendanceRecord
		if err := lockForUpdate(tx.WithContext(ctx)).First(&record, recordID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAttendanceNotFound
			}
			return err
		}

		subject, err := record.Subject()
		if err != nil {
			return ErrConsistencyViolation
		}

		if err := attendanceRepo.HardDelete(ctx, &record); err != nil {
			return err
		}
		return s.aggregates.RecomputeSubject(ctx, tx, subject)
	})
	if txErr != nil {
		configslog.Log.Error("DeleteAttendance transaction failed",
			zap.Uint("recordID", recordID), zap.Error(txErr))
		return wrapTxError(txErr)
	}

	configslog.SLog.Infof("Yoklama kaydı silindi: %d", recordID)
	return nil
}

// ListByMeeting toplantının yoklama kayıtlarını getirir.
func (s *AttendanceService) ListByMeeting(ctx context.Context, meetingID uint) ([]models.AttendanceRecord, error) {
	if meetingID == 0 {
		return nil, fmt.Errorf("%w: toplantı ID boş", ErrInvalidInput)
	}
	return repositories.NewAttendanceRepositoryTx(s.db).FindByMeetingID(ctx, meetingID)
}

var _ IAttendanceService = (*AttendanceService)(nil)
