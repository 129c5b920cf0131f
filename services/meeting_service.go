package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"uyetakip.app/configs"
	"uyetakip.app/configs/configslog"
	"uyetakip.app/models"
	"uyetakip.app/pkg/queryparams"
	"uyetakip.app/repositories"
)

// IMeetingService toplantı yönetimi için arayüz.
type IMeetingService interface {
	CreateMeeting(ctx context.Context, date time.Time, meetingType models.MeetingType, location, notes string) (*models.Meeting, error)
	GetMeetingByID(ctx context.Context, id uint) (*models.Meeting, error)
	ListMeetings(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateMeeting(ctx context.Context, id uint, date time.Time, meetingType models.MeetingType, location, notes string) error
	DeleteMeeting(ctx context.Context, id uint) error
}

// MeetingService IMeetingService arayüzünü uygular.
type MeetingService struct {
	db         *gorm.DB
	repo       repositories.IMeetingRepository
	aggregates IAggregateService
}

// NewMeetingService yeni bir MeetingService örneği oluşturur.
func NewMeetingService() IMeetingService {
	return NewMeetingServiceWithDB(configs.GetDB())
}

// NewMeetingServiceWithDB verilen bağlantı ile MeetingService oluşturur.
func NewMeetingServiceWithDB(db *gorm.DB) IMeetingService {
	return &MeetingService{
		db:         db,
		repo:       repositories.NewMeetingRepositoryTx(db),
		aggregates: NewAggregateServiceWithDB(db),
	}
}

// CreateMeeting yeni bir toplantı oluşturur.
func (s *MeetingService) CreateMeeting(ctx context.Context, date time.Time, meetingType models.MeetingType, location, notes string) (*models.Meeting, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: toplantı tarihi zorunludur", ErrInvalidInput)
	}
	if !meetingType.Valid() {
		return nil, fmt.Errorf("%w: bilinmeyen toplantı türü %q", ErrInvalidInput, meetingType)
	}

	meeting := &models.Meeting{
		Date:     date,
		Type:     meetingType,
		Location: location,
		Notes:    notes,
	}
	if err := s.repo.Create(ctx, meeting); err != nil {
		configslog.Log.Error("CreateMeeting failed", zap.Error(err))
		return nil, wrapTxError(err)
	}

	configslog.SLog.Infof("Toplantı oluşturuldu: ID %d, tür %s", meeting.ID, meeting.Type)
	return meeting, nil
}

// GetMeetingByID toplantıyı getirir.
func (s *MeetingService) GetMeetingByID(ctx context.Context, id uint) (*models.Meeting, error) {
	meeting, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMeetingNotFound
		}
		return nil, err
	}
	return meeting, nil
}

// ListMeetings toplantıları sayfalayarak getirir.
func (s *MeetingService) ListMeetings(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	meetings, totalCount, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: meetings,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// UpdateMeeting toplantı metadata'sını günceller. Tür değişimi uygunluk
// sayaçlarını etkileyebileceği için etkilenen özneler yeniden hesaplanır.
func (s *MeetingService) UpdateMeeting(ctx context.Context, id uint, date time.Time, meetingType models.MeetingType, location, notes string) error {
	if id == 0 {
		return fmt.Errorf("%w: toplantı ID boş", ErrInvalidInput)
	}
	if date.IsZero() {
		return fmt.Errorf("%w: toplantı tarihi zorunludur", ErrInvalidInput)
	}
	if !meetingType.Valid() {
		return fmt.Errorf("%w: bilinmeyen toplantı türü %q", ErrInvalidInput, meetingType)
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		meetingRepo := repositories.NewMeetingRepositoryTx(tx)
		attendanceRepo := repositories.NewAttendanceRepositoryTx(tx)

		var meeting models.Meeting
		if err := lockForUpdate(tx.WithContext(ctx)).First(&meeting, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMeetingNotFound
			}
			return err
		}

		typeChanged := meeting.Type != meetingType

		meeting.Date = date
		meeting.Type = meetingType
		meeting.Location = location
		meeting.Notes = notes
		if err := meetingRepo.Update(ctx, &meeting); err != nil {
			return err
		}

		if typeChanged {
			subjects, err := affectedSubjects(ctx, attendanceRepo, id)
			if err != nil {
				return err
			}
			return s.aggregates.RecomputeSubjects(ctx, tx, subjects)
		}
		return nil
	})
	if txErr != nil {
		configslog.Log.Error("UpdateMeeting transaction failed", zap.Uint("id", id), zap.Error(txErr))
		return wrapTxError(txErr)
	}

	configslog.SLog.Infof("Toplantı güncellendi: ID %d", id)
	return nil
}

// DeleteMeeting toplantıyı ve yoklama kayıtlarını siler. Kaskat uygulama
// seviyesinde yürütülür: yeniden hesaplama etkilenen özneleri bilmek zorunda
// olduğu için satırlar silinmeden önce özne kümesi toplanır. Kayıtların
// silinmesi sayaçları düşürür ve önbellek bayrağını true'dan false'a
// çevirebilir.
func (s *MeetingService) DeleteMeeting(ctx context.Context, id uint) error {
	if id == 0 {
		return fmt.Errorf("%w: toplantı ID boş", ErrInvalidInput)
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		meetingRepo := repositories.NewMeetingRepositoryTx(tx)
		attendanceRepo := repositories.NewAttendanceRepositoryTx(tx)

		var meeting models.Meeting
		if err := lockForUpdate(tx.WithContext(ctx)).First(&meeting, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMeetingNotFound
			}
			return err
		}

		subjects, err := affectedSubjects(ctx, attendanceRepo, id)
		if err != nil {
			return err
		}

		if err := attendanceRepo.HardDeleteByMeetingID(ctx, id); err != nil {
			return err
		}
		if err := meetingRepo.Delete(ctx, &meeting, 0); err != nil {
			return err
		}

		return s.aggregates.RecomputeSubjects(ctx, tx, subjects)
	})
	if txErr != nil {
		configslog.Log.Error("DeleteMeeting transaction failed", zap.Uint("id", id), zap.Error(txErr))
		return wrapTxError(txErr)
	}

	configslog.SLog.Infof("Toplantı ve yoklama kayıtları silindi: ID %d", id)
	return nil
}

// affectedSubjects toplantının yoklama kayıtlarındaki özneleri toplar.
func affectedSubjects(ctx context.Context, attendanceRepo repositories.IAttendanceRepository, meetingID uint) ([]models.Subject, error) {
	records, err := attendanceRepo.FindByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	subjects := make([]models.Subject, 0, len(records))
	for i := range records {
		subject, err := records[i].Subject()
		if err != nil {
			return nil, ErrConsistencyViolation
		}
		subjects = append(subjects, subject)
	}
	return subjects, nil
}

var _ IMeetingService = (*MeetingService)(nil)
