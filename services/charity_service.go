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

// ICharityService yardım etkinliği ve katılım defteri işlemleri için arayüz.
type ICharityService interface {
	CreateCharityEvent(ctx context.Context, name string, date time.Time, description string, participants []models.Subject) (*models.CharityEvent, error)
	GetCharityEventByID(ctx context.Context, id uint) (*models.CharityEvent, error)
	ListCharityEvents(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	SetParticipants(ctx context.Context, eventID uint, participants []models.Subject) (*models.CharityEvent, error)
	AddParticipant(ctx context.Context, eventID uint, participant models.Subject) error
	RemoveParticipant(ctx context.Context, eventID uint, participant models.Subject) error
	DeleteCharityEvent(ctx context.Context, eventID uint) error
}

// CharityService ICharityService arayüzünü uygular.
//
// Katılımcı kümesindeki her değişiklik pipeliner/misafir yardım sayaçlarını
// etkilediği için mutasyonlar AggregateService ile aynı transaction içinde
// yürütülür.
type CharityService struct {
	db         *gorm.DB
	aggregates IAggregateService
}

// NewCharityService yeni bir CharityService örneği oluşturur.
func NewCharityService() ICharityService {
	return NewCharityServiceWithDB(configs.GetDB())
}

// NewCharityServiceWithDB verilen bağlantı ile CharityService oluşturur.
func NewCharityServiceWithDB(db *gorm.DB) ICharityService {
	return &CharityService{
		db:         db,
		aggregates: NewAggregateServiceWithDB(db),
	}
}

// CreateCharityEvent yeni bir etkinlik ve katılımcı kümesini oluşturur.
func (s *CharityService) CreateCharityEvent(ctx context.Context, name string, date time.Time, description string, participants []models.Subject) (*models.CharityEvent, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: etkinlik adı zorunludur", ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: etkinlik tarihi zorunludur", ErrInvalidInput)
	}
	participants = dedupeSubjects(participants)
	for _, p := range participants {
		if !p.Valid() {
			return nil, ErrInvalidParticipant
		}
	}

	var created *models.CharityEvent
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		charityRepo := repositories.NewCharityEventRepositoryTx(tx)

		event := &models.CharityEvent{
			Name:        name,
			Date:        date,
			Description: description,
		}
		if err := charityRepo.Create(ctx, event); err != nil {
			return err
		}

		for _, p := range participants {
			if err := s.addParticipantTx(ctx, tx, charityRepo, event.ID, p); err != nil {
				return err
			}
		}
		if err := s.aggregates.RecomputeSubjects(ctx, tx, participants); err != nil {
			return err
		}

		created = event
		return nil
	})
	if txErr != nil {
		configslog.Log.Error("CreateCharityEvent transaction failed",
			zap.String("name", name), zap.Error(txErr))
		return nil, wrapTxError(txErr)
	}

	configslog.SLog.Infof("Yardım etkinliği oluşturuldu: ID %d, %d katılımcı", created.ID, len(participants))
	return created, nil
}

// GetCharityEventByID etkinliği katılımcılarıyla birlikte getirir.
func (s *CharityService) GetCharityEventByID(ctx context.Context, id uint) (*models.CharityEvent, error) {
	event, err := repositories.NewCharityEventRepositoryTx(s.db).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCharityEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// ListCharityEvents etkinlikleri sayfalayarak getirir.
func (s *CharityService) ListCharityEvents(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	events, totalCount, err := repositories.NewCharityEventRepositoryTx(s.db).FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: events,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// SetParticipants katılımcı kümesini verilenle değiştirir.
// Kümeden çıkanların sayaçları da düşmek zorunda olduğu için eski ve yeni
// kümenin birleşimi yeniden hesaplanır.
func (s *CharityService) SetParticipants(ctx context.Context, eventID uint, participants []models.Subject) (*models.CharityEvent, error) {
	if eventID == 0 {
		return nil, fmt.Errorf("%w: etkinlik ID boş", ErrInvalidInput)
	}
	participants = dedupeSubjects(participants)
	for _, p := range participants {
		if !p.Valid() {
			return nil, ErrInvalidParticipant
		}
	}

	var updated *models.CharityEvent
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		charityRepo := repositories.NewCharityEventRepositoryTx(tx)

		var event models.CharityEvent
		if err := lockForUpdate(tx.WithContext(ctx)).First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCharityEventNotFound
			}
			return err
		}

		oldRows, err := charityRepo.FindParticipants(ctx, eventID)
		if err != nil {
			return err
		}
		oldSubjects := make([]models.Subject, 0, len(oldRows))
		for i := range oldRows {
			subject, err := oldRows[i].Subject()
			if err != nil {
				return ErrConsistencyViolation
			}
			oldSubjects = append(oldSubjects, subject)
		}

		if err := charityRepo.RemoveAllParticipants(ctx, eventID); err != nil {
			return err
		}
		for _, p := range participants {
			if err := s.addParticipantTx(ctx, tx, charityRepo, eventID, p); err != nil {
				return err
			}
		}

		if err := s.aggregates.RecomputeSubjects(ctx, tx, append(oldSubjects, participants...)); err != nil {
			return err
		}

		refreshed, err := charityRepo.FindByID(ctx, eventID)
		if err != nil {
			return err
		}
		updated = refreshed
		return nil
	})
	if txErr != nil {
		configslog.Log.Error("SetParticipants transaction failed",
			zap.Uint("eventID", eventID), zap.Error(txErr))
		return nil, wrapTxError(txErr)
	}

	configslog.SLog.Infof("Etkinlik katılımcıları güncellendi: ID %d, %d katılımcı", eventID, len(participants))
	return updated, nil
}

// AddParticipant etkinliğe tek katılımcı ekler; zaten ekliyse işlem yapılmaz.
func (s *CharityService) AddParticipant(ctx context.Context, eventID uint, participant models.Subject) error {
	if eventID == 0 {
		return fmt.Errorf("%w: etkinlik ID boş", ErrInvalidInput)
	}
	if !participant.Valid() {
		return ErrInvalidParticipant
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		charityRepo := repositories.NewCharityEventRepositoryTx(tx)

		if _, err := charityRepo.FindByID(ctx, eventID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrCharityEventNotFound
			}
			return err
		}

		already, err := charityRepo.ParticipantExists(ctx, eventID, participant)
		if err != nil {
			return err
		}
		if already {
			return nil // küme semantiği: tekrar eklemek etkisizdir
		}

		if err := s.addParticipantTx(ctx, tx, charityRepo, eventID, participant); err != nil {
			return err
		}
		return s.aggregates.RecomputeSubject(ctx, tx, participant)
	})
	if txErr != nil {
		configslog.Log.Error("AddParticipant transaction failed",
			zap.Uint("eventID", eventID), zap.Error(txErr))
		return wrapTxError(txErr)
	}
	return nil
}

// RemoveParticipant katılımcıyı kümeden çıkarır ve sayaçlarını düşürür.
func (s *CharityService) RemoveParticipant(ctx context.Context, eventID uint, participant models.Subject) error {
	if eventID == 0 {
		return fmt.Errorf("%w: etkinlik ID boş", ErrInvalidInput)
	}
	if !participant.Valid() {
		return ErrInvalidParticipant
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		charityRepo := repositories.NewCharityEventRepositoryTx(tx)

		if err := charityRepo.RemoveParticipant(ctx, eventID, participant); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidParticipant
			}
			return err
		}
		return s.aggregates.RecomputeSubject(ctx, tx, participant)
	})
	if txErr != nil {
		configslog.Log.Error("RemoveParticipant transaction failed",
			zap.Uint("eventID", eventID), zap.Error(txErr))
		return wrapTxError(txErr)
	}
	return nil
}

// DeleteCharityEvent etkinliği ve katılımcı satırlarını siler; tüm eski
// katılımcıların sayaçları yeniden hesaplanır.
func (s *CharityService) DeleteCharityEvent(ctx context.Context, eventID uint) error {
	if eventID == 0 {
		return fmt.Errorf("%w: etkinlik ID boş", ErrInvalidInput)
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		charityRepo := repositories.NewCharityEventRepositoryTx(tx)

		var event models.CharityEvent
		if err := lockForUpdate(tx.WithContext(ctx)).First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCharityEventNotFound
			}
			return err
		}

		rows, err := charityRepo.FindParticipants(ctx, eventID)
		if err != nil {
			return err
		}
		subjects := make([]models.Subject, 0, len(rows))
		for i := range rows {
			subject, err := rows[i].Subject()
			if err != nil {
				return ErrConsistencyViolation
			}
			subjects = append(subjects, subject)
		}

		if err := charityRepo.RemoveAllParticipants(ctx, eventID); err != nil {
			return err
		}
		if err := charityRepo.Delete(ctx, &event, 0); err != nil {
			return err
		}
		return s.aggregates.RecomputeSubjects(ctx, tx, subjects)
	})
	if txErr != nil {
		configslog.Log.Error("DeleteCharityEvent transaction failed",
			zap.Uint("eventID", eventID), zap.Error(txErr))
		return wrapTxError(txErr)
	}

	configslog.SLog.Infof("Yardım etkinliği silindi: ID %d", eventID)
	return nil
}

// addParticipantTx özne varlığını doğrulayıp katılımcı satırı ekler.
func (s *CharityService) addParticipantTx(ctx context.Context, tx *gorm.DB, charityRepo repositories.ICharityEventRepository, eventID uint, participant models.Subject) error {
	exists, err := subjectExists(ctx, tx, participant)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s %d bulunamadı", ErrInvalidParticipant, participant.Kind, participant.ID)
	}

	row := &models.CharityParticipant{CharityEventID: eventID}
	if err := row.SetSubject(participant); err != nil {
		return ErrInvalidParticipant
	}
	return charityRepo.AddParticipant(ctx, row)
}

var _ ICharityService = (*CharityService)(nil)
