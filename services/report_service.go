package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"uyetakip.app/configs"
	"uyetakip.app/configs/configslog"
	"uyetakip.app/models"
	"uyetakip.app/repositories"
)

// MonthlyStats bir ayın katılım istatistikleri. İstek anında defterden
// hesaplanır, hiçbir yerde kalıcılaştırılmaz.
type MonthlyStats struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	ActiveMembers    int64 `json:"active_members"`
	ActivePipeliners int64 `json:"active_pipeliners"`
	MeetingCount     int64 `json:"meeting_count"` // ay içindeki iş toplantıları

	// Katılım oranları yüzde cinsindendir: present / (kohort * toplantı) * 100.
	AttendanceRate          float64 `json:"attendance_rate"`
	PipelinerAttendanceRate float64 `json:"pipeliner_attendance_rate"`

	// YearlyAverage yılın toplantı yapılmış aylarının üye katılım oranı ortalaması.
	YearlyAverage float64 `json:"yearly_average"`
}

// IReportService zaman pencereli raporlama için arayüz.
type IReportService interface {
	GetMonthlyAttendanceStats(ctx context.Context, year, month int) (*MonthlyStats, error)
}

// ReportService IReportService arayüzünü uygular.
type ReportService struct {
	db *gorm.DB
}

// NewReportService yeni bir ReportService örneği oluşturur.
func NewReportService() IReportService {
	return NewReportServiceWithDB(configs.GetDB())
}

// NewReportServiceWithDB verilen bağlantı ile ReportService oluşturur.
func NewReportServiceWithDB(db *gorm.DB) IReportService {
	return &ReportService{db: db}
}

// GetMonthlyAttendanceStats verilen ay için katılım istatistiklerini hesaplar.
func (s *ReportService) GetMonthlyAttendanceStats(ctx context.Context, year, month int) (*MonthlyStats, error) {
	if year < 1900 || year > 3000 {
		return nil, fmt.Errorf("%w: geçersiz yıl %d", ErrInvalidInput, year)
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: geçersiz ay %d", ErrInvalidInput, month)
	}

	reportRepo := repositories.NewReportRepositoryTx(s.db)
	memberRepo := repositories.NewMemberRepositoryTx(s.db)
	pipelinerRepo := repositories.NewPipelinerRepositoryTx(s.db)

	activeMembers, err := memberRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	activePipeliners, err := pipelinerRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	stats := &MonthlyStats{
		Year:             year,
		Month:            month,
		ActiveMembers:    activeMembers,
		ActivePipeliners: activePipeliners,
	}

	meetingCount, memberRate, err := s.monthlyRate(ctx, reportRepo, models.SubjectKindMember, activeMembers, year, month)
	if err != nil {
		return nil, err
	}
	stats.MeetingCount = meetingCount
	stats.AttendanceRate = memberRate

	_, pipelinerRate, err := s.monthlyRate(ctx, reportRepo, models.SubjectKindPipeliner, activePipeliners, year, month)
	if err != nil {
		return nil, err
	}
	stats.PipelinerAttendanceRate = pipelinerRate

	// Yıllık ortalama: toplantı yapılmış ayların üye katılım oranları.
	var sum float64
	var monthsWithMeetings int
	for m := 1; m <= 12; m++ {
		count, rate, err := s.monthlyRate(ctx, reportRepo, models.SubjectKindMember, activeMembers, year, m)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			sum += rate
			monthsWithMeetings++
		}
	}
	if monthsWithMeetings > 0 {
		stats.YearlyAverage = sum / float64(monthsWithMeetings)
	}

	configslog.SLog.Debugf("Aylık istatistik hesaplandı: %d-%02d, %d toplantı", year, month, stats.MeetingCount)
	return stats, nil
}

// monthlyRate [ayın ilk günü, sonraki ayın ilk günü) penceresinde verilen
// kohortun katılım oranını hesaplar.
func (s *ReportService) monthlyRate(ctx context.Context, reportRepo repositories.IReportRepository, kind models.SubjectKind, cohortSize int64, year, month int) (int64, float64, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	meetingCount, err := reportRepo.CountBusinessMeetingsInRange(ctx, start, end)
	if err != nil {
		configslog.Log.Error("monthlyRate: meeting count failed",
			zap.Int("year", year), zap.Int("month", month), zap.Error(err))
		return 0, 0, err
	}
	if meetingCount == 0 || cohortSize == 0 {
		return meetingCount, 0, nil
	}

	presentCount, err := reportRepo.CountPresentByKindInRange(ctx, kind, start, end)
	if err != nil {
		return 0, 0, err
	}

	rate := float64(presentCount) / float64(cohortSize*meetingCount) * 100
	return meetingCount, rate, nil
}

var _ IReportService = (*ReportService)(nil)
