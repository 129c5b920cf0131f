package services

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"uyetakip.app/models"
)

// setupTestDB her test için izole bir in-memory SQLite veritabanı açar.
// Bağlantı havuzu tek bağlantıya sabitlenir; aksi halde her yeni bağlantı
// boş bir :memory: veritabanı görür.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.Member{},
		&models.Guest{},
		&models.Pipeliner{},
		&models.Meeting{},
		&models.AttendanceRecord{},
		&models.CharityEvent{},
		&models.CharityParticipant{},
	))
	return db
}

func testDate(day int) time.Time {
	return time.Date(2025, time.March, day, 19, 0, 0, 0, time.UTC)
}

func mustCreateMember(t *testing.T, db *gorm.DB, memberNumber string) *models.Member {
	t.Helper()
	member := &models.Member{
		FirstName:    "Üye",
		LastName:     memberNumber,
		Email:        memberNumber + "@kulup.test",
		MemberNumber: memberNumber,
		JoinDate:     testDate(1),
		Status:       models.MemberStatusActive,
	}
	require.NoError(t, db.Create(member).Error)
	return member
}

func mustCreateGuest(t *testing.T, db *gorm.DB, firstName string) *models.Guest {
	t.Helper()
	guest := &models.Guest{
		FirstName: firstName,
		Email:     firstName + "@misafir.test",
		Status:    models.GuestStatusActive,
	}
	require.NoError(t, db.Create(guest).Error)
	return guest
}

func mustCreatePipeliner(t *testing.T, db *gorm.DB, firstName string) *models.Pipeliner {
	t.Helper()
	pipeliner := &models.Pipeliner{
		FirstName: firstName,
		Email:     firstName + "@aday.test",
		Status:    models.PipelinerStatusActive,
	}
	require.NoError(t, db.Create(pipeliner).Error)
	return pipeliner
}

func mustCreateMeeting(t *testing.T, db *gorm.DB, date time.Time, meetingType models.MeetingType) *models.Meeting {
	t.Helper()
	meeting := &models.Meeting{Date: date, Type: meetingType, Location: "Kulüp Salonu"}
	require.NoError(t, db.Create(meeting).Error)
	return meeting
}

func mustCreateCharityEvent(t *testing.T, db *gorm.DB, name string, date time.Time) *models.CharityEvent {
	t.Helper()
	event := &models.CharityEvent{Name: name, Date: date}
	require.NoError(t, db.Create(event).Error)
	return event
}

// markPresent özneyi bir toplantıda present olarak işaretler.
func markPresent(t *testing.T, db *gorm.DB, meetingID uint, subject models.Subject) {
	t.Helper()
	svc := NewAttendanceServiceWithDB(db)
	_, err := svc.RecordAttendance(context.Background(), meetingID, subject, models.AttendancePresent, "")
	require.NoError(t, err)
}

// joinCharity özneyi bir yardım etkinliğine ekler.
func joinCharity(t *testing.T, db *gorm.DB, eventID uint, subject models.Subject) {
	t.Helper()
	svc := NewCharityServiceWithDB(db)
	require.NoError(t, svc.AddParticipant(context.Background(), eventID, subject))
}

func guestSubject(id uint) models.Subject {
	return models.Subject{Kind: models.SubjectKindGuest, ID: id}
}

func pipelinerSubject(id uint) models.Subject {
	return models.Subject{Kind: models.SubjectKindPipeliner, ID: id}
}

func memberSubject(id uint) models.Subject {
	return models.Subject{Kind: models.SubjectKindMember, ID: id}
}

// reloadPipeliner pipeliner satırını veritabanından taze okur.
func reloadPipeliner(t *testing.T, db *gorm.DB, id uint) *models.Pipeliner {
	t.Helper()
	var pipeliner models.Pipeliner
	require.NoError(t, db.First(&pipeliner, id).Error)
	return &pipeliner
}

// reloadGuest misafir satırını veritabanından taze okur.
func reloadGuest(t *testing.T, db *gorm.DB, id uint) *models.Guest {
	t.Helper()
	var guest models.Guest
	require.NoError(t, db.First(&guest, id).Error)
	return &guest
}
