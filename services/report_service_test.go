package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uyetakip.app/models"
)

func TestGetMonthlyAttendanceStats(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewReportServiceWithDB(db)

	memberA := mustCreateMember(t, db, "RT-001")
	memberB := mustCreateMember(t, db, "RT-002")
	pipeliner := mustCreatePipeliner(t, db, "Tarık")

	// Mart 2025: iki iş toplantısı, bir özel toplantı.
	m1 := mustCreateMeeting(t, db, testDate(5), models.MeetingTypeBusiness)
	m2 := mustCreateMeeting(t, db, testDate(19), models.MeetingTypeBusiness)
	mustCreateMeeting(t, db, testDate(26), models.MeetingTypeSpecial)

	markPresent(t, db, m1.ID, memberSubject(memberA.ID))
	markPresent(t, db, m1.ID, memberSubject(memberB.ID))
	markPresent(t, db, m2.ID, memberSubject(memberA.ID))
	markPresent(t, db, m1.ID, pipelinerSubject(pipeliner.ID))

	stats, err := svc.GetMonthlyAttendanceStats(ctx, 2025, 3)
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.ActiveMembers)
	assert.Equal(t, int64(1), stats.ActivePipeliners)
	assert.Equal(t, int64(2), stats.MeetingCount)
	// 3 present / (2 üye * 2 toplantı) = %75
	assert.InDelta(t, 75.0, stats.AttendanceRate, 0.001)
	// 1 present / (1 pipeliner * 2 toplantı) = %50
	assert.InDelta(t, 50.0, stats.PipelinerAttendanceRate, 0.001)
	// Yılın tek toplantılı ayı mart olduğu için yıllık ortalama mart oranına eşit.
	assert.InDelta(t, 75.0, stats.YearlyAverage, 0.001)
}

func TestGetMonthlyAttendanceStats_EmptyMonth(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportServiceWithDB(db)

	mustCreateMember(t, db, "RT-001")

	stats, err := svc.GetMonthlyAttendanceStats(context.Background(), 2025, 7)
	require.NoError(t, err)
	assert.Zero(t, stats.MeetingCount)
	assert.Zero(t, stats.AttendanceRate)
	assert.Zero(t, stats.YearlyAverage)
}

func TestGetMonthlyAttendanceStats_YearlyAverageSkipsEmptyMonths(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewReportServiceWithDB(db)

	member := mustCreateMember(t, db, "RT-001")

	// Mart: tam katılım. Nisan: hiç katılım yok. Diğer aylar toplantısız.
	march := mustCreateMeeting(t, db, testDate(5), models.MeetingTypeBusiness)
	markPresent(t, db, march.ID, memberSubject(member.ID))
	mustCreateMeeting(t, db, time.Date(2025, time.April, 9, 19, 0, 0, 0, time.UTC), models.MeetingTypeBusiness)

	stats, err := svc.GetMonthlyAttendanceStats(ctx, 2025, 3)
	require.NoError(t, err)
	// (%100 + %0) / 2 toplantılı ay = %50
	assert.InDelta(t, 50.0, stats.YearlyAverage, 0.001)
}

func TestGetMonthlyAttendanceStats_InvalidInput(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportServiceWithDB(db)

	_, err := svc.GetMonthlyAttendanceStats(context.Background(), 2025, 13)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetMonthlyAttendanceStats(context.Background(), 25, 3)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
