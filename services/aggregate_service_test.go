package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uyetakip.app/models"
)

// Pipeliner sayacı yalnızca iş toplantılarındaki present kayıtlarını sayar;
// özel toplantılar ve mazeretli kayıtlar sayaca girmez.
func TestAggregate_PipelinerCountsBusinessPresentOnly(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewAttendanceServiceWithDB(db)

	pipeliner := mustCreatePipeliner(t, db, "Kerem")
	business := mustCreateMeeting(t, db, testDate(5), models.MeetingTypeBusiness)
	special := mustCreateMeeting(t, db, testDate(12), models.MeetingTypeSpecial)
	business2 := mustCreateMeeting(t, db, testDate(19), models.MeetingTypeBusiness)

	markPresent(t, db, business.ID, pipelinerSubject(pipeliner.ID))
	markPresent(t, db, special.ID, pipelinerSubject(pipeliner.ID))
	_, err := svc.RecordAttendance(ctx, business2.ID, pipelinerSubject(pipeliner.ID), models.AttendanceApology, "")
	require.NoError(t, err)

	reloaded := reloadPipeliner(t, db, pipeliner.ID)
	assert.Equal(t, 1, reloaded.BusinessMeetingsCount)
	assert.False(t, reloaded.IsEligibleForMembership)
}

// Önbellek bayrağı eşikler tam karşılandığı yazımda true olur, ondan önce olmaz.
func TestAggregate_EligibilityFlagFlipsAtThreshold(t *testing.T) {
	db := setupTestDB(t)

	pipeliner := mustCreatePipeliner(t, db, "Leyla")
	event := mustCreateCharityEvent(t, db, "Kermes", testDate(3))
	joinCharity(t, db, event.ID, pipelinerSubject(pipeliner.ID))

	for day := 1; day <= 3; day++ {
		meeting := mustCreateMeeting(t, db, testDate(day*7), models.MeetingTypeBusiness)
		markPresent(t, db, meeting.ID, pipelinerSubject(pipeliner.ID))

		reloaded := reloadPipeliner(t, db, pipeliner.ID)
		assert.Equal(t, day, reloaded.BusinessMeetingsCount)
		assert.Equal(t, day >= 3, reloaded.IsEligibleForMembership,
			"bayrak %d. toplantıdan sonra yanlış", day)
	}
}

// RecomputeAll değişmemiş defterde idempotenttir.
func TestAggregate_RecomputeAllIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	aggregates := NewAggregateServiceWithDB(db)

	guest := mustCreateGuest(t, db, "Murat")
	pipeliner := mustCreatePipeliner(t, db, "Nazlı")
	meeting := mustCreateMeeting(t, db, testDate(5), models.MeetingTypeBusiness)
	markPresent(t, db, meeting.ID, guestSubject(guest.ID))
	markPresent(t, db, meeting.ID, pipelinerSubject(pipeliner.ID))

	before := reloadPipeliner(t, db, pipeliner.ID)

	require.NoError(t, aggregates.RecomputeAll(ctx))
	require.NoError(t, aggregates.RecomputeAll(ctx))

	after := reloadPipeliner(t, db, pipeliner.ID)
	assert.Equal(t, before.BusinessMeetingsCount, after.BusinessMeetingsCount)
	assert.Equal(t, before.CharityEventsCount, after.CharityEventsCount)
	assert.Equal(t, 1, reloadGuest(t, db, guest.ID).TotalMeetings)
}

// RecomputeAll elle bozulmuş sayaçları defter gerçeğine geri çeker.
func TestAggregate_RecomputeAllRepairsDrift(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	aggregates := NewAggregateServiceWithDB(db)

	guest := mustCreateGuest(t, db, "Okan")
	meeting := mustCreateMeeting(t, db, testDate(5), models.MeetingTypeBusiness)
	markPresent(t, db, meeting.ID, guestSubject(guest.ID))

	// Sayaç dışarıdan bozuluyor.
	require.NoError(t, db.Model(&models.Guest{}).Where("id = ?", guest.ID).
		Update("total_meetings", 99).Error)

	require.NoError(t, aggregates.RecomputeAll(ctx))
	assert.Equal(t, 1, reloadGuest(t, db, guest.ID).TotalMeetings)
}

// Üye olmuş pipeliner'da bayrak, defter ne derse desin düşük kalır.
func TestAggregate_BecameMemberSuppressesEligibility(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	aggregates := NewAggregateServiceWithDB(db)

	pipeliner := mustCreatePipeliner(t, db, "Pelin")
	event := mustCreateCharityEvent(t, db, "Bağış Gecesi", testDate(3))
	joinCharity(t, db, event.ID, pipelinerSubject(pipeliner.ID))
	for day := 1; day <= 3; day++ {
		meeting := mustCreateMeeting(t, db, testDate(day*7), models.MeetingTypeBusiness)
		markPresent(t, db, meeting.ID, pipelinerSubject(pipeliner.ID))
	}
	require.True(t, reloadPipeliner(t, db, pipeliner.ID).IsEligibleForMembership)

	require.NoError(t, db.Model(&models.Pipeliner{}).Where("id = ?", pipeliner.ID).
		Update("status", models.PipelinerStatusBecameMember).Error)

	require.NoError(t, aggregates.RecomputeAll(ctx))
	assert.False(t, reloadPipeliner(t, db, pipeliner.ID).IsEligibleForMembership)
}

// Yeniden hesaplama kilitli okuma ile başlar; silinmiş özne sessizce atlanır,
// var olan öznede kilitli okuma sayaç yazımını engellemez.
func TestAggregate_RecomputeLockedReadAndMissingSubject(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	aggregates := NewAggregateServiceWithDB(db)

	// Silinmiş veya hiç var olmamış özne hata üretmez.
	require.NoError(t, aggregates.RecomputeSubject(ctx, db, guestSubject(9999)))
	require.NoError(t, aggregates.RecomputeSubject(ctx, db, pipelinerSubject(9999)))

	guest := mustCreateGuest(t, db, "Sinan")
	meeting := mustCreateMeeting(t, db, testDate(5), models.MeetingTypeBusiness)
	markPresent(t, db, meeting.ID, guestSubject(guest.ID))

	require.NoError(t, aggregates.RecomputeSubject(ctx, db, guestSubject(guest.ID)))
	assert.Equal(t, 1, reloadGuest(t, db, guest.ID).TotalMeetings)
}

func TestAggregate_GuestProgress(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	aggregates := NewAggregateServiceWithDB(db)

	guest := mustCreateGuest(t, db, "Rana")
	meeting := mustCreateMeeting(t, db, testDate(5), models.MeetingTypeBusiness)
	markPresent(t, db, meeting.ID, guestSubject(guest.ID))

	progress, err := aggregates.GuestProgress(ctx, db, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, progress.PresentCount)
	assert.Equal(t, 0, progress.CharityCount)
	assert.False(t, progress.Eligible)
	assert.Len(t, progress.Missing, 2)
}
