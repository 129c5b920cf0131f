package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uyetakip.app/models"
	"uyetakip.app/pkg/queryparams"
)

func TestCreateMeeting_Validation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewMeetingServiceWithDB(db)

	meeting, err := svc.CreateMeeting(ctx, testDate(5), models.MeetingTypeBusiness, "Kulüp Salonu", "")
	require.NoError(t, err)
	assert.NotZero(t, meeting.ID)

	_, err = svc.CreateMeeting(ctx, testDate(5), "brunch", "", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// Güncelleme de oluşturma ile aynı alan kurallarına tabidir: sıfır tarih reddedilir.
func TestUpdateMeeting_Validation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewMeetingServiceWithDB(db)

	meeting := mustCreateMeeting(t, db, testDate(5), models.MeetingTypeBusiness)

	err := svc.UpdateMeeting(ctx, meeting.ID, time.Time{}, models.MeetingTypeBusiness, meeting.Location, "")
	require.ErrorIs(t, err, ErrInvalidInput)

	// Geçersiz istek toplantıya dokunmaz.
	reloaded, getErr := svc.GetMeetingByID(ctx, meeting.ID)
	require.NoError(t, getErr)
	assert.True(t, reloaded.Date.Equal(meeting.Date))
}

func TestListMeetings_Pagination(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewMeetingServiceWithDB(db)

	for day := 1; day <= 5; day++ {
		mustCreateMeeting(t, db, testDate(day), models.MeetingTypeBusiness)
	}

	result, err := svc.ListMeetings(ctx, queryparams.ListParams{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.Meta.TotalItems)
	assert.Equal(t, 3, result.Meta.TotalPages)
	assert.Len(t, result.Data.([]models.Meeting), 2)
}

// Toplantı türünün değişmesi uygunluk sayaçlarını yeniden hesaplatır.
func TestUpdateMeeting_TypeChangeRecomputes(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewMeetingServiceWithDB(db)

	pipeliner := mustCreatePipeliner(t, db, "Rıza")
	meeting := mustCreateMeeting(t, db, testDate(5), models.MeetingTypeBusiness)
	markPresent(t, db, meeting.ID, pipelinerSubject(pipeliner.ID))
	require.Equal(t, 1, reloadPipeliner(t, db, pipeliner.ID).BusinessMeetingsCount)

	err := svc.UpdateMeeting(ctx, meeting.ID, meeting.Date, models.MeetingTypeSpecial, meeting.Location, "")
	require.NoError(t, err)

	assert.Equal(t, 0, reloadPipeliner(t, db, pipeliner.ID).BusinessMeetingsCount)
}

// Toplantı silindiğinde yoklama kayıtları da silinir ve sayaçlar düşer;
// eşiğin hemen üstündeki bir pipeliner'da bayrak true'dan false'a döner.
func TestDeleteMeeting_CascadeFlipsEligibility(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewMeetingServiceWithDB(db)

	pipeliner := makeEligiblePipeliner(t, db, "Seda")
	require.True(t, reloadPipeliner(t, db, pipeliner.ID).IsEligibleForMembership)

	var meeting models.Meeting
	require.NoError(t, db.Where("type = ?", models.MeetingTypeBusiness).First(&meeting).Error)

	require.NoError(t, svc.DeleteMeeting(ctx, meeting.ID))

	reloaded := reloadPipeliner(t, db, pipeliner.ID)
	assert.Equal(t, 2, reloaded.BusinessMeetingsCount)
	assert.False(t, reloaded.IsEligibleForMembership)

	// Yoklama satırları kalıcı silindi.
	var recordCount int64
	require.NoError(t, db.Model(&models.AttendanceRecord{}).
		Where("meeting_id = ?", meeting.ID).Count(&recordCount).Error)
	assert.Zero(t, recordCount)

	// Toplantı soft delete edildi: normal okuma görmez.
	_, err := svc.GetMeetingByID(ctx, meeting.ID)
	assert.ErrorIs(t, err, ErrMeetingNotFound)
}

func TestDeleteMeeting_NotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMeetingServiceWithDB(db)

	err := svc.DeleteMeeting(context.Background(), 42)
	assert.ErrorIs(t, err, ErrMeetingNotFound)
}
