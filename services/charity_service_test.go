package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uyetakip.app/models"
)

func TestCreateCharityEvent_WithParticipants(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewCharityServiceWithDB(db)

	guest := mustCreateGuest(t, db, "Selin")
	pipeliner := mustCreatePipeliner(t, db, "Tolga")

	event, err := svc.CreateCharityEvent(ctx, "Gıda Kolisi Dağıtımı", testDate(8), "",
		[]models.Subject{guestSubject(guest.ID), pipelinerSubject(pipeliner.ID)})
	require.NoError(t, err)

	loaded, err := svc.GetCharityEventByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Participants, 2)

	// Katılım pipeliner sayacına aynı transaction içinde yansır.
	assert.Equal(t, 1, reloadPipeliner(t, db, pipeliner.ID).CharityEventsCount)
}

func TestCreateCharityEvent_UnknownParticipantRollsBack(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewCharityServiceWithDB(db)

	guest := mustCreateGuest(t, db, "Umut")

	_, err := svc.CreateCharityEvent(ctx, "Kitap Toplama", testDate(8), "",
		[]models.Subject{guestSubject(guest.ID), pipelinerSubject(9999)})
	require.ErrorIs(t, err, ErrInvalidParticipant)

	// Transaction geri alındı: etkinlik de katılımcı satırı da yok.
	var eventCount int64
	require.NoError(t, db.Model(&models.CharityEvent{}).Count(&eventCount).Error)
	assert.Zero(t, eventCount)
}

func TestAddParticipant_SetSemantics(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewCharityServiceWithDB(db)

	pipeliner := mustCreatePipeliner(t, db, "Volkan")
	event := mustCreateCharityEvent(t, db, "Aşevi Nöbeti", testDate(8))

	require.NoError(t, svc.AddParticipant(ctx, event.ID, pipelinerSubject(pipeliner.ID)))
	require.NoError(t, svc.AddParticipant(ctx, event.ID, pipelinerSubject(pipeliner.ID)))

	// Tekrar eklemek kümeyi de sayacı da değiştirmez.
	assert.Equal(t, 1, reloadPipeliner(t, db, pipeliner.ID).CharityEventsCount)
}

// Etkinlik katılımı uygunluk bayrağını çevirebilir; katılımın kaldırılması geri düşürür.
func TestCharityParticipation_FlipsEligibility(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewCharityServiceWithDB(db)

	pipeliner := mustCreatePipeliner(t, db, "Yasemin")
	for day := 1; day <= 3; day++ {
		meeting := mustCreateMeeting(t, db, testDate(day*7), models.MeetingTypeBusiness)
		markPresent(t, db, meeting.ID, pipelinerSubject(pipeliner.ID))
	}
	require.False(t, reloadPipeliner(t, db, pipeliner.ID).IsEligibleForMembership)

	event := mustCreateCharityEvent(t, db, "Fidan Dikimi", testDate(25))
	require.NoError(t, svc.AddParticipant(ctx, event.ID, pipelinerSubject(pipeliner.ID)))
	assert.True(t, reloadPipeliner(t, db, pipeliner.ID).IsEligibleForMembership)

	require.NoError(t, svc.RemoveParticipant(ctx, event.ID, pipelinerSubject(pipeliner.ID)))
	reloaded := reloadPipeliner(t, db, pipeliner.ID)
	assert.Equal(t, 0, reloaded.CharityEventsCount)
	assert.False(t, reloaded.IsEligibleForMembership)
}

func TestRemoveParticipant_NotInSet(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCharityServiceWithDB(db)

	pipeliner := mustCreatePipeliner(t, db, "Zafer")
	event := mustCreateCharityEvent(t, db, "Boyama Günü", testDate(8))

	err := svc.RemoveParticipant(context.Background(), event.ID, pipelinerSubject(pipeliner.ID))
	assert.ErrorIs(t, err, ErrInvalidParticipant)
}

// SetParticipants kümeden çıkanların sayaçlarını da düşürür.
func TestSetParticipants_RecomputesRemoved(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewCharityServiceWithDB(db)

	pipelinerA := mustCreatePipeliner(t, db, "Ahmet")
	pipelinerB := mustCreatePipeliner(t, db, "Bilge")
	event := mustCreateCharityEvent(t, db, "Kan Bağışı", testDate(8))
	joinCharity(t, db, event.ID, pipelinerSubject(pipelinerA.ID))
	require.Equal(t, 1, reloadPipeliner(t, db, pipelinerA.ID).CharityEventsCount)

	updated, err := svc.SetParticipants(ctx, event.ID, []models.Subject{pipelinerSubject(pipelinerB.ID)})
	require.NoError(t, err)
	assert.Len(t, updated.Participants, 1)

	assert.Equal(t, 0, reloadPipeliner(t, db, pipelinerA.ID).CharityEventsCount)
	assert.Equal(t, 1, reloadPipeliner(t, db, pipelinerB.ID).CharityEventsCount)
}

func TestDeleteCharityEvent_RecomputesParticipants(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewCharityServiceWithDB(db)

	pipeliner := mustCreatePipeliner(t, db, "Cem")
	event := mustCreateCharityEvent(t, db, "Eski Eşya Toplama", testDate(8))
	joinCharity(t, db, event.ID, pipelinerSubject(pipeliner.ID))
	require.Equal(t, 1, reloadPipeliner(t, db, pipeliner.ID).CharityEventsCount)

	require.NoError(t, svc.DeleteCharityEvent(ctx, event.ID))

	assert.Equal(t, 0, reloadPipeliner(t, db, pipeliner.ID).CharityEventsCount)
	_, err := svc.GetCharityEventByID(ctx, event.ID)
	assert.ErrorIs(t, err, ErrCharityEventNotFound)
}

// Misafirler de yardım etkinliklerine katılabilir; katılım terfi kapısında sayılır.
func TestCharity_GuestParticipationCountsForPromotionGate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	guest := mustCreateGuest(t, db, "Deniz")
	for day := 1; day <= 3; day++ {
		meeting := mustCreateMeeting(t, db, testDate(day*7), models.MeetingTypeBusiness)
		markPresent(t, db, meeting.ID, guestSubject(guest.ID))
	}
	event := mustCreateCharityEvent(t, db, "Oyuncak Kampanyası", testDate(25))
	joinCharity(t, db, event.ID, guestSubject(guest.ID))

	progress, err := NewAggregateServiceWithDB(db).GuestProgress(ctx, db, guest.ID)
	require.NoError(t, err)
	assert.True(t, progress.Eligible)
}
