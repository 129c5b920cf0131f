package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"uyetakip.app/models"
)

// makeEligibleGuest 3 present katılım ve 1 etkinlik katılımıyla aktif misafir hazırlar.
func makeEligibleGuest(t *testing.T, db *gorm.DB, name string) *models.Guest {
	t.Helper()
	guest := mustCreateGuest(t, db, name)
	for day := 1; day <= 3; day++ {
		meeting := mustCreateMeeting(t, db, testDate(day*7), models.MeetingTypeBusiness)
		markPresent(t, db, meeting.ID, guestSubject(guest.ID))
	}
	event := mustCreateCharityEvent(t, db, name+" Etkinliği", testDate(25))
	joinCharity(t, db, event.ID, guestSubject(guest.ID))
	return guest
}

// makeEligiblePipeliner eşikleri karşılayan aktif pipeliner hazırlar.
func makeEligiblePipeliner(t *testing.T, db *gorm.DB, name string) *models.Pipeliner {
	t.Helper()
	pipeliner := mustCreatePipeliner(t, db, name)
	for day := 1; day <= 3; day++ {
		meeting := mustCreateMeeting(t, db, testDate(day*7), models.MeetingTypeBusiness)
		markPresent(t, db, meeting.ID, pipelinerSubject(pipeliner.ID))
	}
	event := mustCreateCharityEvent(t, db, name+" Etkinliği", testDate(25))
	joinCharity(t, db, event.ID, pipelinerSubject(pipeliner.ID))
	return pipeliner
}

func TestPromoteGuestToPipeliner_HappyPath(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewPromotionServiceWithDB(db)

	sponsor := mustCreateMember(t, db, "RT-001")
	guest := makeEligibleGuest(t, db, "Elif")

	pipeliner, err := svc.PromoteGuestToPipeliner(ctx, guest.ID, sponsor.ID, "sponsorluk onaylandı", false)
	require.NoError(t, err)

	assert.Equal(t, models.PipelinerStatusActive, pipeliner.Status)
	assert.Equal(t, 3, pipeliner.GuestMeetingsCount)
	require.NotNil(t, pipeliner.SponsoredByMemberID)
	assert.Equal(t, sponsor.ID, *pipeliner.SponsoredByMemberID)
	assert.Equal(t, "Elif", pipeliner.FirstName)

	reloaded := reloadGuest(t, db, guest.ID)
	assert.Equal(t, models.GuestStatusBecamePipeliner, reloaded.Status)
}

func TestPromoteGuestToPipeliner_NotEligible(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewPromotionServiceWithDB(db)

	sponsor := mustCreateMember(t, db, "RT-001")
	guest := mustCreateGuest(t, db, "Ferhat")
	meeting := mustCreateMeeting(t, db, testDate(5), models.MeetingTypeBusiness)
	markPresent(t, db, meeting.ID, guestSubject(guest.ID))

	_, err := svc.PromoteGuestToPipeliner(ctx, guest.ID, sponsor.ID, "", false)
	require.ErrorIs(t, err, ErrNotEligible)
	assert.Contains(t, err.Error(), "2 toplantı katılımı daha gerekiyor")
	assert.Contains(t, err.Error(), "1 yardım etkinliği katılımı daha gerekiyor")

	// Red terfiyi yarım bırakmaz: pipeliner açılmadı, misafir hala aktif.
	var pipelinerCount int64
	require.NoError(t, db.Model(&models.Pipeliner{}).Count(&pipelinerCount).Error)
	assert.Zero(t, pipelinerCount)
	assert.Equal(t, models.GuestStatusActive, reloadGuest(t, db, guest.ID).Status)
}

func TestPromoteGuestToPipeliner_OverrideBypassesGateNotStatus(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewPromotionServiceWithDB(db)

	sponsor := mustCreateMember(t, db, "RT-001")
	guest := mustCreateGuest(t, db, "Gökhan")

	pipeliner, err := svc.PromoteGuestToPipeliner(ctx, guest.ID, sponsor.ID, "yönetim kararı", true)
	require.NoError(t, err)
	// Eşik altı terfide misafirlik sayacı asgari eşikle mühürlenir.
	assert.Equal(t, 3, pipeliner.GuestMeetingsCount)

	// Override durum makinesini atlayamaz: aynı misafir ikinci kez terfi edemez.
	_, err = svc.PromoteGuestToPipeliner(ctx, guest.ID, sponsor.ID, "", true)
	assert.ErrorIs(t, err, ErrSubjectAlreadyPromoted)
}

// Pipeliner açıldıktan sonra misafir durumu yazılamazsa terfinin tamamı geri
// alınır; yarım terfi (pipeliner var ama misafir hala aktif) kalıcı olamaz.
func TestPromoteGuestToPipeliner_StatusWriteFailureRollsBackPipeliner(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewPromotionServiceWithDB(db)

	sponsor := mustCreateMember(t, db, "RT-001")
	guest := makeEligibleGuest(t, db, "Tuna")

	// Hazırlık bittikten sonra guests tablosuna yazılan her UPDATE düşürülür;
	// terfinin ikinci adımı (durum geçişi) bu yüzden başarısız olur.
	err := db.Callback().Update().Before("gorm:update").
		Register("uyetakip:fail_guest_update", func(tx *gorm.DB) {
			if tx.Statement.Table == "guests" {
				tx.AddError(errors.New("guests tablosu yazıma kapalı"))
			}
		})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Callback().Update().Remove("uyetakip:fail_guest_update")
	})

	_, err = svc.PromoteGuestToPipeliner(ctx, guest.ID, sponsor.ID, "", false)
	require.ErrorIs(t, err, ErrTransientStore)

	var pipelinerCount int64
	require.NoError(t, db.Model(&models.Pipeliner{}).Count(&pipelinerCount).Error)
	assert.Zero(t, pipelinerCount, "başarısız terfi pipeliner satırı bırakmamalı")
	assert.Equal(t, models.GuestStatusActive, reloadGuest(t, db, guest.ID).Status)
}

func TestPromoteGuestToPipeliner_InactiveGuest(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewPromotionServiceWithDB(db)

	sponsor := mustCreateMember(t, db, "RT-001")
	guest := mustCreateGuest(t, db, "Hande")
	require.NoError(t, db.Model(guest).Update("status", models.GuestStatusInactive).Error)

	_, err := svc.PromoteGuestToPipeliner(ctx, guest.ID, sponsor.ID, "", true)
	assert.ErrorIs(t, err, ErrGuestNotActive)
}

func TestPromoteGuestToPipeliner_UnknownSponsor(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPromotionServiceWithDB(db)

	guest := makeEligibleGuest(t, db, "Işıl")
	_, err := svc.PromoteGuestToPipeliner(context.Background(), guest.ID, 9999, "", false)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestPromoteToMember_HappyPath(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewPromotionServiceWithDB(db)

	pipeliner := makeEligiblePipeliner(t, db, "Jale")

	member, err := svc.PromoteToMember(ctx, pipeliner.ID, "RT-099", testDate(28))
	require.NoError(t, err)
	assert.Equal(t, "RT-099", member.MemberNumber)
	assert.Equal(t, "Jale", member.FirstName)
	assert.Equal(t, models.MemberStatusActive, member.Status)

	reloaded := reloadPipeliner(t, db, pipeliner.ID)
	assert.Equal(t, models.PipelinerStatusBecameMember, reloaded.Status)
	assert.False(t, reloaded.IsEligibleForMembership)
}

func TestPromoteToMember_NotEligible(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewPromotionServiceWithDB(db)

	pipeliner := mustCreatePipeliner(t, db, "Kaan")

	_, err := svc.PromoteToMember(ctx, pipeliner.ID, "RT-099", testDate(28))
	require.ErrorIs(t, err, ErrNotEligible)
	assert.Equal(t, models.PipelinerStatusActive, reloadPipeliner(t, db, pipeliner.ID).Status)
}

// Numara çakışması durum değişikliğinden önce yakalanır; pipeliner olduğu gibi kalır.
func TestPromoteToMember_DuplicateMemberNumberLeavesPipelinerUntouched(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewPromotionServiceWithDB(db)

	mustCreateMember(t, db, "RT-050")
	pipeliner := makeEligiblePipeliner(t, db, "Lale")

	_, err := svc.PromoteToMember(ctx, pipeliner.ID, "RT-050", testDate(28))
	require.ErrorIs(t, err, ErrDuplicateIdentifier)

	reloaded := reloadPipeliner(t, db, pipeliner.ID)
	assert.Equal(t, models.PipelinerStatusActive, reloaded.Status)
	assert.True(t, reloaded.IsEligibleForMembership)
}

func TestPromoteToMember_AlreadyPromoted(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewPromotionServiceWithDB(db)

	pipeliner := makeEligiblePipeliner(t, db, "Melis")
	_, err := svc.PromoteToMember(ctx, pipeliner.ID, "RT-099", testDate(28))
	require.NoError(t, err)

	_, err = svc.PromoteToMember(ctx, pipeliner.ID, "RT-100", testDate(28))
	assert.ErrorIs(t, err, ErrSubjectAlreadyPromoted)
}

func TestPromoteToMember_MissingRequiredFields(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewPromotionServiceWithDB(db)

	pipeliner := makeEligiblePipeliner(t, db, "Nehir")

	_, err := svc.PromoteToMember(ctx, pipeliner.ID, "  ", testDate(28))
	assert.ErrorIs(t, err, ErrMissingRequiredField)

	_, err = svc.PromoteToMember(ctx, pipeliner.ID, "RT-099", time.Time{})
	assert.ErrorIs(t, err, ErrMissingRequiredField)

	// E-posta zorunlu alanı transaction içinde kontrol edilir.
	require.NoError(t, db.Model(&models.Pipeliner{}).Where("id = ?", pipeliner.ID).
		Update("email", "").Error)
	_, err = svc.PromoteToMember(ctx, pipeliner.ID, "RT-099", testDate(28))
	assert.ErrorIs(t, err, ErrMissingRequiredField)
}

// Önbellek bayrağı defterle çeliştiğinde terfi tutarlılık ihlaliyle durur.
func TestPromoteToMember_StaleFlagIsConsistencyViolation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewPromotionServiceWithDB(db)

	pipeliner := makeEligiblePipeliner(t, db, "Onur")
	require.NoError(t, db.Model(&models.Pipeliner{}).Where("id = ?", pipeliner.ID).
		Update("is_eligible_for_membership", false).Error)

	_, err := svc.PromoteToMember(ctx, pipeliner.ID, "RT-099", testDate(28))
	assert.ErrorIs(t, err, ErrConsistencyViolation)
}

func TestGetEligibility(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewPromotionServiceWithDB(db)

	guest := makeEligibleGuest(t, db, "Petek")
	progress, err := svc.GetGuestEligibility(ctx, guest.ID)
	require.NoError(t, err)
	assert.True(t, progress.Eligible)
	assert.Equal(t, 3, progress.PresentCount)
	assert.Equal(t, 1, progress.CharityCount)

	_, err = svc.GetGuestEligibility(ctx, 9999)
	assert.ErrorIs(t, err, ErrGuestNotFound)

	_, err = svc.GetPipelinerEligibility(ctx, 9999)
	assert.ErrorIs(t, err, ErrPipelinerNotFound)
}
