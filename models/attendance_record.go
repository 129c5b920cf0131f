package models

import "gorm.io/gorm"

// AttendanceStatus yoklama durumu.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceApology AttendanceStatus = "apology" // mazeretli
	AttendanceAbsent  AttendanceStatus = "absent"
)

// Valid yoklama durumunun tanımlı olup olmadığını kontrol eder.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceApology, AttendanceAbsent:
		return true
	}
	return false
}

// AttendanceRecord bir toplantıdaki tek bir öznenin (üye/misafir/pipeliner)
// yoklama kaydıdır. Toplantı sahibidir (cascade); özne referansları zayıftır.
// Değişmez: MemberID/GuestID/PipelinerID alanlarından tam olarak biri dolu olmalı
// ve (toplantı, özne) çifti başına en fazla bir kayıt bulunmalı.
type AttendanceRecord struct {
	BaseModel
	MeetingID uint    `gorm:"not null;index;index:idx_attendance_meeting_member,unique;index:idx_attendance_meeting_guest,unique;index:idx_attendance_meeting_pipeliner,unique"`
	Meeting   Meeting `gorm:"foreignKey:MeetingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	// Özne referansları: nullable kolonlarda unique index, NULL değerler çakışmaz.
	MemberID    *uint `gorm:"index:idx_attendance_meeting_member,unique"`
	GuestID     *uint `gorm:"index:idx_attendance_meeting_guest,unique"`
	PipelinerID *uint `gorm:"index:idx_attendance_meeting_pipeliner,unique"`

	Status AttendanceStatus `gorm:"type:varchar(20);not null;index"`
	Notes  string           `gorm:"type:text"`
}

// Subject kayıttaki dolu özne referansını Subject olarak döndürür.
func (a *AttendanceRecord) Subject() (Subject, error) {
	return subjectFromRefs(a.MemberID, a.GuestID, a.PipelinerID)
}

// SetSubject ilgili FK kolonunu doldurur, diğerlerini temizler.
func (a *AttendanceRecord) SetSubject(s Subject) error {
	memberID, guestID, pipelinerID, err := refsFromSubject(s)
	if err != nil {
		return err
	}
	a.MemberID = memberID
	a.GuestID = guestID
	a.PipelinerID = pipelinerID
	return nil
}

// BeforeSave tam-olarak-bir-özne değişmezini veritabanına yazmadan önce doğrular.
func (a *AttendanceRecord) BeforeSave(tx *gorm.DB) error {
	if _, err := a.Subject(); err != nil {
		return err
	}
	if !a.Status.Valid() {
		return gorm.ErrInvalidData
	}
	return nil
}
