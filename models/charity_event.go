package models

import (
	"time"

	"gorm.io/gorm"
)

// CharityEvent bir yardım etkinliğini ve katılımcı kümesini temsil eder.
// Katılımcılar CharityParticipant satırları olarak tutulur; özne referansları
// zayıftır, etkinlik katılımcı kümesinin sahibidir.
type CharityEvent struct {
	BaseModel
	Name        string    `gorm:"type:varchar(255);not null"`
	Date        time.Time `gorm:"index;not null"`
	Description string    `gorm:"type:text"`

	Participants []CharityParticipant `gorm:"foreignKey:CharityEventID"`
}

// CharityParticipant bir etkinliğe katılan tek bir özne.
// Değişmez: özne FK'lerinden tam olarak biri dolu; (etkinlik, özne) çifti
// başına en fazla bir satır.
type CharityParticipant struct {
	BaseModel
	CharityEventID uint         `gorm:"not null;index;index:idx_charity_member,unique;index:idx_charity_guest,unique;index:idx_charity_pipeliner,unique"`
	CharityEvent   CharityEvent `gorm:"foreignKey:CharityEventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	MemberID    *uint `gorm:"index:idx_charity_member,unique"`
	GuestID     *uint `gorm:"index:idx_charity_guest,unique"`
	PipelinerID *uint `gorm:"index:idx_charity_pipeliner,unique"`
}

// Subject katılımcının dolu özne referansını Subject olarak döndürür.
func (p *CharityParticipant) Subject() (Subject, error) {
	return subjectFromRefs(p.MemberID, p.GuestID, p.PipelinerID)
}

// SetSubject ilgili FK kolonunu doldurur, diğerlerini temizler.
func (p *CharityParticipant) SetSubject(s Subject) error {
	memberID, guestID, pipelinerID, err := refsFromSubject(s)
	if err != nil {
		return err
	}
	p.MemberID = memberID
	p.GuestID = guestID
	p.PipelinerID = pipelinerID
	return nil
}

// BeforeSave tam-olarak-bir-özne değişmezini doğrular.
func (p *CharityParticipant) BeforeSave(tx *gorm.DB) error {
	_, err := p.Subject()
	return err
}
