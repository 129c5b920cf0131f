package models

import "time"

// GuestStatus misafir durumu.
type GuestStatus string

const (
	GuestStatusActive          GuestStatus = "active"
	GuestStatusBecamePipeliner GuestStatus = "became_pipeliner"
	GuestStatusInactive        GuestStatus = "inactive"
)

// Guest toplantılara katılan, henüz pipeline'a alınmamış kişi.
type Guest struct {
	BaseModel
	FirstName string      `gorm:"type:varchar(100);not null"`
	LastName  string      `gorm:"type:varchar(100)"`
	Email     string      `gorm:"type:varchar(150);index"`
	Phone     string      `gorm:"type:varchar(30)"`
	Status    GuestStatus `gorm:"type:varchar(30);not null;default:'active';index"`
	Notes     string      `gorm:"type:text"`

	// Davet eden üyeye zayıf referans (sadece lookup, sahiplik yok).
	InvitedByMemberID *uint `gorm:"index"`

	// Türetilmiş alanlar — yalnızca AggregateService yazar, elle güncellenmez.
	// TotalMeetings her zaman present durumundaki yoklama kayıtlarının sayısına eşittir.
	TotalMeetings   int        `gorm:"not null;default:0"`
	FirstAttendance *time.Time // ilk present tarihi, bilgi amaçlı
}

// FullName ad ve soyadı birleştirir.
func (g *Guest) FullName() string {
	if g.LastName == "" {
		return g.FirstName
	}
	return g.FirstName + " " + g.LastName
}
