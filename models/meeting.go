package models

import "time"

// MeetingType toplantı türü.
type MeetingType string

const (
	MeetingTypeBusiness MeetingType = "business" // iş toplantısı (uygunluk sayacına girer)
	MeetingTypeCharity  MeetingType = "charity"
	MeetingTypeSpecial  MeetingType = "special"
)

// Valid toplantı türünün tanımlı olup olmadığını kontrol eder.
func (t MeetingType) Valid() bool {
	switch t {
	case MeetingTypeBusiness, MeetingTypeCharity, MeetingTypeSpecial:
		return true
	}
	return false
}

// Meeting bir kulüp toplantısını temsil eder.
// Metadata (yer, not) güncellenebilir; toplantı silinirse yoklama kayıtları da silinir.
type Meeting struct {
	BaseModel
	Date     time.Time   `gorm:"index;not null"`
	Type     MeetingType `gorm:"type:varchar(20);not null;index"`
	Location string      `gorm:"type:varchar(255)"`
	Notes    string      `gorm:"type:text"`

	// İlişkiler
	Attendances []AttendanceRecord `gorm:"foreignKey:MeetingID"`
}
