package models

import "time"

// MemberStatus üye durumu.
type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "active"
	MemberStatusInactive MemberStatus = "inactive"
)

// Member kulübün tam üyesi. Yalnızca pipeliner terfisi ile ya da
// doğrudan idari kayıtla oluşturulur.
type Member struct {
	BaseModel
	FirstName    string       `gorm:"type:varchar(100);not null"`
	LastName     string       `gorm:"type:varchar(100)"`
	Email        string       `gorm:"type:varchar(150);not null;index"`
	Phone        string       `gorm:"type:varchar(30)"`
	MemberNumber string       `gorm:"type:varchar(30);uniqueIndex;not null"`
	JoinDate     time.Time    `gorm:"not null"`
	Status       MemberStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	Notes        string       `gorm:"type:text"`
}

// FullName ad ve soyadı birleştirir.
func (m *Member) FullName() string {
	if m.LastName == "" {
		return m.FirstName
	}
	return m.FirstName + " " + m.LastName
}
