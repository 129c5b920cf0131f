package models

// PipelinerStatus pipeliner (aday üye) durumu.
type PipelinerStatus string

const (
	PipelinerStatusActive       PipelinerStatus = "active"
	PipelinerStatusBecameMember PipelinerStatus = "became_member"
	PipelinerStatusInactive     PipelinerStatus = "inactive"
)

// Pipeliner misafirlikten üyeliğe giden ara aşamadaki aday üye.
// Türetilmiş alanlar her tamamlanan transaction sonunda defterle tutarlıdır;
// bu garanti AggregateService tarafından sağlanır.
type Pipeliner struct {
	BaseModel
	FirstName string          `gorm:"type:varchar(100);not null"`
	LastName  string          `gorm:"type:varchar(100)"`
	Email     string          `gorm:"type:varchar(150);index"`
	Phone     string          `gorm:"type:varchar(30)"`
	Status    PipelinerStatus `gorm:"type:varchar(30);not null;default:'active';index"`
	Notes     string          `gorm:"type:text"`

	// Sponsor üyeye zayıf referans.
	SponsoredByMemberID *uint `gorm:"index"`

	// Misafirlik döneminden devralınan katılım sayısı (terfi anında mühürlenir).
	GuestMeetingsCount int `gorm:"not null;default:0"`

	// Türetilmiş alanlar — yalnızca AggregateService yazar.
	BusinessMeetingsCount   int  `gorm:"not null;default:0"`
	CharityEventsCount      int  `gorm:"not null;default:0"`
	IsEligibleForMembership bool `gorm:"not null;default:false;index"`
}

// FullName ad ve soyadı birleştirir.
func (p *Pipeliner) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
