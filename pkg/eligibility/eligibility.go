// Package eligibility üyelik ilerleme kurallarının saf (yan etkisiz)
// değerlendirmesini içerir. Fonksiyonlar yalnızca sayaç değerleri alır,
// veritabanına erişmez; böylece AggregateService'in önbelleğe aldığı bayrak
// ile PromotionService'in terfi kapısı her zaman aynı fonksiyonu çağırır
// ve birbirinden sapamaz.
package eligibility

import "fmt"

// Eşik değerleri üç bağımsız yerde kullanılır (türetilmiş alan hesabı,
// terfi kapısı, ilerleme görünümü); bu yüzden adlandırılmış sabitlerdir.
const (
	// MinPresentMeetings terfi için gereken asgari present katılım sayısı.
	MinPresentMeetings = 3
	// MinCharityEvents terfi için gereken asgari yardım etkinliği katılımı.
	MinCharityEvents = 1
)

// GuestEligibleForPipeliner misafirin pipeline'a alınabilirliğini döndürür.
func GuestEligibleForPipeliner(presentCount, charityEventCount int) bool {
	return presentCount >= MinPresentMeetings && charityEventCount >= MinCharityEvents
}

// PipelinerEligibleForMembership pipeliner'ın üyeliğe uygunluğunu döndürür.
func PipelinerEligibleForMembership(businessMeetingsCount, charityEventsCount int) bool {
	return businessMeetingsCount >= MinPresentMeetings && charityEventsCount >= MinCharityEvents
}

// Progress sayaçlardan hesaplanan uygunluk durumu ve eksik koşullar.
// Missing listesi kullanıcıya gösterilen mesajlarla birebir aynıdır;
// terfi reddi de bu mesajları döndürür.
type Progress struct {
	PresentCount int      `json:"present_count"`
	CharityCount int      `json:"charity_count"`
	Eligible     bool     `json:"eligible"`
	Missing      []string `json:"missing,omitempty"`
}

// Evaluate sayaçlardan Progress üretir. Her iki terfi kapısı da aynı
// eşikleri kullandığı için tek değerlendirme fonksiyonu yeterlidir.
func Evaluate(presentCount, charityCount int) Progress {
	p := Progress{
		PresentCount: presentCount,
		CharityCount: charityCount,
		Eligible:     presentCount >= MinPresentMeetings && charityCount >= MinCharityEvents,
	}
	if !p.Eligible {
		if presentCount < MinPresentMeetings {
			p.Missing = append(p.Missing,
				fmt.Sprintf("%d toplantı katılımı daha gerekiyor", MinPresentMeetings-presentCount))
		}
		if charityCount < MinCharityEvents {
			p.Missing = append(p.Missing,
				fmt.Sprintf("%d yardım etkinliği katılımı daha gerekiyor", MinCharityEvents-charityCount))
		}
	}
	return p
}
