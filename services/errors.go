package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ServiceError servis katmanının döndürdüğü sabit hata tipi.
type ServiceError string

func (e ServiceError) Error() string { return string(e) }

// Hata taksonomisi:
//   - doğrulama hataları transaction açılmadan reddedilir,
//   - çakışma hataları (unique ihlali, durum makinesi ihlali) transaction içinde yakalanır,
//   - ErrTransientStore işlemin BÜTÜN olarak tekrar denenebileceğini belirtir
//     (telafi sonrası tek adım tekrarı etkileri çift uygular, asla yapılmaz),
//   - ErrConsistencyViolation yerel olarak kurtarılamaz; transaction abort ile yüzeye çıkar.
const (
	ErrInvalidInput ServiceError = "geçersiz girdi verisi"

	ErrMeetingNotFound      ServiceError = "toplantı bulunamadı"
	ErrGuestNotFound        ServiceError = "misafir bulunamadı"
	ErrPipelinerNotFound    ServiceError = "pipeliner bulunamadı"
	ErrMemberNotFound       ServiceError = "üye bulunamadı"
	ErrCharityEventNotFound ServiceError = "yardım etkinliği bulunamadı"
	ErrAttendanceNotFound   ServiceError = "yoklama kaydı bulunamadı"

	ErrInvalidSubject      ServiceError = "geçersiz özne referansı"
	ErrDuplicateAttendance ServiceError = "bu toplantıda özneye ait yoklama kaydı zaten var"
	ErrInvalidParticipant  ServiceError = "geçersiz katılımcı"

	ErrGuestNotActive         ServiceError = "misafir aktif durumda değil"
	ErrNotEligible            ServiceError = "uygunluk koşulları sağlanmıyor"
	ErrSubjectAlreadyPromoted ServiceError = "özne zaten terfi ettirilmiş"
	ErrDuplicateIdentifier    ServiceError = "üye numarası zaten kullanımda"
	ErrMissingRequiredField   ServiceError = "zorunlu alan eksik"

	ErrTransientStore       ServiceError = "geçici veritabanı hatası: işlemi bütün olarak tekrar deneyin"
	ErrConsistencyViolation ServiceError = "tutarlılık ihlali: türetilmiş alanlar defterle uyuşmuyor"
)

// wrapTxError transaction'dan dönen hatayı sınıflandırır. Servislerin kendi
// tiplendirilmiş hataları olduğu gibi geçer; kalan her şey geçici depo hatası
// olarak sarılır ve çağıran işlemi bütün olarak tekrar deneyebilir.
func wrapTxError(err error) error {
	if err == nil {
		return nil
	}
	var svcErr ServiceError
	if errors.As(err, &svcErr) {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrDuplicateIdentifier, err)
	}
	return fmt.Errorf("%w: %v", ErrTransientStore, err)
}
