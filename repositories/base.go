package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"uyetakip.app/models"
)

// ErrNotFound aranan kayıt bulunamadığında tüm repository'lerden döner.
var ErrNotFound = errors.New("kayıt bulunamadı")

// subjectColumn özne türünü yoklama/katılım tablolarındaki FK kolon adına çevirir.
func subjectColumn(kind models.SubjectKind) (string, error) {
	switch kind {
	case models.SubjectKindMember:
		return "member_id", nil
	case models.SubjectKindGuest:
		return "guest_id", nil
	case models.SubjectKindPipeliner:
		return "pipeliner_id", nil
	}
	return "", models.ErrInvalidSubjectRef
}

// getDB context'te transaction varsa onu, yoksa verilen bağlantıyı context ile döndürür.
func getDB(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}

type txKey string

const txContextKey txKey = "tx"
