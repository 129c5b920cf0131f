package models

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type ctxKey string

// CtxUserIDKey işlemi yapan kullanıcının ID'sini context üzerinden taşır.
// BeforeCreate/BeforeUpdate hook'ları audit kolonlarını bu değerle doldurur.
const CtxUserIDKey ctxKey = "user_id"

// ContextWithUserID context'e işlemi yapan kullanıcı ID'sini ekler.
func ContextWithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, CtxUserIDKey, userID)
}

// BaseModel tüm modellere gömülen ortak alanlar (audit kolonları dahil).
type BaseModel struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedBy *uint          `gorm:"index"`
	UpdatedBy *uint
	DeletedBy *uint
}

func userIDFromContext(ctx context.Context) *uint {
	if ctx == nil {
		return nil
	}
	if id, ok := ctx.Value(CtxUserIDKey).(uint); ok && id != 0 {
		return &id
	}
	return nil
}

// BeforeCreate CreatedBy alanını context'teki kullanıcı ile doldurur.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if uid := userIDFromContext(tx.Statement.Context); uid != nil {
		m.CreatedBy = uid
	}
	return nil
}

// BeforeUpdate UpdatedBy alanını context'teki kullanıcı ile doldurur.
func (m *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if uid := userIDFromContext(tx.Statement.Context); uid != nil {
		m.UpdatedBy = uid
	}
	return nil
}
