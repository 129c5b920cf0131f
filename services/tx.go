package services

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"uyetakip.app/models"
	"uyetakip.app/repositories"
)

// lockForUpdate özne satırına FOR UPDATE kilidi koyar. İki eşzamanlı terfi
// denemesinden ikincisi, ilkinin durum değişikliğini görmek zorundadır.
// SQLite FOR UPDATE sözdizimini desteklemez; yazmaları zaten tek yazar
// olarak serileştirdiği için orada kilide gerek yoktur.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// subjectExists öznenin ilgili tabloda kayıtlı olup olmadığını kontrol eder.
func subjectExists(ctx context.Context, tx *gorm.DB, subject models.Subject) (bool, error) {
	if !subject.Valid() {
		return false, ErrInvalidSubject
	}
	switch subject.Kind {
	case models.SubjectKindMember:
		return repositories.NewMemberRepositoryTx(tx).Exists(ctx, subject.ID)
	case models.SubjectKindGuest:
		return repositories.NewGuestRepositoryTx(tx).Exists(ctx, subject.ID)
	case models.SubjectKindPipeliner:
		return repositories.NewPipelinerRepositoryTx(tx).Exists(ctx, subject.ID)
	}
	return false, ErrInvalidSubject
}

// dedupeSubjects özne listesini küme semantiğine indirger (sıra korunur).
func dedupeSubjects(subjects []models.Subject) []models.Subject {
	seen := make(map[models.Subject]struct{}, len(subjects))
	out := make([]models.Subject, 0, len(subjects))
	for _, s := range subjects {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
