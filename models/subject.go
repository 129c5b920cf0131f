package models

import "errors"

// SubjectKind bir defter kaydının (yoklama, etkinlik katılımı) kime ait olduğunu belirtir.
type SubjectKind string

const (
	SubjectKindMember    SubjectKind = "member"
	SubjectKindGuest     SubjectKind = "guest"
	SubjectKindPipeliner SubjectKind = "pipeliner"
)

// Subject üç nullable FK yerine kullanılan etiketli birlik (tagged union).
// Sıfır veya birden fazla referans bu tip üzerinden ifade edilemez.
type Subject struct {
	Kind SubjectKind `json:"kind"`
	ID   uint        `json:"id"`
}

// Valid özne türünün tanımlı ve ID'nin dolu olduğunu kontrol eder.
func (s Subject) Valid() bool {
	switch s.Kind {
	case SubjectKindMember, SubjectKindGuest, SubjectKindPipeliner:
		return s.ID != 0
	}
	return false
}

// ErrInvalidSubjectRef özne referansı değişmezi bozulduğunda döner
// (sıfır ya da birden fazla FK dolu).
var ErrInvalidSubjectRef = errors.New("özne referansı geçersiz: tam olarak bir FK dolu olmalı")

// subjectFromRefs üç nullable FK kolonundan Subject üretir.
// Tam olarak biri dolu değilse hata döner.
func subjectFromRefs(memberID, guestID, pipelinerID *uint) (Subject, error) {
	var subject Subject
	count := 0
	if memberID != nil {
		subject = Subject{Kind: SubjectKindMember, ID: *memberID}
		count++
	}
	if guestID != nil {
		subject = Subject{Kind: SubjectKindGuest, ID: *guestID}
		count++
	}
	if pipelinerID != nil {
		subject = Subject{Kind: SubjectKindPipeliner, ID: *pipelinerID}
		count++
	}
	if count != 1 {
		return Subject{}, ErrInvalidSubjectRef
	}
	return subject, nil
}

// refsFromSubject Subject'i FK kolonlarına açar.
func refsFromSubject(s Subject) (memberID, guestID, pipelinerID *uint, err error) {
	if !s.Valid() {
		return nil, nil, nil, ErrInvalidSubjectRef
	}
	id := s.ID
	switch s.Kind {
	case SubjectKindMember:
		memberID = &id
	case SubjectKindGuest:
		guestID = &id
	case SubjectKindPipeliner:
		pipelinerID = &id
	}
	return memberID, guestID, pipelinerID, nil
}
