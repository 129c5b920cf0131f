package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuestEligibleForPipeliner(t *testing.T) {
	tests := []struct {
		name     string
		present  int
		charity  int
		eligible bool
	}{
		{"tam sınırda uygun", 3, 1, true},
		{"fazlasıyla uygun", 10, 4, true},
		{"toplantı eksik", 2, 1, false},
		{"yardım etkinliği eksik", 3, 0, false},
		{"ekstra yardım etkinliği toplantı eksiğini kapatmaz", 2, 2, false},
		{"hiç katılım yok", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.eligible, GuestEligibleForPipeliner(tt.present, tt.charity))
		})
	}
}

func TestPipelinerEligibleForMembership(t *testing.T) {
	assert.True(t, PipelinerEligibleForMembership(3, 1))
	assert.False(t, PipelinerEligibleForMembership(2, 1))
	assert.False(t, PipelinerEligibleForMembership(3, 0))
	// İş toplantısı eşiği serttir, yardım etkinliği ile ikame edilemez.
	assert.False(t, PipelinerEligibleForMembership(2, 5))
}

func TestEvaluate(t *testing.T) {
	p := Evaluate(3, 1)
	assert.True(t, p.Eligible)
	assert.Empty(t, p.Missing)

	p = Evaluate(1, 0)
	assert.False(t, p.Eligible)
	assert.Len(t, p.Missing, 2)
	assert.Contains(t, p.Missing[0], "2 toplantı katılımı")
	assert.Contains(t, p.Missing[1], "1 yardım etkinliği")

	p = Evaluate(3, 0)
	assert.False(t, p.Eligible)
	assert.Len(t, p.Missing, 1)
	assert.Contains(t, p.Missing[0], "yardım etkinliği")
}

func TestEvaluateAgreesWithGates(t *testing.T) {
	// Önbelleğe alınan bayrak ile terfi kapısı aynı fonksiyona dayanmalı.
	for present := 0; present <= 5; present++ {
		for charity := 0; charity <= 3; charity++ {
			p := Evaluate(present, charity)
			assert.Equal(t, GuestEligibleForPipeliner(present, charity), p.Eligible)
			assert.Equal(t, PipelinerEligibleForMembership(present, charity), p.Eligible)
		}
	}
}
