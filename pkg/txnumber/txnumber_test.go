package txnumber

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fixedRand struct {
	value int
}

func (r fixedRand) Intn(n int) int {
	return r.value % n
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func TestGenerateFormat(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	gen := NewGenerator(fixedClock(at), fixedRand{value: 42})

	assert.Equal(t, "T-17-20260314092653-0042", gen.Generate("17"))
}

func TestGeneratePadsShortBusinessID(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	gen := NewGenerator(fixedClock(at), fixedRand{value: 7})

	assert.Equal(t, "T-05-20260102030405-0007", gen.Generate("5"))
	assert.Equal(t, "T-00-20260102030405-0007", gen.Generate(""))
	// Longer ids pass through untouched.
	assert.Equal(t, "T-1234-20260102030405-0007", gen.Generate("1234"))
}

func TestGenerateUsesUTC(t *testing.T) {
	loc := time.FixedZone("PHT", 8*3600)
	at := time.Date(2026, 6, 1, 7, 0, 0, 0, loc) // 23:00 May 31 UTC
	gen := NewGenerator(fixedClock(at), fixedRand{value: 0})

	tn := gen.Generate("09")
	assert.True(t, strings.HasPrefix(tn, "T-09-20260531230000-"), tn)
}

func TestGenerateSuffixAlwaysFourDigits(t *testing.T) {
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	gen := NewGenerator(fixedClock(at), fixedRand{value: 3})

	assert.True(t, strings.HasSuffix(gen.Generate("02"), "-0003"))
}
