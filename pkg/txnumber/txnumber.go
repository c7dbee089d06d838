package txnumber

import (
	"fmt"
	"math/rand"
	"time"
)

// Rand is the random source consumed by the generator. math/rand satisfies it;
// tests inject a fixed source.
type Rand interface {
	Intn(n int) int
}

// Clock supplies the current time. Injected so generated numbers are
// deterministic under test.
type Clock func() time.Time

// Generator produces human-auditable transaction numbers. The format is
// best effort: the random suffix reduces same-second collisions but the
// remote transaction service remains the final arbiter of uniqueness.
type Generator struct {
	clock Clock
	rand  Rand
}

// New creates a generator backed by the wall clock and a seeded random source.
func New() *Generator {
	return NewGenerator(time.Now, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewGenerator creates a generator with an injected clock and random source.
func NewGenerator(clock Clock, r Rand) *Generator {
	return &Generator{clock: clock, rand: r}
}

// Generate returns a transaction number of the form
// T-<businessID padded to at least 2 digits>-<UTC YYYYMMDDHHMMSS>-<4-digit suffix>.
func (g *Generator) Generate(businessID string) string {
	id := businessID
	for len(id) < 2 {
		id = "0" + id
	}
	ts := g.clock().UTC().Format("20060102150405")
	return fmt.Sprintf("T-%s-%s-%04d", id, ts, g.rand.Intn(10000))
}
