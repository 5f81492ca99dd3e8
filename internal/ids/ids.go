// Package ids produces opaque, collision-resistant identifiers.
package ids

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator yields new unique ids.
type Generator interface {
	NewID() string
}

// ULID generates ULIDs: a millisecond timestamp followed by 80 random bits.
// Ids minted within the same millisecond increment the random part, so they
// never collide inside one process.
type ULID struct {
	mu      sync.Mutex
	now     func() time.Time
	entropy io.Reader
}

// NewULID returns a generator seeded from the wall clock.
func NewULID() *ULID {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &ULID{
		now:     time.Now,
		entropy: ulid.Monotonic(src, 0),
	}
}

// NewID returns a fresh id.
func (g *ULID) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy).String()
}

// Sequence hands out a fixed list of ids, then panics. Tests only.
type Sequence struct {
	IDs []string
	i   int
}

// NewID returns the next id in the list.
func (s *Sequence) NewID() string {
	id := s.IDs[s.i]
	s.i++
	return id
}
