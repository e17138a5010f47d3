package moqt

import (
	"sync"

	"github.com/yobol/go-moqt/internal/varint"
)

// Role selects which request-ID parity a session's local counter issues
// (§3.6): clients issue even IDs, servers issue odd.
type Role int

const (
	RoleClient Role = iota
	RoleServer
)

// requestIDCounter is the per-peer monotonic counter owned by one side of
// a session, protected by a write lock (§5).
type requestIDCounter struct {
	mu   sync.Mutex
	next uint64
	max  uint64
}

func newRequestIDCounter(role Role, max uint64) *requestIDCounter {
	start := uint64(0)
	if role == RoleServer {
		start = 1
	}
	return &requestIDCounter{next: start, max: max}
}

// issue returns the next request ID, or errResourceExhausted if doing so
// would exceed either the negotiated MaxRequestId ceiling or Number's
// maximum representable value.
func (c *requestIDCounter) issue() (varint.Number, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.next > uint64(varint.MaxNumber) {
		return 0, errResourceExhausted{"request ID counter exceeds Number::MAX"}
	}
	if c.next > c.max {
		return 0, errResourceExhausted{"request ID counter exceeds MaxRequestId"}
	}
	id := c.next
	c.next += 2
	return varint.Number(id), nil
}

// setMax raises the ceiling in response to a negotiated or received
// MaxRequestId.
func (c *requestIDCounter) setMax(max uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if max > c.max {
		c.max = max
	}
}
