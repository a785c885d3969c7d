package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultDismissAfter is how long a transient notice stays visible unless
// dismissed earlier.
const DefaultDismissAfter = 5 * time.Second

// Notice is one transient per-session message.
type Notice struct {
	ID       string `json:"id"`
	Level    string `json:"level"`
	Message  string `json:"message"`
	PostedAt string `json:"posted_at"`
}

// Center holds transient notices per session. Every notice carries its own
// auto-dismiss timer; dismissing or replacing a notice cancels its timer so a
// stale timer can never remove a newer notice.
type Center struct {
	mu      sync.Mutex
	notices map[string][]Notice
	timers  map[string]*time.Timer
	after   time.Duration
}

// NewCenter creates a notice center with the given auto-dismiss delay.
// A non-positive delay uses the default.
func NewCenter(after time.Duration) *Center {
	if after <= 0 {
		after = DefaultDismissAfter
	}
	return &Center{
		notices: make(map[string][]Notice),
		timers:  make(map[string]*time.Timer),
		after:   after,
	}
}

// Post adds a notice and arms its dismiss timer. Returns the notice id.
func (c *Center) Post(sid, level, message string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := Notice{
		ID:       uuid.New().String(),
		Level:    level,
		Message:  message,
		PostedAt: time.Now().Format(time.RFC3339),
	}
	c.notices[sid] = append(c.notices[sid], n)

	id := n.ID
	c.timers[id] = time.AfterFunc(c.after, func() {
		c.Dismiss(sid, id)
	})
	return id
}

// List returns the session's current notices.
func (c *Center) List(sid string) []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notice, len(c.notices[sid]))
	copy(out, c.notices[sid])
	return out
}

// Dismiss removes one notice and cancels its timer. Unknown ids are a no-op.
func (c *Center) Dismiss(sid, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
	kept := c.notices[sid][:0]
	for _, n := range c.notices[sid] {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	if len(kept) == 0 {
		delete(c.notices, sid)
	} else {
		c.notices[sid] = kept
	}
}

// DropSession clears all notices and timers for a session.
func (c *Center) DropSession(sid string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, n := range c.notices[sid] {
		if t, ok := c.timers[n.ID]; ok {
			t.Stop()
			delete(c.timers, n.ID)
		}
	}
	delete(c.notices, sid)
}
