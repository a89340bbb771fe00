package notify

import (
	"context"
	"strings"
	"sync"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
)

// BroadcastTarget is the recipient id used for broadcasts in a Recorder
const BroadcastTarget int64 = -1

// Notice is one recorded notification
type Notice struct {
	PlayerID int64
	Text     string
	Color    domain.Color
}

// Recorder keeps every notice in memory. It backs the admin notice feed and
// is used by tests to assert on player-facing messages.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

// SendToPlayer implements Notifier
func (r *Recorder) SendToPlayer(_ context.Context, id int64, text string, color domain.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, Notice{PlayerID: id, Text: text, Color: color})
}

// Broadcast implements Notifier
func (r *Recorder) Broadcast(ctx context.Context, text string, color domain.Color) {
	r.SendToPlayer(ctx, BroadcastTarget, text, color)
}

// Notices returns a copy of everything recorded so far
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// For returns the texts sent to one player, in order
func (r *Recorder) For(id int64) []string {
	var out []string
	for _, n := range r.Notices() {
		if n.PlayerID == id {
			out = append(out, n.Text)
		}
	}
	return out
}

// CountContaining counts notices to id whose text contains substr
func (r *Recorder) CountContaining(id int64, substr string) int {
	n := 0
	for _, text := range r.For(id) {
		if strings.Contains(text, substr) {
			n++
		}
	}
	return n
}

// Reset drops all recorded notices
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = nil
}
