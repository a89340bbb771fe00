// Package notify delivers chat notices to players and to everyone.
package notify

import (
	"context"
	"strconv"
	"strings"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/logger"
)

// Notifier sends fire-and-forget notices. Delivery failures are logged by the
// implementation and never returned to the caller.
type Notifier interface {
	SendToPlayer(ctx context.Context, id int64, text string, color domain.Color)
	Broadcast(ctx context.Context, text string, color domain.Color)
}

// LogNotifier writes notices to the structured log
type LogNotifier struct{}

// SendToPlayer implements Notifier
func (LogNotifier) SendToPlayer(ctx context.Context, id int64, text string, color domain.Color) {
	logger.FromContext(ctx).Info(LogMsgPlayerNotice, "player_id", id, "text", text, "color", string(color))
}

// Broadcast implements Notifier
func (LogNotifier) Broadcast(ctx context.Context, text string, color domain.Color) {
	logger.FromContext(ctx).Info(LogMsgBroadcast, "text", text, "color", string(color))
}

// Multi fans every notice out to all of its notifiers
type Multi []Notifier

// SendToPlayer implements Notifier
func (m Multi) SendToPlayer(ctx context.Context, id int64, text string, color domain.Color) {
	for _, n := range m {
		n.SendToPlayer(ctx, id, text, color)
	}
}

// Broadcast implements Notifier
func (m Multi) Broadcast(ctx context.Context, text string, color domain.Color) {
	for _, n := range m {
		n.Broadcast(ctx, text, color)
	}
}

// colorValue converts a "#rrggbb" hint to the integer form chat embeds use.
func colorValue(c domain.Color) int {
	v, err := strconv.ParseInt(strings.TrimPrefix(string(c), "#"), 16, 32)
	if err != nil {
		return 0
	}
	return int(v)
}
