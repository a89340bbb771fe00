// Package zone evaluates zone occupancy each tick: containment, faction
// contest and interval scoring.
package zone

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/logger"
	"github.com/osse101/BrandishEvents_Go/internal/notify"
	"github.com/osse101/BrandishEvents_Go/internal/world"
)

// PlayerSource lists online players with their positions
type PlayerSource interface {
	OnlinePlayers(ctx context.Context) ([]domain.PlayerState, error)
}

// Awarder credits zone points
type Awarder interface {
	AwardPoints(ctx context.Context, id int64, delta int64, reason string) error
}

// EligibleFunc filters players that may hold the zone at all, such as those
// already committed to another exclusive event.
type EligibleFunc func(ctx context.Context, id int64) bool

type playerState struct {
	inZone            bool
	factionless       bool
	contested         bool
	faction           domain.FactionID
	lastAward         time.Time
	lastContestNotice time.Time
}

// Result reports the transitions of one tick. All slices are sorted.
type Result struct {
	Entered   []int64
	Left      []int64
	Contested []int64
	Resumed   []int64
	Awarded   []int64
	Holding   []int64
}

// Monitor evaluates one zone. Tick is called from the scheduler; Forget may be
// called concurrently from request handlers.
type Monitor struct {
	eventName string
	shape     Shape
	settings  domain.ZoneSettings
	players   PlayerSource
	factions  world.Factions
	notifier  notify.Notifier
	awarder   Awarder
	eligible  EligibleFunc
	now       func() time.Time

	mu     sync.Mutex
	states map[int64]*playerState
}

// Config wires a Monitor
type Config struct {
	EventName string
	Settings  domain.ZoneSettings
	Players   PlayerSource
	Factions  world.Factions
	Notifier  notify.Notifier
	Awarder   Awarder
	Eligible  EligibleFunc
	Now       func() time.Time
}

// NewMonitor creates a monitor; zero intervals take their defaults
func NewMonitor(cfg Config) *Monitor {
	s := cfg.Settings
	if s.AwardInterval <= 0 {
		s.AwardInterval = domain.DefaultAwardInterval
	}
	if s.ContestNoticeInterval <= 0 {
		s.ContestNoticeInterval = domain.DefaultContestNoticeInterval
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	eligible := cfg.Eligible
	if eligible == nil {
		eligible = func(context.Context, int64) bool { return true }
	}
	return &Monitor{
		eventName: cfg.EventName,
		shape:     NewShape(s),
		settings:  s,
		players:   cfg.Players,
		factions:  cfg.Factions,
		notifier:  cfg.Notifier,
		awarder:   cfg.Awarder,
		eligible:  eligible,
		now:       now,
		states:    make(map[int64]*playerState),
	}
}

// Shape returns the zone geometry
func (m *Monitor) Shape() Shape { return m.shape }

// Holding returns the players currently counted as in the zone
func (m *Monitor) Holding() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []int64
	for id, st := range m.states {
		if st.inZone {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Forget drops a player's zone state without notices
func (m *Monitor) Forget(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, id)
}

// Reset drops every player's state
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states = make(map[int64]*playerState)
}

func (m *Monitor) send(ctx context.Context, id int64, color domain.Color, format string, args ...any) {
	m.notifier.SendToPlayer(ctx, id, fmt.Sprintf(format, args...), color)
}

// Tick runs one evaluation pass
func (m *Monitor) Tick(ctx context.Context) (Result, error) {
	var res Result
	log := logger.FromContext(ctx)

	online, err := m.players.OnlinePlayers(ctx)
	if err != nil {
		log.Warn(LogMsgOnlinePlayersFailed, "event", m.eventName, "error", err)
		return res, err
	}
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[int64]bool, len(online))
	var holders []int64

	// Pass 1: containment and faction gating
	for _, p := range online {
		seen[p.ID] = true
		st := m.states[p.ID]
		inside := m.shape.Contains(p.Position) && m.eligible(ctx, p.ID)

		if !inside {
			if st != nil {
				if st.inZone {
					m.send(ctx, p.ID, domain.ColorInfo, MsgLeftZone, m.eventName)
					res.Left = append(res.Left, p.ID)
				}
				delete(m.states, p.ID)
			}
			continue
		}

		if st == nil {
			st = &playerState{}
			m.states[p.ID] = st
		}

		faction, ok := m.factions.GetFaction(ctx, p.ID)
		if !ok {
			if !st.factionless {
				m.send(ctx, p.ID, domain.ColorWarning, MsgNeedFaction, m.eventName)
				st.factionless = true
			}
			if st.inZone {
				m.send(ctx, p.ID, domain.ColorInfo, MsgLeftZone, m.eventName)
				res.Left = append(res.Left, p.ID)
				st.inZone = false
				st.contested = false
			}
			continue
		}
		st.factionless = false
		st.faction = faction

		if !st.inZone {
			st.inZone = true
			st.contested = false
			st.lastAward = now
			m.send(ctx, p.ID, domain.ColorInfo, MsgEnteredZone, m.eventName,
				int(m.settings.AwardInterval/time.Second), m.settings.AwardPoints)
			res.Entered = append(res.Entered, p.ID)
		}
		holders = append(holders, p.ID)
	}

	// Players that went offline leave silently
	for id, st := range m.states {
		if !seen[id] {
			if st.inZone {
				res.Left = append(res.Left, id)
			}
			delete(m.states, id)
		}
	}

	// Pass 2: contest detection and scoring
	for _, id := range holders {
		st := m.states[id]
		contested := false
		for _, other := range holders {
			if other != id && m.factions.AreEnemies(ctx, st.faction, m.states[other].faction) {
				contested = true
				break
			}
		}

		switch {
		case contested && !st.contested:
			if st.lastContestNotice.IsZero() || now.Sub(st.lastContestNotice) >= m.settings.ContestNoticeInterval {
				m.send(ctx, id, domain.ColorDanger, MsgEnemyEntered, m.eventName)
				st.lastContestNotice = now
			}
			res.Contested = append(res.Contested, id)
		case !contested && st.contested:
			m.send(ctx, id, domain.ColorSuccess, MsgEnemiesLeft, m.eventName)
			res.Resumed = append(res.Resumed, id)
		}
		st.contested = contested

		if contested || now.Sub(st.lastAward) < m.settings.AwardInterval {
			continue
		}
		if err := m.awarder.AwardPoints(ctx, id, m.settings.AwardPoints, domain.PointReasonZone); err != nil {
			log.Error(LogMsgZoneAwardFailed, "event", m.eventName, "player_id", id, "error", err)
			continue
		}
		st.lastAward = now
		m.send(ctx, id, domain.ColorSuccess, MsgPointsForHolding, m.settings.AwardPoints, m.eventName)
		res.Awarded = append(res.Awarded, id)
	}

	res.Holding = holders
	for _, s := range [][]int64{res.Entered, res.Left, res.Contested, res.Resumed, res.Awarded, res.Holding} {
		sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
	}
	return res, nil
}
