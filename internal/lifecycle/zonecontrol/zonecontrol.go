// Package zonecontrol is the open zone round: there is no sign-up, players
// take part by standing in the zone and earn points while they hold it
// uncontested.
package zonecontrol

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/event"
	"github.com/osse101/BrandishEvents_Go/internal/lifecycle"
	"github.com/osse101/BrandishEvents_Go/internal/logger"
	"github.com/osse101/BrandishEvents_Go/internal/zone"
)

const logMsgTickFailed = "Zone evaluation failed"

var errNoSettings = errors.New("event has no zone settings")

// Variant implements lifecycle.Variant on top of a zone.Monitor. The
// participant registry mirrors whoever is in the zone.
type Variant struct {
	dir     lifecycle.Directory
	monitor atomic.Pointer[zone.Monitor]
}

// New is the lifecycle.Factory for zone control
func New(_ domain.EventDefinition, _ *lifecycle.Deps, dir lifecycle.Directory) lifecycle.Variant {
	return &Variant{dir: dir}
}

var _ lifecycle.Variant = (*Variant)(nil)

// Setup builds the zone monitor from the current definition. Zone rounds go
// straight to Active.
func (v *Variant) Setup(_ context.Context, r *lifecycle.Machine) (bool, error) {
	def := r.Definition()
	if def.ZoneControl == nil {
		return false, errNoSettings
	}
	deps := r.Deps()
	cfg := zone.Config{
		EventName: def.Name,
		Settings:  *def.ZoneControl,
		Players:   deps.World,
		Factions:  deps.Factions,
		Notifier:  deps.Notifier,
		Awarder:   deps.Rewards,
		Now:       deps.Now,
	}
	if def.Exclusive() && v.dir != nil {
		name := def.Name
		cfg.Eligible = func(_ context.Context, id int64) bool {
			_, busy := v.dir.ExclusiveHolder(id, name)
			return !busy
		}
	}
	v.monitor.Store(zone.NewMonitor(cfg))
	return false, nil
}

// Join always fails; entering the zone is the sign-up
func (v *Variant) Join(context.Context, *lifecycle.Machine, int64) (string, error) {
	return "", domain.ErrNoSignUp
}

// Leave forgets the player's zone state. A player still standing in the
// zone is picked up again on the next tick.
func (v *Variant) Leave(_ context.Context, _ *lifecycle.Machine, id int64) {
	if mon := v.monitor.Load(); mon != nil {
		mon.Forget(id)
	}
}

// Full is always false
func (v *Variant) Full() bool { return false }

// RoundDuration is zero; zone rounds last until their window closes
func (v *Variant) RoundDuration() time.Duration { return 0 }

// Activate places the zone marker
func (v *Variant) Activate(_ context.Context, r *lifecycle.Machine) {
	if s := r.Definition().ZoneControl; s != nil {
		r.Spawn(s.MarkerPrefab, s.Center)
	}
}

// Tick evaluates the zone and mirrors entries and exits into the registry
func (v *Variant) Tick(ctx context.Context, r *lifecycle.Machine) bool {
	mon := v.monitor.Load()
	if mon == nil {
		return false
	}
	res, err := mon.Tick(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn(logMsgTickFailed, "event", r.Name(), "error", err)
		return false
	}

	reg := r.Registry()
	for _, id := range res.Entered {
		if reg.TryAdd(id) {
			r.Publish(ctx, event.NewParticipantEvent(event.PlayerJoined, r.Name(), id, ""))
		}
	}
	for _, id := range res.Left {
		if reg.TryRemove(id) {
			r.Publish(ctx, event.NewParticipantEvent(event.PlayerLeft, r.Name(), id, ""))
		}
	}
	factions := r.Deps().Factions
	for _, id := range res.Contested {
		faction, _ := factions.GetFaction(ctx, id)
		r.Publish(ctx, event.NewZoneContestedEvent(r.Name(), id, faction))
	}
	return false
}

// Settle has nothing to pay; points are awarded while the zone is held
func (v *Variant) Settle(context.Context, *lifecycle.Machine, bool) lifecycle.Settlement {
	return lifecycle.Settlement{}
}

// Teardown drops all zone state
func (v *Variant) Teardown(context.Context, *lifecycle.Machine) {
	if mon := v.monitor.Swap(nil); mon != nil {
		mon.Reset()
	}
}

// Describe lists players currently holding the zone
func (v *Variant) Describe(s *lifecycle.Status) {
	if mon := v.monitor.Load(); mon != nil {
		s.Holding = mon.Holding()
	}
}
