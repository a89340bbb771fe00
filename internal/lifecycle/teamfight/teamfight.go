// Package teamfight is the team round: players fill fixed-size teams, fight
// in a spawned arena until the timer runs out, and the team with the most
// kills takes the win bonus and reward drops.
package teamfight

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/lifecycle"
	"github.com/osse101/BrandishEvents_Go/internal/logger"
	"github.com/osse101/BrandishEvents_Go/internal/team"
)

var errNoSettings = errors.New("event has no team fight settings")

// Variant implements lifecycle.Variant and lifecycle.KillRecorder
type Variant struct {
	settings atomic.Pointer[domain.TeamFightSettings]
	teams    atomic.Pointer[team.Assignment]
	origins  sync.Map // player id → domain.Vec3
}

// New is the lifecycle.Factory for team fights
func New(domain.EventDefinition, *lifecycle.Deps, lifecycle.Directory) lifecycle.Variant {
	return &Variant{}
}

var (
	_ lifecycle.Variant      = (*Variant)(nil)
	_ lifecycle.KillRecorder = (*Variant)(nil)
)

// Setup builds empty teams from the definition and spawns the arena
func (v *Variant) Setup(ctx context.Context, r *lifecycle.Machine) (bool, error) {
	def := r.Definition()
	if def.TeamFight == nil {
		return false, errNoSettings
	}
	s := *def.TeamFight
	v.settings.Store(&s)
	v.teams.Store(team.NewAssignment(s.TeamCount, s.MaxPlayersPerTeam, s.TeamNames, s.TeamSpawns))

	r.Spawn(s.ArenaPrefab, s.ArenaPosition)
	r.Deps().Notifier.Broadcast(ctx, fmt.Sprintf(MsgEventOpen, def.Name, s.Capacity()), domain.ColorInfo)
	return true, nil
}

// Join places the player on the first team with room and remembers where to
// send them back to.
func (v *Variant) Join(ctx context.Context, r *lifecycle.Machine, id int64) (string, error) {
	teams := v.teams.Load()
	if teams == nil {
		return "", domain.ErrEventNotRunning
	}
	t, err := teams.Assign(id)
	if err != nil {
		return "", err
	}

	pos, err := r.Deps().World.PlayerPosition(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgOriginUnknown, "event", r.Name(), "player_id", id, "error", err)
	} else {
		v.origins.Store(id, pos)
	}
	return t.Name, nil
}

// Leave frees the player's slot. Players already in the arena are restored
// immediately.
func (v *Variant) Leave(ctx context.Context, r *lifecycle.Machine, id int64) {
	if teams := v.teams.Load(); teams != nil {
		teams.Remove(id)
	}
	if r.State() == lifecycle.Active {
		v.restore(ctx, r, id)
	}
	v.origins.Delete(id)
}

// Full reports whether every team slot is taken
func (v *Variant) Full() bool {
	teams := v.teams.Load()
	return teams != nil && teams.Full()
}

// RoundDuration is the configured fight length
func (v *Variant) RoundDuration() time.Duration {
	if s := v.settings.Load(); s != nil {
		return s.RoundDuration
	}
	return 0
}

// Activate moves every member to their team spawn and hands out loadouts
func (v *Variant) Activate(ctx context.Context, r *lifecycle.Machine) {
	teams, s := v.teams.Load(), v.settings.Load()
	if teams == nil || s == nil {
		return
	}
	deps := r.Deps()
	log := logger.FromContext(ctx)

	for _, t := range teams.Teams() {
		for _, id := range t.Members() {
			if err := deps.World.TeleportPlayer(ctx, id, t.Spawn); err != nil {
				log.Warn(LogMsgTeleportFailed, "event", r.Name(), "player_id", id, "error", err)
			}
			loadout, ok := deps.Rewards.PickLoadout(s.Loadouts)
			if !ok {
				continue
			}
			deps.Rewards.GrantItems(ctx, id, loadout.Items)
			deps.Notifier.SendToPlayer(ctx, id, fmt.Sprintf(MsgLoadout, loadout.Name), domain.ColorInfo)
		}
	}
}

// Tick ends the round once everyone has left
func (v *Variant) Tick(_ context.Context, r *lifecycle.Machine) bool {
	return r.Registry().Len() == 0
}

// RecordKill scores a kill between members of opposing teams
func (v *Variant) RecordKill(ctx context.Context, r *lifecycle.Machine, killer, victim int64) error {
	teams, s := v.teams.Load(), v.settings.Load()
	if teams == nil || s == nil {
		return domain.ErrEventNotRunning
	}
	kt := teams.TeamOf(killer)
	if kt == nil {
		return domain.ErrNotParticipating
	}
	log := logger.FromContext(ctx)
	vt := teams.TeamOf(victim)
	if vt == nil || vt == kt {
		log.Debug(LogMsgKillIgnored, "event", r.Name(), "killer", killer, "victim", victim)
		return nil
	}

	kills := kt.AddKill()
	log.Info(LogMsgKillRecorded, "event", r.Name(), "team", kt.Name, "killer", killer, "victim", victim, "team_kills", kills)
	if s.KillPoints != 0 {
		if err := r.Deps().Rewards.AwardPoints(ctx, killer, s.KillPoints, domain.PointReasonKill); err != nil {
			log.Error(LogMsgAwardFailed, "player_id", killer, "reason", domain.PointReasonKill, "error", err)
		}
	}
	return nil
}

// Settle pays participation, win bonus and drops, and returns players to
// where they joined from. A round cancelled while filling pays nothing; its
// players never left their positions.
func (v *Variant) Settle(ctx context.Context, r *lifecycle.Machine, completed bool) lifecycle.Settlement {
	teams, s := v.teams.Load(), v.settings.Load()
	if teams == nil || s == nil {
		return lifecycle.Settlement{}
	}

	var out lifecycle.Settlement
	for _, t := range teams.Teams() {
		out.Teams = append(out.Teams, domain.TeamResult{Name: t.Name, Kills: t.Kills(), MemberIDs: t.Members()})
	}
	if !completed {
		return out
	}

	deps := r.Deps()
	participants := r.Registry().Snapshot()
	for _, id := range participants {
		v.award(ctx, deps, id, s.ParticipationPoints, domain.PointReasonParticipation)
	}
	// Inventories are cleared on restore, so drops are granted afterwards.
	for _, id := range participants {
		v.restore(ctx, r, id)
	}

	leader, ok := teams.Leader()
	if !ok {
		deps.Notifier.Broadcast(ctx, fmt.Sprintf(MsgDraw, r.Name()), domain.ColorInfo)
		return out
	}
	out.Winner = leader.Name
	deps.Notifier.Broadcast(ctx, fmt.Sprintf(MsgWinner, leader.Name, r.Name(), leader.Kills()), domain.ColorSuccess)

	set, hasSet := deps.Rewards.RewardSet(s.RewardSet)
	if s.RewardSet != "" && !hasSet {
		logger.FromContext(ctx).Warn(LogMsgRewardSetAbsent, "event", r.Name(), "reward_set", s.RewardSet)
	}
	for _, id := range leader.Members() {
		if !r.Registry().Contains(id) {
			continue
		}
		v.award(ctx, deps, id, s.WinPoints, domain.PointReasonWin)
		if !hasSet {
			continue
		}
		delivered, skipped := deps.Rewards.GrantItems(ctx, id, deps.Rewards.ResolveDrops(set.Items))
		for _, item := range delivered {
			deps.Notifier.SendToPlayer(ctx, id, fmt.Sprintf(MsgDropReceived, item.Amount, item.Name), domain.ColorSuccess)
		}
		if len(skipped) > 0 {
			deps.Notifier.SendToPlayer(ctx, id, fmt.Sprintf(MsgDropsSkipped, len(skipped)), domain.ColorWarning)
		}
	}
	return out
}

func (v *Variant) award(ctx context.Context, deps *lifecycle.Deps, id, points int64, reason string) {
	if points == 0 {
		return
	}
	if err := deps.Rewards.AwardPoints(ctx, id, points, reason); err != nil {
		logger.FromContext(ctx).Error(LogMsgAwardFailed, "player_id", id, "reason", reason, "error", err)
	}
}

// restore strips the arena loadout and sends the player back
func (v *Variant) restore(ctx context.Context, r *lifecycle.Machine, id int64) {
	w := r.Deps().World
	log := logger.FromContext(ctx)
	if err := w.ClearInventory(ctx, id); err != nil {
		log.Warn(LogMsgRestoreFailed, "event", r.Name(), "player_id", id, "step", "clear_inventory", "error", err)
	}
	if err := w.ReturnHeldItems(ctx, id); err != nil {
		log.Warn(LogMsgRestoreFailed, "event", r.Name(), "player_id", id, "step", "return_items", "error", err)
	}
	if pos, ok := v.origins.Load(id); ok {
		if err := w.TeleportPlayer(ctx, id, pos.(domain.Vec3)); err != nil {
			log.Warn(LogMsgTeleportFailed, "event", r.Name(), "player_id", id, "error", err)
		}
	}
}

// Teardown drops the round's teams
func (v *Variant) Teardown(context.Context, *lifecycle.Machine) {
	v.teams.Store(nil)
	v.origins.Clear()
}

// Describe reports team rosters and kills
func (v *Variant) Describe(s *lifecycle.Status) {
	teams := v.teams.Load()
	if teams == nil {
		return
	}
	for _, t := range teams.Teams() {
		s.Teams = append(s.Teams, lifecycle.TeamStatus{
			Name:    t.Name,
			Members: t.Members(),
			Kills:   t.Kills(),
			Slots:   t.Capacity() - t.Len(),
		})
	}
}
