package lifecycle

import (
	"context"
	"time"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/event"
	"github.com/osse101/BrandishEvents_Go/internal/notify"
	"github.com/osse101/BrandishEvents_Go/internal/scheduler"
	"github.com/osse101/BrandishEvents_Go/internal/worker"
	"github.com/osse101/BrandishEvents_Go/internal/world"
)

// Rewards is the slice of the economy that rounds settle through
type Rewards interface {
	AwardPoints(ctx context.Context, id int64, delta int64, reason string) error
	ResolveDrops(items []domain.RewardItem) []domain.RewardItem
	PickLoadout(loadouts []domain.Loadout) (domain.Loadout, bool)
	GrantItems(ctx context.Context, id int64, items []domain.RewardItem) (delivered, skipped []domain.RewardItem)
	RewardSet(name string) (domain.RewardSet, bool)
}

// Directory answers cross-event membership questions. Machines receive it at
// construction instead of reaching for a global list of events.
type Directory interface {
	// ExclusiveHolder names the exclusive event, other than except, that id
	// currently participates in.
	ExclusiveHolder(id int64, except string) (string, bool)
}

// Deps are the collaborators shared by every machine
type Deps struct {
	World     world.World
	Factions  world.Factions
	Notifier  notify.Notifier
	Rewards   Rewards
	Bus       event.Publisher
	Pool      *worker.Pool
	Timers    *worker.RoundTimers
	Scheduler *scheduler.Scheduler
	Now       func() time.Time
}

func (d *Deps) normalize() {
	if d.Bus == nil {
		d.Bus = event.NopPublisher{}
	}
	if d.Notifier == nil {
		d.Notifier = notify.LogNotifier{}
	}
	if d.Now == nil {
		d.Now = time.Now
	}
}

// Variant is the round logic plugged into a machine. Methods are called with
// the machine's transition lock held except Join, Leave and Tick, which may
// run concurrently with each other.
type Variant interface {
	// Setup prepares the round during SystemStarting. fill reports whether
	// the round waits in Filling for capacity before going Active.
	Setup(ctx context.Context, r *Machine) (fill bool, err error)
	// Join admits a player after the machine's own checks. The returned
	// label, such as a team name, is shown to the player.
	Join(ctx context.Context, r *Machine, id int64) (label string, err error)
	// Leave drops a player's variant state and restores them in the world.
	Leave(ctx context.Context, r *Machine, id int64)
	// Full reports whether every slot is taken
	Full() bool
	// Activate runs on entry to Active
	Activate(ctx context.Context, r *Machine)
	// RoundDuration is the Active timer; zero runs until stopped.
	RoundDuration() time.Duration
	// Tick runs every fast tick while Active. Returning true ends the round.
	Tick(ctx context.Context, r *Machine) (done bool)
	// Settle pays out and restores players. completed is false when the
	// round is cancelled before going Active.
	Settle(ctx context.Context, r *Machine, completed bool) Settlement
	// Teardown clears per-round state during SystemEnding
	Teardown(ctx context.Context, r *Machine)
	// Describe adds variant details to a status report
	Describe(s *Status)
}

// KillRecorder is implemented by variants that score kills
type KillRecorder interface {
	RecordKill(ctx context.Context, r *Machine, killer, victim int64) error
}

// Settlement is the outcome of a round
type Settlement struct {
	Winner string
	Teams  []domain.TeamResult
}

// TeamStatus is one team in a status report
type TeamStatus struct {
	Name    string  `json:"name"`
	Members []int64 `json:"members"`
	Kills   int64   `json:"kills"`
	Slots   int     `json:"slots"`
}

// Status is a point-in-time view of a machine
type Status struct {
	Name         string        `json:"name"`
	Variant      string        `json:"variant"`
	State        string        `json:"state"`
	Enabled      bool          `json:"enabled"`
	Exclusive    bool          `json:"exclusive"`
	Window       string        `json:"window"`
	RoundID      string        `json:"round_id,omitempty"`
	Participants int           `json:"participants"`
	Remaining    time.Duration `json:"remaining,omitempty"`
	Teams        []TeamStatus  `json:"teams,omitempty"`
	Holding      []int64       `json:"holding,omitempty"`
}
