// Package team assigns participants to capacity-bounded teams.
package team

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
)

// Team is a capacity-bounded member set with a kill counter.
type Team struct {
	ID       int
	Name     string
	Spawn    domain.Vec3
	capacity int

	reserved atomic.Int64
	members  sync.Map // int64 -> struct{}
	kills    atomic.Int64
}

// Capacity returns the maximum member count
func (t *Team) Capacity() int { return t.capacity }

// TryAdd reserves a slot and inserts id. It fails when the team is full or id
// is already a member.
func (t *Team) TryAdd(id int64) bool {
	if t.reserved.Add(1) > int64(t.capacity) {
		t.reserved.Add(-1)
		return false
	}
	if _, loaded := t.members.LoadOrStore(id, struct{}{}); loaded {
		t.reserved.Add(-1)
		return false
	}
	return true
}

// Remove drops id and frees its slot
func (t *Team) Remove(id int64) bool {
	if _, loaded := t.members.LoadAndDelete(id); !loaded {
		return false
	}
	t.reserved.Add(-1)
	return true
}

// Contains reports membership
func (t *Team) Contains(id int64) bool {
	_, ok := t.members.Load(id)
	return ok
}

// Len returns the occupied slot count
func (t *Team) Len() int { return int(t.reserved.Load()) }

// Full reports whether every slot is taken
func (t *Team) Full() bool { return t.Len() >= t.capacity }

// Members returns member ids in ascending order
func (t *Team) Members() []int64 {
	var ids []int64
	t.members.Range(func(k, _ any) bool {
		ids = append(ids, k.(int64))
		return true
	})
	slices.Sort(ids)
	return ids
}

// AddKill increments the team's kill counter
func (t *Team) AddKill() int64 { return t.kills.Add(1) }

// Kills returns the team's kill counter
func (t *Team) Kills() int64 { return t.kills.Load() }

// Assignment holds the teams of one round in registration order.
type Assignment struct {
	teams []*Team
}

// NewAssignment creates count teams of the given capacity. Names and spawns
// are taken positionally; missing names default to "Team N".
func NewAssignment(count, capacity int, names []string, spawns []domain.Vec3) *Assignment {
	teams := make([]*Team, count)
	for i := range teams {
		t := &Team{ID: i, Name: DefaultName(i), capacity: capacity}
		if i < len(names) && names[i] != "" {
			t.Name = names[i]
		}
		if i < len(spawns) {
			t.Spawn = spawns[i]
		}
		teams[i] = t
	}
	return &Assignment{teams: teams}
}

// DefaultName is the fallback name of team i
func DefaultName(i int) string {
	return "Team " + string(rune('A'+i%26))
}

// Assign places id in the first team with a free slot. A join that loses the
// race for a team's last slot moves on to the next team.
func (a *Assignment) Assign(id int64) (*Team, error) {
	if t := a.TeamOf(id); t != nil {
		return nil, domain.ErrAlreadyParticipating
	}
	for _, t := range a.teams {
		if t.TryAdd(id) {
			return t, nil
		}
	}
	return nil, domain.ErrTeamsFull
}

// Remove drops id from whichever team holds it
func (a *Assignment) Remove(id int64) (*Team, bool) {
	for _, t := range a.teams {
		if t.Remove(id) {
			return t, true
		}
	}
	return nil, false
}

// TeamOf returns the team holding id, or nil
func (a *Assignment) TeamOf(id int64) *Team {
	for _, t := range a.teams {
		if t.Contains(id) {
			return t
		}
	}
	return nil
}

// Teams returns the teams in registration order
func (a *Assignment) Teams() []*Team { return a.teams }

// Full reports whether every team slot is taken
func (a *Assignment) Full() bool {
	for _, t := range a.teams {
		if !t.Full() {
			return false
		}
	}
	return true
}

// Total returns the number of assigned members across all teams
func (a *Assignment) Total() int {
	n := 0
	for _, t := range a.teams {
		n += t.Len()
	}
	return n
}

// Leader returns the team with the most kills. ok is false on a tie for first
// place or when no team has scored.
func (a *Assignment) Leader() (leader *Team, ok bool) {
	var best int64 = -1
	tied := false
	for _, t := range a.teams {
		switch k := t.Kills(); {
		case k > best:
			best, leader, tied = k, t, false
		case k == best:
			tied = true
		}
	}
	if leader == nil || tied || best == 0 {
		return nil, false
	}
	return leader, true
}
