package domain

import (
	"fmt"
	"slices"
	"time"
)

// SecondsPerDay bounds TimeOfDay values.
const SecondsPerDay = 24 * 60 * 60

// TimeOfDay is a wall-clock time within one day, in seconds since midnight.
type TimeOfDay int

// NewTimeOfDay builds a TimeOfDay from its components.
func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60 + second)
}

// TimeOfDayOf truncates t to whole seconds since its local midnight.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute(), t.Second())
}

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDayOf(t), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q", s)
}

// Valid reports whether the value lies within a single day.
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < SecondsPerDay
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", int(t)/3600, (int(t)%3600)/60, int(t)%60)
}

// Variant names the round logic an event runs.
type Variant string

// Known event variants
const (
	VariantTeamFight   Variant = "teamfight"
	VariantZoneControl Variant = "zonecontrol"
)

// EventDefinition is the configured identity and schedule of one event type.
type EventDefinition struct {
	Name                            string
	Variant                         Variant
	Enabled                         bool
	ActiveDaysOfMonth               []int
	StartTime                       TimeOfDay
	EndTime                         TimeOfDay
	AllowParticipationInOtherEvents bool

	TeamFight   *TeamFightSettings
	ZoneControl *ZoneSettings
}

// IsActiveAt reports whether the event is due at the given instant: enabled,
// scheduled for that day of month, and inside the inclusive daily window.
func (d EventDefinition) IsActiveAt(now time.Time) bool {
	if !d.Enabled {
		return false
	}
	if len(d.ActiveDaysOfMonth) > 0 && !slices.Contains(d.ActiveDaysOfMonth, now.Day()) {
		return false
	}
	tod := TimeOfDayOf(now)
	return tod >= d.StartTime && tod <= d.EndTime
}

// Exclusive reports whether participants of this event may not join other
// exclusive events at the same time.
func (d EventDefinition) Exclusive() bool {
	return !d.AllowParticipationInOtherEvents
}

// Loadout is one weighted weapon kit handed out at round start.
type Loadout struct {
	Name   string
	Weight float64
	Items  []RewardItem
}

// TeamFightSettings configures a team arena round.
type TeamFightSettings struct {
	TeamCount           int
	MaxPlayersPerTeam   int
	TeamNames           []string
	RoundDuration       time.Duration
	ArenaPrefab         string
	ArenaPosition       Vec3
	TeamSpawns          []Vec3
	KillPoints          int64
	WinPoints           int64
	ParticipationPoints int64
	RewardSet           string
	Loadouts            []Loadout
}

// Capacity is the total number of participant slots.
func (s TeamFightSettings) Capacity() int {
	return s.TeamCount * s.MaxPlayersPerTeam
}

// ZoneShape selects the containment test of a zone.
type ZoneShape string

// Zone shapes
const (
	ZoneSphere ZoneShape = "sphere"
	ZoneBox    ZoneShape = "box"
)

// ZoneSettings configures a zone-control event.
type ZoneSettings struct {
	Shape                 ZoneShape
	Center                Vec3
	Radius                float64
	Min                   Vec3
	Max                   Vec3
	AwardPoints           int64
	AwardInterval         time.Duration
	ContestNoticeInterval time.Duration
	MarkerPrefab          string
}
