package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/logger"
	"github.com/osse101/BrandishEvents_Go/internal/utils"
)

// Catalog is the validated event and reward configuration
type Catalog struct {
	Events   []domain.EventDefinition
	Rewards  domain.RewardCatalog
	Warnings []string
}

// RewardSet looks up a named set, case-sensitively
func (c *Catalog) RewardSet(name string) (domain.RewardSet, bool) {
	for _, s := range c.Rewards.Sets {
		if s.Name == name {
			return s, true
		}
	}
	return domain.RewardSet{}, false
}

type eventsFile struct {
	Events []rawEvent `json:"events"`
}

type rawEvent struct {
	Name                            string        `json:"name"`
	Variant                         string        `json:"variant"`
	Enabled                         *bool         `json:"enabled"`
	ActiveDaysOfMonth               []int         `json:"active_days_of_month"`
	StartTime                       string        `json:"start_time"`
	EndTime                         string        `json:"end_time"`
	AllowParticipationInOtherEvents bool          `json:"allow_participation_in_other_events"`
	TeamFight                       *rawTeamFight `json:"teamfight"`
	ZoneControl                     *rawZone      `json:"zonecontrol"`
}

type rawTeamFight struct {
	TeamCount            int           `json:"team_count" validate:"min=2,max=8"`
	MaxPlayersPerTeam    int           `json:"max_players_per_team" validate:"min=1,max=50"`
	TeamNames            []string      `json:"team_names"`
	RoundDurationSeconds int           `json:"round_duration_seconds" validate:"min=10"`
	ArenaPrefab          string        `json:"arena_prefab"`
	ArenaPosition        domain.Vec3   `json:"arena_position"`
	TeamSpawns           []domain.Vec3 `json:"team_spawns"`
	KillPoints           *int64        `json:"kill_points" validate:"omitempty,min=0"`
	WinPoints            *int64        `json:"win_points" validate:"omitempty,min=0"`
	ParticipationPoints  *int64        `json:"participation_points" validate:"omitempty,min=0"`
	RewardSet            string        `json:"reward_set"`
	Loadouts             []rawLoadout  `json:"loadouts"`
}

type rawLoadout struct {
	Name   string              `json:"name" validate:"required"`
	Weight float64             `json:"weight" validate:"gt=0"`
	Items  []domain.RewardItem `json:"items" validate:"min=1,dive"`
}

type rawZone struct {
	Shape                string      `json:"shape" validate:"oneof=sphere box"`
	Center               domain.Vec3 `json:"center"`
	Radius               float64     `json:"radius" validate:"gt=0"`
	Min                  domain.Vec3 `json:"min"`
	Max                  domain.Vec3 `json:"max"`
	AwardPoints          int64       `json:"award_points" validate:"gt=0"`
	AwardIntervalSeconds int         `json:"award_interval_seconds" validate:"gt=0"`
	ContestNoticeSeconds int         `json:"contest_notice_seconds" validate:"gt=0"`
	MarkerPrefab         string      `json:"marker_prefab"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadCatalog reads the event and reward files. Bad fields fall back to
// defaults and are reported as warnings; only an unreadable events file is an
// error. A missing rewards file yields an empty reward catalog.
func LoadCatalog(eventsPath, rewardsPath string) (*Catalog, error) {
	c := &Catalog{}

	rewards, warnings, err := LoadRewards(rewardsPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		warnings = append(warnings, fmt.Sprintf("reward catalog %s not found, purchases disabled", rewardsPath))
	}
	c.Rewards = rewards
	c.Warnings = append(c.Warnings, warnings...)

	events, warnings, err := LoadEvents(eventsPath)
	if err != nil {
		return nil, err
	}
	c.Events = events
	c.Warnings = append(c.Warnings, warnings...)

	for _, def := range c.Events {
		if def.TeamFight == nil || def.TeamFight.RewardSet == "" {
			continue
		}
		if _, ok := c.RewardSet(def.TeamFight.RewardSet); !ok {
			c.Warnings = append(c.Warnings, fmt.Sprintf(WarnFmtUnknownRewardSet, def.Name, def.TeamFight.RewardSet))
		}
	}

	for _, w := range c.Warnings {
		logger.Warn(LogMsgConfigWarning, "warning", w)
	}
	logger.Info(LogMsgCatalogLoaded, "events", len(c.Events), "reward_sets", len(c.Rewards.Sets), "reward_items", len(c.Rewards.Items))
	return c, nil
}

// LoadEvents reads and normalizes event definitions
func LoadEvents(path string) ([]domain.EventDefinition, []string, error) {
	var file eventsFile
	if err := utils.LoadJSON(path, &file); err != nil {
		return nil, nil, err
	}
	defs, warnings := normalizeEvents(file.Events)
	return defs, warnings, nil
}

// LoadRewards reads the reward catalog, dropping invalid entries
func LoadRewards(path string) (domain.RewardCatalog, []string, error) {
	var raw domain.RewardCatalog
	if err := utils.LoadJSON(path, &raw); err != nil {
		return domain.RewardCatalog{}, nil, err
	}

	var (
		out      domain.RewardCatalog
		warnings []string
	)
	for _, set := range raw.Sets {
		if err := validate.Struct(set); err != nil {
			warnings = append(warnings, fmt.Sprintf(WarnFmtInvalidReward, set.Name, describe(err)))
			continue
		}
		out.Sets = append(out.Sets, set)
	}
	for _, item := range raw.Items {
		if err := validate.Struct(item); err != nil {
			warnings = append(warnings, fmt.Sprintf(WarnFmtInvalidReward, item.Name, describe(err)))
			continue
		}
		out.Items = append(out.Items, item)
	}
	return out, warnings, nil
}

func normalizeEvents(raw []rawEvent) ([]domain.EventDefinition, []string) {
	var (
		defs     []domain.EventDefinition
		warnings []string
		seen     = make(map[string]bool)
	)
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	for i, r := range raw {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			warn(WarnFmtMissingName, i)
			continue
		}
		if seen[strings.ToLower(name)] {
			warn(WarnFmtDuplicateEvent, name)
			continue
		}
		seen[strings.ToLower(name)] = true

		def := domain.EventDefinition{
			Name:                            name,
			Variant:                         domain.Variant(strings.ToLower(r.Variant)),
			Enabled:                         r.Enabled == nil || *r.Enabled,
			AllowParticipationInOtherEvents: r.AllowParticipationInOtherEvents,
			StartTime:                       parseTime(name, "start_time", r.StartTime, domain.DefaultStartTime, warn),
			EndTime:                         parseTime(name, "end_time", r.EndTime, domain.DefaultEndTime, warn),
		}

		for _, day := range r.ActiveDaysOfMonth {
			if day < 1 || day > 31 {
				warn(WarnFmtInvalidDay, name, day)
				continue
			}
			def.ActiveDaysOfMonth = append(def.ActiveDaysOfMonth, day)
		}

		if def.StartTime > def.EndTime {
			warn(WarnFmtOvernightWindow, name, def.StartTime, def.EndTime)
			def.Enabled = false
		}

		switch def.Variant {
		case domain.VariantTeamFight:
			def.TeamFight = normalizeTeamFight(name, r.TeamFight, warn)
		case domain.VariantZoneControl:
			def.ZoneControl = normalizeZone(name, r.ZoneControl, warn)
		default:
			warn(WarnFmtUnknownVariant, name, r.Variant)
			def.Enabled = false
		}

		defs = append(defs, def)
	}
	return defs, warnings
}

func parseTime(event, field, value string, def domain.TimeOfDay, warn func(string, ...any)) domain.TimeOfDay {
	if value == "" {
		return def
	}
	t, err := domain.ParseTimeOfDay(value)
	if err != nil || !t.Valid() {
		warn(WarnFmtInvalidField, event, field, value, def)
		return def
	}
	return t
}

func normalizeTeamFight(name string, r *rawTeamFight, warn func(string, ...any)) *domain.TeamFightSettings {
	if r == nil {
		r = &rawTeamFight{}
	}
	// Omitted values take defaults silently; explicit bad values warn.
	if r.TeamCount == 0 {
		r.TeamCount = DefaultTeamCount
	}
	if r.MaxPlayersPerTeam == 0 {
		r.MaxPlayersPerTeam = DefaultMaxPlayersPerTeam
	}
	if r.RoundDurationSeconds == 0 {
		r.RoundDurationSeconds = int(DefaultRoundDuration / time.Second)
	}

	defaults := map[string]func() any{
		"TeamCount": func() any { r.TeamCount = DefaultTeamCount; return r.TeamCount },
		"MaxPlayersPerTeam": func() any {
			r.MaxPlayersPerTeam = DefaultMaxPlayersPerTeam
			return r.MaxPlayersPerTeam
		},
		"RoundDurationSeconds": func() any {
			r.RoundDurationSeconds = int(DefaultRoundDuration / time.Second)
			return r.RoundDurationSeconds
		},
		"KillPoints":          func() any { r.KillPoints = nil; return DefaultKillPoints },
		"WinPoints":           func() any { r.WinPoints = nil; return DefaultWinPoints },
		"ParticipationPoints": func() any { r.ParticipationPoints = nil; return DefaultParticipationPoints },
	}
	applyDefaults(name, validate.Struct(r), defaults, warn)

	s := &domain.TeamFightSettings{
		TeamCount:           r.TeamCount,
		MaxPlayersPerTeam:   r.MaxPlayersPerTeam,
		TeamNames:           r.TeamNames,
		RoundDuration:       time.Duration(r.RoundDurationSeconds) * time.Second,
		ArenaPrefab:         r.ArenaPrefab,
		ArenaPosition:       r.ArenaPosition,
		TeamSpawns:          r.TeamSpawns,
		KillPoints:          valueOr(r.KillPoints, DefaultKillPoints),
		WinPoints:           valueOr(r.WinPoints, DefaultWinPoints),
		ParticipationPoints: valueOr(r.ParticipationPoints, DefaultParticipationPoints),
		RewardSet:           r.RewardSet,
	}
	for _, l := range r.Loadouts {
		if err := validate.Struct(l); err != nil {
			warn(WarnFmtInvalidLoadout, name, l.Name, describe(err))
			continue
		}
		s.Loadouts = append(s.Loadouts, domain.Loadout{Name: l.Name, Weight: l.Weight, Items: l.Items})
	}
	return s
}

func normalizeZone(name string, r *rawZone, warn func(string, ...any)) *domain.ZoneSettings {
	if r == nil {
		r = &rawZone{}
	}
	if r.Shape == "" {
		r.Shape = string(domain.ZoneSphere)
	}
	r.Shape = strings.ToLower(r.Shape)
	if r.Radius == 0 {
		r.Radius = DefaultZoneRadius
	}
	if r.AwardPoints == 0 {
		r.AwardPoints = DefaultZoneAwardPoints
	}
	if r.AwardIntervalSeconds == 0 {
		r.AwardIntervalSeconds = int(domain.DefaultAwardInterval / time.Second)
	}
	if r.ContestNoticeSeconds == 0 {
		r.ContestNoticeSeconds = int(domain.DefaultContestNoticeInterval / time.Second)
	}

	defaults := map[string]func() any{
		"Shape":  func() any { r.Shape = string(domain.ZoneSphere); return r.Shape },
		"Radius": func() any { r.Radius = DefaultZoneRadius; return r.Radius },
		"AwardPoints": func() any {
			r.AwardPoints = DefaultZoneAwardPoints
			return r.AwardPoints
		},
		"AwardIntervalSeconds": func() any {
			r.AwardIntervalSeconds = int(domain.DefaultAwardInterval / time.Second)
			return r.AwardIntervalSeconds
		},
		"ContestNoticeSeconds": func() any {
			r.ContestNoticeSeconds = int(domain.DefaultContestNoticeInterval / time.Second)
			return r.ContestNoticeSeconds
		},
	}
	applyDefaults(name, validate.Struct(r), defaults, warn)

	return &domain.ZoneSettings{
		Shape:                 domain.ZoneShape(r.Shape),
		Center:                r.Center,
		Radius:                r.Radius,
		Min:                   r.Min,
		Max:                   r.Max,
		AwardPoints:           r.AwardPoints,
		AwardInterval:         time.Duration(r.AwardIntervalSeconds) * time.Second,
		ContestNoticeInterval: time.Duration(r.ContestNoticeSeconds) * time.Second,
		MarkerPrefab:          r.MarkerPrefab,
	}
}

// applyDefaults resets every field that failed validation and records why
func applyDefaults(event string, err error, defaults map[string]func() any, warn func(string, ...any)) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return
	}
	for _, fe := range verrs {
		reset, ok := defaults[fe.Field()]
		if !ok {
			continue
		}
		got := fe.Value()
		if p, isPtr := got.(*int64); isPtr && p != nil {
			got = *p
		}
		def := reset()
		warn(WarnFmtInvalidField, event, fe.Field(), fmt.Sprintf("%v fails %s", got, fe.Tag()), def)
	}
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s fails %s", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

func valueOr(p *int64, def int64) int64 {
	if p == nil {
		return def
	}
	return *p
}
