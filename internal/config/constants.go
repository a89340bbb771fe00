package config

import "time"

// Configuration file paths
const (
	ConfigPathEvents  = "configs/events.json"
	ConfigPathRewards = "configs/rewards.json"
)

// Store backends selectable with STORE_BACKEND
const (
	StoreBackendPostgres = "postgres"
	StoreBackendSQLite   = "sqlite"
	StoreBackendFlatFile = "flatfile"
)

// Team fight defaults applied when a definition omits or invalidates a field
const (
	DefaultTeamCount           = 2
	DefaultMaxPlayersPerTeam   = 5
	DefaultRoundDuration       = 5 * time.Minute
	DefaultKillPoints          = 10
	DefaultWinPoints           = 50
	DefaultParticipationPoints = 5
)

// Zone defaults applied when a definition omits or invalidates a field
const (
	DefaultZoneRadius      = 25.0
	DefaultZoneAwardPoints = 10
)

// Warning formats for catalog loading
const (
	WarnFmtInvalidField     = "event %q: %s is invalid (%s), using default %v"
	WarnFmtOvernightWindow  = "event %q: start %s is after end %s; overnight windows are not supported, event disabled"
	WarnFmtUnknownVariant   = "event %q: unknown variant %q, event disabled"
	WarnFmtDuplicateEvent   = "event %q: duplicate name, later definition ignored"
	WarnFmtMissingName      = "event #%d has no name, ignored"
	WarnFmtInvalidDay       = "event %q: active day %d is outside 1..31, ignored"
	WarnFmtUnknownRewardSet = "event %q: reward set %q not found in the reward catalog"
	WarnFmtInvalidReward    = "reward %q: %s, entry ignored"
	WarnFmtInvalidLoadout   = "event %q: loadout %q: %s, loadout ignored"
)

// Log messages
const (
	LogMsgConfigWarning = "Configuration warning"
	LogMsgCatalogLoaded = "Catalog loaded"
)
