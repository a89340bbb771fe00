package postgres

// DefaultMinConnections is the minimum number of connections kept in the pool
const DefaultMinConnections = 2

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToMigrate         = "failed to apply migrations"
	ErrMsgFailedToGetPoints       = "failed to get points"
	ErrMsgFailedToUpdatePoints    = "failed to update points"
	ErrMsgFailedToDebitPoints     = "failed to debit points"
	ErrMsgFailedToLinkAccount     = "failed to link account"
	ErrMsgFailedToGetExternalID   = "failed to get external id"
	ErrMsgFailedToRegisterPlayer  = "failed to register player"
	ErrMsgFailedToGetLeaderboard  = "failed to get leaderboard"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationApplied                = "Applied migration"
)
