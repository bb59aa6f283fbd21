package constants

import "time"

// Request handling
const (
	DefaultRequestTimeout = 10 * time.Second
	DefaultTimeout        = 30 * time.Second
	ShutdownTimeout       = 15 * time.Second
)

// Database pool
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 10
	DatabaseConnMaxLifetime = 30 // minutes
)

// Echo context keys
const (
	ContextTokenData = "token_data"
)

// Redis keys
const (
	RedisKeyFinalSelection = "planner:selection:"
)

// Queue
const (
	QueueDefault           = "default"
	TaskSelectionConfirmed = "selection:confirmed"
	TaskMaxRetry           = 5
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)
