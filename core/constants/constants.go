package constants

import "time"

const (
	DefaultTimeout        = 10 * time.Second
	DefaultRequestTimeout = 30 * time.Second
	ShutdownTimeout       = 15 * time.Second

	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 10
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"

	// ContextActor holds the resolved *member.Actor for authenticated requests.
	ContextActor     = "actor"
	ContextTokenData = "token_data"

	DefaultTimeZone = "America/New_York"

	// Sign-up writes are retried when another member wins the version race.
	SignUpMaxAttempts = 5
)
