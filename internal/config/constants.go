package config

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./books-api.db"
)
