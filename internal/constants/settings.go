package constants

const (
	// Environment overrides
	EnvConfigFile   = "UNSCROLL_CONFIG_FILE"
	EnvStore        = "UNSCROLL_STORE"
	EnvTimezone     = "UNSCROLL_TIMEZONE"
	EnvDebug        = "UNSCROLL_DEBUG"
	EnvListenAddr   = "UNSCROLL_LISTEN_ADDR"
	EnvDBConnection = "UNSCROLL_DB_CONNECTION"

	// KeyringLocation as a store location reads the connection string from the OS keyring
	KeyringLocation = "keyring"

	// Default Settings Values
	DefaultTimezone      = "Local" // Use system local timezone by default
	DefaultListenAddr    = "127.0.0.1:8090"
	DefaultTrayEnabled   = true
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 3
	DefaultLogMaxAgeDays = 28
)
