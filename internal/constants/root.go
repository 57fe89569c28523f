package constants

import "time"

// CompletionStatus is the self-reported quality of a day's activity
type CompletionStatus string

// AchievementCategory groups achievements by the statistic they track
type AchievementCategory string

// Severity is the level attached to a toast notification
type Severity string

// ScrollLabel is the classification emitted by the scroll classifier
type ScrollLabel string

// SessionState represents the current view of the TUI application
type SessionState int

const (
	AppName            = "unscroll"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/unscroll"
	DefaultStorePath   = "~/.config/unscroll/unscroll.db"
	DefaultConfigFile  = "config.yaml"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// ChallengeDays is the length of the program
	ChallengeDays = 30

	// Storage keys
	KeyAccessControl = "access_control"
	KeyDayProgress   = "day_progress"
	KeyUserStats     = "user_stats"
	KeyAchievements  = "achievements"
	KeyEmergencyLog  = "emergency_log"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "unscroll-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifierLockfileName   = "unscroll-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.unscroll.tray"
	TrayExecutablePrefix   = "unscroll-tray"

	// Completion statuses
	StatusYes     CompletionStatus = "yes"
	StatusPartial CompletionStatus = "partial"
	StatusNo      CompletionStatus = "no"

	// Achievement categories
	CategoryMilestone   AchievementCategory = "milestone"
	CategoryStreak      AchievementCategory = "streak"
	CategoryReflection  AchievementCategory = "reflection"
	CategoryTime        AchievementCategory = "time"
	CategoryConsistency AchievementCategory = "consistency"
	CategoryQuality     AchievementCategory = "quality"
	CategoryCombo       AchievementCategory = "combo"

	// Toast severities
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"

	// Scroll labels
	ScrollMindful    ScrollLabel = "mindful"
	ScrollCompulsive ScrollLabel = "compulsive"
	ScrollExcessive  ScrollLabel = "excessive"
)

// Session States
const (
	StateToday SessionState = iota
	StateStats
	StateFocus
	StateComplete
	StateConfirmReset
)

// NumMainTabs is the number of tabbed views; states from StateComplete on are overlays.
const NumMainTabs = 3

// Scroll tuning defaults
const (
	DefaultScrollWindow      = 5 * time.Second
	DefaultScrollTick        = time.Second
	DefaultScrollSensitivity = 3
	DefaultScrollDebounce    = time.Second
	DefaultScrollCooldown    = 2000 * time.Millisecond
)
