package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "wellness"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/wellness/wellness.db"
	MemoryConfigPath   = ":memory:"
	Version            = "v0.3.0"

	// DateFormat is the calendar-day format used for every date field (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the short clock format used in listings (HH:MM)
	TimeFormat = "15:04"

	// Storage keys
	DataKey       = "wellness_data"
	OnboardingKey = "wellness-onboarding-completed"
	SettingsKey   = "wellness-hydration"

	// Environment variables
	EnvConfig       = "WELLNESS_CONFIG"
	EnvTimezone     = "WELLNESS_TIMEZONE"
	EnvDBConnection = "WELLNESS_DB_CONNECTION"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "wellness-"
	BackupFileSuffix = ".cbor.zst"
	SnapshotVersion  = 1

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "wellness-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.wellness"
	TrayExecutablePrefix   = "wellness-tray"
	NotifierSecretHeader   = "X-Wellness-Secret"

	// Watch constants
	WatchDebounce = 200 * time.Millisecond
)

// Session States
const (
	StateOnboarding SessionState = iota
	StateDashboard
	StateHabits
	StateMood
	StateHydration
	StateMoodForm
	StateHydrationForm
	StateHabitForm
	StateConfirmDeleteHabit
)
