package constants

import "time"

// Hydration
const (
	DefaultDailyGoalML  = 2000
	MinCustomAmountML   = 50
	MaxCustomAmountML   = 2000
	CustomAmountStepML  = 50
	DefaultRecentWindow = 7
)

// QuickAmountsML are the one-tap hydration amounts, in display order.
var QuickAmountsML = [...]int{250, 500, 750, 1000}

// Reminders
const (
	DefaultReminderIntervalMin = 60
	MinReminderIntervalMin     = 15
	MaxReminderIntervalMin     = 480
	DefaultRemindersEnabled    = false
	ReminderTickInterval       = time.Minute
)

// Mood
const (
	MinMoodRating   = 1
	MaxMoodRating   = 5
	TrendWindow     = 3
	TrendThreshold  = 0.3
	TrendImproving  = "improving"
	TrendDeclining  = "declining"
	TrendStable     = "stable"
	TrendNeutral    = "neutral"
	DefaultMoodName = "Happy"
)

// DefaultHabitsCreatedAt is the fixed creation time (epoch ms) shared by the seeded habits.
const DefaultHabitsCreatedAt int64 = 1704067200000
