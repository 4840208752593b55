package engine

import "gamifylife/internal/storage"

type ChallengeType string

const (
	ChallengeDaily  ChallengeType = "daily"
	ChallengeWeekly ChallengeType = "weekly"
)

func (c ChallengeType) IsValid() bool {
	switch c {
	case ChallengeDaily, ChallengeWeekly:
		return true
	default:
		return false
	}
}

// StreakMultiplier is the per-streak bonus for completing a challenge of this type.
func (c ChallengeType) StreakMultiplier() int {
	if c == ChallengeWeekly {
		return WeeklyStreakBonus
	}
	return DailyStreakBonus
}

// DefaultChallengeType is used when user input is missing/invalid.
const DefaultChallengeType = ChallengeDaily

const (
	DefaultTaskReward      = 10
	DefaultTaskPenalty     = 0
	DefaultChallengeReward = 50

	TaskStreakBonus   = 5
	DailyStreakBonus  = 10
	WeeklyStreakBonus = 50

	JournalDailyBonus = 5
)

// Popup is a transient point-change event for the presentation layer.
// Value is the base amount; Bonus is reported separately for display only.
type Popup struct {
	ID    string
	Value int
	Bonus int
}

// Change is delivered to subscribers after every state mutation.
type Change struct {
	Seq   uint64
	Op    Op
	State storage.State
}

type Op string

const (
	OpAddTask         Op = "add_task"
	OpToggleTask      Op = "toggle_task"
	OpDeleteTask      Op = "delete_task"
	OpAddChallenge    Op = "add_challenge"
	OpToggleChallenge Op = "toggle_challenge"
	OpDeleteChallenge Op = "delete_challenge"
	OpAddReward       Op = "add_reward"
	OpDeleteReward    Op = "delete_reward"
	OpBuyReward       Op = "buy_reward"
	OpRedeemItem      Op = "redeem_item"
	OpAddLog          Op = "add_log"
	OpDeleteLog       Op = "delete_log"
	OpResets          Op = "resets"
	OpExpirations     Op = "expirations"
	OpUpdatePoints    Op = "update_points"
	OpRestore         Op = "restore"
)
