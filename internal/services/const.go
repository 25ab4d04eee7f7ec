package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"xplife/internal/models"
)

var (
	ErrQuestNotFound        = errors.New("quest-not-found")
	ErrAlreadyCompleted     = errors.New("already-completed")
	ErrNotSkippable         = errors.New("not-skippable")
	ErrGeneratorUnavailable = errors.New("generator-unavailable")
	ErrGeneratorMalformed   = errors.New("generator-malformed-response")
	ErrGenerationLock       = errors.New("generation locked")
	ErrBossSpawnLock        = errors.New("boss spawn locked")
)

const (
	CONFIG_WEEKLY_QUEST_CAP_FREE     = "WEEKLY_QUEST_CAP_FREE"
	CONFIG_WEEKLY_QUEST_CAP_PREMIUM  = "WEEKLY_QUEST_CAP_PREMIUM"
	CONFIG_WEEKLY_QUEST_CAP_LIFETIME = "WEEKLY_QUEST_CAP_LIFETIME"
	CONFIG_YEARLY_QUEST_CAP_FREE     = "YEARLY_QUEST_CAP_FREE"
	CONFIG_YEARLY_QUEST_CAP_PREMIUM  = "YEARLY_QUEST_CAP_PREMIUM"
	CONFIG_YEARLY_QUEST_CAP_LIFETIME = "YEARLY_QUEST_CAP_LIFETIME"
	CONFIG_TASK_COUNT_MIN            = "TASK_COUNT_MIN"
	CONFIG_TASK_COUNT_MAX            = "TASK_COUNT_MAX"
	CONFIG_HISTORY_WINDOW_DAYS       = "HISTORY_WINDOW_DAYS"
	CONFIG_BOSS_LEADERBOARD_LIMIT    = "BOSS_LEADERBOARD_LIMIT"
	CONFIG_BOSS_DURATION_DAYS        = "BOSS_DURATION_DAYS"

	// -1 means unlimited
	WEEKLY_QUEST_CAP_FREE_DEFAULT     = 20
	WEEKLY_QUEST_CAP_PREMIUM_DEFAULT  = -1
	WEEKLY_QUEST_CAP_LIFETIME_DEFAULT = -1
	YEARLY_QUEST_CAP_FREE_DEFAULT     = 3
	YEARLY_QUEST_CAP_PREMIUM_DEFAULT  = 10
	YEARLY_QUEST_CAP_LIFETIME_DEFAULT = -1

	TASK_COUNT_MIN_DEFAULT      = 3
	TASK_COUNT_MAX_DEFAULT      = 5
	HISTORY_WINDOW_DAYS_DEFAULT = 30

	BOSS_LEADERBOARD_DEFAULT_LIMIT = 20
	BOSS_DURATION_DAYS_DEFAULT     = 7

	DEFAULT_XP_REWARD = 50

	GENERATOR_RATE_LIMIT_PER_MINUTE = 6
	GENERATOR_TIMEOUT               = 20 * time.Second

	CACHE_TTL_15_SECONDS = 15 * time.Second
	CACHE_TTL_1_MIN      = 1 * time.Minute
	CACHE_TTL_5_MINS     = 5 * time.Minute
	CACHE_TTL_15_MINS    = 15 * time.Minute
	CACHE_TTL_1_HOUR     = 1 * time.Hour
)

// Fixed reward tables. XP comes from the quest row itself; currency and boss
// damage key off difficulty.
func CurrencyForDifficulty(d models.QuestDifficulty) int {
	switch d {
	case models.DifficultyEasy:
		return 5
	case models.DifficultyMedium:
		return 10
	case models.DifficultyHard:
		return 20
	case models.DifficultyEpic:
		return 35
	}
	return 0
}

func DamageForDifficulty(d models.QuestDifficulty) int {
	switch d {
	case models.DifficultyEasy:
		return 10
	case models.DifficultyMedium:
		return 20
	case models.DifficultyHard:
		return 35
	case models.DifficultyEpic:
		return 50
	}
	return 0
}

func LockKeyGeneration(userID int64, tf models.Timeframe) string {
	return fmt.Sprintf("lock:generation:%d:%s", userID, tf)
}

func LockKeyBossSpawn() string {
	return "lock:boss-spawn"
}

// db
func DBKeyUser(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}

func DBKeyMe(userID int64) string {
	return fmt.Sprintf("me:%d", userID)
}

func DBKeyConfig(key string) string {
	return fmt.Sprintf("config:%s", strings.ToLower(key))
}

func DBKeyActiveBoss() string {
	return "boss:active"
}

func DBKeyBossLeaderboard(bossID string, limit int) string {
	return fmt.Sprintf("boss:leaderboard:%s:%d", bossID, limit)
}

func LimitKeyGenerator(userID int64) string {
	return fmt.Sprintf("limit:generator:%d", userID)
}
