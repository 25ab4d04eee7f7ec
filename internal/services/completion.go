package services

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"xplife/internal/datastore"
	"xplife/internal/datastore/redis_store"
	"xplife/internal/models"
	"xplife/internal/pkg/caching"

	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceCompletion struct {
	container   *do.Injector
	postgresDB  *bun.DB
	redisClient redis.UniversalClient
	cache       caching.Cache

	serviceUser *ServiceUser
}

func NewServiceCompletion(container *do.Injector) (*ServiceCompletion, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	redisClient, err := do.Invoke[redis.UniversalClient](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	serviceUser, err := do.Invoke[*ServiceUser](container)
	if err != nil {
		return nil, err
	}

	return &ServiceCompletion{container, postgresDB, redisClient, cache, serviceUser}, nil
}

// Complete marks the quest completed and applies every reward in one database
// transaction. Either all of it lands (status flip, xp, currency, ledger,
// level, streak, boss damage) or none of it does.
func (service *ServiceCompletion) Complete(ctx context.Context, user *models.UserProfile, questID string, proofRef *string) (*models.CompletionResult, error) {
	quest, err := datastore.FindQuestByID(ctx, service.postgresDB, questID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errorx.Wrap(ErrQuestNotFound, errorx.NotExist)
		}
		return nil, err
	}
	// a quest owned by someone else is indistinguishable from a missing one
	if quest.OwnerID != user.ID {
		return nil, errorx.Wrap(ErrQuestNotFound, errorx.NotExist)
	}

	now := time.Now()
	result := &models.CompletionResult{Quest: quest}

	err = service.postgresDB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		won, err := completeFlip(ctx, tx, questID, user.ID, proofRef, now)
		if err != nil {
			return err
		}
		if !won {
			return errorx.Wrap(ErrAlreadyCompleted, errorx.Invalid)
		}

		currency := CurrencyForDifficulty(quest.Difficulty)
		totalXP, err := datastore.AddXPAndCurrency(ctx, tx, user.ID, quest.XPReward, currency)
		if err != nil {
			return err
		}

		err = datastore.InsertXPLedgerEntry(ctx, tx, &models.XPLedgerEntry{
			ID:        uuid.NewString(),
			OwnerID:   user.ID,
			Amount:    quest.XPReward,
			Source:    models.XPSourceQuestCompletion,
			QuestID:   &quest.ID,
			CreatedAt: now,
		})
		if err != nil {
			return err
		}

		level := LevelForXP(totalXP)
		if err := datastore.UpdateUserLevel(ctx, tx, user.ID, level); err != nil {
			return err
		}

		streak, err := service.applyStreak(ctx, tx, user.ID, now)
		if err != nil {
			return err
		}

		result.XPAwarded = quest.XPReward
		result.CurrencyAwarded = currency
		result.TotalXP = totalXP
		result.Level = level
		result.Streak = streak

		return service.applyBossDamage(ctx, tx, user.ID, quest.Difficulty, now, result)
	})
	if err != nil {
		return nil, err
	}

	quest.Status = models.QuestStatusCompleted
	quest.CompletedAt = &now
	if proofRef != nil {
		quest.ProofRef = proofRef
	}

	service.afterCommit(ctx, user.ID, result)
	return result, nil
}

// Skip marks the quest skipped. No rewards, no streak, no boss damage.
func (service *ServiceCompletion) Skip(ctx context.Context, user *models.UserProfile, questID string) (*models.Quest, error) {
	quest, err := datastore.FindQuestByID(ctx, service.postgresDB, questID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errorx.Wrap(ErrQuestNotFound, errorx.NotExist)
		}
		return nil, err
	}
	if quest.OwnerID != user.ID {
		return nil, errorx.Wrap(ErrQuestNotFound, errorx.NotExist)
	}

	rows, err := datastore.MarkQuestSkipped(ctx, service.postgresDB, questID, user.ID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, errorx.Wrap(ErrNotSkippable, errorx.Invalid)
	}

	quest.Status = models.QuestStatusSkipped
	return quest, nil
}

// completeFlip runs the conditional status update and reports whether this
// call won it. Exactly one caller per quest ever sees true, so the reward
// block and its ledger entry run exactly once.
func completeFlip(ctx context.Context, db bun.IDB, questID string, ownerID int64, proofRef *string, now time.Time) (bool, error) {
	rows, err := datastore.MarkQuestCompleted(ctx, db, questID, ownerID, proofRef, now)
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (service *ServiceCompletion) applyStreak(ctx context.Context, tx bun.Tx, userID int64, now time.Time) (*models.Streak, error) {
	streak, err := datastore.GetStreakForUpdate(ctx, tx, userID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		streak = NewStreak(userID, now)
		if err := datastore.InsertStreak(ctx, tx, streak); err != nil {
			return nil, err
		}
		return streak, nil
	}

	if AdvanceStreak(streak, now) {
		if err := datastore.UpdateStreak(ctx, tx, streak); err != nil {
			return nil, err
		}
	}
	return streak, nil
}

func (service *ServiceCompletion) applyBossDamage(ctx context.Context, tx bun.Tx, userID int64, difficulty models.QuestDifficulty, now time.Time, result *models.CompletionResult) error {
	boss, err := datastore.FindActiveBoss(ctx, tx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	}

	damage := DamageForDifficulty(difficulty)
	currentHP, err := datastore.ApplyBossDamage(ctx, tx, boss.ID, damage)
	if err != nil {
		// the boss rotated away between the select and the update
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	}

	if err := datastore.UpsertBossContribution(ctx, tx, boss.ID, userID, damage); err != nil {
		return err
	}

	result.BossID = &boss.ID
	result.BossDamage = damage

	if currentHP > 0 {
		return nil
	}

	won, err := datastore.MarkBossDefeated(ctx, tx, boss.ID, now)
	if err != nil {
		return err
	}
	if !won {
		return nil
	}

	// the finishing blow collects the encounter rewards
	totalXP, err := datastore.AddXPAndCurrency(ctx, tx, userID, boss.XPReward, boss.CurrencyReward)
	if err != nil {
		return err
	}
	err = datastore.InsertXPLedgerEntry(ctx, tx, &models.XPLedgerEntry{
		ID:        uuid.NewString(),
		OwnerID:   userID,
		Amount:    boss.XPReward,
		Source:    models.XPSourceBossDefeat,
		CreatedAt: now,
	})
	if err != nil {
		return err
	}

	level := LevelForXP(totalXP)
	if err := datastore.UpdateUserLevel(ctx, tx, userID, level); err != nil {
		return err
	}

	result.BossDefeated = true
	result.XPAwarded += boss.XPReward
	result.CurrencyAwarded += boss.CurrencyReward
	result.TotalXP = totalXP
	result.Level = level
	return nil
}

// afterCommit refreshes best-effort read paths. The transaction already
// committed; failures here only delay what caches and leaderboards show.
func (service *ServiceCompletion) afterCommit(ctx context.Context, userID int64, result *models.CompletionResult) {
	if result.BossID != nil && result.BossDamage > 0 {
		if err := redis_store.AddBossDamage(ctx, service.redisClient, *result.BossID, userID, result.BossDamage); err != nil {
			log.Println("completion: damage leaderboard update failed:", err)
		}
	}
	if result.BossDefeated {
		if err := redis_store.DeleteBossSnapshot(ctx, service.redisClient); err != nil {
			log.Println("completion: boss snapshot delete failed:", err)
		}
		if err := service.cache.Delete(ctx, DBKeyActiveBoss()); err != nil {
			log.Println(err)
		}
	}
	service.serviceUser.ClearUserCache(ctx, userID)
}
