package datastore

import (
	"context"
	"time"

	"xplife/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableQuest(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Quest)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Quest)(nil)).Index("index_quest_owner_id").IfNotExists().Column("owner_id").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Quest)(nil)).Index("index_quest_owner_timeframe_created").IfNotExists().Column("owner_id", "timeframe", "created_at").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func InsertQuests(ctx context.Context, db bun.IDB, quests []*models.Quest) error {
	if len(quests) == 0 {
		return nil
	}
	_, err := db.NewInsert().Model(&quests).Exec(ctx)
	return err
}

func FindQuestByID(ctx context.Context, db bun.IDB, questID string) (*models.Quest, error) {
	var quest models.Quest
	err := db.NewSelect().Model(&quest).Where("id = ?", questID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &quest, nil
}

// CountQuestsInPeriod counts the owner's non-skipped quests of one timeframe
// created since the period start. Used for duplicate-period suppression.
func CountQuestsInPeriod(ctx context.Context, db bun.IDB, ownerID int64, tf models.Timeframe, since time.Time) (int, error) {
	return db.NewSelect().Model((*models.Quest)(nil)).
		Where("owner_id = ?", ownerID).
		Where("timeframe = ?", tf).
		Where("created_at >= ?", since).
		Where("status != ?", models.QuestStatusSkipped).
		Count(ctx)
}

// CountQuestsCreatedSince counts all quests regardless of timeframe. The
// weekly plan quota intentionally counts every timeframe, so a daily
// generation call consumes weekly budget too.
func CountQuestsCreatedSince(ctx context.Context, db bun.IDB, ownerID int64, since time.Time) (int, error) {
	return db.NewSelect().Model((*models.Quest)(nil)).
		Where("owner_id = ?", ownerID).
		Where("created_at >= ?", since).
		Count(ctx)
}

// CountYearlyQuests counts the owner's non-skipped yearly quests with no time
// window. The yearly cap is a lifetime-within-plan cap.
func CountYearlyQuests(ctx context.Context, db bun.IDB, ownerID int64) (int, error) {
	return db.NewSelect().Model((*models.Quest)(nil)).
		Where("owner_id = ?", ownerID).
		Where("timeframe = ?", models.TimeframeYearly).
		Where("status != ?", models.QuestStatusSkipped).
		Count(ctx)
}

func ListQuestsInPeriod(ctx context.Context, db bun.IDB, ownerID int64, tf models.Timeframe, since time.Time) ([]*models.Quest, error) {
	var quests []*models.Quest
	err := db.NewSelect().Model(&quests).
		Where("owner_id = ?", ownerID).
		Where("timeframe = ?", tf).
		Where("created_at >= ?", since).
		Where("status != ?", models.QuestStatusSkipped).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return quests, nil
}

func ListQuestsCreatedSince(ctx context.Context, db bun.IDB, ownerID int64, since time.Time) ([]*models.Quest, error) {
	var quests []*models.Quest
	err := db.NewSelect().Model(&quests).
		Where("owner_id = ?", ownerID).
		Where("created_at >= ?", since).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return quests, nil
}

func ListQuestHistory(ctx context.Context, db bun.IDB, ownerID int64, limit, offset int) ([]*models.Quest, error) {
	var quests []*models.Quest
	err := db.NewSelect().Model(&quests).
		Where("owner_id = ?", ownerID).
		Where("status in (?, ?)", models.QuestStatusCompleted, models.QuestStatusSkipped).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return quests, nil
}

// MarkQuestCompleted flips the quest to completed with a single conditional
// update. Zero rows affected means another request won the race (or the quest
// does not belong to the owner).
func MarkQuestCompleted(ctx context.Context, db bun.IDB, questID string, ownerID int64, proofRef *string, now time.Time) (int64, error) {
	q := db.NewUpdate().Model((*models.Quest)(nil)).
		Set("status = ?", models.QuestStatusCompleted).
		Set("completed_at = ?", now).
		Where("id = ?", questID).
		Where("owner_id = ?", ownerID).
		Where("status != ?", models.QuestStatusCompleted)
	if proofRef != nil {
		q = q.Set("proof_ref = ?", *proofRef)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func MarkQuestSkipped(ctx context.Context, db bun.IDB, questID string, ownerID int64) (int64, error) {
	res, err := db.NewUpdate().Model((*models.Quest)(nil)).
		Set("status = ?", models.QuestStatusSkipped).
		Where("id = ?", questID).
		Where("owner_id = ?", ownerID).
		Where("status in (?, ?)", models.QuestStatusPending, models.QuestStatusInProgress).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
