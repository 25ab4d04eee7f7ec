package datastore

import (
	"context"

	"xplife/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableStreak(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Streak)(nil)).IfNotExists().Exec(ctx)
	return err
}

func GetStreak(ctx context.Context, db bun.IDB, ownerID int64) (*models.Streak, error) {
	var streak models.Streak
	err := db.NewSelect().Model(&streak).Where("owner_id = ?", ownerID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &streak, nil
}

// GetStreakForUpdate locks the row for the rest of the transaction. Only call
// inside RunInTx.
func GetStreakForUpdate(ctx context.Context, db bun.IDB, ownerID int64) (*models.Streak, error) {
	var streak models.Streak
	err := db.NewSelect().Model(&streak).Where("owner_id = ?", ownerID).For("UPDATE").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &streak, nil
}

func InsertStreak(ctx context.Context, db bun.IDB, streak *models.Streak) error {
	_, err := db.NewInsert().Model(streak).Exec(ctx)
	return err
}

func UpdateStreak(ctx context.Context, db bun.IDB, streak *models.Streak) error {
	_, err := db.NewUpdate().Model(streak).
		Set("current_streak = ?", streak.CurrentStreak).
		Set("longest_streak = ?", streak.LongestStreak).
		Set("last_activity_date = ?", streak.LastActivityDate).
		Set("updated_at = current_timestamp").
		WherePK().
		Exec(ctx)
	return err
}
