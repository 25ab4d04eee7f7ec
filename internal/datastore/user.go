package datastore

import (
	"context"
	"strings"

	"xplife/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableUserProfile(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.UserProfile)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.UserProfile)(nil)).Index("index_user_profile_username").IfNotExists().Column("username").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func FindUserProfileByID(ctx context.Context, db bun.IDB, userID int64) (*models.UserProfile, error) {
	var user models.UserProfile
	err := db.NewSelect().Model(&user).Where("id = ?", userID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUserProfile(ctx context.Context, db bun.IDB, user *models.UserProfile) (*models.UserProfile, error) {
	user.Username = strings.ToLower(user.Username)
	_, err := db.NewInsert().Model(user).Exec(ctx)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// AddXPAndCurrency applies both awards as atomic SQL increments and returns
// the new total_xp for the level recompute.
func AddXPAndCurrency(ctx context.Context, db bun.IDB, userID int64, xp int, currency int) (int, error) {
	var totalXP int
	_, err := db.NewUpdate().Model((*models.UserProfile)(nil)).
		Set("total_xp = total_xp + ?", xp).
		Set("currency_balance = currency_balance + ?", currency).
		Set("updated_at = current_timestamp").
		Where("id = ?", userID).
		Returning("total_xp").
		Exec(ctx, &totalXP)
	if err != nil {
		return 0, err
	}
	return totalXP, nil
}

// UpdateUserLevel only ever raises the stored level. Level is a cache of
// total_xp against the threshold table and must not regress.
func UpdateUserLevel(ctx context.Context, db bun.IDB, userID int64, level int) error {
	_, err := db.NewUpdate().Model((*models.UserProfile)(nil)).
		Set("level = ?", level).
		Where("id = ?", userID).
		Where("level < ?", level).
		Exec(ctx)
	return err
}
