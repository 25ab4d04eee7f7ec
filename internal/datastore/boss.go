package datastore

import (
	"context"
	"time"

	"xplife/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableBossEncounter(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.BossEncounter)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	// at most one active encounter system-wide
	_, err = db.NewRaw(`
		create unique index if not exists index_boss_single_active
			on boss_encounter (status) where status = 'active';`).Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func CreateTableBossContribution(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.BossContribution)(nil)).IfNotExists().Exec(ctx)
	return err
}

func FindActiveBoss(ctx context.Context, db bun.IDB) (*models.BossEncounter, error) {
	var boss models.BossEncounter
	err := db.NewSelect().Model(&boss).Where("status = ?", models.BossStatusActive).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &boss, nil
}

func InsertBoss(ctx context.Context, db bun.IDB, boss *models.BossEncounter) error {
	_, err := db.NewInsert().Model(boss).Exec(ctx)
	return err
}

// ApplyBossDamage decrements current_hp atomically, floored at zero, and
// returns the remaining HP. Read-modify-write would lose concurrent hits.
func ApplyBossDamage(ctx context.Context, db bun.IDB, bossID string, damage int) (int, error) {
	var currentHP int
	_, err := db.NewUpdate().Model((*models.BossEncounter)(nil)).
		Set("current_hp = greatest(current_hp - ?, 0)", damage).
		Where("id = ?", bossID).
		Where("status = ?", models.BossStatusActive).
		Returning("current_hp").
		Exec(ctx, &currentHP)
	if err != nil {
		return 0, err
	}
	return currentHP, nil
}

// MarkBossDefeated flips active -> defeated. Returns true only for the caller
// that wins the flip, so defeat rewards are paid exactly once.
func MarkBossDefeated(ctx context.Context, db bun.IDB, bossID string, now time.Time) (bool, error) {
	res, err := db.NewUpdate().Model((*models.BossEncounter)(nil)).
		Set("status = ?", models.BossStatusDefeated).
		Set("defeated_at = ?", now).
		Where("id = ?", bossID).
		Where("status = ?", models.BossStatusActive).
		Exec(ctx)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func ExpireBosses(ctx context.Context, db bun.IDB, now time.Time) (int64, error) {
	res, err := db.NewUpdate().Model((*models.BossEncounter)(nil)).
		Set("status = ?", models.BossStatusExpired).
		Where("status = ?", models.BossStatusActive).
		Where("ends_at is not null").
		Where("ends_at <= ?", now).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// UpsertBossContribution creates the (boss, owner) row or increments both
// counters in place.
func UpsertBossContribution(ctx context.Context, db bun.IDB, bossID string, ownerID int64, damage int) error {
	contribution := &models.BossContribution{
		BossID:          bossID,
		OwnerID:         ownerID,
		DamageDealt:     damage,
		QuestsCompleted: 1,
		UpdatedAt:       time.Now(),
	}

	_, err := db.NewInsert().Model(contribution).
		On("CONFLICT (boss_id, owner_id) DO UPDATE").
		Set("damage_dealt = boss_contribution.damage_dealt + EXCLUDED.damage_dealt").
		Set("quests_completed = boss_contribution.quests_completed + 1").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

func ListBossContributions(ctx context.Context, db bun.IDB, bossID string, limit int) ([]*models.BossContribution, error) {
	var contributions []*models.BossContribution
	err := db.NewSelect().Model(&contributions).
		Where("boss_id = ?", bossID).
		Order("damage_dealt DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return contributions, nil
}
