package datastore

import (
	"context"

	"xplife/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableXPLedger(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.XPLedgerEntry)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.XPLedgerEntry)(nil)).Index("index_xp_ledger_owner_id").IfNotExists().Column("owner_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func InsertXPLedgerEntry(ctx context.Context, db bun.IDB, entry *models.XPLedgerEntry) error {
	_, err := db.NewInsert().Model(entry).Exec(ctx)
	return err
}

func ListXPLedgerEntries(ctx context.Context, db bun.IDB, ownerID int64, limit, offset int) ([]*models.XPLedgerEntry, error) {
	var entries []*models.XPLedgerEntry
	err := db.NewSelect().Model(&entries).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return entries, nil
}
