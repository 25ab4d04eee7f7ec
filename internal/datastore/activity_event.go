package datastore

import (
	"context"

	"xplife/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableActivityEvent(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.ActivityEvent)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.ActivityEvent)(nil)).Index("index_activity_event_created_at").IfNotExists().Column("created_at").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func InsertActivityEvent(ctx context.Context, db bun.IDB, event *models.ActivityEvent) error {
	_, err := db.NewInsert().Model(event).Exec(ctx)
	return err
}
